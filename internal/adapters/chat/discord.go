// Package chat delivers rendered notifications to a Discord channel.
package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/okian/clanpulse/pkg/logger"
)

// DiscordSender posts messages into a single configured channel.
type DiscordSender struct {
	session   *discordgo.Session
	channelID string

	mu     sync.RWMutex
	closed bool

	log logger.Logger
}

// NewDiscordSender creates a sender bound to one channel. Open must be
// called before the first Send.
func NewDiscordSender(token, channelID string) (*DiscordSender, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	return &DiscordSender{
		session:   session,
		channelID: channelID,
		log:       logger.Named("chat"),
	}, nil
}

// Open establishes the gateway connection.
func (d *DiscordSender) Open(ctx context.Context) error {
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	d.log.Info(ctx, "discord session opened", logger.String("channel_id", d.channelID))
	return nil
}

// Send posts one message to the configured channel.
func (d *DiscordSender) Send(ctx context.Context, text string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrSessionClosed
	}

	if _, err := d.session.ChannelMessageSend(d.channelID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send channel message: %w", err)
	}
	return nil
}

// Close tears down the gateway connection. Sends after Close fail with
// ErrSessionClosed.
func (d *DiscordSender) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.session.Close()
}
