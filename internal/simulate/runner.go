package simulate

import (
	"context"
	"fmt"
	"time"

	app "github.com/okian/clanpulse/internal/app"
	"github.com/okian/clanpulse/internal/domain/format"
	"github.com/okian/clanpulse/pkg/logger"
)

const drainWait = 500 * time.Millisecond

// Run executes a full simulation: baseline tick, the configured number
// of random-walk ticks, then verification of every player's aggregate
// against the walk's ground truth.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	log := logger.Get().Named("simulate")
	if config.Verbose {
		_ = logger.SetLevelString("debug")
	}

	log.Info(ctx, "starting simulation",
		logger.Int("players", config.Players),
		logger.Int("ticks", config.Ticks),
		logger.Int64("seed", config.Seed))

	roster := NewSyntheticRoster(config.Players, config.Seed)
	sender := NewStdoutSender()

	if observations, err := roster.FetchRankedPlayers(ctx); err == nil {
		log.Debug(ctx, "initial roster", logger.String("roster", format.Roster(observations)))
	}

	svc := app.New(
		app.WithFetcher(roster),
		app.WithSender(sender),
		app.WithQueueSize(config.Players*config.Ticks+1),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	// Baseline tick plus the walk
	for i := 0; i <= config.Ticks; i++ {
		roster.Step()
		if err := svc.OnPollTick(ctx); err != nil {
			return fmt.Errorf("poll tick %d: %w", i, err)
		}
		stats.TicksRun++
		if config.TickDelay > 0 {
			time.Sleep(config.TickDelay)
		}
	}

	// Let the delivery workers drain the queue
	time.Sleep(drainWait)

	if err := verify(ctx, svc, roster); err != nil {
		return err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	stats.EventsExpected = roster.ExpectedEvents()
	stats.NotificationsSent = int(sender.Count())

	log.Info(ctx, "simulation finished",
		logger.Int("ticks", stats.TicksRun),
		logger.Int("events", stats.EventsExpected),
		logger.Int("notifications", stats.NotificationsSent),
		logger.Duration("duration", stats.Duration))

	if stats.NotificationsSent != stats.EventsExpected {
		return fmt.Errorf("%w: expected %d notifications, delivered %d",
			ErrVerification, stats.EventsExpected, stats.NotificationsSent)
	}
	return nil
}

// verify compares every player's tracked aggregate with the walk's
// ground truth.
func verify(ctx context.Context, svc *app.Service, roster *SyntheticRoster) error {
	for _, tag := range roster.Tags() {
		status, err := svc.PlayerStatus(ctx, tag)
		if err != nil {
			return fmt.Errorf("%w: status for %s: %v", ErrVerification, tag, err)
		}
		if want := roster.ExpectedNet(tag); status.NetGain != want {
			return fmt.Errorf("%w: %s net gain %d, want %d",
				ErrVerification, tag, status.NetGain, want)
		}
	}
	return nil
}
