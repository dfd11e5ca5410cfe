// Package format renders trophy events and daily aggregates into chat
// text. Pure functions only: no I/O, no side effects.
package format

import (
	"fmt"
	"strings"

	"github.com/okian/clanpulse/internal/domain/model"
)

// markupEscaper escapes user-supplied display text before it is embedded
// in markdown-bearing output.
var markupEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"*", "\\*",
	"_", "\\_",
	"~", "\\~",
	"`", "\\`",
	"|", "\\|",
	">", "\\>",
)

// Escape neutralizes markdown in user-supplied text.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}

// Signed renders an integer with an explicit sign, "+30" or "-15".
func Signed(n int) string {
	return fmt.Sprintf("%+d", n)
}

// Event renders a single trophy event together with the player's daily
// aggregate. currentScore is the score observed on this tick; details,
// when non-empty, adds one line per event of the day.
func Event(event model.TrophyEvent, agg model.DailyAggregate, currentScore int, details []model.TrophyEvent) string {
	var b strings.Builder

	icon := "⚔️"
	if event.Kind == model.KindDefend {
		icon = "🛡️"
	}
	fmt.Fprintf(&b, "%s **%s** (%s) %d (%s)\n", icon, Escape(event.Name), Escape(event.Tag), currentScore, Signed(event.Signed()))

	b.WriteString("```\n")
	b.WriteString("attacks  defends  net\n")
	fmt.Fprintf(&b, "%7d  %7d  %s\n", agg.AttackCount, agg.DefendCount, Signed(agg.NetGain))
	for _, detail := range details {
		fmt.Fprintf(&b, "%s  %-6s  %s\n", detail.TS.Format("15:04:05"), detail.Kind, Signed(detail.Signed()))
	}
	b.WriteString("```")

	return b.String()
}

// NewDay renders the banner emitted when a day partition opens.
func NewDay(partition string) string {
	return fmt.Sprintf("🌅 New day started: **%s**. Daily totals reset.", partition)
}

// Roster renders the ranked member list for a status reply.
func Roster(observations []model.PlayerObservation) string {
	if len(observations) == 0 {
		return "No clan members observed yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d clan members\n```\n", len(observations))
	for i, obs := range observations {
		fmt.Fprintf(&b, "%2d. %-20s %-12s %d\n", i+1, Escape(obs.Name), obs.Tag, obs.Trophies)
	}
	b.WriteString("```")
	return b.String()
}
