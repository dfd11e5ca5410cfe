package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/clanpulse/internal/simulate"
	"github.com/okian/clanpulse/pkg/logger"
)

// Default configuration constants.
const (
	defaultPlayers    = 25
	defaultTicks      = 100
	defaultSeed       = 1
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		players   = flag.Int("players", defaultPlayers, "Number of synthetic clan members")
		ticks     = flag.Int("ticks", defaultTicks, "Number of poll ticks to simulate")
		seed      = flag.Int64("seed", defaultSeed, "Random walk seed")
		tickDelay = flag.Duration("delay", 0, "Pause between simulated ticks")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &simulate.Config{
		Players:   *players,
		Ticks:     *ticks,
		Seed:      *seed,
		TickDelay: *tickDelay,
		Verbose:   *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
