package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Refresher ticks the coordinator so estimated call times track the wall
// clock. It runs inside the api-server process.
type Refresher struct {
	coord    *Coordinator
	interval time.Duration
	logger   zerolog.Logger
}

func NewRefresher(coord *Coordinator, interval time.Duration, logger zerolog.Logger) *Refresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Refresher{coord: coord, interval: interval, logger: logger}
}

// Run blocks until ctx is done. It refreshes once at startup and then on
// every tick.
func (r *Refresher) Run(ctx context.Context) {
	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("queue refresher stopping")
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Refresher) runOnce(ctx context.Context) {
	start := time.Now()
	r.coord.RefreshBoard(ctx)
	r.logger.Debug().Dur("took", time.Since(start)).Msg("queue board refreshed")
}
