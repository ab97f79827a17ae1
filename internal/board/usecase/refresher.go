package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Refresher re-projects owner boards on a fixed wall-clock interval and
// keeps the latest snapshot per owner. Refreshes are re-entrant: each one
// takes a generation number up front, and a refresh that finishes after a
// newer one has already been applied is discarded rather than overwriting
// fresher state. There is no cancellation; a stale in-flight refresh is
// simply superseded.
type Refresher struct {
	board    BoardUsecase
	interval time.Duration
	log      *logrus.Logger

	mu        sync.Mutex
	nextGen   map[string]uint64
	lastGen   map[string]uint64
	snapshots map[string]*BoardSnapshot
}

// NewRefresher creates a Refresher over the given usecase.
func NewRefresher(board BoardUsecase, interval time.Duration, log *logrus.Logger) *Refresher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Refresher{
		board:     board,
		interval:  interval,
		log:       log,
		nextGen:   make(map[string]uint64),
		lastGen:   make(map[string]uint64),
		snapshots: make(map[string]*BoardSnapshot),
	}
}

func (r *Refresher) begin(ownerID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextGen[ownerID]++
	return r.nextGen[ownerID]
}

// complete stores the snapshot unless a newer generation already did.
func (r *Refresher) complete(ownerID string, gen uint64, snap *BoardSnapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen < r.lastGen[ownerID] {
		return false
	}
	r.lastGen[ownerID] = gen
	r.snapshots[ownerID] = snap
	return true
}

// Snapshot returns the latest applied snapshot for an owner, nil if none.
func (r *Refresher) Snapshot(ownerID string) *BoardSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshots[ownerID]
}

// Refresh re-fetches columns and re-projects emails immediately. This is
// the explicit "reload projector state" call used after config changes
// instead of a page reload. The generation guard only governs the shared
// snapshot: a superseded refresh still hands its own projection to the
// caller, whose filter options may differ from the fresher one's.
func (r *Refresher) Refresh(ownerID string, opts ProjectionOptions) (*BoardSnapshot, error) {
	gen := r.begin(ownerID)
	snap, err := r.board.Board(ownerID, opts)
	if err != nil {
		return nil, err
	}
	r.complete(ownerID, gen, snap)
	return snap, nil
}

// Run refreshes the owner's board every interval until the context is
// cancelled.
func (r *Refresher) Run(ctx context.Context, ownerID string, opts ProjectionOptions) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Refresh(ownerID, opts); err != nil {
				r.log.WithField("owner", ownerID).WithError(err).Warn("board refresh failed")
			}
		}
	}
}
