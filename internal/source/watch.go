package source

import (
	"context"
	"time"

	"github.com/litescript/ls-starmap/internal/state"
)

// Notify is called after every load with the resulting snapshot. err is the
// load error, if any.
type Notify func(snap state.Snapshot, err error)

// Watch loads immediately and then at the manager's refresh interval until
// ctx is cancelled. Every result is recorded in mgr.
func Watch(ctx context.Context, l *Loader, mgr *state.Manager, notify Notify) {
	LoadInto(ctx, l, mgr, notify)

	interval := mgr.RefreshInterval()
	if interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.log.Debug("watch loop shutting down")
			return
		case <-ticker.C:
			LoadInto(ctx, l, mgr, notify)
		}
	}
}

// LoadInto performs one load and records it in mgr.
func LoadInto(ctx context.Context, l *Loader, mgr *state.Manager, notify Notify) state.Snapshot {
	result := l.Load(ctx)
	if result.Error != nil {
		l.log.Error("load failed: %v", result.Error)
	}
	mgr.Update(result.Data, result.Duration, result.Error)

	snap := mgr.Snapshot()
	if notify != nil {
		notify(snap, result.Error)
	}
	return snap
}
