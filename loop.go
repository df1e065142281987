package scenic

import (
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// Loop drives a Registry at a fixed frame rate from a single goroutine —
// the game-loop thread the frame contract assumes. Hosts with their own
// loop (a windowing main loop, typically) should skip Loop and call
// Registry.Tick and Registry.Render directly instead.
type Loop struct {
	registry *Registry
	rate     time.Duration

	running atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewLoop creates a loop stepping the registry every rate interval.
// A rate of zero or less defaults to 50ms (20 frames per second).
func NewLoop(r *Registry, rate time.Duration) *Loop {
	if rate <= 0 {
		rate = 50 * time.Millisecond
	}
	return &Loop{
		registry: r,
		rate:     rate,
	}
}

// Start begins stepping frames on a new goroutine. A stopped loop can be
// started again.
func (l *Loop) Start() {
	if l.running.Swap(true) {
		return // Already running
	}
	// Fresh channels per run, so a restart does not reuse the closed
	// pair from the previous one.
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})
	go l.run()
}

// Stop halts the loop, synchronously unloads every active scene, and waits
// for the loop goroutine to exit. Safe to call once; further calls are
// no-ops.
func (l *Loop) Stop() {
	if !l.running.Swap(false) {
		return // Not running
	}
	close(l.stopCh)
	<-l.doneCh
}

// Running reports whether the loop is stepping frames.
func (l *Loop) Running() bool {
	return l.running.Load()
}

func (l *Loop) run() {
	defer close(l.doneCh)

	ticker := time.NewTicker(l.rate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-l.stopCh:
			l.registry.UnloadAll()
			return

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if !l.step(dt) {
				l.running.Store(false)
				return
			}
		}
	}
}

// step advances one frame, reporting false when a hook panicked and the
// loop must halt.
func (l *Loop) step(dt time.Duration) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("scenic: panic in frame",
				"panic", rec,
				"stack", string(debug.Stack()))
			ok = false
		}
	}()

	l.registry.Tick(dt)
	l.registry.Render()
	return true
}
