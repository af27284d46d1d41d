package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skillmine/core/internal/testutil"
)

// TestLiveManagersStopOnCancel free-runs the tick and spawn managers
// the way the binary's live mode does and verifies one cancel winds
// both down.
func TestLiveManagersStopOnCancel(t *testing.T) {
	b := newBattlefield(t, 3)
	if err := b.spawns.PopulateAll(); err != nil {
		t.Fatalf("populating: %v", err)
	}

	ctx, cancel := testutil.ContextWithCancel(t)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.aiMgr.Start(gctx) })
	g.Go(func() error { return b.spawns.Run(gctx) })

	// Let both loops take a few ticks before pulling the plug.
	time.Sleep(150 * time.Millisecond)
	cancel()

	if err := g.Wait(); !errors.Is(err, context.Canceled) {
		t.Fatalf("managers stopped with %v, want context.Canceled", err)
	}
}
