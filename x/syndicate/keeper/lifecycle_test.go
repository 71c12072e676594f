package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// TestLifecycleToSold walks a scheme through the full happy path: subscribe,
// order, fill, hold, sell, fill.
func TestLifecycleToSold(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)
	bank.fund(aliceAddr, 1_000)

	if _, err := k.Deposit(ctx, aliceAddr, scheme.SchemeID, math.NewInt(1_000)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	// Too early: the offer is still open
	if _, err := k.MakeBuyOrder(ctx, aliceAddr, scheme.SchemeID); !types.ErrWindowNotOpen.Is(err) {
		t.Fatalf("expected ErrWindowNotOpen before closing, got %v", err)
	}

	ctx = ctx.WithBlockTime(testClosing)
	scheme2, err := k.MakeBuyOrder(ctx, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("make buy order failed: %v", err)
	}
	if scheme2.State != types.StateOrdering {
		t.Fatalf("expected state ordering, got %s", scheme2.State)
	}

	// Unfilled poll leaves the scheme where it is
	_, filled, err := k.PublishToken(ctx, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("publish token poll failed: %v", err)
	}
	if filled {
		t.Fatal("expected unfilled buy order")
	}
	if got := k.GetScheme(ctx, scheme.SchemeID).State; got != types.StateOrdering {
		t.Fatalf("expected state ordering after unfilled poll, got %s", got)
	}

	// Fill: the market consumed custody in exchange for the position
	gateway.buyFilled = true
	bank.drain(CustodyAddress(scheme.SchemeID).String(), 1_000)
	scheme3, filled, err := k.PublishToken(ctx, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("publish token failed: %v", err)
	}
	if !filled {
		t.Fatal("expected filled buy order")
	}
	if scheme3.State != types.StateAssetHolding {
		t.Fatalf("expected state asset_holding, got %s", scheme3.State)
	}
	if !scheme3.PurchasePrice.Equal(math.NewInt(1_000)) {
		t.Errorf("expected purchase price 1000, got %s", scheme3.PurchasePrice)
	}

	// Selling before maturity is rejected
	if _, err := k.SellAsset(ctx, aliceAddr, scheme.SchemeID); !types.ErrWindowNotOpen.Is(err) {
		t.Fatalf("expected ErrWindowNotOpen before maturity, got %v", err)
	}

	ctx = ctx.WithBlockTime(testMaturity)
	scheme4, err := k.SellAsset(ctx, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("sell asset failed: %v", err)
	}
	if scheme4.State != types.StateAssetSelling {
		t.Fatalf("expected state asset_selling, got %s", scheme4.State)
	}

	// Unfilled sell poll
	_, filled, err = k.UpdateSellOrder(ctx, aliceAddr, scheme.SchemeID)
	if err != nil || filled {
		t.Fatalf("expected unfilled sell poll, got filled=%v err=%v", filled, err)
	}

	// Fill: proceeds land in custody before the poll observes the fill
	gateway.sellFilled = true
	bank.fund(CustodyAddress(scheme.SchemeID).String(), 999)
	scheme5, filled, err := k.UpdateSellOrder(ctx, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("update sell order failed: %v", err)
	}
	if !filled {
		t.Fatal("expected filled sell order")
	}
	if scheme5.State != types.StateAssetSold {
		t.Fatalf("expected state asset_sold, got %s", scheme5.State)
	}
	if !scheme5.SoldPrice.Equal(math.NewInt(999)) {
		t.Errorf("expected sold price 999, got %s", scheme5.SoldPrice)
	}
}

// TestMakeBuyOrderWindows tests the buy-order window boundaries
func TestMakeBuyOrderWindows(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)

	// Past order expiration the order can no longer be placed
	late := ctx.WithBlockTime(testOrderExp)
	if _, err := k.MakeBuyOrder(late, aliceAddr, scheme.SchemeID); !types.ErrWindowClosed.Is(err) {
		t.Errorf("expected ErrWindowClosed at order expiration, got %v", err)
	}

	// Wrong state
	ok := ctx.WithBlockTime(testClosing)
	if _, err := k.MakeBuyOrder(ok, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("make buy order failed: %v", err)
	}
	if _, err := k.MakeBuyOrder(ok, aliceAddr, scheme.SchemeID); !types.ErrWrongState.Is(err) {
		t.Errorf("expected ErrWrongState on second placement, got %v", err)
	}
}

// TestPublishTokenWindow tests that polling stops at order expiration
func TestPublishTokenWindow(t *testing.T) {
	k, ctx, _, gateway := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)

	ctx = ctx.WithBlockTime(testClosing)
	if _, err := k.MakeBuyOrder(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("make buy order failed: %v", err)
	}

	gateway.buyFilled = true
	late := ctx.WithBlockTime(testOrderExp)
	if _, _, err := k.PublishToken(late, aliceAddr, scheme.SchemeID); !types.ErrWindowClosed.Is(err) {
		t.Errorf("expected ErrWindowClosed past order expiration, got %v", err)
	}
}

// TestEndBlockerFlagsLapsedSchemes tests the advisory sweep
func TestEndBlockerFlagsLapsedSchemes(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)

	// Not lapsed yet: no advisory event
	k.EndBlocker(ctx)
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type == types.EventTypeRedeemableLapse {
			t.Fatal("unexpected lapse event before closing time")
		}
	}

	late := ctx.WithBlockTime(testClosing.Add(time.Second))
	k.EndBlocker(late)

	found := false
	for _, ev := range late.EventManager().Events() {
		if ev.Type == types.EventTypeRedeemableLapse {
			found = true
		}
	}
	if !found {
		t.Error("expected a lapse event past closing time")
	}

	// Advisory only: the scheme did not move
	if got := k.GetScheme(ctx, scheme.SchemeID).State; got != types.StateOffering {
		t.Errorf("expected state offering after sweep, got %s", got)
	}
}
