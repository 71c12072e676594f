package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

func fundAndDeposit(t *testing.T, k *Keeper, ctx sdk.Context, bank *mockBankKeeper, schemeID string, deposits map[string]int64) {
	t.Helper()
	for addr, amount := range deposits {
		bank.fund(addr, amount)
		if _, err := k.Deposit(ctx, addr, schemeID, math.NewInt(amount)); err != nil {
			t.Fatalf("deposit for %s failed: %v", addr, err)
		}
	}
}

func holderBalance(ctx sdk.Context, bank *mockBankKeeper, addr string) math.Int {
	return bank.GetBalance(ctx, sdk.MustAccAddressFromBech32(addr), testDenom).Amount
}

// TestRedeemPrePurchase tests the one-for-one refund of an offering scheme
// whose closing time lapsed without an order
func TestRedeemPrePurchase(t *testing.T) {
	k, ctx, bank, _ := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)
	fundAndDeposit(t, k, ctx, bank, scheme.SchemeID, map[string]int64{
		aliceAddr: 100,
		bobAddr:   200,
		carolAddr: 700,
	})

	// Not redeemable while the offer is open
	if _, _, _, err := k.Redeem(ctx, aliceAddr, scheme.SchemeID); !types.ErrNotRedeemable.Is(err) {
		t.Fatalf("expected ErrNotRedeemable before closing, got %v", err)
	}

	late := ctx.WithBlockTime(testClosing.Add(time.Second))
	closed, recipients, paid, err := k.Redeem(late, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if closed.State != types.StateClosed {
		t.Fatalf("expected state closed, got %s", closed.State)
	}
	if recipients != 3 {
		t.Errorf("expected 3 recipients, got %d", recipients)
	}
	if !paid.Equal(math.NewInt(1_000)) {
		t.Errorf("expected 1000 paid out, got %s", paid)
	}

	for addr, want := range map[string]int64{aliceAddr: 100, bobAddr: 200, carolAddr: 700} {
		if got := holderBalance(ctx, bank, addr); !got.Equal(math.NewInt(want)) {
			t.Errorf("expected %s refunded %d, got %s", addr, want, got)
		}
	}
	if !k.CustodyBalance(ctx, closed).IsZero() {
		t.Errorf("expected empty custody, got %s", k.CustodyBalance(ctx, closed))
	}
	if supply := k.GetLedger(ctx, scheme.SchemeID).TotalSupply; !supply.IsZero() {
		t.Errorf("expected zero supply after redemption, got %s", supply)
	}
}

// TestRedeemLapsedOrder tests redemption of an ordering scheme whose buy order
// never filled: the order is cancelled and contributions return one-for-one
func TestRedeemLapsedOrder(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)
	fundAndDeposit(t, k, ctx, bank, scheme.SchemeID, map[string]int64{aliceAddr: 300})

	ordering := ctx.WithBlockTime(testClosing)
	if _, err := k.MakeBuyOrder(ordering, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("make buy order failed: %v", err)
	}

	// Still within the order window: not redeemable
	if _, _, _, err := k.Redeem(ordering, aliceAddr, scheme.SchemeID); !types.ErrNotRedeemable.Is(err) {
		t.Fatalf("expected ErrNotRedeemable inside order window, got %v", err)
	}

	late := ctx.WithBlockTime(testOrderExp.Add(time.Second))
	closed, _, _, err := k.Redeem(late, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if closed.State != types.StateClosed {
		t.Fatalf("expected state closed, got %s", closed.State)
	}
	if gateway.cancels != 1 {
		t.Errorf("expected the lapsed buy order to be cancelled once, got %d", gateway.cancels)
	}
	if got := holderBalance(ctx, bank, aliceAddr); !got.Equal(math.NewInt(300)) {
		t.Errorf("expected full refund of 300, got %s", got)
	}
}

// TestRedeemPostSale tests the floor pro-rata split with the remainder going
// to the largest holder
func TestRedeemPostSale(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)
	fundAndDeposit(t, k, ctx, bank, scheme.SchemeID, map[string]int64{
		aliceAddr: 100,
		bobAddr:   200,
		carolAddr: 700,
	})

	// Drive the scheme to asset_sold with proceeds of 999 against supply 1000
	ctx = ctx.WithBlockTime(testClosing)
	if _, err := k.MakeBuyOrder(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("make buy order failed: %v", err)
	}
	gateway.buyFilled = true
	bank.drain(CustodyAddress(scheme.SchemeID).String(), 1_000)
	if _, _, err := k.PublishToken(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("publish token failed: %v", err)
	}
	ctx = ctx.WithBlockTime(testMaturity)
	if _, err := k.SellAsset(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("sell asset failed: %v", err)
	}
	gateway.sellFilled = true
	bank.fund(CustodyAddress(scheme.SchemeID).String(), 999)
	if _, _, err := k.UpdateSellOrder(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("update sell order failed: %v", err)
	}

	closed, recipients, paid, err := k.Redeem(ctx, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if closed.State != types.StateClosed {
		t.Fatalf("expected state closed, got %s", closed.State)
	}
	if recipients != 3 {
		t.Errorf("expected 3 recipients, got %d", recipients)
	}
	if !paid.Equal(math.NewInt(999)) {
		t.Errorf("expected 999 paid out, got %s", paid)
	}

	// Floor shares are 99, 199 and 699; the remainder of 2 goes to the largest
	// holder.
	want := map[string]int64{aliceAddr: 99, bobAddr: 199, carolAddr: 701}
	for addr, amount := range want {
		if got := holderBalance(ctx, bank, addr); !got.Equal(math.NewInt(amount)) {
			t.Errorf("expected %s to receive %d, got %s", addr, amount, got)
		}
	}
	if !k.CustodyBalance(ctx, closed).IsZero() {
		t.Errorf("expected custody drained to zero, got %s", k.CustodyBalance(ctx, closed))
	}
}

// sellScheme drives a freshly created scheme through a filled buy and sell so
// it sits in asset_sold with the given proceeds in custody.
func sellScheme(t *testing.T, k *Keeper, ctx sdk.Context, bank *mockBankKeeper, gateway *scriptedGateway, deposits map[string]int64, proceeds int64) (*types.Scheme, sdk.Context) {
	t.Helper()
	scheme := createTestScheme(t, k, ctx)
	fundAndDeposit(t, k, ctx, bank, scheme.SchemeID, deposits)

	total := int64(0)
	for _, amount := range deposits {
		total += amount
	}

	ctx = ctx.WithBlockTime(testClosing)
	if _, err := k.MakeBuyOrder(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("make buy order failed: %v", err)
	}
	gateway.buyFilled = true
	bank.drain(CustodyAddress(scheme.SchemeID).String(), total)
	if _, _, err := k.PublishToken(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("publish token failed: %v", err)
	}
	ctx = ctx.WithBlockTime(testMaturity)
	if _, err := k.SellAsset(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("sell asset failed: %v", err)
	}
	gateway.sellFilled = true
	bank.fund(CustodyAddress(scheme.SchemeID).String(), proceeds)
	if _, _, err := k.UpdateSellOrder(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("update sell order failed: %v", err)
	}
	return scheme, ctx
}

// TestRedeemSweepsStrayCustody tests that settlement funds landing on the
// custody address after the sell fill are swept to the largest holder so the
// scheme never closes with a nonzero custody balance
func TestRedeemSweepsStrayCustody(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)
	scheme, ctx := sellScheme(t, k, ctx, bank, gateway, map[string]int64{
		aliceAddr: 100,
		bobAddr:   200,
		carolAddr: 700,
	}, 999)

	// A plain bank send to the custody address after the fill.
	bank.fund(CustodyAddress(scheme.SchemeID).String(), 5)

	closed, recipients, paid, err := k.Redeem(ctx, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if recipients != 3 {
		t.Errorf("expected 3 recipients, got %d", recipients)
	}
	if !paid.Equal(math.NewInt(1_004)) {
		t.Errorf("expected 1004 paid out, got %s", paid)
	}

	// Floor shares are 99, 199 and 699; the largest holder collects the
	// flooring remainder of 2 plus the 5 stray units.
	want := map[string]int64{aliceAddr: 99, bobAddr: 199, carolAddr: 706}
	for addr, amount := range want {
		if got := holderBalance(ctx, bank, addr); !got.Equal(math.NewInt(amount)) {
			t.Errorf("expected %s to receive %d, got %s", addr, amount, got)
		}
	}
	if !k.CustodyBalance(ctx, closed).IsZero() {
		t.Errorf("expected custody drained to zero, got %s", k.CustodyBalance(ctx, closed))
	}
}

// TestRedeemPostSaleCustodyShortfall tests that a custody balance below the
// recorded proceeds aborts the redemption before any payout
func TestRedeemPostSaleCustodyShortfall(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)
	scheme, ctx := sellScheme(t, k, ctx, bank, gateway, map[string]int64{
		aliceAddr: 100,
		bobAddr:   900,
	}, 1_000)

	bank.drain(CustodyAddress(scheme.SchemeID).String(), 1)

	if _, _, _, err := k.Redeem(ctx, aliceAddr, scheme.SchemeID); !types.ErrCustodyShortfall.Is(err) {
		t.Fatalf("expected ErrCustodyShortfall, got %v", err)
	}
	if got := k.GetScheme(ctx, scheme.SchemeID).State; got != types.StateAssetSold {
		t.Errorf("expected scheme to stay asset_sold, got %s", got)
	}
	if got := holderBalance(ctx, bank, aliceAddr); !got.IsZero() {
		t.Errorf("expected no payout, alice received %s", got)
	}
}

// TestRedeemEmptyScheme tests that a scheme with no participants still closes
func TestRedeemEmptyScheme(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)

	late := ctx.WithBlockTime(testClosing.Add(time.Second))
	closed, recipients, paid, err := k.Redeem(late, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if closed.State != types.StateClosed {
		t.Fatalf("expected state closed, got %s", closed.State)
	}
	if recipients != 0 || !paid.IsZero() {
		t.Errorf("expected a no-op payout, got %d recipients and %s paid", recipients, paid)
	}
}

// TestRedeemNotRedeemableStates tests that held and selling positions can
// never be redeemed
func TestRedeemNotRedeemableStates(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)
	fundAndDeposit(t, k, ctx, bank, scheme.SchemeID, map[string]int64{aliceAddr: 100})

	ctx = ctx.WithBlockTime(testClosing)
	if _, err := k.MakeBuyOrder(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("make buy order failed: %v", err)
	}
	gateway.buyFilled = true
	bank.drain(CustodyAddress(scheme.SchemeID).String(), 100)
	if _, _, err := k.PublishToken(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("publish token failed: %v", err)
	}

	// Holding: never redeemable, even far past maturity
	far := ctx.WithBlockTime(testMaturity.Add(365 * 24 * time.Hour))
	if _, _, _, err := k.Redeem(far, aliceAddr, scheme.SchemeID); !types.ErrNotRedeemable.Is(err) {
		t.Errorf("expected ErrNotRedeemable for held position, got %v", err)
	}

	ctx = ctx.WithBlockTime(testMaturity)
	if _, err := k.SellAsset(ctx, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("sell asset failed: %v", err)
	}
	if _, _, _, err := k.Redeem(ctx, aliceAddr, scheme.SchemeID); !types.ErrNotRedeemable.Is(err) {
		t.Errorf("expected ErrNotRedeemable while selling, got %v", err)
	}
}
