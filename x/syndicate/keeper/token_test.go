package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// holdingScheme drives a fresh scheme into asset_holding with the given
// contributions and returns the context at the fill time.
func holdingScheme(t *testing.T, k *Keeper, ctx sdk.Context, bank *mockBankKeeper, gateway *scriptedGateway, deposits map[string]int64) (*types.Scheme, sdk.Context) {
	t.Helper()
	scheme := createTestScheme(t, k, ctx)
	total := int64(0)
	for addr, amount := range deposits {
		bank.fund(addr, amount)
		if _, err := k.Deposit(ctx, addr, scheme.SchemeID, math.NewInt(amount)); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
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
	return k.GetScheme(ctx, scheme.SchemeID), ctx
}

// TestShareTransfer tests share movement during the holding window
func TestShareTransfer(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)
	scheme, ctx := holdingScheme(t, k, ctx, bank, gateway, map[string]int64{aliceAddr: 600, bobAddr: 400})

	ledger, err := k.Transfer(ctx, aliceAddr, scheme.SchemeID, carolAddr, math.NewInt(250))
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if !ledger.BalanceOf(aliceAddr).Equal(math.NewInt(350)) {
		t.Errorf("expected alice balance 350, got %s", ledger.BalanceOf(aliceAddr))
	}
	if !ledger.BalanceOf(carolAddr).Equal(math.NewInt(250)) {
		t.Errorf("expected carol balance 250, got %s", ledger.BalanceOf(carolAddr))
	}
	if !ledger.TotalSupply.Equal(math.NewInt(1_000)) {
		t.Errorf("transfer changed supply: %s", ledger.TotalSupply)
	}
}

// TestShareTransferWindow tests that shares only circulate while held and
// before maturity
func TestShareTransferWindow(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)

	// Offering: the ledger tracks contributions, not transferable shares
	scheme := createTestScheme(t, k, ctx)
	bank.fund(aliceAddr, 100)
	if _, err := k.Deposit(ctx, aliceAddr, scheme.SchemeID, math.NewInt(100)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if _, err := k.Transfer(ctx, aliceAddr, scheme.SchemeID, bobAddr, math.NewInt(10)); !types.ErrWrongState.Is(err) {
		t.Errorf("expected ErrWrongState during offering, got %v", err)
	}

	held, hctx := holdingScheme(t, k, ctx, bank, gateway, map[string]int64{bobAddr: 100})

	// At and past maturity circulation stops
	atMaturity := hctx.WithBlockTime(testMaturity)
	if _, err := k.Transfer(atMaturity, bobAddr, held.SchemeID, carolAddr, math.NewInt(10)); !types.ErrWindowClosed.Is(err) {
		t.Errorf("expected ErrWindowClosed at maturity, got %v", err)
	}
	justBefore := hctx.WithBlockTime(testMaturity.Add(-time.Second))
	if _, err := k.Transfer(justBefore, bobAddr, held.SchemeID, carolAddr, math.NewInt(10)); err != nil {
		t.Errorf("expected transfer just before maturity to succeed, got %v", err)
	}
}

// TestShareAllowanceFlow tests approve and transfer-from through the keeper
func TestShareAllowanceFlow(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)
	scheme, ctx := holdingScheme(t, k, ctx, bank, gateway, map[string]int64{aliceAddr: 500})

	if _, err := k.Approve(ctx, aliceAddr, scheme.SchemeID, bobAddr, math.NewInt(200)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if got := k.GetAllowance(ctx, scheme.SchemeID, aliceAddr, bobAddr); !got.Equal(math.NewInt(200)) {
		t.Fatalf("expected allowance 200, got %s", got)
	}

	ledger, err := k.TransferFrom(ctx, bobAddr, scheme.SchemeID, aliceAddr, carolAddr, math.NewInt(150))
	if err != nil {
		t.Fatalf("transfer-from failed: %v", err)
	}
	if !ledger.BalanceOf(carolAddr).Equal(math.NewInt(150)) {
		t.Errorf("expected carol balance 150, got %s", ledger.BalanceOf(carolAddr))
	}
	if got := k.GetAllowance(ctx, scheme.SchemeID, aliceAddr, bobAddr); !got.Equal(math.NewInt(50)) {
		t.Errorf("expected remaining allowance 50, got %s", got)
	}

	if _, err := k.TransferFrom(ctx, bobAddr, scheme.SchemeID, aliceAddr, carolAddr, math.NewInt(51)); err != types.ErrInsufficientAllowance {
		t.Errorf("expected ErrInsufficientAllowance, got %v", err)
	}
}

// TestShareViewsFollowState tests that views answer true values in any
// asset_holding context, including past maturity, and zero in every other state
func TestShareViewsFollowState(t *testing.T) {
	k, ctx, bank, gateway := setupKeeper(t)

	// Offering: contributions are tracked but shares are not live
	offering := createTestScheme(t, k, ctx)
	bank.fund(aliceAddr, 100)
	if _, err := k.Deposit(ctx, aliceAddr, offering.SchemeID, math.NewInt(100)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if got := k.TotalSupply(ctx, offering.SchemeID); !got.IsZero() {
		t.Errorf("expected zero supply during offering, got %s", got)
	}

	scheme, hctx := holdingScheme(t, k, ctx, bank, gateway, map[string]int64{aliceAddr: 500})
	if _, err := k.Approve(hctx, aliceAddr, scheme.SchemeID, bobAddr, math.NewInt(50)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if got := k.TotalSupply(hctx, scheme.SchemeID); !got.Equal(math.NewInt(500)) {
		t.Errorf("expected live supply 500, got %s", got)
	}
	if got := k.BalanceOf(hctx, scheme.SchemeID, aliceAddr); !got.Equal(math.NewInt(500)) {
		t.Errorf("expected live balance 500, got %s", got)
	}

	// Still holding past maturity: transfers stop but the views keep reporting
	// true values until the sell order moves the state on.
	late := hctx.WithBlockTime(testMaturity.Add(time.Hour))
	if got := k.TotalSupply(late, scheme.SchemeID); !got.Equal(math.NewInt(500)) {
		t.Errorf("expected supply 500 while held past maturity, got %s", got)
	}
	if got := k.BalanceOf(late, scheme.SchemeID, aliceAddr); !got.Equal(math.NewInt(500)) {
		t.Errorf("expected balance 500 while held past maturity, got %s", got)
	}
	if got := k.GetAllowance(late, scheme.SchemeID, aliceAddr, bobAddr); !got.Equal(math.NewInt(50)) {
		t.Errorf("expected allowance 50 while held past maturity, got %s", got)
	}

	// Once the position is up for sale the share ledger is no longer live
	if _, err := k.SellAsset(late, aliceAddr, scheme.SchemeID); err != nil {
		t.Fatalf("sell asset failed: %v", err)
	}
	if got := k.TotalSupply(late, scheme.SchemeID); !got.IsZero() {
		t.Errorf("expected zero supply while selling, got %s", got)
	}
	if got := k.BalanceOf(late, scheme.SchemeID, aliceAddr); !got.IsZero() {
		t.Errorf("expected zero balance while selling, got %s", got)
	}
	if got := k.GetAllowance(late, scheme.SchemeID, aliceAddr, bobAddr); !got.IsZero() {
		t.Errorf("expected zero allowance while selling, got %s", got)
	}
}
