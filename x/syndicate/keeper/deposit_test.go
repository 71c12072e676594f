package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// TestDepositRoundTrip tests the deposit and withdraw round trip against both
// ledger and custody
func TestDepositRoundTrip(t *testing.T) {
	k, ctx, bank, _ := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)
	bank.fund(aliceAddr, 1_000)

	ledger, err := k.Deposit(ctx, aliceAddr, scheme.SchemeID, math.NewInt(100))
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if !ledger.BalanceOf(aliceAddr).Equal(math.NewInt(100)) {
		t.Errorf("expected ledger balance 100, got %s", ledger.BalanceOf(aliceAddr))
	}
	if !k.CustodyBalance(ctx, scheme).Equal(math.NewInt(100)) {
		t.Errorf("expected custody 100, got %s", k.CustodyBalance(ctx, scheme))
	}

	ledger, err = k.Withdraw(ctx, aliceAddr, scheme.SchemeID, math.NewInt(40))
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if !ledger.BalanceOf(aliceAddr).Equal(math.NewInt(60)) {
		t.Errorf("expected ledger balance 60, got %s", ledger.BalanceOf(aliceAddr))
	}
	if !k.CustodyBalance(ctx, scheme).Equal(math.NewInt(60)) {
		t.Errorf("expected custody 60, got %s", k.CustodyBalance(ctx, scheme))
	}

	// Depositor got the funds back
	got := bank.GetBalance(ctx, mustAccAddress(t, aliceAddr), testDenom)
	if !got.Amount.Equal(math.NewInt(940)) {
		t.Errorf("expected depositor balance 940, got %s", got.Amount)
	}
}

// TestWithdrawAll tests the full-balance withdrawal form
func TestWithdrawAll(t *testing.T) {
	k, ctx, bank, _ := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)
	bank.fund(aliceAddr, 500)

	if _, err := k.Deposit(ctx, aliceAddr, scheme.SchemeID, math.NewInt(500)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	ledger, withdrawn, err := k.WithdrawAll(ctx, aliceAddr, scheme.SchemeID)
	if err != nil {
		t.Fatalf("withdraw all failed: %v", err)
	}
	if !withdrawn.Equal(math.NewInt(500)) {
		t.Errorf("expected withdrawn 500, got %s", withdrawn)
	}
	if !ledger.BalanceOf(aliceAddr).IsZero() {
		t.Errorf("expected zero balance, got %s", ledger.BalanceOf(aliceAddr))
	}
	if !k.CustodyBalance(ctx, scheme).IsZero() {
		t.Errorf("expected empty custody, got %s", k.CustodyBalance(ctx, scheme))
	}

	// Nothing left to withdraw
	if _, _, err := k.WithdrawAll(ctx, aliceAddr, scheme.SchemeID); err != types.ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

// TestWithdrawAllGuardsBeforeBalance tests that the window guard outranks the
// balance check: a zero-balance caller on a closed window gets the window
// error, not a balance error
func TestWithdrawAllGuardsBeforeBalance(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)

	if _, _, err := k.WithdrawAll(ctx, bobAddr, "sch-missing"); err != types.ErrSchemeNotFound {
		t.Errorf("expected ErrSchemeNotFound, got %v", err)
	}

	atClosing := ctx.WithBlockTime(testClosing)
	if _, _, err := k.WithdrawAll(atClosing, bobAddr, scheme.SchemeID); !types.ErrWindowClosed.Is(err) {
		t.Errorf("expected ErrWindowClosed after the offer closed, got %v", err)
	}
}

// TestDepositGuards tests subscription-window enforcement
func TestDepositGuards(t *testing.T) {
	k, ctx, bank, _ := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)
	bank.fund(aliceAddr, 1_000)

	if _, err := k.Deposit(ctx, aliceAddr, "sch-missing", math.NewInt(10)); err != types.ErrSchemeNotFound {
		t.Errorf("expected ErrSchemeNotFound, got %v", err)
	}
	if _, err := k.Deposit(ctx, aliceAddr, scheme.SchemeID, math.ZeroInt()); err != types.ErrZeroAmount {
		t.Errorf("expected ErrZeroAmount, got %v", err)
	}

	// The subscription window is half-open: the closing instant itself rejects.
	atClosing := ctx.WithBlockTime(testClosing)
	if _, err := k.Deposit(atClosing, aliceAddr, scheme.SchemeID, math.NewInt(10)); !types.ErrWindowClosed.Is(err) {
		t.Errorf("expected ErrWindowClosed at closing time, got %v", err)
	}
	justBefore := ctx.WithBlockTime(testClosing.Add(-time.Second))
	if _, err := k.Deposit(justBefore, aliceAddr, scheme.SchemeID, math.NewInt(10)); err != nil {
		t.Errorf("expected deposit just before closing to succeed, got %v", err)
	}

	// Withdraw obeys the same window
	if _, err := k.Withdraw(atClosing, aliceAddr, scheme.SchemeID, math.NewInt(10)); !types.ErrWindowClosed.Is(err) {
		t.Errorf("expected ErrWindowClosed for late withdraw, got %v", err)
	}
}

// TestDepositInsufficientFunds tests that a failed settlement transfer aborts
// the operation
func TestDepositInsufficientFunds(t *testing.T) {
	k, ctx, bank, _ := setupKeeper(t)
	scheme := createTestScheme(t, k, ctx)
	bank.fund(aliceAddr, 50)

	_, err := k.Deposit(ctx, aliceAddr, scheme.SchemeID, math.NewInt(100))
	if !types.ErrSettlementTransfer.Is(err) {
		t.Fatalf("expected ErrSettlementTransfer, got %v", err)
	}
}
