package types

import (
	"testing"

	"cosmossdk.io/math"
)

// TestLedgerMintAndBurn tests balance and supply bookkeeping
func TestLedgerMintAndBurn(t *testing.T) {
	ledger := NewLedger("sch-test")

	if err := ledger.Mint("alice", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := ledger.Mint("bob", math.NewInt(200)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := ledger.Mint("alice", math.NewInt(50)); err != nil {
		t.Fatalf("second mint failed: %v", err)
	}

	if !ledger.BalanceOf("alice").Equal(math.NewInt(150)) {
		t.Errorf("expected alice balance 150, got %s", ledger.BalanceOf("alice"))
	}
	if !ledger.TotalSupply.Equal(math.NewInt(350)) {
		t.Errorf("expected total supply 350, got %s", ledger.TotalSupply)
	}

	if err := ledger.Burn("bob", math.NewInt(200)); err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	if !ledger.BalanceOf("bob").IsZero() {
		t.Errorf("expected bob balance 0, got %s", ledger.BalanceOf("bob"))
	}
	if !ledger.TotalSupply.Equal(math.NewInt(150)) {
		t.Errorf("expected total supply 150, got %s", ledger.TotalSupply)
	}
}

// TestLedgerMintRejections tests mint argument validation
func TestLedgerMintRejections(t *testing.T) {
	ledger := NewLedger("sch-test")

	if err := ledger.Mint("", math.NewInt(10)); err != ErrInvalidRecipient {
		t.Errorf("expected ErrInvalidRecipient for empty identity, got %v", err)
	}
	if err := ledger.Mint("alice", math.ZeroInt()); err != ErrZeroAmount {
		t.Errorf("expected ErrZeroAmount for zero mint, got %v", err)
	}
	if err := ledger.Mint("alice", math.NewInt(-5)); err != ErrZeroAmount {
		t.Errorf("expected ErrZeroAmount for negative mint, got %v", err)
	}
}

// TestLedgerBurnInsufficient tests over-burn rejection
func TestLedgerBurnInsufficient(t *testing.T) {
	ledger := NewLedger("sch-test")
	if err := ledger.Mint("alice", math.NewInt(10)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := ledger.Burn("alice", math.NewInt(11)); err != ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
	if err := ledger.Burn("bob", math.NewInt(1)); err != ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance for unknown identity, got %v", err)
	}
}

// TestLedgerTransfer tests direct transfers
func TestLedgerTransfer(t *testing.T) {
	ledger := NewLedger("sch-test")
	if err := ledger.Mint("alice", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := ledger.Transfer("alice", "bob", math.NewInt(40)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if !ledger.BalanceOf("alice").Equal(math.NewInt(60)) {
		t.Errorf("expected alice balance 60, got %s", ledger.BalanceOf("alice"))
	}
	if !ledger.BalanceOf("bob").Equal(math.NewInt(40)) {
		t.Errorf("expected bob balance 40, got %s", ledger.BalanceOf("bob"))
	}
	// Supply is untouched by transfers
	if !ledger.TotalSupply.Equal(math.NewInt(100)) {
		t.Errorf("expected total supply 100, got %s", ledger.TotalSupply)
	}

	if err := ledger.Transfer("alice", "alice", math.NewInt(1)); err != ErrSelfTransfer {
		t.Errorf("expected ErrSelfTransfer, got %v", err)
	}
	if err := ledger.Transfer("alice", "", math.NewInt(1)); err != ErrInvalidRecipient {
		t.Errorf("expected ErrInvalidRecipient, got %v", err)
	}
	if err := ledger.Transfer("alice", "bob", math.ZeroInt()); err != ErrZeroAmount {
		t.Errorf("expected ErrZeroAmount, got %v", err)
	}
	if err := ledger.Transfer("alice", "bob", math.NewInt(61)); err != ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

// TestLedgerAllowance tests approve and transfer-from semantics
func TestLedgerAllowance(t *testing.T) {
	ledger := NewLedger("sch-test")
	if err := ledger.Mint("alice", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	// No allowance yet
	if err := ledger.TransferFrom("carol", "alice", "bob", math.NewInt(10)); err != ErrInsufficientAllowance {
		t.Errorf("expected ErrInsufficientAllowance, got %v", err)
	}

	if err := ledger.Approve("alice", "carol", math.NewInt(30)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !ledger.Allowance("alice", "carol").Equal(math.NewInt(30)) {
		t.Errorf("expected allowance 30, got %s", ledger.Allowance("alice", "carol"))
	}

	// Approve sets, it does not add
	if err := ledger.Approve("alice", "carol", math.NewInt(20)); err != nil {
		t.Fatalf("re-approve failed: %v", err)
	}
	if !ledger.Allowance("alice", "carol").Equal(math.NewInt(20)) {
		t.Errorf("expected allowance 20 after re-approve, got %s", ledger.Allowance("alice", "carol"))
	}

	if err := ledger.TransferFrom("carol", "alice", "bob", math.NewInt(15)); err != nil {
		t.Fatalf("transfer-from failed: %v", err)
	}
	if !ledger.Allowance("alice", "carol").Equal(math.NewInt(5)) {
		t.Errorf("expected remaining allowance 5, got %s", ledger.Allowance("alice", "carol"))
	}
	if !ledger.BalanceOf("bob").Equal(math.NewInt(15)) {
		t.Errorf("expected bob balance 15, got %s", ledger.BalanceOf("bob"))
	}

	if err := ledger.TransferFrom("carol", "alice", "bob", math.NewInt(6)); err != ErrInsufficientAllowance {
		t.Errorf("expected ErrInsufficientAllowance, got %v", err)
	}
}

// TestLedgerUnlimitedAllowance tests that the sentinel is never decremented
func TestLedgerUnlimitedAllowance(t *testing.T) {
	ledger := NewLedger("sch-test")
	if err := ledger.Mint("alice", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := ledger.Approve("alice", "carol", UnlimitedAllowance); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if err := ledger.TransferFrom("carol", "alice", "bob", math.NewInt(60)); err != nil {
		t.Fatalf("transfer-from failed: %v", err)
	}
	if !ledger.Allowance("alice", "carol").Equal(UnlimitedAllowance) {
		t.Errorf("unlimited allowance was decremented to %s", ledger.Allowance("alice", "carol"))
	}
}

// TestLedgerHolders tests first-seen holder recording
func TestLedgerHolders(t *testing.T) {
	ledger := NewLedger("sch-test")
	_ = ledger.Mint("alice", math.NewInt(10))
	_ = ledger.Mint("bob", math.NewInt(10))
	_ = ledger.Mint("alice", math.NewInt(10))
	_ = ledger.Transfer("alice", "carol", math.NewInt(5))

	want := []string{"alice", "bob", "carol"}
	if len(ledger.Holders) != len(want) {
		t.Fatalf("expected %d holders, got %d", len(want), len(ledger.Holders))
	}
	for i, h := range want {
		if ledger.Holders[i] != h {
			t.Errorf("expected holder %d to be %s, got %s", i, h, ledger.Holders[i])
		}
	}
}
