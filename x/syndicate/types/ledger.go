package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// UnlimitedAllowance is the sentinel approval value that is never decremented
// by TransferFrom.
var UnlimitedAllowance = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))

// Ledger is the balance/allowance bookkeeping for one scheme. The same
// instance plays two roles over the scheme lifecycle: contribution tracking
// while the offer is open, and share ownership once the position is acquired.
// The scheme keeper layers state- and time-dependent guards on top; the ledger
// itself only enforces arithmetic preconditions.
type Ledger struct {
	SchemeID    string              `json:"scheme_id"`
	TotalSupply math.Int            `json:"total_supply"`
	Balances    map[string]math.Int `json:"balances"`
	// Holders records, in first-seen order, every identity that has ever held
	// a nonzero balance. Insertion is membership-checked; redemption iterates
	// this list.
	Holders    []string                       `json:"holders"`
	Allowances map[string]map[string]math.Int `json:"allowances"`
}

// NewLedger creates an empty ledger for a scheme.
func NewLedger(schemeID string) *Ledger {
	return &Ledger{
		SchemeID:    schemeID,
		TotalSupply: math.ZeroInt(),
		Balances:    make(map[string]math.Int),
		Holders:     []string{},
		Allowances:  make(map[string]map[string]math.Int),
	}
}

// BalanceOf returns the balance of an identity, zero if never seen.
func (l *Ledger) BalanceOf(identity string) math.Int {
	if bal, ok := l.Balances[identity]; ok {
		return bal
	}
	return math.ZeroInt()
}

// Allowance returns the approved amount for (owner, spender), zero if unset.
func (l *Ledger) Allowance(owner, spender string) math.Int {
	if spenders, ok := l.Allowances[owner]; ok {
		if amt, ok := spenders[spender]; ok {
			return amt
		}
	}
	return math.ZeroInt()
}

// Mint increases the identity's balance and the total supply.
func (l *Ledger) Mint(identity string, amount math.Int) error {
	if identity == "" {
		return ErrInvalidRecipient
	}
	if !amount.IsPositive() {
		return ErrZeroAmount
	}
	l.Balances[identity] = l.BalanceOf(identity).Add(amount)
	l.TotalSupply = l.TotalSupply.Add(amount)
	l.addHolder(identity)
	return nil
}

// Burn decreases the identity's balance and the total supply.
func (l *Ledger) Burn(identity string, amount math.Int) error {
	bal := l.BalanceOf(identity)
	if bal.LT(amount) {
		return ErrInsufficientBalance
	}
	l.Balances[identity] = bal.Sub(amount)
	l.TotalSupply = l.TotalSupply.Sub(amount)
	return nil
}

// Transfer moves amount from one identity to another. Self-transfers are
// rejected.
func (l *Ledger) Transfer(from, to string, amount math.Int) error {
	if to == "" {
		return ErrInvalidRecipient
	}
	if from == to {
		return ErrSelfTransfer
	}
	if !amount.IsPositive() {
		return ErrZeroAmount
	}
	bal := l.BalanceOf(from)
	if bal.LT(amount) {
		return ErrInsufficientBalance
	}
	l.Balances[from] = bal.Sub(amount)
	l.Balances[to] = l.BalanceOf(to).Add(amount)
	l.addHolder(to)
	return nil
}

// TransferFrom moves amount on behalf of the owner, consuming the spender's
// allowance unless it is the unlimited sentinel.
func (l *Ledger) TransferFrom(spender, from, to string, amount math.Int) error {
	allowed := l.Allowance(from, spender)
	if !allowed.Equal(UnlimitedAllowance) && allowed.LT(amount) {
		return ErrInsufficientAllowance
	}
	if err := l.Transfer(from, to, amount); err != nil {
		return err
	}
	if !allowed.Equal(UnlimitedAllowance) {
		l.Allowances[from][spender] = allowed.Sub(amount)
	}
	return nil
}

// Approve sets (not adds) the spender's allowance.
func (l *Ledger) Approve(owner, spender string, amount math.Int) error {
	if spender == "" {
		return ErrInvalidRecipient
	}
	if _, ok := l.Allowances[owner]; !ok {
		l.Allowances[owner] = make(map[string]math.Int)
	}
	l.Allowances[owner][spender] = amount
	return nil
}

// addHolder records an identity for redemption iteration, once.
func (l *Ledger) addHolder(identity string) {
	for _, h := range l.Holders {
		if h == identity {
			return
		}
	}
	l.Holders = append(l.Holders, identity)
}
