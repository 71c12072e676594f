package api

import (
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/google/uuid"

	"github.com/openalpha/syndicate/api/types"
)

// MockService is an in-memory SchemeService for development and demos. It
// follows the on-chain lifecycle rules but fills orders on the first poll so
// a full scheme round trip can be exercised without a running node.
type MockService struct {
	mu      sync.Mutex
	schemes map[string]*mockScheme
	onEvent func(types.StreamEvent)
	now     func() time.Time
}

type mockScheme struct {
	view     types.SchemeView
	balances map[string]math.Int
	holders  []string
	supply   math.Int
	custody  math.Int
}

// NewMockService creates an empty mock backend. onEvent, if non-nil, receives
// every lifecycle event for streaming.
func NewMockService(onEvent func(types.StreamEvent)) *MockService {
	return &MockService{
		schemes: make(map[string]*mockScheme),
		onEvent: onEvent,
		now:     time.Now,
	}
}

func (s *MockService) emit(eventType, schemeID string, data interface{}) {
	if s.onEvent == nil {
		return
	}
	s.onEvent(types.StreamEvent{
		Type:      eventType,
		SchemeID:  schemeID,
		Data:      data,
		Timestamp: s.now().Unix(),
	})
}

// CreateScheme creates a new offering scheme
func (s *MockService) CreateScheme(req *types.CreateSchemeRequest) (*types.SchemeView, error) {
	if req.UnderlyingAssetRef == "" || req.SettlementDenom == "" {
		return nil, fmt.Errorf("asset reference and settlement denom are required")
	}
	if req.OfferClosingTime > req.OrderExpiration || req.OfferClosingTime > req.Maturity {
		return nil, fmt.Errorf("deadlines out of order")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Unix()
	scheme := &mockScheme{
		view: types.SchemeView{
			SchemeID:           "sch-" + uuid.NewString(),
			Creator:            req.Creator,
			UnderlyingAssetRef: req.UnderlyingAssetRef,
			SettlementDenom:    req.SettlementDenom,
			State:              "offering",
			OfferClosingTime:   req.OfferClosingTime,
			OrderExpiration:    req.OrderExpiration,
			Maturity:           req.Maturity,
			PurchasePrice:      "0",
			SoldPrice:          "0",
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		balances: make(map[string]math.Int),
		supply:   math.ZeroInt(),
		custody:  math.ZeroInt(),
	}
	s.schemes[scheme.view.SchemeID] = scheme

	view := scheme.snapshot()
	s.emit("scheme_created", view.SchemeID, view)
	return view, nil
}

func (m *mockScheme) snapshot() *types.SchemeView {
	view := m.view
	view.CustodyBalance = m.custody.String()
	return &view
}

func (m *mockScheme) ledgerView() *types.LedgerView {
	balances := make(map[string]string, len(m.balances))
	for addr, bal := range m.balances {
		balances[addr] = bal.String()
	}
	return &types.LedgerView{
		SchemeID:    m.view.SchemeID,
		TotalSupply: m.supply.String(),
		Balances:    balances,
	}
}

// GetScheme returns one scheme
func (s *MockService) GetScheme(schemeID string) (*types.SchemeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, fmt.Errorf("scheme %s not found", schemeID)
	}
	return scheme.snapshot(), nil
}

// ListSchemes returns all schemes, optionally filtered by state
func (s *MockService) ListSchemes(state string) ([]*types.SchemeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]*types.SchemeView, 0, len(s.schemes))
	for _, scheme := range s.schemes {
		if state != "" && scheme.view.State != state {
			continue
		}
		views = append(views, scheme.snapshot())
	}
	return views, nil
}

// GetLedger returns a scheme's ledger
func (s *MockService) GetLedger(schemeID string) (*types.LedgerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, fmt.Errorf("scheme %s not found", schemeID)
	}
	return scheme.ledgerView(), nil
}

// Deposit records a contribution while the offer is open
func (s *MockService) Deposit(schemeID string, req *types.DepositRequest) (*types.LedgerView, error) {
	amount, ok := math.NewIntFromString(req.Amount)
	if !ok || !amount.IsPositive() {
		return nil, fmt.Errorf("invalid amount %q", req.Amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, fmt.Errorf("scheme %s not found", schemeID)
	}
	if scheme.view.State != "offering" || s.now().Unix() >= scheme.view.OfferClosingTime {
		return nil, fmt.Errorf("subscription window is closed")
	}

	bal, exists := scheme.balances[req.Depositor]
	if !exists {
		bal = math.ZeroInt()
		scheme.holders = append(scheme.holders, req.Depositor)
	}
	scheme.balances[req.Depositor] = bal.Add(amount)
	scheme.supply = scheme.supply.Add(amount)
	scheme.custody = scheme.custody.Add(amount)

	s.emit("deposit", schemeID, map[string]string{"depositor": req.Depositor, "amount": amount.String()})
	return scheme.ledgerView(), nil
}

// Withdraw returns a contribution while the offer is open
func (s *MockService) Withdraw(schemeID string, req *types.WithdrawRequest) (*types.LedgerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, fmt.Errorf("scheme %s not found", schemeID)
	}
	if scheme.view.State != "offering" || s.now().Unix() >= scheme.view.OfferClosingTime {
		return nil, fmt.Errorf("subscription window is closed")
	}

	bal, exists := scheme.balances[req.Caller]
	if !exists || !bal.IsPositive() {
		return nil, fmt.Errorf("no balance to withdraw")
	}

	amount := bal
	if req.Amount != "" {
		parsed, ok := math.NewIntFromString(req.Amount)
		if !ok || !parsed.IsPositive() {
			return nil, fmt.Errorf("invalid amount %q", req.Amount)
		}
		if parsed.GT(bal) {
			return nil, fmt.Errorf("insufficient balance")
		}
		amount = parsed
	}

	scheme.balances[req.Caller] = bal.Sub(amount)
	scheme.supply = scheme.supply.Sub(amount)
	scheme.custody = scheme.custody.Sub(amount)

	s.emit("withdraw", schemeID, map[string]string{"caller": req.Caller, "amount": amount.String()})
	return scheme.ledgerView(), nil
}

func (s *MockService) transition(scheme *mockScheme, to string) {
	from := scheme.view.State
	scheme.view.State = to
	scheme.view.UpdatedAt = s.now().Unix()
	s.emit("state_transition", scheme.view.SchemeID, map[string]string{"from": from, "to": to})
}

// MakeBuyOrder places the collective buy order
func (s *MockService) MakeBuyOrder(schemeID, caller string) (*types.OperationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, fmt.Errorf("scheme %s not found", schemeID)
	}
	now := s.now().Unix()
	if scheme.view.State != "offering" || now < scheme.view.OfferClosingTime || now >= scheme.view.OrderExpiration {
		return nil, fmt.Errorf("buy order window is not open")
	}

	s.transition(scheme, "ordering")
	return &types.OperationResponse{SchemeID: schemeID, State: scheme.view.State}, nil
}

// PublishToken polls the buy order. The mock fills on the first poll.
func (s *MockService) PublishToken(schemeID, caller string) (*types.OperationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, fmt.Errorf("scheme %s not found", schemeID)
	}
	if scheme.view.State != "ordering" {
		return nil, fmt.Errorf("no outstanding buy order")
	}

	// Fill: the market takes custody in exchange for the position.
	scheme.view.PurchasePrice = scheme.supply.String()
	scheme.custody = math.ZeroInt()
	s.transition(scheme, "asset_holding")

	filled := true
	return &types.OperationResponse{SchemeID: schemeID, State: scheme.view.State, Filled: &filled}, nil
}

// SellAsset places the sell order at maturity
func (s *MockService) SellAsset(schemeID, caller string) (*types.OperationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, fmt.Errorf("scheme %s not found", schemeID)
	}
	if scheme.view.State != "asset_holding" || s.now().Unix() < scheme.view.Maturity {
		return nil, fmt.Errorf("position is not sellable yet")
	}

	s.transition(scheme, "asset_selling")
	return &types.OperationResponse{SchemeID: schemeID, State: scheme.view.State}, nil
}

// UpdateSellOrder polls the sell order. The mock fills at the purchase price.
func (s *MockService) UpdateSellOrder(schemeID, caller string) (*types.OperationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, fmt.Errorf("scheme %s not found", schemeID)
	}
	if scheme.view.State != "asset_selling" {
		return nil, fmt.Errorf("no outstanding sell order")
	}

	// Fill: proceeds return to custody at cost.
	scheme.custody, _ = math.NewIntFromString(scheme.view.PurchasePrice)
	scheme.view.SoldPrice = scheme.custody.String()
	s.transition(scheme, "asset_sold")

	filled := true
	return &types.OperationResponse{SchemeID: schemeID, State: scheme.view.State, Filled: &filled}, nil
}

// Redeem refunds all holders and closes the scheme
func (s *MockService) Redeem(schemeID, caller string) (*types.OperationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, fmt.Errorf("scheme %s not found", schemeID)
	}

	now := s.now().Unix()
	redeemable := scheme.view.State == "asset_sold" ||
		(scheme.view.State == "offering" && scheme.view.OfferClosingTime < now) ||
		(scheme.view.State == "ordering" && scheme.view.OrderExpiration < now)
	if !redeemable {
		return nil, fmt.Errorf("scheme is not redeemable")
	}

	soldPrice := scheme.custody
	supply := scheme.supply
	if supply.IsPositive() && soldPrice.IsPositive() {
		// Floor pro-rata split; the dust goes to the largest holder.
		largest := ""
		largestBal := math.ZeroInt()
		paid := math.ZeroInt()
		payouts := make(map[string]math.Int, len(scheme.holders))
		for _, holder := range scheme.holders {
			bal := scheme.balances[holder]
			if !bal.IsPositive() {
				continue
			}
			if bal.GT(largestBal) {
				largest = holder
				largestBal = bal
			}
			share := soldPrice.Mul(bal).Quo(supply)
			payouts[holder] = share
			paid = paid.Add(share)
		}
		if remainder := soldPrice.Sub(paid); remainder.IsPositive() && largest != "" {
			payouts[largest] = payouts[largest].Add(remainder)
		}
		s.emit("redemption", schemeID, payouts)
	}

	scheme.balances = make(map[string]math.Int)
	scheme.holders = nil
	scheme.supply = math.ZeroInt()
	scheme.custody = math.ZeroInt()
	s.transition(scheme, "closed")

	return &types.OperationResponse{SchemeID: schemeID, State: scheme.view.State}, nil
}

var _ types.SchemeService = (*MockService)(nil)
