package types

import (
	"time"

	"cosmossdk.io/math"
	"github.com/google/uuid"
)

// Module name and store key
const (
	ModuleName = "syndicate"
	StoreKey   = ModuleName
)

// Scheme lifecycle states
const (
	StateOffering     = "offering"
	StateOrdering     = "ordering"
	StateAssetHolding = "asset_holding"
	StateAssetSelling = "asset_selling"
	StateAssetSold    = "asset_sold"
	StateClosed       = "closed"
)

// Construction-time window limits
const (
	MaxOrderWindow    = 90 * 24 * time.Hour
	MaxMaturityWindow = 180 * 24 * time.Hour
)

// transitions is the directed lifecycle graph. Transitions are strictly
// forward; the only early exits are the redemption edges into closed.
var transitions = map[string][]string{
	StateOffering:     {StateOrdering, StateClosed},
	StateOrdering:     {StateAssetHolding, StateClosed},
	StateAssetHolding: {StateAssetSelling},
	StateAssetSelling: {StateAssetSold},
	StateAssetSold:    {StateClosed},
	StateClosed:       {},
}

// Scheme is one deployed pooled-investment vehicle: a subscription pool that
// acquires a single underlying position and later redistributes proceeds.
type Scheme struct {
	SchemeID           string `json:"scheme_id"`
	Creator            string `json:"creator"`
	UnderlyingAssetRef string `json:"underlying_asset_ref"`
	SettlementDenom    string `json:"settlement_denom"`
	State              string `json:"state"`

	// Ordered deadlines, immutable after construction
	OfferClosingTime int64 `json:"offer_closing_time"`
	OrderExpiration  int64 `json:"order_expiration"`
	Maturity         int64 `json:"maturity"`

	// Written at most once each
	PurchasePrice math.Int `json:"purchase_price"`
	SoldPrice     math.Int `json:"sold_price"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
	ClosedAt  int64 `json:"closed_at"`
}

// NewScheme validates the deadline ordering and window limits once; they are
// never re-validated afterwards.
func NewScheme(creator, underlyingAssetRef, settlementDenom string, offerClosingTime, orderExpiration, maturity, now int64) (*Scheme, error) {
	if underlyingAssetRef == "" {
		return nil, ErrInvalidAssetRef
	}
	if settlementDenom == "" {
		return nil, ErrInvalidDenom
	}
	if offerClosingTime > orderExpiration {
		return nil, ErrInvalidDeadlines
	}
	if orderExpiration > offerClosingTime+int64(MaxOrderWindow.Seconds()) {
		return nil, ErrInvalidDeadlines
	}
	if offerClosingTime > maturity {
		return nil, ErrInvalidDeadlines
	}
	if maturity > offerClosingTime+int64(MaxMaturityWindow.Seconds()) {
		return nil, ErrInvalidDeadlines
	}

	return &Scheme{
		SchemeID:           generateID("sch"),
		Creator:            creator,
		UnderlyingAssetRef: underlyingAssetRef,
		SettlementDenom:    settlementDenom,
		State:              StateOffering,
		OfferClosingTime:   offerClosingTime,
		OrderExpiration:    orderExpiration,
		Maturity:           maturity,
		PurchasePrice:      math.ZeroInt(),
		SoldPrice:          math.ZeroInt(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// CanTransition reports whether the lifecycle graph permits moving to the
// given state from the current one.
func (s *Scheme) CanTransition(to string) bool {
	for _, next := range transitions[s.State] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the scheme has reached its read-only condition.
func (s *Scheme) IsTerminal() bool {
	return s.State == StateClosed
}

// Redeemable reports whether the refund engine may run: the position was sold,
// or the relevant deadline lapsed without the position ever being acquired.
// The offering case is bounded by the offer closing time, not the order
// expiration.
func (s *Scheme) Redeemable(now int64) bool {
	switch s.State {
	case StateAssetSold:
		return true
	case StateOrdering:
		return s.OrderExpiration < now
	case StateOffering:
		return s.OfferClosingTime < now
	default:
		return false
	}
}

// generateID generates a unique ID with a prefix
func generateID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
