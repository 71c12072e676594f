package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// OrderGateway is the pluggable strategy for working buy and sell orders for
// a scheme's underlying asset against an external market. A not-filled answer
// is a legitimate business outcome, not a fault; callers re-poll after
// conditions change.
type OrderGateway interface {
	PlaceBuy(ctx sdk.Context, scheme *Scheme) error
	CancelBuy(ctx sdk.Context, scheme *Scheme) error
	BuyFilled(ctx sdk.Context, scheme *Scheme) (bool, error)

	PlaceSell(ctx sdk.Context, scheme *Scheme) error
	CancelSell(ctx sdk.Context, scheme *Scheme) error
	SellFilled(ctx sdk.Context, scheme *Scheme) (bool, error)
}

// NoFillGateway is the reference gateway: placing and cancelling always
// succeed, and no order ever fills. Real matching strategy is deferred to a
// market integration behind the same interface.
type NoFillGateway struct{}

var _ OrderGateway = NoFillGateway{}

func (NoFillGateway) PlaceBuy(ctx sdk.Context, scheme *Scheme) error  { return nil }
func (NoFillGateway) CancelBuy(ctx sdk.Context, scheme *Scheme) error { return nil }
func (NoFillGateway) BuyFilled(ctx sdk.Context, scheme *Scheme) (bool, error) {
	return false, nil
}

func (NoFillGateway) PlaceSell(ctx sdk.Context, scheme *Scheme) error  { return nil }
func (NoFillGateway) CancelSell(ctx sdk.Context, scheme *Scheme) error { return nil }
func (NoFillGateway) SellFilled(ctx sdk.Context, scheme *Scheme) (bool, error) {
	return false, nil
}
