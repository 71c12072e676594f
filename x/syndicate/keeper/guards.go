package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// Guards are explicit precondition checks composed ahead of each operation
// body. A guard failure fails the whole operation with no partial effect.
// All temporal guards sample the block time lazily at call time; nothing
// transitions on its own when a deadline passes.

// guardSubscription gates deposit and withdraw: subscription is open only
// while the scheme is offering and strictly before the offer closing time.
func guardSubscription(ctx sdk.Context, scheme *types.Scheme) error {
	if scheme.State != types.StateOffering {
		return types.ErrWrongState.Wrapf("state %s, need %s", scheme.State, types.StateOffering)
	}
	if ctx.BlockTime().Unix() >= scheme.OfferClosingTime {
		return types.ErrWindowClosed.Wrap("offer closing time reached")
	}
	return nil
}

// guardBuyOrder gates placing the collective buy order: the offer must have
// closed and neither the order expiration nor maturity may have passed.
func guardBuyOrder(ctx sdk.Context, scheme *types.Scheme) error {
	if scheme.State != types.StateOffering {
		return types.ErrWrongState.Wrapf("state %s, need %s", scheme.State, types.StateOffering)
	}
	now := ctx.BlockTime().Unix()
	if now < scheme.OfferClosingTime {
		return types.ErrWindowNotOpen.Wrap("offer is still open")
	}
	if now >= scheme.OrderExpiration {
		return types.ErrWindowClosed.Wrap("order expiration reached")
	}
	if now >= scheme.Maturity {
		return types.ErrWindowClosed.Wrap("maturity reached")
	}
	return nil
}

// guardPublishToken gates polling the buy order for a fill.
func guardPublishToken(ctx sdk.Context, scheme *types.Scheme) error {
	if scheme.State != types.StateOrdering {
		return types.ErrWrongState.Wrapf("state %s, need %s", scheme.State, types.StateOrdering)
	}
	now := ctx.BlockTime().Unix()
	if now >= scheme.OrderExpiration {
		return types.ErrWindowClosed.Wrap("order expiration reached")
	}
	if now >= scheme.Maturity {
		return types.ErrWindowClosed.Wrap("maturity reached")
	}
	return nil
}

// guardSellAsset gates liquidation: only a held position at or past maturity
// may be offered for sale.
func guardSellAsset(ctx sdk.Context, scheme *types.Scheme) error {
	if scheme.State != types.StateAssetHolding {
		return types.ErrWrongState.Wrapf("state %s, need %s", scheme.State, types.StateAssetHolding)
	}
	if ctx.BlockTime().Unix() < scheme.Maturity {
		return types.ErrWindowNotOpen.Wrap("maturity not reached")
	}
	return nil
}

// guardSellUpdate gates polling the sell order for a fill.
func guardSellUpdate(scheme *types.Scheme) error {
	if scheme.State != types.StateAssetSelling {
		return types.ErrWrongState.Wrapf("state %s, need %s", scheme.State, types.StateAssetSelling)
	}
	return nil
}

// guardShareOps gates share-ledger transfer and approve: shares circulate
// only while the position is held and before maturity.
func guardShareOps(ctx sdk.Context, scheme *types.Scheme) error {
	if scheme.State != types.StateAssetHolding {
		return types.ErrWrongState.Wrapf("state %s, need %s", scheme.State, types.StateAssetHolding)
	}
	if ctx.BlockTime().Unix() >= scheme.Maturity {
		return types.ErrWindowClosed.Wrap("maturity reached")
	}
	return nil
}

// guardRedeemable gates the refund engine.
func guardRedeemable(ctx sdk.Context, scheme *types.Scheme) error {
	if !scheme.Redeemable(ctx.BlockTime().Unix()) {
		return types.ErrNotRedeemable.Wrapf("state %s", scheme.State)
	}
	return nil
}
