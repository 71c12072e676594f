package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// MakeBuyOrder places the collective buy order for the underlying asset once
// the offer has closed, moving the scheme into the ordering state.
func (k *Keeper) MakeBuyOrder(ctx sdk.Context, caller, schemeID string) (*types.Scheme, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, types.ErrSchemeNotFound
	}
	if err := guardBuyOrder(ctx, scheme); err != nil {
		return nil, err
	}

	if err := k.gateway.PlaceBuy(ctx, scheme); err != nil {
		return nil, types.ErrOrderGateway.Wrap(err.Error())
	}
	if err := k.advanceState(ctx, scheme, types.StateOrdering); err != nil {
		return nil, err
	}
	k.SetScheme(ctx, scheme)

	k.logger.Info("Buy order placed",
		"scheme_id", schemeID,
		"caller", caller,
		"asset_ref", scheme.UnderlyingAssetRef,
	)

	return scheme, nil
}

// PublishToken polls the outstanding buy order. On a fill the contribution
// ledger becomes the share ledger, the purchase price is recorded, and the
// scheme moves to asset_holding. A not-filled answer leaves the scheme
// untouched and is reported as a normal outcome, not an error.
func (k *Keeper) PublishToken(ctx sdk.Context, caller, schemeID string) (*types.Scheme, bool, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, false, types.ErrSchemeNotFound
	}
	if err := guardPublishToken(ctx, scheme); err != nil {
		return nil, false, err
	}

	filled, err := k.gateway.BuyFilled(ctx, scheme)
	if err != nil {
		return nil, false, types.ErrOrderGateway.Wrap(err.Error())
	}
	if !filled {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeOrderStatus,
				sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
				sdk.NewAttribute(types.AttributeKeySide, "buy"),
				sdk.NewAttribute(types.AttributeKeyFilled, strconv.FormatBool(false)),
			),
		)
		return scheme, false, nil
	}

	// The position cost the pooled contributions in full; the market consumed
	// custody when the order filled.
	ledger := k.GetLedger(ctx, schemeID)
	scheme.PurchasePrice = ledger.TotalSupply
	if err := k.advanceState(ctx, scheme, types.StateAssetHolding); err != nil {
		return nil, false, err
	}
	k.SetScheme(ctx, scheme)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOrderStatus,
			sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
			sdk.NewAttribute(types.AttributeKeySide, "buy"),
			sdk.NewAttribute(types.AttributeKeyFilled, strconv.FormatBool(true)),
			sdk.NewAttribute(types.AttributeKeyAmount, scheme.PurchasePrice.String()),
		),
	)

	k.logger.Info("Buy order filled, shares published",
		"scheme_id", schemeID,
		"caller", caller,
		"purchase_price", scheme.PurchasePrice.String(),
	)

	return scheme, true, nil
}

// SellAsset places the sell order for the held position at or past maturity,
// moving the scheme into the asset_selling state.
func (k *Keeper) SellAsset(ctx sdk.Context, caller, schemeID string) (*types.Scheme, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, types.ErrSchemeNotFound
	}
	if err := guardSellAsset(ctx, scheme); err != nil {
		return nil, err
	}

	if err := k.gateway.PlaceSell(ctx, scheme); err != nil {
		return nil, types.ErrOrderGateway.Wrap(err.Error())
	}
	if err := k.advanceState(ctx, scheme, types.StateAssetSelling); err != nil {
		return nil, err
	}
	k.SetScheme(ctx, scheme)

	k.logger.Info("Sell order placed",
		"scheme_id", schemeID,
		"caller", caller,
		"asset_ref", scheme.UnderlyingAssetRef,
	)

	return scheme, nil
}

// UpdateSellOrder polls the outstanding sell order. On a fill the sale
// proceeds sit in custody; their total is recorded once as the sold price and
// the scheme moves to asset_sold. A not-filled answer is a normal outcome.
func (k *Keeper) UpdateSellOrder(ctx sdk.Context, caller, schemeID string) (*types.Scheme, bool, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, false, types.ErrSchemeNotFound
	}
	if err := guardSellUpdate(scheme); err != nil {
		return nil, false, err
	}

	filled, err := k.gateway.SellFilled(ctx, scheme)
	if err != nil {
		return nil, false, types.ErrOrderGateway.Wrap(err.Error())
	}
	if !filled {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeOrderStatus,
				sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
				sdk.NewAttribute(types.AttributeKeySide, "sell"),
				sdk.NewAttribute(types.AttributeKeyFilled, strconv.FormatBool(false)),
			),
		)
		return scheme, false, nil
	}

	scheme.SoldPrice = k.CustodyBalance(ctx, scheme)
	if err := k.advanceState(ctx, scheme, types.StateAssetSold); err != nil {
		return nil, false, err
	}
	k.SetScheme(ctx, scheme)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOrderStatus,
			sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
			sdk.NewAttribute(types.AttributeKeySide, "sell"),
			sdk.NewAttribute(types.AttributeKeyFilled, strconv.FormatBool(true)),
			sdk.NewAttribute(types.AttributeKeyAmount, scheme.SoldPrice.String()),
		),
	)

	k.logger.Info("Sell order filled",
		"scheme_id", schemeID,
		"caller", caller,
		"sold_price", scheme.SoldPrice.String(),
	)

	return scheme, true, nil
}
