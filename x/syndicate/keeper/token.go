package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// Transfer moves share-ledger balance from the caller to another holder.
// Shares circulate only while the scheme holds the asset and before maturity.
func (k *Keeper) Transfer(ctx sdk.Context, from, schemeID, to string, amount math.Int) (*types.Ledger, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, types.ErrSchemeNotFound
	}
	if err := guardShareOps(ctx, scheme); err != nil {
		return nil, err
	}

	ledger := k.GetLedger(ctx, schemeID)
	if err := ledger.Transfer(from, to, amount); err != nil {
		return nil, err
	}
	k.SetLedger(ctx, ledger)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
			sdk.NewAttribute(types.AttributeKeyFrom, from),
			sdk.NewAttribute(types.AttributeKeyTo, to),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	k.logger.Info("Shares transferred",
		"scheme_id", schemeID,
		"from", from,
		"to", to,
		"amount", amount.String(),
	)

	return ledger, nil
}

// Approve sets an absolute spending allowance from the owner to the spender.
func (k *Keeper) Approve(ctx sdk.Context, owner, schemeID, spender string, amount math.Int) (*types.Ledger, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, types.ErrSchemeNotFound
	}
	if err := guardShareOps(ctx, scheme); err != nil {
		return nil, err
	}

	ledger := k.GetLedger(ctx, schemeID)
	if err := ledger.Approve(owner, spender, amount); err != nil {
		return nil, err
	}
	k.SetLedger(ctx, ledger)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApproval,
			sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
			sdk.NewAttribute(types.AttributeKeyOwner, owner),
			sdk.NewAttribute(types.AttributeKeySpender, spender),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	return ledger, nil
}

// TransferFrom moves shares on behalf of an owner within a previously granted
// allowance.
func (k *Keeper) TransferFrom(ctx sdk.Context, spender, schemeID, from, to string, amount math.Int) (*types.Ledger, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, types.ErrSchemeNotFound
	}
	if err := guardShareOps(ctx, scheme); err != nil {
		return nil, err
	}

	ledger := k.GetLedger(ctx, schemeID)
	if err := ledger.TransferFrom(spender, from, to, amount); err != nil {
		return nil, err
	}
	k.SetLedger(ctx, ledger)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
			sdk.NewAttribute(types.AttributeKeyFrom, from),
			sdk.NewAttribute(types.AttributeKeyTo, to),
			sdk.NewAttribute(types.AttributeKeySpender, spender),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	k.logger.Info("Shares transferred by spender",
		"scheme_id", schemeID,
		"spender", spender,
		"from", from,
		"to", to,
		"amount", amount.String(),
	)

	return ledger, nil
}

// TotalSupply reports the share supply. The views key on role alone: the
// ledger speaks for share ownership only while the scheme holds the asset, so
// any other state answers zero. Unlike transfer and approve, the views carry
// no maturity cutoff; shares remain readable between maturity and the sell.
func (k *Keeper) TotalSupply(ctx sdk.Context, schemeID string) math.Int {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil || scheme.State != types.StateAssetHolding {
		return math.ZeroInt()
	}
	ledger := k.GetLedger(ctx, schemeID)
	if ledger == nil {
		return math.ZeroInt()
	}
	return ledger.TotalSupply
}

// BalanceOf reports a holder's share balance, zero outside asset_holding.
func (k *Keeper) BalanceOf(ctx sdk.Context, schemeID, holder string) math.Int {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil || scheme.State != types.StateAssetHolding {
		return math.ZeroInt()
	}
	ledger := k.GetLedger(ctx, schemeID)
	if ledger == nil {
		return math.ZeroInt()
	}
	return ledger.BalanceOf(holder)
}

// GetAllowance reports the allowance from owner to spender, zero outside
// asset_holding.
func (k *Keeper) GetAllowance(ctx sdk.Context, schemeID, owner, spender string) math.Int {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil || scheme.State != types.StateAssetHolding {
		return math.ZeroInt()
	}
	ledger := k.GetLedger(ctx, schemeID)
	if ledger == nil {
		return math.ZeroInt()
	}
	return ledger.Allowance(owner, spender)
}
