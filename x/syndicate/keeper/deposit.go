package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// Deposit pulls amount of the settlement asset from the depositor into the
// scheme's custody and mints the matching contribution entry. Ledger state is
// written before the bank call returns control to any other account.
func (k *Keeper) Deposit(ctx sdk.Context, depositor, schemeID string, amount math.Int) (*types.Ledger, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, types.ErrSchemeNotFound
	}
	if err := guardSubscription(ctx, scheme); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, types.ErrZeroAmount
	}

	ledger := k.GetLedger(ctx, schemeID)
	if err := ledger.Mint(depositor, amount); err != nil {
		return nil, err
	}
	k.SetLedger(ctx, ledger)

	depositorAddr, err := sdk.AccAddressFromBech32(depositor)
	if err != nil {
		return nil, err
	}
	coins := sdk.NewCoins(sdk.NewCoin(scheme.SettlementDenom, amount))
	if err := k.bankKeeper.SendCoins(ctx, depositorAddr, CustodyAddress(schemeID), coins); err != nil {
		return nil, types.ErrSettlementTransfer.Wrap(err.Error())
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeposit,
			sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
			sdk.NewAttribute(types.AttributeKeyFrom, depositor),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	k.logger.Info("Deposit processed",
		"scheme_id", schemeID,
		"depositor", depositor,
		"amount", amount.String(),
		"total_supply", ledger.TotalSupply.String(),
	)

	return ledger, nil
}

// Withdraw returns amount of the settlement asset from custody to the caller
// and burns the matching contribution entry.
func (k *Keeper) Withdraw(ctx sdk.Context, caller, schemeID string, amount math.Int) (*types.Ledger, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, types.ErrSchemeNotFound
	}
	if err := guardSubscription(ctx, scheme); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, types.ErrZeroAmount
	}

	ledger := k.GetLedger(ctx, schemeID)
	if err := ledger.Burn(caller, amount); err != nil {
		return nil, err
	}
	k.SetLedger(ctx, ledger)

	callerAddr, err := sdk.AccAddressFromBech32(caller)
	if err != nil {
		return nil, err
	}
	coins := sdk.NewCoins(sdk.NewCoin(scheme.SettlementDenom, amount))
	if err := k.bankKeeper.SendCoins(ctx, CustodyAddress(schemeID), callerAddr, coins); err != nil {
		return nil, types.ErrSettlementTransfer.Wrap(err.Error())
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdraw,
			sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
			sdk.NewAttribute(types.AttributeKeyTo, caller),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	k.logger.Info("Withdrawal processed",
		"scheme_id", schemeID,
		"caller", caller,
		"amount", amount.String(),
		"total_supply", ledger.TotalSupply.String(),
	)

	return ledger, nil
}

// WithdrawAll withdraws the caller's entire contribution balance. The state
// and window guards run before the balance is consulted so a closed window
// reports as such regardless of the caller's holdings.
func (k *Keeper) WithdrawAll(ctx sdk.Context, caller, schemeID string) (*types.Ledger, math.Int, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, math.ZeroInt(), types.ErrSchemeNotFound
	}
	if err := guardSubscription(ctx, scheme); err != nil {
		return nil, math.ZeroInt(), err
	}

	balance := k.GetLedger(ctx, schemeID).BalanceOf(caller)
	if !balance.IsPositive() {
		return nil, math.ZeroInt(), types.ErrInsufficientBalance
	}
	ledger, err := k.Withdraw(ctx, caller, schemeID, balance)
	if err != nil {
		return nil, math.ZeroInt(), err
	}
	return ledger, balance, nil
}
