package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// Redeem runs the refund engine for a redeemable scheme and closes it. Before
// the asset was bought the refund is one-for-one against recorded
// contributions; after the sale it is a floor pro-rata split of the proceeds
// with the division dust granted to the largest holder. The whole run is one
// transaction: any failed payout aborts every payout.
func (k *Keeper) Redeem(ctx sdk.Context, caller, schemeID string) (*types.Scheme, int, math.Int, error) {
	scheme := k.GetScheme(ctx, schemeID)
	if scheme == nil {
		return nil, 0, math.ZeroInt(), types.ErrSchemeNotFound
	}
	if err := guardRedeemable(ctx, scheme); err != nil {
		return nil, 0, math.ZeroInt(), err
	}

	// A lapsed buy order is withdrawn from the venue before funds move back.
	if scheme.State == types.StateOrdering {
		if err := k.gateway.CancelBuy(ctx, scheme); err != nil {
			return nil, 0, math.ZeroInt(), types.ErrOrderGateway.Wrap(err.Error())
		}
	}

	ledger := k.GetLedger(ctx, schemeID)
	preSupply := ledger.TotalSupply

	var recipients int
	var remainder, paid math.Int
	var err error
	if scheme.State == types.StateAssetSold {
		recipients, paid, remainder, err = k.postSaleRefund(ctx, scheme, ledger)
	} else {
		remainder = math.ZeroInt()
		recipients, err = k.prePurchaseRefund(ctx, scheme, ledger)
		paid = preSupply
	}
	if err != nil {
		return nil, 0, math.ZeroInt(), err
	}
	k.SetLedger(ctx, ledger)

	if err := k.advanceState(ctx, scheme, types.StateClosed); err != nil {
		return nil, 0, math.ZeroInt(), err
	}
	k.SetScheme(ctx, scheme)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRedemption,
			sdk.NewAttribute(types.AttributeKeySchemeID, schemeID),
			sdk.NewAttribute(types.AttributeKeyRecipients, strconv.Itoa(recipients)),
			sdk.NewAttribute(types.AttributeKeyRemainder, remainder.String()),
		),
	)

	k.logger.Info("Scheme redeemed and closed",
		"scheme_id", schemeID,
		"caller", caller,
		"recipients", recipients,
		"paid_out", paid.String(),
		"remainder", remainder.String(),
	)

	return scheme, recipients, paid, nil
}

// prePurchaseRefund returns every contribution one-for-one. Nothing left the
// custody account before the purchase, so custody must cover the full supply.
func (k *Keeper) prePurchaseRefund(ctx sdk.Context, scheme *types.Scheme, ledger *types.Ledger) (int, error) {
	if !ledger.TotalSupply.IsPositive() {
		return 0, nil
	}
	if k.CustodyBalance(ctx, scheme).LT(ledger.TotalSupply) {
		return 0, types.ErrCustodyShortfall.Wrapf("custody below recorded contributions of %s", ledger.TotalSupply.String())
	}

	recipients := 0
	for _, holder := range ledger.Holders {
		balance := ledger.BalanceOf(holder)
		if !balance.IsPositive() {
			continue
		}
		if err := k.payout(ctx, scheme, holder, balance); err != nil {
			return 0, err
		}
		if err := ledger.Burn(holder, balance); err != nil {
			return 0, err
		}
		recipients++
	}
	return recipients, nil
}

// postSaleRefund splits the sale proceeds pro rata with floor division.
// Custody must cover the recorded proceeds before anything moves. After the
// floor payouts, whatever custody still holds, the flooring dust plus any
// settlement funds that landed after the fill, goes to the largest holder,
// first seen winning a tie, so custody drains to exactly zero.
func (k *Keeper) postSaleRefund(ctx sdk.Context, scheme *types.Scheme, ledger *types.Ledger) (int, math.Int, math.Int, error) {
	supply := ledger.TotalSupply
	if !supply.IsPositive() || !scheme.SoldPrice.IsPositive() {
		return 0, math.ZeroInt(), math.ZeroInt(), nil
	}
	if k.CustodyBalance(ctx, scheme).LT(scheme.SoldPrice) {
		return 0, math.ZeroInt(), math.ZeroInt(), types.ErrCustodyShortfall.Wrapf("custody below recorded proceeds of %s", scheme.SoldPrice.String())
	}

	// Largest holder is fixed before any burn mutates balances.
	largest := ""
	largestBalance := math.ZeroInt()
	for _, holder := range ledger.Holders {
		balance := ledger.BalanceOf(holder)
		if balance.GT(largestBalance) {
			largest = holder
			largestBalance = balance
		}
	}

	recipients := 0
	paid := math.ZeroInt()
	for _, holder := range ledger.Holders {
		balance := ledger.BalanceOf(holder)
		if !balance.IsPositive() {
			continue
		}
		share := scheme.SoldPrice.Mul(balance).Quo(supply)
		if share.IsPositive() {
			if err := k.payout(ctx, scheme, holder, share); err != nil {
				return 0, math.ZeroInt(), math.ZeroInt(), err
			}
			paid = paid.Add(share)
		}
		if err := ledger.Burn(holder, balance); err != nil {
			return 0, math.ZeroInt(), math.ZeroInt(), err
		}
		recipients++
	}

	remainder := k.CustodyBalance(ctx, scheme)
	if remainder.IsPositive() && largest != "" {
		if err := k.payout(ctx, scheme, largest, remainder); err != nil {
			return 0, math.ZeroInt(), math.ZeroInt(), err
		}
		paid = paid.Add(remainder)
	}
	return recipients, paid, remainder, nil
}

// payout moves settlement funds from custody to a holder.
func (k *Keeper) payout(ctx sdk.Context, scheme *types.Scheme, holder string, amount math.Int) error {
	holderAddr, err := sdk.AccAddressFromBech32(holder)
	if err != nil {
		return types.ErrInvalidRecipient.Wrap(err.Error())
	}
	coins := sdk.NewCoins(sdk.NewCoin(scheme.SettlementDenom, amount))
	if err := k.bankKeeper.SendCoins(ctx, CustodyAddress(scheme.SchemeID), holderAddr, coins); err != nil {
		return types.ErrSettlementTransfer.Wrap(err.Error())
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRefundPayout,
			sdk.NewAttribute(types.AttributeKeySchemeID, scheme.SchemeID),
			sdk.NewAttribute(types.AttributeKeyTo, holder),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}
