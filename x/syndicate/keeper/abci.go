package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// EndBlocker surveys open schemes for lapsed windows. Lifecycle moves only
// through explicit operations, so this is advisory: it flags schemes whose
// deadlines have passed so operators and indexers can prompt a redemption.
func (k *Keeper) EndBlocker(ctx sdk.Context) {
	now := ctx.BlockTime().Unix()

	for _, scheme := range k.GetAllSchemes(ctx) {
		if scheme.IsTerminal() {
			continue
		}
		if !scheme.Redeemable(now) {
			continue
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRedeemableLapse,
				sdk.NewAttribute(types.AttributeKeySchemeID, scheme.SchemeID),
				sdk.NewAttribute(types.AttributeKeyFromState, scheme.State),
			),
		)

		k.logger.Debug("Scheme is redeemable",
			"scheme_id", scheme.SchemeID,
			"state", scheme.State,
			"block_time", now,
		)
	}
}
