package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// QueryServer defines the syndicate QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Scheme returns a scheme by ID
func (q *QueryServer) Scheme(ctx context.Context, schemeID string) (*types.Scheme, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	scheme := q.keeper.GetScheme(sdkCtx, schemeID)
	if scheme == nil {
		return nil, types.ErrSchemeNotFound
	}
	return scheme, nil
}

// Schemes returns all schemes
func (q *QueryServer) Schemes(ctx context.Context, offset, limit uint64) ([]*types.Scheme, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allSchemes := q.keeper.GetAllSchemes(sdkCtx)

	total := uint64(len(allSchemes))

	// Apply pagination
	if offset >= total {
		return []*types.Scheme{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allSchemes[offset:end], total, nil
}

// SchemesByState returns schemes filtered by lifecycle state
func (q *QueryServer) SchemesByState(ctx context.Context, state string) ([]*types.Scheme, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	var schemes []*types.Scheme
	for _, scheme := range q.keeper.GetAllSchemes(sdkCtx) {
		if scheme.State == state {
			schemes = append(schemes, scheme)
		}
	}
	return schemes, nil
}

// Ledger returns a scheme's contribution or share ledger
func (q *QueryServer) Ledger(ctx context.Context, schemeID string) (*types.Ledger, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	ledger := q.keeper.GetLedger(sdkCtx, schemeID)
	if ledger == nil {
		return nil, types.ErrSchemeNotFound
	}
	return ledger, nil
}

// Balance returns a holder's live balance and the live total supply. Both are
// zero outside the asset_holding state.
func (q *QueryServer) Balance(ctx context.Context, schemeID, holder string) (math.Int, math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if q.keeper.GetScheme(sdkCtx, schemeID) == nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrSchemeNotFound
	}
	return q.keeper.BalanceOf(sdkCtx, schemeID, holder), q.keeper.TotalSupply(sdkCtx, schemeID), nil
}

// Allowance returns the live allowance from owner to spender
func (q *QueryServer) Allowance(ctx context.Context, schemeID, owner, spender string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if q.keeper.GetScheme(sdkCtx, schemeID) == nil {
		return math.ZeroInt(), types.ErrSchemeNotFound
	}
	return q.keeper.GetAllowance(sdkCtx, schemeID, owner, spender), nil
}

// Custody returns the scheme's custody address and settlement balance
func (q *QueryServer) Custody(ctx context.Context, schemeID string) (string, math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	scheme := q.keeper.GetScheme(sdkCtx, schemeID)
	if scheme == nil {
		return "", math.ZeroInt(), types.ErrSchemeNotFound
	}
	return CustodyAddress(schemeID).String(), q.keeper.CustodyBalance(sdkCtx, scheme), nil
}
