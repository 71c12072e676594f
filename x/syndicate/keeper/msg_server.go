package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// MsgServer defines the syndicate MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.ZeroInt(), types.ErrZeroAmount.Wrapf("invalid amount %q", s)
	}
	return amount, nil
}

// CreateScheme handles MsgCreateScheme
func (m *MsgServer) CreateScheme(ctx context.Context, msg *types.MsgCreateScheme) (*types.MsgCreateSchemeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	scheme, err := m.keeper.CreateScheme(sdkCtx, msg.Creator, msg.UnderlyingAssetRef, msg.SettlementDenom,
		msg.OfferClosingTime, msg.OrderExpiration, msg.Maturity)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateSchemeResponse{
		SchemeID:       scheme.SchemeID,
		CustodyAddress: CustodyAddress(scheme.SchemeID).String(),
	}, nil
}

// Deposit handles MsgDeposit
func (m *MsgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	ledger, err := m.keeper.Deposit(sdkCtx, msg.Depositor, msg.SchemeID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgDepositResponse{
		Balance:     ledger.BalanceOf(msg.Depositor).String(),
		TotalSupply: ledger.TotalSupply.String(),
	}, nil
}

// Withdraw handles MsgWithdraw. An empty amount withdraws everything.
func (m *MsgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if msg.Amount == "" {
		ledger, withdrawn, err := m.keeper.WithdrawAll(sdkCtx, msg.Caller, msg.SchemeID)
		if err != nil {
			return nil, err
		}
		return &types.MsgWithdrawResponse{
			Withdrawn:   withdrawn.String(),
			Balance:     ledger.BalanceOf(msg.Caller).String(),
			TotalSupply: ledger.TotalSupply.String(),
		}, nil
	}

	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}
	ledger, err := m.keeper.Withdraw(sdkCtx, msg.Caller, msg.SchemeID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawResponse{
		Withdrawn:   amount.String(),
		Balance:     ledger.BalanceOf(msg.Caller).String(),
		TotalSupply: ledger.TotalSupply.String(),
	}, nil
}

// MakeBuyOrder handles MsgMakeBuyOrder
func (m *MsgServer) MakeBuyOrder(ctx context.Context, msg *types.MsgMakeBuyOrder) (*types.MsgMakeBuyOrderResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	scheme, err := m.keeper.MakeBuyOrder(sdkCtx, msg.Caller, msg.SchemeID)
	if err != nil {
		return nil, err
	}
	return &types.MsgMakeBuyOrderResponse{State: scheme.State}, nil
}

// PublishToken handles MsgPublishToken
func (m *MsgServer) PublishToken(ctx context.Context, msg *types.MsgPublishToken) (*types.MsgPublishTokenResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	scheme, filled, err := m.keeper.PublishToken(sdkCtx, msg.Caller, msg.SchemeID)
	if err != nil {
		return nil, err
	}

	resp := &types.MsgPublishTokenResponse{Filled: filled, State: scheme.State}
	if filled {
		resp.PurchasePrice = scheme.PurchasePrice.String()
	}
	return resp, nil
}

// SellAsset handles MsgSellAsset
func (m *MsgServer) SellAsset(ctx context.Context, msg *types.MsgSellAsset) (*types.MsgSellAssetResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	scheme, err := m.keeper.SellAsset(sdkCtx, msg.Caller, msg.SchemeID)
	if err != nil {
		return nil, err
	}
	return &types.MsgSellAssetResponse{State: scheme.State}, nil
}

// UpdateSellOrder handles MsgUpdateSellOrder
func (m *MsgServer) UpdateSellOrder(ctx context.Context, msg *types.MsgUpdateSellOrder) (*types.MsgUpdateSellOrderResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	scheme, filled, err := m.keeper.UpdateSellOrder(sdkCtx, msg.Caller, msg.SchemeID)
	if err != nil {
		return nil, err
	}

	resp := &types.MsgUpdateSellOrderResponse{Filled: filled, State: scheme.State}
	if filled {
		resp.SoldPrice = scheme.SoldPrice.String()
	}
	return resp, nil
}

// Redeem handles MsgRedeem
func (m *MsgServer) Redeem(ctx context.Context, msg *types.MsgRedeem) (*types.MsgRedeemResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	scheme, recipients, paid, err := m.keeper.Redeem(sdkCtx, msg.Caller, msg.SchemeID)
	if err != nil {
		return nil, err
	}

	return &types.MsgRedeemResponse{
		Recipients: int64(recipients),
		PaidOut:    paid.String(),
		State:      scheme.State,
	}, nil
}

// Transfer handles MsgTransfer
func (m *MsgServer) Transfer(ctx context.Context, msg *types.MsgTransfer) (*types.MsgTransferResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	ledger, err := m.keeper.Transfer(sdkCtx, msg.From, msg.SchemeID, msg.To, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgTransferResponse{
		FromBalance: ledger.BalanceOf(msg.From).String(),
		ToBalance:   ledger.BalanceOf(msg.To).String(),
	}, nil
}

// Approve handles MsgApprove
func (m *MsgServer) Approve(ctx context.Context, msg *types.MsgApprove) (*types.MsgApproveResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	ledger, err := m.keeper.Approve(sdkCtx, msg.Owner, msg.SchemeID, msg.Spender, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgApproveResponse{
		Allowance: ledger.Allowance(msg.Owner, msg.Spender).String(),
	}, nil
}

// TransferFrom handles MsgTransferFrom
func (m *MsgServer) TransferFrom(ctx context.Context, msg *types.MsgTransferFrom) (*types.MsgTransferFromResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	ledger, err := m.keeper.TransferFrom(sdkCtx, msg.Spender, msg.SchemeID, msg.From, msg.To, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgTransferFromResponse{
		FromBalance:        ledger.BalanceOf(msg.From).String(),
		ToBalance:          ledger.BalanceOf(msg.To).String(),
		RemainingAllowance: ledger.Allowance(msg.From, msg.Spender).String(),
	}, nil
}
