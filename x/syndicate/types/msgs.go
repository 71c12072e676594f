package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreateScheme    = "create_scheme"
	TypeMsgDeposit         = "deposit"
	TypeMsgWithdraw        = "withdraw"
	TypeMsgMakeBuyOrder    = "make_buy_order"
	TypeMsgPublishToken    = "publish_token"
	TypeMsgSellAsset       = "sell_asset"
	TypeMsgUpdateSellOrder = "update_sell_order"
	TypeMsgRedeem          = "redeem"
	TypeMsgTransfer        = "transfer"
	TypeMsgApprove         = "approve"
	TypeMsgTransferFrom    = "transfer_from"
)

// MsgCreateScheme defines the CreateScheme message
type MsgCreateScheme struct {
	Creator            string `json:"creator"`
	UnderlyingAssetRef string `json:"underlying_asset_ref"`
	SettlementDenom    string `json:"settlement_denom"`
	OfferClosingTime   int64  `json:"offer_closing_time"`
	OrderExpiration    int64  `json:"order_expiration"`
	Maturity           int64  `json:"maturity"`
}

// Route implements sdk.Msg
func (msg MsgCreateScheme) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateScheme) Type() string { return TypeMsgCreateScheme }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateScheme) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	if msg.UnderlyingAssetRef == "" {
		return ErrInvalidAssetRef
	}
	if msg.SettlementDenom == "" {
		return ErrInvalidDenom
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateScheme) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateScheme) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateScheme) Reset() { *msg = MsgCreateScheme{} }

// String implements proto.Message
func (msg MsgCreateScheme) String() string {
	return fmt.Sprintf("MsgCreateScheme{Creator: %s, AssetRef: %s}", msg.Creator, msg.UnderlyingAssetRef)
}

// MsgCreateSchemeResponse defines the CreateScheme response
type MsgCreateSchemeResponse struct {
	SchemeID       string `json:"scheme_id"`
	CustodyAddress string `json:"custody_address"`
}

// MsgDeposit defines the Deposit message
type MsgDeposit struct {
	Depositor string `json:"depositor"`
	SchemeID  string `json:"scheme_id"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgDeposit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDeposit) Type() string { return TypeMsgDeposit }

// ValidateBasic implements sdk.Msg
func (msg MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDeposit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDeposit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDeposit) Reset() { *msg = MsgDeposit{} }

// String implements proto.Message
func (msg MsgDeposit) String() string {
	return fmt.Sprintf("MsgDeposit{Depositor: %s, SchemeID: %s, Amount: %s}", msg.Depositor, msg.SchemeID, msg.Amount)
}

// MsgDepositResponse defines the Deposit response
type MsgDepositResponse struct {
	Balance     string `json:"balance"`
	TotalSupply string `json:"total_supply"`
}

// MsgWithdraw defines the Withdraw message. An empty amount withdraws the
// caller's entire balance.
type MsgWithdraw struct {
	Caller   string `json:"caller"`
	SchemeID string `json:"scheme_id"`
	Amount   string `json:"amount,omitempty"`
}

// Route implements sdk.Msg
func (msg MsgWithdraw) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdraw) Type() string { return TypeMsgWithdraw }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdraw) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdraw) Reset() { *msg = MsgWithdraw{} }

// String implements proto.Message
func (msg MsgWithdraw) String() string {
	return fmt.Sprintf("MsgWithdraw{Caller: %s, SchemeID: %s, Amount: %s}", msg.Caller, msg.SchemeID, msg.Amount)
}

// MsgWithdrawResponse defines the Withdraw response
type MsgWithdrawResponse struct {
	Withdrawn   string `json:"withdrawn"`
	Balance     string `json:"balance"`
	TotalSupply string `json:"total_supply"`
}

// MsgMakeBuyOrder defines the MakeBuyOrder message
type MsgMakeBuyOrder struct {
	Caller   string `json:"caller"`
	SchemeID string `json:"scheme_id"`
}

// Route implements sdk.Msg
func (msg MsgMakeBuyOrder) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgMakeBuyOrder) Type() string { return TypeMsgMakeBuyOrder }

// ValidateBasic implements sdk.Msg
func (msg MsgMakeBuyOrder) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgMakeBuyOrder) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgMakeBuyOrder) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgMakeBuyOrder) Reset() { *msg = MsgMakeBuyOrder{} }

// String implements proto.Message
func (msg MsgMakeBuyOrder) String() string {
	return fmt.Sprintf("MsgMakeBuyOrder{Caller: %s, SchemeID: %s}", msg.Caller, msg.SchemeID)
}

// MsgMakeBuyOrderResponse defines the MakeBuyOrder response
type MsgMakeBuyOrderResponse struct {
	State string `json:"state"`
}

// MsgPublishToken defines the PublishToken message, which polls the buy order
// and promotes the contribution ledger to a share ledger on fill.
type MsgPublishToken struct {
	Caller   string `json:"caller"`
	SchemeID string `json:"scheme_id"`
}

// Route implements sdk.Msg
func (msg MsgPublishToken) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgPublishToken) Type() string { return TypeMsgPublishToken }

// ValidateBasic implements sdk.Msg
func (msg MsgPublishToken) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgPublishToken) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgPublishToken) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgPublishToken) Reset() { *msg = MsgPublishToken{} }

// String implements proto.Message
func (msg MsgPublishToken) String() string {
	return fmt.Sprintf("MsgPublishToken{Caller: %s, SchemeID: %s}", msg.Caller, msg.SchemeID)
}

// MsgPublishTokenResponse defines the PublishToken response
type MsgPublishTokenResponse struct {
	Filled        bool   `json:"filled"`
	State         string `json:"state"`
	PurchasePrice string `json:"purchase_price,omitempty"`
}

// MsgSellAsset defines the SellAsset message
type MsgSellAsset struct {
	Caller   string `json:"caller"`
	SchemeID string `json:"scheme_id"`
}

// Route implements sdk.Msg
func (msg MsgSellAsset) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSellAsset) Type() string { return TypeMsgSellAsset }

// ValidateBasic implements sdk.Msg
func (msg MsgSellAsset) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSellAsset) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSellAsset) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSellAsset) Reset() { *msg = MsgSellAsset{} }

// String implements proto.Message
func (msg MsgSellAsset) String() string {
	return fmt.Sprintf("MsgSellAsset{Caller: %s, SchemeID: %s}", msg.Caller, msg.SchemeID)
}

// MsgSellAssetResponse defines the SellAsset response
type MsgSellAssetResponse struct {
	State string `json:"state"`
}

// MsgUpdateSellOrder defines the UpdateSellOrder message, which polls the
// sell order and records the sale proceeds on fill.
type MsgUpdateSellOrder struct {
	Caller   string `json:"caller"`
	SchemeID string `json:"scheme_id"`
}

// Route implements sdk.Msg
func (msg MsgUpdateSellOrder) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpdateSellOrder) Type() string { return TypeMsgUpdateSellOrder }

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateSellOrder) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgUpdateSellOrder) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUpdateSellOrder) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateSellOrder) Reset() { *msg = MsgUpdateSellOrder{} }

// String implements proto.Message
func (msg MsgUpdateSellOrder) String() string {
	return fmt.Sprintf("MsgUpdateSellOrder{Caller: %s, SchemeID: %s}", msg.Caller, msg.SchemeID)
}

// MsgUpdateSellOrderResponse defines the UpdateSellOrder response
type MsgUpdateSellOrderResponse struct {
	Filled    bool   `json:"filled"`
	State     string `json:"state"`
	SoldPrice string `json:"sold_price,omitempty"`
}

// MsgRedeem defines the Redeem message
type MsgRedeem struct {
	Caller   string `json:"caller"`
	SchemeID string `json:"scheme_id"`
}

// Route implements sdk.Msg
func (msg MsgRedeem) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRedeem) Type() string { return TypeMsgRedeem }

// ValidateBasic implements sdk.Msg
func (msg MsgRedeem) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRedeem) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRedeem) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRedeem) Reset() { *msg = MsgRedeem{} }

// String implements proto.Message
func (msg MsgRedeem) String() string {
	return fmt.Sprintf("MsgRedeem{Caller: %s, SchemeID: %s}", msg.Caller, msg.SchemeID)
}

// MsgRedeemResponse defines the Redeem response
type MsgRedeemResponse struct {
	Recipients int64  `json:"recipients"`
	PaidOut    string `json:"paid_out"`
	State      string `json:"state"`
}

// MsgTransfer defines the share Transfer message
type MsgTransfer struct {
	From     string `json:"from"`
	To       string `json:"to"`
	SchemeID string `json:"scheme_id"`
	Amount   string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransfer) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransfer) Type() string { return TypeMsgTransfer }

// ValidateBasic implements sdk.Msg
func (msg MsgTransfer) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.To); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransfer) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.From)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransfer) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransfer) Reset() { *msg = MsgTransfer{} }

// String implements proto.Message
func (msg MsgTransfer) String() string {
	return fmt.Sprintf("MsgTransfer{From: %s, To: %s, Amount: %s}", msg.From, msg.To, msg.Amount)
}

// MsgTransferResponse defines the Transfer response
type MsgTransferResponse struct {
	FromBalance string `json:"from_balance"`
	ToBalance   string `json:"to_balance"`
}

// MsgApprove defines the share Approve message
type MsgApprove struct {
	Owner    string `json:"owner"`
	Spender  string `json:"spender"`
	SchemeID string `json:"scheme_id"`
	Amount   string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgApprove) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgApprove) Type() string { return TypeMsgApprove }

// ValidateBasic implements sdk.Msg
func (msg MsgApprove) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Spender); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgApprove) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgApprove) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgApprove) Reset() { *msg = MsgApprove{} }

// String implements proto.Message
func (msg MsgApprove) String() string {
	return fmt.Sprintf("MsgApprove{Owner: %s, Spender: %s, Amount: %s}", msg.Owner, msg.Spender, msg.Amount)
}

// MsgApproveResponse defines the Approve response
type MsgApproveResponse struct {
	Allowance string `json:"allowance"`
}

// MsgTransferFrom defines the share TransferFrom message
type MsgTransferFrom struct {
	Spender  string `json:"spender"`
	From     string `json:"from"`
	To       string `json:"to"`
	SchemeID string `json:"scheme_id"`
	Amount   string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransferFrom) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferFrom) Type() string { return TypeMsgTransferFrom }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferFrom) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Spender); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.To); err != nil {
		return err
	}
	if msg.SchemeID == "" {
		return ErrSchemeNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferFrom) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Spender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferFrom) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferFrom) Reset() { *msg = MsgTransferFrom{} }

// String implements proto.Message
func (msg MsgTransferFrom) String() string {
	return fmt.Sprintf("MsgTransferFrom{Spender: %s, From: %s, To: %s, Amount: %s}", msg.Spender, msg.From, msg.To, msg.Amount)
}

// MsgTransferFromResponse defines the TransferFrom response
type MsgTransferFromResponse struct {
	FromBalance        string `json:"from_balance"`
	ToBalance          string `json:"to_balance"`
	RemainingAllowance string `json:"remaining_allowance"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreateScheme{}
	_ sdk.Msg = &MsgDeposit{}
	_ sdk.Msg = &MsgWithdraw{}
	_ sdk.Msg = &MsgMakeBuyOrder{}
	_ sdk.Msg = &MsgPublishToken{}
	_ sdk.Msg = &MsgSellAsset{}
	_ sdk.Msg = &MsgUpdateSellOrder{}
	_ sdk.Msg = &MsgRedeem{}
	_ sdk.Msg = &MsgTransfer{}
	_ sdk.Msg = &MsgApprove{}
	_ sdk.Msg = &MsgTransferFrom{}
)
