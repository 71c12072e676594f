package types

// Event types emitted by the syndicate module. State-transition events are
// advisory for external observers and carry no control semantics.
const (
	EventTypeSchemeCreated   = "syndicate_scheme_created"
	EventTypeStateTransition = "syndicate_state_transition"
	EventTypeDeposit         = "syndicate_deposit"
	EventTypeWithdraw        = "syndicate_withdraw"
	EventTypeOrderStatus     = "syndicate_order_status"
	EventTypeTransfer        = "syndicate_transfer"
	EventTypeApproval        = "syndicate_approval"
	EventTypeRedemption      = "syndicate_redemption"
	EventTypeRefundPayout    = "syndicate_refund_payout"
	EventTypeRedeemableLapse = "syndicate_redeemable_lapse"
)

// Event attribute keys
const (
	AttributeKeySchemeID   = "scheme_id"
	AttributeKeyFromState  = "from_state"
	AttributeKeyToState    = "to_state"
	AttributeKeyFrom       = "from"
	AttributeKeyTo         = "to"
	AttributeKeyOwner      = "owner"
	AttributeKeySpender    = "spender"
	AttributeKeyAmount     = "amount"
	AttributeKeySide       = "side"
	AttributeKeyFilled     = "filled"
	AttributeKeyRecipients = "recipients"
	AttributeKeyRemainder  = "remainder"
)
