package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrSchemeNotFound        = errors.Register(ModuleName, 1, "scheme not found")
	ErrWrongState            = errors.Register(ModuleName, 2, "operation not permitted in current scheme state")
	ErrWindowClosed          = errors.Register(ModuleName, 3, "operation window has closed")
	ErrWindowNotOpen         = errors.Register(ModuleName, 4, "operation window has not opened")
	ErrZeroAmount            = errors.Register(ModuleName, 5, "amount must be positive")
	ErrInsufficientBalance   = errors.Register(ModuleName, 6, "insufficient ledger balance")
	ErrInsufficientAllowance = errors.Register(ModuleName, 7, "insufficient allowance")
	ErrSelfTransfer          = errors.Register(ModuleName, 8, "transfer to self is not permitted")
	ErrInvalidRecipient      = errors.Register(ModuleName, 9, "invalid transfer recipient")
	ErrInvalidDeadlines      = errors.Register(ModuleName, 10, "scheme deadlines out of order or window exceeded")
	ErrInvalidAssetRef       = errors.Register(ModuleName, 11, "underlying asset reference cannot be empty")
	ErrInvalidDenom          = errors.Register(ModuleName, 12, "settlement denom cannot be empty")
	ErrCustodyShortfall      = errors.Register(ModuleName, 13, "custody balance below amount owed to participants")
	ErrNotRedeemable         = errors.Register(ModuleName, 14, "scheme is not redeemable")
	ErrSettlementTransfer    = errors.Register(ModuleName, 15, "settlement asset transfer failed")
	ErrOrderGateway          = errors.Register(ModuleName, 16, "order gateway call failed")
)
