package types

// SchemeView is the REST representation of a scheme
type SchemeView struct {
	SchemeID           string `json:"scheme_id"`
	Creator            string `json:"creator"`
	UnderlyingAssetRef string `json:"underlying_asset_ref"`
	SettlementDenom    string `json:"settlement_denom"`
	State              string `json:"state"`
	OfferClosingTime   int64  `json:"offer_closing_time"`
	OrderExpiration    int64  `json:"order_expiration"`
	Maturity           int64  `json:"maturity"`
	PurchasePrice      string `json:"purchase_price"`
	SoldPrice          string `json:"sold_price"`
	CustodyBalance     string `json:"custody_balance"`
	CreatedAt          int64  `json:"created_at"`
	UpdatedAt          int64  `json:"updated_at"`
}

// LedgerView is the REST representation of a scheme's ledger
type LedgerView struct {
	SchemeID    string            `json:"scheme_id"`
	TotalSupply string            `json:"total_supply"`
	Balances    map[string]string `json:"balances"`
}

// CreateSchemeRequest is the request body for creating a scheme
type CreateSchemeRequest struct {
	Creator            string `json:"creator"`
	UnderlyingAssetRef string `json:"underlying_asset_ref"`
	SettlementDenom    string `json:"settlement_denom"`
	OfferClosingTime   int64  `json:"offer_closing_time"`
	OrderExpiration    int64  `json:"order_expiration"`
	Maturity           int64  `json:"maturity"`
}

// DepositRequest is the request body for a deposit
type DepositRequest struct {
	Depositor string `json:"depositor"`
	Amount    string `json:"amount"`
}

// WithdrawRequest is the request body for a withdrawal. An empty amount
// withdraws the caller's full balance.
type WithdrawRequest struct {
	Caller string `json:"caller"`
	Amount string `json:"amount,omitempty"`
}

// OperationRequest is the request body for caller-only lifecycle operations
type OperationRequest struct {
	Caller string `json:"caller"`
}

// OperationResponse reports the result of a lifecycle operation
type OperationResponse struct {
	SchemeID string `json:"scheme_id"`
	State    string `json:"state"`
	Filled   *bool  `json:"filled,omitempty"`
}

// StreamEvent is one websocket frame on the scheme event stream
type StreamEvent struct {
	Type      string      `json:"type"`
	SchemeID  string      `json:"scheme_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// SchemeService is the backend the API server talks to. The mock
// implementation drives an in-process lifecycle for development; a node-backed
// implementation proxies to a running chain.
type SchemeService interface {
	CreateScheme(req *CreateSchemeRequest) (*SchemeView, error)
	GetScheme(schemeID string) (*SchemeView, error)
	ListSchemes(state string) ([]*SchemeView, error)
	GetLedger(schemeID string) (*LedgerView, error)

	Deposit(schemeID string, req *DepositRequest) (*LedgerView, error)
	Withdraw(schemeID string, req *WithdrawRequest) (*LedgerView, error)

	MakeBuyOrder(schemeID, caller string) (*OperationResponse, error)
	PublishToken(schemeID, caller string) (*OperationResponse, error)
	SellAsset(schemeID, caller string) (*OperationResponse, error)
	UpdateSellOrder(schemeID, caller string) (*OperationResponse, error)
	Redeem(schemeID, caller string) (*OperationResponse, error)
}
