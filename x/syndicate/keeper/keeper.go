package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// Store key prefixes
var (
	SchemeKeyPrefix = []byte{0x01}
	LedgerKeyPrefix = []byte{0x02}
)

// BankKeeper defines the expected interface for the settlement asset rail.
type BankKeeper interface {
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

// Keeper manages the syndicate module state
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	bankKeeper BankKeeper
	gateway    types.OrderGateway
	logger     log.Logger
	authority  string
}

// NewKeeper creates a new syndicate keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper BankKeeper,
	gateway types.OrderGateway,
	authority string,
	logger log.Logger,
) *Keeper {
	if gateway == nil {
		gateway = types.NoFillGateway{}
	}
	return &Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		gateway:    gateway,
		authority:  authority,
		logger:     logger.With("module", "x/syndicate"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// CustodyAddress derives the scheme's custody account for the settlement
// asset. Every scheme custodies its contributions and sale proceeds under its
// own address, so per-scheme claims reconcile against a per-scheme balance.
func CustodyAddress(schemeID string) sdk.AccAddress {
	return address.Module(types.ModuleName, []byte(schemeID))
}

// CustodyBalance returns the scheme's settlement-asset holdings.
func (k *Keeper) CustodyBalance(ctx sdk.Context, scheme *types.Scheme) math.Int {
	coin := k.bankKeeper.GetBalance(ctx, CustodyAddress(scheme.SchemeID), scheme.SettlementDenom)
	return coin.Amount
}

// ============ Scheme Operations ============

func schemeKey(schemeID string) []byte {
	return append(SchemeKeyPrefix, []byte(schemeID)...)
}

// SetScheme saves a scheme to the store
func (k *Keeper) SetScheme(ctx sdk.Context, scheme *types.Scheme) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(scheme)
	store.Set(schemeKey(scheme.SchemeID), bz)
}

// GetScheme retrieves a scheme from the store
func (k *Keeper) GetScheme(ctx sdk.Context, schemeID string) *types.Scheme {
	store := k.GetStore(ctx)
	bz := store.Get(schemeKey(schemeID))
	if bz == nil {
		return nil
	}
	var scheme types.Scheme
	if err := json.Unmarshal(bz, &scheme); err != nil {
		return nil
	}
	return &scheme
}

// GetAllSchemes returns all schemes
func (k *Keeper) GetAllSchemes(ctx sdk.Context) []*types.Scheme {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, SchemeKeyPrefix)
	defer iterator.Close()

	var schemes []*types.Scheme
	for ; iterator.Valid(); iterator.Next() {
		var scheme types.Scheme
		if err := json.Unmarshal(iterator.Value(), &scheme); err != nil {
			continue
		}
		schemes = append(schemes, &scheme)
	}
	return schemes
}

// ============ Ledger Operations ============

func ledgerKey(schemeID string) []byte {
	return append(LedgerKeyPrefix, []byte(schemeID)...)
}

// SetLedger saves a scheme's ledger to the store
func (k *Keeper) SetLedger(ctx sdk.Context, ledger *types.Ledger) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(ledger)
	store.Set(ledgerKey(ledger.SchemeID), bz)
}

// GetLedger retrieves a scheme's ledger from the store
func (k *Keeper) GetLedger(ctx sdk.Context, schemeID string) *types.Ledger {
	store := k.GetStore(ctx)
	bz := store.Get(ledgerKey(schemeID))
	if bz == nil {
		return nil
	}
	var ledger types.Ledger
	if err := json.Unmarshal(bz, &ledger); err != nil {
		return nil
	}
	return &ledger
}

// ============ State Machine ============

// advanceState moves the scheme forward along the lifecycle graph and emits
// the advisory transition event. The graph has no backward edges, so a scheme
// can never revisit a state.
func (k *Keeper) advanceState(ctx sdk.Context, scheme *types.Scheme, to string) error {
	if !scheme.CanTransition(to) {
		return types.ErrWrongState.Wrapf("cannot move from %s to %s", scheme.State, to)
	}
	from := scheme.State
	scheme.State = to
	scheme.UpdatedAt = ctx.BlockTime().Unix()
	if to == types.StateClosed {
		scheme.ClosedAt = scheme.UpdatedAt
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStateTransition,
			sdk.NewAttribute(types.AttributeKeySchemeID, scheme.SchemeID),
			sdk.NewAttribute(types.AttributeKeyFromState, from),
			sdk.NewAttribute(types.AttributeKeyToState, to),
		),
	)

	k.logger.Info("Scheme state transition",
		"scheme_id", scheme.SchemeID,
		"from", from,
		"to", to,
	)
	return nil
}

// CreateScheme constructs a new scheme with validated deadlines and an empty
// contribution ledger.
func (k *Keeper) CreateScheme(ctx sdk.Context, creator, underlyingAssetRef, settlementDenom string, offerClosingTime, orderExpiration, maturity int64) (*types.Scheme, error) {
	scheme, err := types.NewScheme(creator, underlyingAssetRef, settlementDenom, offerClosingTime, orderExpiration, maturity, ctx.BlockTime().Unix())
	if err != nil {
		return nil, err
	}

	k.SetScheme(ctx, scheme)
	k.SetLedger(ctx, types.NewLedger(scheme.SchemeID))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSchemeCreated,
			sdk.NewAttribute(types.AttributeKeySchemeID, scheme.SchemeID),
			sdk.NewAttribute("creator", creator),
			sdk.NewAttribute("underlying_asset_ref", underlyingAssetRef),
			sdk.NewAttribute("settlement_denom", settlementDenom),
		),
	)

	k.logger.Info("Scheme created",
		"scheme_id", scheme.SchemeID,
		"creator", creator,
		"asset_ref", underlyingAssetRef,
		"offer_closing", offerClosingTime,
		"order_expiration", orderExpiration,
		"maturity", maturity,
	)

	return scheme, nil
}
