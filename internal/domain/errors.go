package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Every failure is
// detected before any state mutation and aborts the whole operation.

var (
	// Lookup errors
	ErrAssetNotFound = errors.New("asset not found")

	// Validation errors
	ErrInvalidArgument = errors.New("invalid argument")

	// Trading errors
	ErrInsufficientShares  = errors.New("not enough shares available")
	ErrInsufficientHolding = errors.New("not enough units held")
	ErrInsufficientPayment = errors.New("payment below required cost")
	ErrAssetInactive       = errors.New("asset is not open for trading")

	// Distribution errors
	ErrNothingToDistribute = errors.New("no shares outstanding")
	ErrNothingToClaim      = errors.New("nothing to claim")

	// Treasury errors
	ErrTransferFailed = errors.New("value transfer failed")
)
