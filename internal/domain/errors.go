package domain

import "errors"

var (
	// ErrNoData is returned by MarketStore.Get before any scan has completed.
	// It is the only condition surfaced to users as "no data yet".
	ErrNoData = errors.New("no scan data yet")

	ErrNotFound      = errors.New("not found")
	ErrInvalidKind   = errors.New("invalid opportunity kind")
	ErrInvalidFilter = errors.New("invalid filter value")
)
