// Package entity contains the core business objects of the project.
package entity

import (
	"math"
	"time"
)

// Listing document fields.
const (
	ListingFieldPrice              = "price"
	ListingFieldInStock            = "inStock"
	ListingFieldOwnerID            = "ownerId"
	ListingFieldListingID          = "listingId"
	ListingFieldCreatedAtServer    = "createdAtServer"
	ListingFieldVerified           = "verified"
	ListingFieldTrending           = "trending"
	ListingFieldLastPriceUpdate    = "lastPriceUpdate"
	ListingFieldPriceChangePercent = "priceChangePercent"
	ListingFieldDailyViews         = "dailyViews"
	ListingFieldLastDailyReset     = "lastDailyReset"
)

// PriceChangeThreshold is the relative price move above which a listing records the change.
const PriceChangeThreshold = 0.10

// Listing represents a marketplace product. Fields below the raw block are derived and
// written only by the engine.
type Listing struct {
	Key     string  `json:"key" firestore:"-"`
	Name    string  `json:"name" firestore:"name,omitempty"`
	Price   float64 `json:"price" firestore:"price"`
	InStock bool    `json:"inStock" firestore:"inStock"`
	OwnerID string  `json:"ownerId,omitempty" firestore:"ownerId,omitempty"`

	ListingID          string     `json:"listingId,omitempty" firestore:"listingId,omitempty"`
	CreatedAtServer    *time.Time `json:"createdAtServer,omitempty" firestore:"createdAtServer,omitempty"`
	Verified           bool       `json:"verified" firestore:"verified"`
	Trending           bool       `json:"trending" firestore:"trending"`
	LastPriceUpdate    *time.Time `json:"lastPriceUpdate,omitempty" firestore:"lastPriceUpdate,omitempty"`
	PriceChangePercent *float64   `json:"priceChangePercent,omitempty" firestore:"priceChangePercent,omitempty"`
	DailyViews         int64      `json:"dailyViews" firestore:"dailyViews"`
	LastDailyReset     *time.Time `json:"lastDailyReset,omitempty" firestore:"lastDailyReset,omitempty"`
}

// PriceChange describes a qualifying move between two listing prices.
type PriceChange struct {
	Before  float64
	After   float64
	Percent float64 // signed fraction, e.g. 0.11 for +11%
}

// EvaluatePriceChange reports whether moving from before to after crosses PriceChangeThreshold.
// A non-positive before price has no baseline and never qualifies.
func EvaluatePriceChange(before, after float64) (PriceChange, bool) {
	if before <= 0 || math.IsNaN(before) || math.IsNaN(after) {
		return PriceChange{}, false
	}

	if math.Abs(after-before)/before <= PriceChangeThreshold {
		return PriceChange{}, false
	}

	return PriceChange{
		Before:  before,
		After:   after,
		Percent: (after - before) / before,
	}, true
}
