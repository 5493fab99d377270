package entity

import "time"

// Account document fields.
const (
	AccountFieldName          = "name"
	AccountFieldRole          = "role"
	AccountFieldStats         = "stats"
	AccountFieldLastActive    = "lastActive"
	AccountFieldAccountStatus = "accountStatus"
	AccountFieldTotalListings = "totalListings"
	AccountFieldLastListingAt = "lastListingAt"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

// AccountStatusActive is written when an account is initialized.
const AccountStatusActive AccountStatus = "active"

// AccountStats holds per-account counters. The block is written once, at creation, and the
// counters only move through atomic increments afterwards.
type AccountStats struct {
	TotalListings int64   `json:"totalListings" firestore:"totalListings"`
	TotalOrders   int64   `json:"totalOrders" firestore:"totalOrders"`
	TotalSpent    float64 `json:"totalSpent" firestore:"totalSpent"`
	Rating        float64 `json:"rating" firestore:"rating"`
	ReviewCount   int64   `json:"reviewCount" firestore:"reviewCount"`
}

// Fields returns the stats block in document form.
func (s AccountStats) Fields() map[string]any {
	return map[string]any{
		"totalListings": s.TotalListings,
		"totalOrders":   s.TotalOrders,
		"totalSpent":    s.TotalSpent,
		"rating":        s.Rating,
		"reviewCount":   s.ReviewCount,
	}
}

// Account represents a marketplace user (farmer or buyer).
type Account struct {
	Key  string `json:"key" firestore:"-"`
	Name string `json:"name" firestore:"name,omitempty"`
	Role Role   `json:"role" firestore:"role"`

	Stats         *AccountStats `json:"stats,omitempty" firestore:"stats,omitempty"`
	LastActive    *time.Time    `json:"lastActive,omitempty" firestore:"lastActive,omitempty"`
	AccountStatus AccountStatus `json:"accountStatus,omitempty" firestore:"accountStatus,omitempty"`
	TotalListings int64         `json:"totalListings" firestore:"totalListings"`
	LastListingAt *time.Time    `json:"lastListingAt,omitempty" firestore:"lastListingAt,omitempty"`
}
