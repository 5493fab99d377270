package entity

import "time"

// MarketStatistics is a point-in-time summary of the marketplace.
type MarketStatistics struct {
	TotalListings      int    `json:"totalListings"`
	TotalFarmers       int    `json:"totalFarmers"`
	TotalBuyers        int    `json:"totalBuyers"`
	AveragePriceChange string `json:"averagePriceChange"` // e.g. "-5.00%"
	Timestamp          string `json:"timestamp"`
}

// ResetReport summarises one daily maintenance run.
type ResetReport struct {
	Scanned    int       `json:"scanned"`
	Updated    int       `json:"updated"`
	Batches    int       `json:"batches"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// WelcomeGreeting is returned to a caller that registers through the client app.
type WelcomeGreeting struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
