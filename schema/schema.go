// Package schema has configs, models and global variables for all parts of keepwatch.
package schema

import "time"

// Category is a single node of a product's category tree, ordered from the
// broadest department down to the most specific subcategory.
type Category struct {
	CatID int64  `json:"catId"`
	Name  string `json:"name"`
}

// Product is the subset of the Keepa product payload that keepwatch consumes.
// SalesRanks values and BuyBoxSellerIDHistory are raw paired sequences of
// [timestampCode, value, timestampCode, value, ...] where timestamp codes are
// minutes since the Keepa epoch.
type Product struct {
	ASIN                  string           `json:"asin"`
	Title                 string           `json:"title"`
	DomainID              int              `json:"domainId"`
	CategoryTree          []Category       `json:"categoryTree"`
	SalesRanks            map[string][]int `json:"salesRanks"`
	BuyBoxSellerIDHistory []string         `json:"buyBoxSellerIdHistory"`
}

// ProductResponse is the top-level Keepa API response envelope.
type ProductResponse struct {
	Products   []Product `json:"products"`
	TokensLeft int       `json:"tokensLeft"`
	RefillIn   int64     `json:"refillIn"`
	Error      *APIError `json:"error,omitempty"`
}

// APIError is the error object Keepa embeds in a response body.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Sample is a single observed value at a calendar instant, produced from a
// valid (non-sentinel) raw pair.
type Sample struct {
	Time  time.Time `json:"time"`
	Value int       `json:"value"`
}

// OwnerSample is a single buybox holder observation.
type OwnerSample struct {
	Time     time.Time `json:"time"`
	SellerID string    `json:"sellerId"`
}

// CategorySeries is one candidate ranking category for a product.
type CategorySeries struct {
	CategoryID string   `json:"categoryId"`
	Name       string   `json:"name"`
	Samples    []Sample `json:"samples"`
}

// SelectionResult names the best ranking category among the candidates.
// No other candidate has a strictly higher score.
type SelectionResult struct {
	Chosen CategorySeries `json:"chosen"`
	Score  float64        `json:"score"`
}

// WindowStats holds descriptive statistics over a time window.
// Average, Min and Max are nil exactly when Count is zero; an empty window is
// a valid "no data" result, not a failure.
type WindowStats struct {
	Count       int      `json:"count"`
	Average     *float64 `json:"average,omitempty"`
	Min         *int     `json:"min,omitempty"`
	Max         *int     `json:"max,omitempty"`
	ChangeCount int      `json:"changeCount"`
}

// RankReport is the sales rank analysis result for one ASIN.
type RankReport struct {
	ASIN         string      `json:"asin"`
	Title        string      `json:"title"`
	CategoryID   string      `json:"categoryId"`
	CategoryName string      `json:"categoryName"`
	Score        float64     `json:"score"`
	Days         int         `json:"days"`
	WindowStart  time.Time   `json:"windowStart"`
	WindowEnd    time.Time   `json:"windowEnd"`
	Stats        WindowStats `json:"stats"`
	Recent       []Sample    `json:"recent"` // Tail of the history for display
}

// OwnershipRecord is the buybox ownership summary for one seller over one
// calendar month. DayShare counts a day as owned when the seller appears in
// at least one sample that day (presence wins over last-writer). CountShare
// and TimeShare are the raw-sample and time-weighted variants; all three are
// nil when the month has no usable data.
type OwnershipRecord struct {
	ASIN         string   `json:"asin"`
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	SellerID     string   `json:"sellerId"`
	SampledDays  int      `json:"sampledDays"`
	OwnedDays    int      `json:"ownedDays"`
	DayShare     *float64 `json:"dayShare,omitempty"`
	SampleCount  int      `json:"sampleCount"`
	OwnerSamples int      `json:"ownerSamples"`
	CountShare   *float64 `json:"countShare,omitempty"`
	OwnedMinutes float64  `json:"ownedMinutes"`
	TotalMinutes float64  `json:"totalMinutes"`
	TimeShare    *float64 `json:"timeShare,omitempty"`
}

// BuyboxReport groups the monthly ownership records for one ASIN.
type BuyboxReport struct {
	ASIN    string            `json:"asin"`
	Title   string            `json:"title"`
	Records []OwnershipRecord `json:"records"`
}

// OwnerReport describes the current buybox holder for one ASIN.
type OwnerReport struct {
	ASIN        string    `json:"asin"`
	Title       string    `json:"title"`
	SellerID    string    `json:"sellerId"`
	OwnerType   string    `json:"ownerType"` // "Amazon" or "3rd Party"
	LastUpdated time.Time `json:"lastUpdated"`
}

// HistoryResult is a normalized sample dump for export.
type HistoryResult struct {
	ASIN         string        `json:"asin"`
	Title        string        `json:"title"`
	Kind         HistoryKind   `json:"kind"`
	CategoryID   string        `json:"categoryId,omitempty"`
	CategoryName string        `json:"categoryName,omitempty"`
	Ranks        []Sample      `json:"ranks,omitempty"`
	Owners       []OwnerSample `json:"owners,omitempty"`
}

// CheckResult is the outcome of a buybox share gate for one ASIN.
type CheckResult struct {
	ASIN     string   `json:"asin"`
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	SellerID string   `json:"sellerId"`
	DayShare *float64 `json:"dayShare,omitempty"`
	MinShare float64  `json:"minShare"`
	Passed   bool     `json:"passed"`
}
