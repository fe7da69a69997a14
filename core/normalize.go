package core

import (
	"errors"
	"strconv"

	"github.com/huangsam/keepwatch/schema"
)

// Request-scoped error kinds. Each aborts only the computation for the
// current ASIN/window; batch callers keep processing the remaining requests.
var (
	// ErrMalformedHistory marks structurally invalid source data, such as a
	// raw paired sequence of odd length.
	ErrMalformedHistory = errors.New("malformed history: odd-length paired sequence")

	// ErrNoCandidates means the product reported no ranking categories at all.
	ErrNoCandidates = errors.New("no ranking categories available")

	// ErrInsufficientData means categories exist but none carries a single
	// valid sample, so there is nothing meaningful to report.
	ErrInsufficientData = errors.New("no ranking category has any data")

	// ErrInvalidPeriod marks an out-of-range month supplied by the caller.
	ErrInvalidPeriod = errors.New("month must be between 1 and 12")
)

// NormalizeRankHistory converts a raw paired sequence [t0, v0, t1, v1, ...]
// into ordered samples. Pairs carrying the sentinel value are dropped;
// timestamp codes are converted from Keepa minutes to calendar instants.
// Relative order of the surviving pairs is preserved.
func NormalizeRankHistory(raw []int) ([]schema.Sample, error) {
	if len(raw)%2 != 0 {
		return nil, ErrMalformedHistory
	}

	samples := make([]schema.Sample, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		value := raw[i+1]
		if value == schema.RankSentinel {
			continue
		}
		samples = append(samples, schema.Sample{
			Time:  schema.TimeFromKeepaMinutes(raw[i]),
			Value: value,
		})
	}
	return samples, nil
}

// NormalizeOwnerHistory converts a raw paired buybox holder sequence
// [t0, sellerId0, t1, sellerId1, ...] into ordered owner samples. Keepa
// encodes both halves of each pair as strings; pairs whose timestamp cannot
// be parsed are skipped, and pairs whose seller is a placeholder ("no buybox
// offer") are dropped.
func NormalizeOwnerHistory(raw []string) ([]schema.OwnerSample, error) {
	if len(raw)%2 != 0 {
		return nil, ErrMalformedHistory
	}

	samples := make([]schema.OwnerSample, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		code, err := strconv.Atoi(raw[i])
		if err != nil {
			continue
		}
		sellerID := raw[i+1]
		if schema.IsPlaceholderSeller(sellerID) {
			continue
		}
		samples = append(samples, schema.OwnerSample{
			Time:     schema.TimeFromKeepaMinutes(code),
			SellerID: sellerID,
		})
	}
	return samples, nil
}
