package core

import (
	"sort"
	"time"

	"github.com/huangsam/keepwatch/schema"
)

// MonthlyOwnership computes how much of a calendar month a seller held the
// buybox for, from the normalized holder samples of one product.
//
// Three shares are reported:
//   - DayShare: distinct sampled days where the seller appears in at least
//     one sample that day, over all distinct sampled days. Presence wins when
//     samples on the same day disagree.
//   - CountShare: the seller's samples over all samples in the month.
//   - TimeShare: minutes attributed to the seller over the total span between
//     the month's first and last sample, each interval attributed to the
//     holder at its start.
//
// All shares are nil when the month has no usable data.
func MonthlyOwnership(samples []schema.OwnerSample, sellerID string, year, month int) (*schema.OwnershipRecord, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidPeriod
	}

	rec := &schema.OwnershipRecord{
		Year:     year,
		Month:    month,
		SellerID: sellerID,
	}

	var inMonth []schema.OwnerSample
	for _, s := range samples {
		t := s.Time.UTC()
		if t.Year() == year && int(t.Month()) == month {
			inMonth = append(inMonth, s)
		}
	}
	if len(inMonth) == 0 {
		return rec, nil
	}
	sort.SliceStable(inMonth, func(i, j int) bool { return inMonth[i].Time.Before(inMonth[j].Time) })

	// Day-based share: presence on a calendar day counts regardless of how
	// the rest of that day's samples resolve.
	sampledDays := make(map[string]struct{})
	ownedDays := make(map[string]struct{})
	for _, s := range inMonth {
		day := s.Time.UTC().Format(time.DateOnly)
		sampledDays[day] = struct{}{}
		if s.SellerID == sellerID {
			ownedDays[day] = struct{}{}
		}
	}
	rec.SampledDays = len(sampledDays)
	rec.OwnedDays = len(ownedDays)
	if rec.SampledDays > 0 {
		share := 100.0 * float64(rec.OwnedDays) / float64(rec.SampledDays)
		rec.DayShare = &share
	}

	// Count-based share over raw samples.
	rec.SampleCount = len(inMonth)
	for _, s := range inMonth {
		if s.SellerID == sellerID {
			rec.OwnerSamples++
		}
	}
	countShare := 100.0 * float64(rec.OwnerSamples) / float64(rec.SampleCount)
	rec.CountShare = &countShare

	// Time-weighted share: each interval between adjacent samples belongs to
	// the holder observed at the interval's start.
	for i := 0; i < len(inMonth)-1; i++ {
		delta := inMonth[i+1].Time.Sub(inMonth[i].Time).Minutes()
		rec.TotalMinutes += delta
		if inMonth[i].SellerID == sellerID {
			rec.OwnedMinutes += delta
		}
	}
	if rec.TotalMinutes > 0 {
		timeShare := 100.0 * rec.OwnedMinutes / rec.TotalMinutes
		rec.TimeShare = &timeShare
	}

	return rec, nil
}
