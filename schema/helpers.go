package schema

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// keepaEpoch is the instant Keepa timestamp codes count minutes from.
var keepaEpoch = time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)

// asinPattern matches a well-formed ASIN: exactly 10 uppercase alphanumerics.
var asinPattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// TimeFromKeepaMinutes converts a Keepa minute-resolution timestamp code to a
// calendar instant in UTC.
func TimeFromKeepaMinutes(code int) time.Time {
	return keepaEpoch.Add(time.Duration(code) * time.Minute)
}

// KeepaMinutesFromTime converts a calendar instant to a Keepa timestamp code,
// truncating sub-minute precision.
func KeepaMinutesFromTime(t time.Time) int {
	return int(t.Sub(keepaEpoch) / time.Minute)
}

// IsValidASIN reports whether the given string is a well-formed ASIN after
// trimming and upper-casing.
func IsValidASIN(asin string) bool {
	return asinPattern.MatchString(NormalizeASIN(asin))
}

// NormalizeASIN trims surrounding whitespace and upper-cases an ASIN.
func NormalizeASIN(asin string) string {
	return strings.ToUpper(strings.TrimSpace(asin))
}

// IsPlaceholderSeller reports whether a seller ID is one of the reserved
// values marking "no buybox offer" rather than a real seller.
func IsPlaceholderSeller(sellerID string) bool {
	return sellerID == "" || sellerID == NoBuyboxSellerID || sellerID == SuppressedBuyboxSeller
}

// OwnerTypeFor classifies a seller ID as Amazon retail or a third party.
func OwnerTypeFor(sellerID string) string {
	if sellerID == AmazonSellerID {
		return "Amazon"
	}
	return "3rd Party"
}

// FormatMonths formats month numbers as "01, 02, 12" for headers.
func FormatMonths(months []int) string {
	parts := make([]string, len(months))
	for i, m := range months {
		parts[i] = fmt.Sprintf("%02d", m)
	}
	return strings.Join(parts, ", ")
}

// PeriodLabel formats a month/year pair as "2024-06".
func PeriodLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
