package finance

import (
	"fmt"

	"github.com/avolkov/dealbrief/internal/model"
)

// Size-category labels, largest first. Thresholds are in millions and apply
// to the maximum of the extracted value fields.
const (
	SizeMega    = "Mega Cap (>$1B)"
	SizeLarge   = "Large Cap ($300M-$1B)"
	SizeMid     = "Mid Cap ($60M-$300M)"
	SizeSmall   = "Small Cap ($10M-$60M)"
	SizeMicro   = "Micro Cap (<$10M)"
	SizeUnknown = "Value TBD"
)

// SizeCategory buckets a deal by its largest known financial value.
func SizeCategory(fd model.FinancialData) string {
	v := fd.MaxValue()
	switch {
	case v >= 1000:
		return SizeMega
	case v >= 300:
		return SizeLarge
	case v >= 60:
		return SizeMid
	case v >= 10:
		return SizeSmall
	case v > 0:
		return SizeMicro
	default:
		return SizeUnknown
	}
}

// FormatValue renders the extracted value for display, e.g. "EUR 900M" or
// "USD 2.0B". Returns empty when nothing was extracted.
func FormatValue(fd model.FinancialData) string {
	if !fd.HasValue() {
		return ""
	}
	v := fd.MaxValue()
	cur := fd.Currency
	if cur == "" {
		cur = "USD"
	}
	if v >= 1000 {
		return fmt.Sprintf("%s %.1fB", cur, v/1000)
	}
	return fmt.Sprintf("%s %.0fM", cur, v)
}
