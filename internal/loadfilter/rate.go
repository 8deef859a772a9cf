package loadfilter

import (
	"strconv"

	"haulcentral/internal/models"
)

// RatePerMile is rate divided by miles. A zero-mile load yields +Inf (or NaN
// for a zero rate); callers display it as is.
func RatePerMile(load models.Load) float64 {
	return load.Rate / load.Miles
}

// FormatRatePerMile renders RatePerMile with two decimals.
func FormatRatePerMile(load models.Load) string {
	return strconv.FormatFloat(RatePerMile(load), 'f', 2, 64)
}
