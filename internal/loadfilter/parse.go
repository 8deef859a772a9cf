package loadfilter

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ParseSpec builds a FilterSpec from board query parameters, starting from
// DefaultSpec. Absent parameters keep their defaults; malformed numbers are
// rejected with the parameter name.
func ParseSpec(q url.Values) (FilterSpec, error) {
	spec := DefaultSpec()

	spec.PickupState = strings.ToUpper(strings.TrimSpace(q.Get("pickup_state")))
	spec.DropoffState = strings.ToUpper(strings.TrimSpace(q.Get("dropoff_state")))
	spec.EquipmentType = strings.TrimSpace(q.Get("equipment_type"))
	spec.SearchTerm = strings.TrimSpace(q.Get("search"))

	numbers := []struct {
		name string
		dst  *float64
	}{
		{"min_rate", &spec.MinRate},
		{"max_rate", &spec.MaxRate},
		{"radius", &spec.Radius},
	}
	for _, n := range numbers {
		v, ok, err := readFloat(q, n.name)
		if err != nil {
			return FilterSpec{}, err
		}
		if ok {
			*n.dst = v
		}
	}

	if spec.MinRate < 0 {
		return FilterSpec{}, fmt.Errorf("min_rate must not be negative")
	}
	if spec.Radius < 0 {
		return FilterSpec{}, fmt.Errorf("radius must not be negative")
	}
	// A max_rate at DefaultMaxRate is no bound, so it cannot invert the band.
	if spec.MaxRate < DefaultMaxRate && spec.MaxRate < spec.MinRate {
		return FilterSpec{}, fmt.Errorf("max_rate must not be below min_rate")
	}
	return spec, nil
}

func readFloat(q url.Values, name string) (float64, bool, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%s: %q is not a finite number", name, raw)
	}
	return v, true, nil
}
