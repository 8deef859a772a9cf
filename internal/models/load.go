package models

import (
	"fmt"
	"strings"
	"time"
)

// Load statuses. Only available loads are shown on the board.
const (
	LoadStatusAvailable = "available"
	LoadStatusBooked    = "booked"
	LoadStatusInTransit = "in_transit"
	LoadStatusDelivered = "delivered"
)

const (
	RateTypePerMile  = "per_mile"
	RateTypeFlatRate = "flat_rate"
)

// EquipmentTypes lists the equipment offered by the posting form. The field
// itself is an open enumeration.
var EquipmentTypes = []string{"Dry Van", "Reefer", "Flatbed", "Step Deck", "Lowboy", "Tanker", "Container"}

const dateLayout = "2006-01-02"

type Load struct {
	ID                  string    `json:"id"`
	LoadID              string    `json:"loadId"`
	PickupCity          string    `json:"pickupCity"`
	PickupState         string    `json:"pickupState"`
	DropoffCity         string    `json:"dropoffCity"`
	DropoffState        string    `json:"dropoffState"`
	PickupDate          string    `json:"pickupDate"`
	DeliveryDate        string    `json:"deliveryDate,omitempty"`
	EquipmentType       string    `json:"equipmentType"`
	Weight              *float64  `json:"weight,omitempty"`
	Length              *float64  `json:"length,omitempty"`
	Rate                float64   `json:"rate"`
	RateType            string    `json:"rateType"`
	Miles               float64   `json:"miles"`
	DeadheadMiles       *float64  `json:"deadheadMiles,omitempty"`
	Description         string    `json:"description,omitempty"`
	SpecialRequirements string    `json:"specialRequirements,omitempty"`
	PostedBy            string    `json:"postedBy"`
	PostedByCompany     string    `json:"postedByCompany"`
	ContactPhone        string    `json:"contactPhone,omitempty"`
	ContactEmail        string    `json:"contactEmail,omitempty"`
	UserID              string    `json:"userId"`
	Status              string    `json:"status"`
	IsBackhaul          bool      `json:"isBackhaul,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// PostLoadRequest is the body of POST /loads.
type PostLoadRequest struct {
	PickupCity          string   `json:"pickupCity"`
	PickupState         string   `json:"pickupState"`
	DropoffCity         string   `json:"dropoffCity"`
	DropoffState        string   `json:"dropoffState"`
	PickupDate          string   `json:"pickupDate"`
	DeliveryDate        string   `json:"deliveryDate"`
	EquipmentType       string   `json:"equipmentType"`
	Weight              *float64 `json:"weight"`
	Length              *float64 `json:"length"`
	Rate                float64  `json:"rate"`
	RateType            string   `json:"rateType"`
	Miles               float64  `json:"miles"`
	DeadheadMiles       *float64 `json:"deadheadMiles"`
	Description         string   `json:"description"`
	SpecialRequirements string   `json:"specialRequirements"`
	ContactPhone        string   `json:"contactPhone"`
	IsBackhaul          bool     `json:"isBackhaul"`
}

func (p *PostLoadRequest) normalize() {
	p.PickupCity = strings.TrimSpace(p.PickupCity)
	p.PickupState = strings.ToUpper(strings.TrimSpace(p.PickupState))
	p.DropoffCity = strings.TrimSpace(p.DropoffCity)
	p.DropoffState = strings.ToUpper(strings.TrimSpace(p.DropoffState))
	p.PickupDate = strings.TrimSpace(p.PickupDate)
	p.DeliveryDate = strings.TrimSpace(p.DeliveryDate)
	p.EquipmentType = strings.TrimSpace(p.EquipmentType)
	p.RateType = strings.TrimSpace(p.RateType)
	p.Description = strings.TrimSpace(p.Description)
	p.SpecialRequirements = strings.TrimSpace(p.SpecialRequirements)
	p.ContactPhone = strings.TrimSpace(p.ContactPhone)
	if p.RateType == "" {
		p.RateType = RateTypeFlatRate
	}
}

// Validate normalizes the request in place and reports the first missing or
// malformed field.
func (p *PostLoadRequest) Validate() error {
	p.normalize()

	required := []struct {
		field string
		value string
	}{
		{"pickupCity", p.PickupCity},
		{"pickupState", p.PickupState},
		{"dropoffCity", p.DropoffCity},
		{"dropoffState", p.DropoffState},
		{"pickupDate", p.PickupDate},
		{"equipmentType", p.EquipmentType},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field, Reason: "is required"}
		}
	}
	if len(p.PickupState) != 2 {
		return &ValidationError{Field: "pickupState", Reason: "must be a two-letter state code"}
	}
	if len(p.DropoffState) != 2 {
		return &ValidationError{Field: "dropoffState", Reason: "must be a two-letter state code"}
	}

	pickup, err := time.Parse(dateLayout, p.PickupDate)
	if err != nil {
		return &ValidationError{Field: "pickupDate", Reason: "must be formatted as YYYY-MM-DD"}
	}
	if p.DeliveryDate != "" {
		delivery, err := time.Parse(dateLayout, p.DeliveryDate)
		if err != nil {
			return &ValidationError{Field: "deliveryDate", Reason: "must be formatted as YYYY-MM-DD"}
		}
		if delivery.Before(pickup) {
			return &ValidationError{Field: "deliveryDate", Reason: "must not be before pickupDate"}
		}
	}

	if p.Rate <= 0 {
		return &ValidationError{Field: "rate", Reason: "must be greater than zero"}
	}
	switch p.RateType {
	case RateTypePerMile, RateTypeFlatRate:
	default:
		return &ValidationError{Field: "rateType", Reason: fmt.Sprintf("must be %q or %q", RateTypePerMile, RateTypeFlatRate)}
	}
	if p.Miles <= 0 {
		return &ValidationError{Field: "miles", Reason: "must be greater than zero"}
	}
	if p.Weight != nil && *p.Weight <= 0 {
		return &ValidationError{Field: "weight", Reason: "must be greater than zero"}
	}
	if p.Length != nil && *p.Length <= 0 {
		return &ValidationError{Field: "length", Reason: "must be greater than zero"}
	}
	if p.DeadheadMiles != nil && *p.DeadheadMiles < 0 {
		return &ValidationError{Field: "deadheadMiles", Reason: "must not be negative"}
	}
	return nil
}

type UpdateLoadStatusRequest struct {
	Status string `json:"status"`
}

type LoadDocument struct {
	LoadID string `json:"loadId"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}
