package models

import "time"

const (
	TruckStatusAvailable = "available"
	TruckStatusBooked    = "booked"
	TruckStatusInTransit = "in_transit"
)

type Truck struct {
	ID               string    `json:"id"`
	TruckID          string    `json:"truckId"`
	CurrentCity      string    `json:"currentCity"`
	CurrentState     string    `json:"currentState"`
	DestinationCity  string    `json:"destinationCity,omitempty"`
	DestinationState string    `json:"destinationState,omitempty"`
	EquipmentType    string    `json:"equipmentType"`
	AvailableDate    string    `json:"availableDate"`
	DriverID         string    `json:"driverId"`
	DriverName       string    `json:"driverName"`
	DriverPhone      string    `json:"driverPhone,omitempty"`
	CompanyName      string    `json:"companyName"`
	PostedBy         string    `json:"postedBy"`
	UserID           string    `json:"userId"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CreateTruckRequest struct {
	TruckID          string `json:"truckId"`
	CurrentCity      string `json:"currentCity"`
	CurrentState     string `json:"currentState"`
	DestinationCity  string `json:"destinationCity"`
	DestinationState string `json:"destinationState"`
	EquipmentType    string `json:"equipmentType"`
	AvailableDate    string `json:"availableDate"`
	DriverID         string `json:"driverId"`
	DriverName       string `json:"driverName"`
	DriverPhone      string `json:"driverPhone"`
}

func (r CreateTruckRequest) Validate() error {
	switch {
	case r.TruckID == "":
		return &ValidationError{Field: "truckId", Reason: "is required"}
	case r.CurrentCity == "":
		return &ValidationError{Field: "currentCity", Reason: "is required"}
	case len(r.CurrentState) != 2:
		return &ValidationError{Field: "currentState", Reason: "must be a two-letter state code"}
	case r.EquipmentType == "":
		return &ValidationError{Field: "equipmentType", Reason: "is required"}
	case r.AvailableDate == "":
		return &ValidationError{Field: "availableDate", Reason: "is required"}
	case r.DriverName == "":
		return &ValidationError{Field: "driverName", Reason: "is required"}
	}
	return nil
}
