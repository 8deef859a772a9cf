package models

import "time"

const (
	AlertStatusPending   = "pending"
	AlertStatusViewed    = "viewed"
	AlertStatusDismissed = "dismissed"
	AlertStatusBooked    = "booked"
)

// BackhaulAlert links a return-direction load to one of the user's trucks.
// Match scores are stored values; they are not computed here.
type BackhaulAlert struct {
	ID                string     `json:"id"`
	LoadID            string     `json:"loadId"`
	TruckID           string     `json:"truckId"`
	UserID            string     `json:"userId"`
	MatchScore        float64    `json:"matchScore"`
	Distance          float64    `json:"distance"`
	EstimatedDeadhead float64    `json:"estimatedDeadhead"`
	AlertSentAt       time.Time  `json:"alertSentAt"`
	Status            string     `json:"status"`
	PushedAt          *time.Time `json:"-"`
}

// PendingPush is an unpushed alert joined with its owner's device token.
type PendingPush struct {
	Alert    BackhaulAlert
	FCMToken string
}

func ValidAlertStatus(s string) bool {
	switch s {
	case AlertStatusPending, AlertStatusViewed, AlertStatusDismissed, AlertStatusBooked:
		return true
	}
	return false
}
