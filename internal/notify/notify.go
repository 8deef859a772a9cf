// Package notify delivers backhaul alert push notifications.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"

	"haulcentral/internal/models"
)

var (
	// ErrPushDisabled means no push transport is configured; the alert was
	// not delivered and should stay queued.
	ErrPushDisabled = errors.New("push notifications disabled")
	// ErrTokenNotRegistered means the device token is permanently invalid.
	ErrTokenNotRegistered = errors.New("device token not registered")
)

// Notifier pushes a single alert to a device.
type Notifier interface {
	NotifyAlert(ctx context.Context, token string, alert models.BackhaulAlert) error
}

type FCMNotifier struct {
	Client *messaging.Client
}

// NewFCMNotifier builds a notifier from a service-account credentials file.
func NewFCMNotifier(ctx context.Context, credentialsFile string) (*FCMNotifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}
	return &FCMNotifier{Client: client}, nil
}

func (n *FCMNotifier) NotifyAlert(ctx context.Context, token string, alert models.BackhaulAlert) error {
	_, err := n.Client.Send(ctx, AlertMessage(token, alert))
	if err == nil {
		return nil
	}
	if messaging.IsRegistrationTokenNotRegistered(err) {
		return fmt.Errorf("%w: %v", ErrTokenNotRegistered, err)
	}
	return fmt.Errorf("fcm send: %w", err)
}

// AlertMessage renders the push payload for an alert.
func AlertMessage(token string, alert models.BackhaulAlert) *messaging.Message {
	title := "New backhaul match"
	body := fmt.Sprintf("A return load is available for truck %s (%.0f mi deadhead)", alert.TruckID, alert.EstimatedDeadhead)
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"link":     "/dashboard/owner-operator",
			"alertId":  alert.ID,
			"loadId":   alert.LoadID,
			"truckId":  alert.TruckID,
			"distance": strconv.FormatFloat(alert.Distance, 'f', 1, 64),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}
}

// LogNotifier is used when no Firebase credentials are configured.
type LogNotifier struct {
	InfoLog *log.Logger
}

func (n LogNotifier) NotifyAlert(_ context.Context, _ string, alert models.BackhaulAlert) error {
	if n.InfoLog != nil {
		n.InfoLog.Printf("push disabled, skipping alert %s for user %s", alert.ID, alert.UserID)
	}
	return ErrPushDisabled
}
