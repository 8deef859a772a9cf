package services

import (
	"context"
	"errors"
	"log"
	"time"

	"haulcentral/internal/models"
	"haulcentral/internal/notify"
)

const (
	pushBatchSize = 100
	// maxPushAttempts failed sends retire an alert from the push queue.
	maxPushAttempts = 5
)

type AlertService struct {
	AlertRepo AlertStore
	// UserRepo, when set, has unregistered device tokens cleared.
	UserRepo UserStore
	Notifier notify.Notifier
	ErrorLog *log.Logger
}

func (s *AlertService) ListAlerts(ctx context.Context, userID, status string) ([]models.BackhaulAlert, error) {
	if status != "" && !models.ValidAlertStatus(status) {
		return nil, &models.ValidationError{Field: "status", Reason: "is not a known alert status"}
	}
	alerts, err := s.AlertRepo.ListByUser(ctx, userID, status, 0)
	if err != nil {
		return nil, err
	}
	return nonNilAlerts(alerts), nil
}

func (s *AlertService) UpdateStatus(ctx context.Context, userID, alertID, status string) (models.BackhaulAlert, error) {
	if !models.ValidAlertStatus(status) {
		return models.BackhaulAlert{}, &models.ValidationError{Field: "status", Reason: "is not a known alert status"}
	}
	alert, err := s.AlertRepo.GetByID(ctx, alertID)
	if err != nil {
		return models.BackhaulAlert{}, err
	}
	if alert.UserID != userID {
		return models.BackhaulAlert{}, models.ErrNotOwner
	}
	if err := s.AlertRepo.UpdateStatus(ctx, alertID, status); err != nil {
		return models.BackhaulAlert{}, err
	}
	alert.Status = status
	return alert, nil
}

// PushPending sends one notification per unpushed pending alert and stamps
// each alert that was delivered. A failed send counts against the alert's
// attempts; an unregistered token is cleared so the owner's alerts leave the
// queue until a new device registers. It returns the number pushed.
func (s *AlertService) PushPending(ctx context.Context, now time.Time) (int, error) {
	pending, err := s.AlertRepo.ListUnpushedPending(ctx, pushBatchSize, maxPushAttempts)
	if err != nil {
		return 0, err
	}

	pushed := 0
	cleared := make(map[string]bool)
	for _, p := range pending {
		if cleared[p.Alert.UserID] {
			continue
		}
		err := s.Notifier.NotifyAlert(ctx, p.FCMToken, p.Alert)
		switch {
		case err == nil:
			if err := s.AlertRepo.MarkPushed(ctx, p.Alert.ID, now); err != nil {
				return pushed, err
			}
			pushed++
			continue
		case errors.Is(err, notify.ErrPushDisabled):
			return pushed, nil
		}

		s.logf("push alert %s: %v", p.Alert.ID, err)
		if err := s.AlertRepo.RecordPushFailure(ctx, p.Alert.ID, err.Error()); err != nil {
			return pushed, err
		}
		if errors.Is(err, notify.ErrTokenNotRegistered) && s.UserRepo != nil {
			cleared[p.Alert.UserID] = true
			if err := s.UserRepo.SetFCMToken(ctx, p.Alert.UserID, ""); err != nil {
				s.logf("clear device token for user %s: %v", p.Alert.UserID, err)
			}
		}
	}
	return pushed, nil
}

func (s *AlertService) logf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}
