// ABOUTME: Reminder preference gateway between the user-facing surfaces and the scheduler.
// ABOUTME: Persists preference changes, schedules or cancels the daily reminder, and raises permission alerts.
package reminder

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/2389-research/daybook/internal/logging"
)

// Alert messages shown to the user.
const (
	ExplainMessage    = "Daily reminders require notification permissions. We'll only use them for your journal reminders."
	DeniedMessage     = "Notifications are disabled. Please enable them in Settings to get reminders."
	RefusedMessage    = "Notifications are disabled. You won't receive reminders."
	NotificationTitle = "Time for Your Daily Journal"
	NotificationBody  = "Don't forget to write your daily journal entry!"
)

// PermissionState is the platform's notification authorization state.
type PermissionState int

const (
	PermissionNotDetermined PermissionState = iota
	PermissionDenied
	PermissionAuthorized
	// PermissionRefused means the user just declined a permission prompt.
	PermissionRefused
)

// Scheduler registers and cancels the recurring daily reminder.
type Scheduler interface {
	// Schedule replaces any pending reminder with one firing daily at t.
	Schedule(t TimeOfDay) error

	// Cancel removes any pending reminder.
	Cancel()
}

// AlertFunc receives user-facing alert text.
type AlertFunc func(message string)

// Service owns the reminder preference. Construct one per process and pass it
// to whoever needs it.
type Service struct {
	mu        sync.Mutex
	store     PreferenceStore
	scheduler Scheduler
	alert     AlertFunc
	logger    *zap.SugaredLogger
	pref      Preference
}

// NewService loads the saved preference. A load failure falls back to the
// default preference and is logged.
func NewService(store PreferenceStore, scheduler Scheduler, alert AlertFunc, logger *zap.SugaredLogger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("preference store is required")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	if alert == nil {
		alert = func(string) {}
	}
	logger = logging.OrNop(logger)

	pref, err := store.Load()
	if err != nil {
		logger.Warnw("failed to load reminder preferences, using defaults", "error", err)
		pref = DefaultPreference()
	}

	return &Service{
		store:     store,
		scheduler: scheduler,
		alert:     alert,
		logger:    logger,
		pref:      pref,
	}, nil
}

// Preference returns the current preference.
func (s *Service) Preference() Preference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pref
}

// SetEnabled persists the flag. Enabling explains the permission need and
// schedules the reminder; disabling cancels it.
func (s *Service) SetEnabled(ctx context.Context, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pref.Enabled = enabled
	if err := s.store.Save(s.pref); err != nil {
		s.logger.Errorw("failed to save reminder preference", "error", err)
		return fmt.Errorf("failed to save reminder preference: %w", err)
	}

	if !enabled {
		s.scheduler.Cancel()
		s.logger.Infow("daily reminder disabled")
		return nil
	}

	s.alert(ExplainMessage)
	return s.scheduleLocked()
}

// SetTime persists the reminder time and reschedules when enabled.
func (s *Service) SetTime(ctx context.Context, t TimeOfDay) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !t.Valid() {
		return fmt.Errorf("time %s out of range", t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pref.Time = t
	if err := s.store.Save(s.pref); err != nil {
		s.logger.Errorw("failed to save reminder preference", "error", err)
		return fmt.Errorf("failed to save reminder preference: %w", err)
	}

	if !s.pref.Enabled {
		return nil
	}
	return s.scheduleLocked()
}

// HandlePermission reacts to the platform's notification authorization state.
func (s *Service) HandlePermission(state PermissionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch state {
	case PermissionDenied:
		s.alert(DeniedMessage)
	case PermissionAuthorized:
		if s.pref.Enabled {
			if err := s.scheduleLocked(); err != nil {
				s.logger.Errorw("failed to schedule daily reminder", "error", err)
			}
		}
	case PermissionRefused:
		s.pref.Enabled = false
		if err := s.store.Save(s.pref); err != nil {
			s.logger.Errorw("failed to save reminder preference", "error", err)
		}
		s.scheduler.Cancel()
		s.alert(RefusedMessage)
	}
}

// HandlePermissionError reports a failed authorization request as
// "Error: <description>". The preference is left as it is.
func (s *Service) HandlePermissionError(err error) {
	if err == nil {
		return
	}
	s.logger.Warnw("notification permission request failed", "error", err)
	s.alert("Error: " + err.Error())
}

// Resume schedules the reminder if the saved preference has it enabled.
// Call once at startup.
func (s *Service) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pref.Enabled {
		return nil
	}
	return s.scheduleLocked()
}

func (s *Service) scheduleLocked() error {
	s.scheduler.Cancel()
	if err := s.scheduler.Schedule(s.pref.Time); err != nil {
		s.logger.Errorw("failed to schedule daily reminder", "time", s.pref.Time.String(), "error", err)
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	s.logger.Infow("daily reminder scheduled", "time", s.pref.Time.String())
	return nil
}
