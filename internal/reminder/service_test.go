// ABOUTME: Tests for the reminder preference gateway.
// ABOUTME: Uses a fake scheduler and in-memory preference store to check state transitions and alerts.
package reminder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeScheduler struct {
	scheduled []TimeOfDay
	cancels   int
	active    bool
	err       error
}

func (f *fakeScheduler) Schedule(t TimeOfDay) error {
	if f.err != nil {
		return f.err
	}
	f.scheduled = append(f.scheduled, t)
	f.active = true
	return nil
}

func (f *fakeScheduler) Cancel() {
	f.cancels++
	f.active = false
}

type memoryPrefs struct {
	pref    Preference
	saves   int
	loadErr error
	saveErr error
}

func (m *memoryPrefs) Load() (Preference, error) {
	if m.loadErr != nil {
		return Preference{}, m.loadErr
	}
	return m.pref, nil
}

func (m *memoryPrefs) Save(p Preference) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.pref = p
	m.saves++
	return nil
}

type alertRecorder struct {
	messages []string
}

func (a *alertRecorder) record(msg string) {
	a.messages = append(a.messages, msg)
}

func newTestService(t *testing.T, prefs *memoryPrefs) (*Service, *fakeScheduler, *alertRecorder) {
	t.Helper()
	sched := &fakeScheduler{}
	alerts := &alertRecorder{}
	svc, err := NewService(prefs, sched, alerts.record, nil)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc, sched, alerts
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, &fakeScheduler{}, nil, nil); err == nil {
		t.Error("expected error without preference store")
	}
	if _, err := NewService(&memoryPrefs{}, nil, nil, nil); err == nil {
		t.Error("expected error without scheduler")
	}
}

func TestNewServiceFallsBackToDefaults(t *testing.T) {
	svc, _, _ := newTestService(t, &memoryPrefs{loadErr: errors.New("boom")})
	if got := svc.Preference(); got != DefaultPreference() {
		t.Errorf("Preference() = %+v, want default", got)
	}
}

func TestSetEnabledSchedulesAndExplains(t *testing.T) {
	prefs := &memoryPrefs{pref: DefaultPreference()}
	svc, sched, alerts := newTestService(t, prefs)

	if err := svc.SetEnabled(context.Background(), true); err != nil {
		t.Fatalf("SetEnabled error: %v", err)
	}
	if !prefs.pref.Enabled {
		t.Error("expected enabled flag to be persisted")
	}
	if !sched.active || len(sched.scheduled) != 1 || sched.scheduled[0] != DefaultTime {
		t.Errorf("expected reminder at %s, got %+v", DefaultTime, sched.scheduled)
	}
	if len(alerts.messages) != 1 || alerts.messages[0] != ExplainMessage {
		t.Errorf("alerts = %v, want explanation", alerts.messages)
	}

	if err := svc.SetEnabled(context.Background(), false); err != nil {
		t.Fatalf("SetEnabled(false) error: %v", err)
	}
	if sched.active {
		t.Error("expected reminder to be cancelled")
	}
	if prefs.pref.Enabled {
		t.Error("expected disabled flag to be persisted")
	}
}

func TestSetTimeReschedulesOnlyWhenEnabled(t *testing.T) {
	prefs := &memoryPrefs{pref: DefaultPreference()}
	svc, sched, _ := newTestService(t, prefs)
	morning := TimeOfDay{Hour: 7, Minute: 30}

	if err := svc.SetTime(context.Background(), morning); err != nil {
		t.Fatalf("SetTime error: %v", err)
	}
	if len(sched.scheduled) != 0 {
		t.Error("should not schedule while disabled")
	}
	if prefs.pref.Time != morning {
		t.Errorf("persisted time = %s, want %s", prefs.pref.Time, morning)
	}

	_ = svc.SetEnabled(context.Background(), true)
	evening := TimeOfDay{Hour: 21, Minute: 5}
	if err := svc.SetTime(context.Background(), evening); err != nil {
		t.Fatalf("SetTime error: %v", err)
	}
	last := sched.scheduled[len(sched.scheduled)-1]
	if last != evening {
		t.Errorf("last scheduled = %s, want %s", last, evening)
	}

	if err := svc.SetTime(context.Background(), TimeOfDay{Hour: 25}); err == nil {
		t.Error("expected error for out-of-range time")
	}
}

func TestSetEnabledSaveFailure(t *testing.T) {
	prefs := &memoryPrefs{pref: DefaultPreference(), saveErr: errors.New("disk full")}
	svc, sched, _ := newTestService(t, prefs)

	if err := svc.SetEnabled(context.Background(), true); err == nil {
		t.Fatal("expected save error")
	}
	if len(sched.scheduled) != 0 {
		t.Error("should not schedule when the preference could not be saved")
	}
}

func TestSetEnabledCancelledContext(t *testing.T) {
	svc, _, _ := newTestService(t, &memoryPrefs{pref: DefaultPreference()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.SetEnabled(ctx, true); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestHandlePermission(t *testing.T) {
	prefs := &memoryPrefs{pref: Preference{Enabled: true, Time: DefaultTime}}
	svc, sched, alerts := newTestService(t, prefs)

	svc.HandlePermission(PermissionNotDetermined)
	if len(alerts.messages) != 0 || len(sched.scheduled) != 0 {
		t.Error("not-determined state should do nothing")
	}

	svc.HandlePermission(PermissionAuthorized)
	if len(sched.scheduled) != 1 {
		t.Errorf("expected authorized state to schedule, got %d", len(sched.scheduled))
	}

	svc.HandlePermission(PermissionDenied)
	if len(alerts.messages) != 1 || alerts.messages[0] != DeniedMessage {
		t.Errorf("alerts = %v, want denied message", alerts.messages)
	}

	svc.HandlePermission(PermissionRefused)
	if svc.Preference().Enabled || prefs.pref.Enabled {
		t.Error("refusal should disable reminders")
	}
	if sched.active {
		t.Error("refusal should cancel the reminder")
	}
	if alerts.messages[len(alerts.messages)-1] != RefusedMessage {
		t.Errorf("last alert = %q, want refused message", alerts.messages[len(alerts.messages)-1])
	}
}

func TestHandlePermissionError(t *testing.T) {
	prefs := &memoryPrefs{pref: Preference{Enabled: true, Time: DefaultTime}}
	svc, sched, alerts := newTestService(t, prefs)

	svc.HandlePermissionError(nil)
	if len(alerts.messages) != 0 {
		t.Errorf("nil error should not alert, got %v", alerts.messages)
	}

	svc.HandlePermissionError(errors.New("notification center unavailable"))
	if len(alerts.messages) != 1 || alerts.messages[0] != "Error: notification center unavailable" {
		t.Errorf("alerts = %v, want error description", alerts.messages)
	}
	if !svc.Preference().Enabled || prefs.saves != 0 {
		t.Error("a failed request should leave the preference unchanged")
	}
	if len(sched.scheduled) != 0 || sched.cancels != 0 {
		t.Error("a failed request should not touch the scheduler")
	}
}

func TestResume(t *testing.T) {
	svc, sched, _ := newTestService(t, &memoryPrefs{pref: DefaultPreference()})
	if err := svc.Resume(); err != nil {
		t.Fatalf("Resume error: %v", err)
	}
	if len(sched.scheduled) != 0 {
		t.Error("Resume should not schedule when disabled")
	}

	svc, sched, _ = newTestService(t, &memoryPrefs{pref: Preference{Enabled: true, Time: TimeOfDay{Hour: 6}}})
	if err := svc.Resume(); err != nil {
		t.Fatalf("Resume error: %v", err)
	}
	if len(sched.scheduled) != 1 || sched.scheduled[0].Hour != 6 {
		t.Errorf("scheduled = %+v, want 06:00", sched.scheduled)
	}
}

func TestFilePreferenceStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reminder.yaml")
	store := NewFilePreferenceStore(path)

	p, err := store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if p != DefaultPreference() {
		t.Errorf("Load() = %+v, want default", p)
	}

	want := Preference{Enabled: true, Time: TimeOfDay{Hour: 8, Minute: 15}}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := NewFilePreferenceStore(path).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestFilePreferenceStoreSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reminder.yaml")
	store := NewFilePreferenceStore(path)

	for _, hour := range []int{7, 9} {
		if err := store.Save(Preference{Enabled: true, Time: TimeOfDay{Hour: hour}}); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("mode = %o, want 600", perm)
	}
	names, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("expected only the preference file, found %d entries", len(names))
	}
	got, err := store.Load()
	if err != nil || got.Time.Hour != 9 {
		t.Errorf("Load() = %+v, %v; want hour 9", got, err)
	}
}

func TestFilePreferenceStoreSaveWrapsErrors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	err := NewFilePreferenceStore(filepath.Join(blocker, "reminder.yaml")).Save(DefaultPreference())
	if err == nil {
		t.Fatal("expected error when the parent is a file")
	}
	if !strings.Contains(err.Error(), "failed to") {
		t.Errorf("error %q is not wrapped", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("error %q does not wrap its cause", err)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"20:00", TimeOfDay{20, 0}, false},
		{"07:05", TimeOfDay{7, 5}, false},
		{" 0:00 ", TimeOfDay{0, 0}, false},
		{"24:00", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
		{"12", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if s := (TimeOfDay{Hour: 7, Minute: 5}).String(); s != "07:05" {
		t.Errorf("String() = %q, want 07:05", s)
	}
}
