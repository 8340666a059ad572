// ABOUTME: Cron-backed scheduler for the daily journal reminder.
// ABOUTME: Keeps a single recurring job and calls a notify function when it fires.
package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// NotifyFunc delivers a reminder notification.
type NotifyFunc func(title, body string)

// CronScheduler runs the daily reminder with robfig/cron.
type CronScheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	loc      *time.Location
	notify   NotifyFunc
	entryID  cron.EntryID
	schedule cron.Schedule
	active   bool
	started  bool
}

// NewCronScheduler creates a scheduler in loc (nil means local time).
func NewCronScheduler(loc *time.Location, notify NotifyFunc) *CronScheduler {
	if loc == nil {
		loc = time.Local
	}
	if notify == nil {
		notify = func(string, string) {}
	}
	return &CronScheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		loc:    loc,
		notify: notify,
	}
}

// CronSpec returns the standard five-field spec firing daily at t.
func CronSpec(t TimeOfDay) string {
	return fmt.Sprintf("%d %d * * *", t.Minute, t.Hour)
}

// Schedule replaces any pending reminder with one firing daily at t.
func (c *CronScheduler) Schedule(t TimeOfDay) error {
	if !t.Valid() {
		return fmt.Errorf("time %s out of range", t)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	sched, err := cron.ParseStandard(CronSpec(t))
	if err != nil {
		return fmt.Errorf("failed to parse cron spec: %w", err)
	}

	c.cancelLocked()
	c.entryID = c.cron.Schedule(sched, cron.FuncJob(func() {
		c.notify(NotificationTitle, NotificationBody)
	}))
	c.schedule = sched
	c.active = true

	if !c.started {
		c.cron.Start()
		c.started = true
	}
	return nil
}

// Cancel removes any pending reminder.
func (c *CronScheduler) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

func (c *CronScheduler) cancelLocked() {
	if c.active {
		c.cron.Remove(c.entryID)
		c.schedule = nil
		c.active = false
	}
}

// Next returns the next fire time, or false when nothing is scheduled.
func (c *CronScheduler) Next() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return time.Time{}, false
	}
	return c.schedule.Next(time.Now().In(c.loc)), true
}

// Stop halts the cron runner and waits for a running job to finish.
func (c *CronScheduler) Stop() {
	c.mu.Lock()
	started := c.started
	c.started = false
	c.mu.Unlock()
	if started {
		<-c.cron.Stop().Done()
	}
}
