package worker

import (
	"context"
	"time"

	"ems/config"
	"ems/models"
	"ems/utils"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderWorker periodically scans for tasks whose reminder date is today
// and emits a REMINDER notification per assigned task. It holds no state
// between runs besides the clock.
type ReminderWorker struct {
	DB       *gorm.DB
	Logger   *logrus.Logger
	Location *time.Location
	Interval time.Duration

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewReminderWorker(db *gorm.DB, logger *logrus.Logger) *ReminderWorker {
	loc, err := time.LoadLocation(config.AppConfig.ReminderZone)
	if err != nil {
		logger.WithError(err).Warnf("invalid reminder zone %q, using local time", config.AppConfig.ReminderZone)
		loc = time.Local
	}

	interval := config.AppConfig.ReminderInterval
	if interval <= 0 {
		interval = 4 * time.Hour
	}

	return &ReminderWorker{
		DB:       db,
		Logger:   logger,
		Location: loc,
		Interval: interval,
		Now:      time.Now,
	}
}

// Start runs the sweep immediately and then on every tick until the context
// is cancelled.
func (rw *ReminderWorker) Start(ctx context.Context) {
	rw.Logger.Info("Reminder worker started")

	rw.Sweep()

	ticker := time.NewTicker(rw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rw.Logger.Info("Reminder worker shutting down...")
			return
		case <-ticker.C:
			rw.Sweep()
		}
	}
}

// Sweep sends one reminder per task due today. It only acts inside the
// 08:00-18:00 window of the configured zone. A failure for one task is
// logged and never aborts the remaining tasks.
func (rw *ReminderWorker) Sweep() {
	now := rw.Now().In(rw.Location)
	if now.Hour() < 8 || now.Hour() >= 18 {
		rw.Logger.WithField("hour", now.Hour()).Debug("outside reminder window, skipping sweep")
		return
	}

	today := utils.DateOf(rw.Now(), rw.Location)

	var tasks []models.Task
	if err := rw.DB.Where("reminder_date = ?", today).Find(&tasks).Error; err != nil {
		rw.Logger.WithError(err).Error("failed to fetch tasks due for reminder")
		sentry.CaptureException(err)
		return
	}

	rw.Logger.WithField("count", len(tasks)).Info("found tasks with reminders due today")

	for i := range tasks {
		if err := utils.SendTaskReminder(rw.DB, &tasks[i]); err != nil {
			rw.Logger.WithError(err).WithField("task", tasks[i].ID).
				Error("failed to send reminder")
			sentry.CaptureException(err)
		}
	}
}
