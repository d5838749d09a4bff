package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/karashiro/jobtrack-api/internal/logger"
	"github.com/karashiro/jobtrack-api/internal/models"
	"github.com/karashiro/jobtrack-api/internal/repository"
)

// Result summarizes a single scan pass.
type Result struct {
	Sent     int
	Deferred int
}

// Engine scans for due reminders and either dispatches them or defers them
// past the owner's quiet-hours window.
type Engine struct {
	reminders  repository.ReminderRepository
	dispatcher *Dispatcher
	batchSize  int
	log        *logger.Logger
}

// NewEngine creates a new Engine. batchSize caps how many reminders one
// scan pass picks up; zero means uncapped.
func NewEngine(reminders repository.ReminderRepository, dispatcher *Dispatcher, batchSize int, log *logger.Logger) *Engine {
	return &Engine{
		reminders:  reminders,
		dispatcher: dispatcher,
		batchSize:  batchSize,
		log:        log,
	}
}

// Scan picks up unsent reminders due at or before now and processes each
// one. Reminders inside their owner's quiet hours are deferred to the
// window end; the rest are dispatched and marked sent. All row mutations
// from one pass are flushed together.
func (e *Engine) Scan(ctx context.Context, now time.Time) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	now = now.UTC()

	due, err := e.reminders.ListDue(now, e.batchSize)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list due reminders: %w", err)
	}

	var result Result
	dirty := make([]*models.Reminder, 0, len(due))
	for i := range due {
		reminder := &due[i]
		user := &reminder.User
		if user.ID == "" {
			e.log.Warn("skipping reminder with missing owner", "reminder_id", reminder.ID)
			continue
		}

		if deferUntil := nextAllowedSendTime(user, user.Settings, now); deferUntil != nil {
			reminder.DueAt = *deferUntil
			reminder.Version++
			result.Deferred++
			dirty = append(dirty, reminder)
			continue
		}

		e.dispatch(reminder, user, now)
		result.Sent++
		dirty = append(dirty, reminder)
	}

	if err := e.reminders.SaveBatch(dirty); err != nil {
		return Result{}, fmt.Errorf("failed to save scan batch: %w", err)
	}
	return result, nil
}

func (e *Engine) dispatch(reminder *models.Reminder, user *models.User, now time.Time) {
	channels := normalizeChannels(reminder.Channels)

	meta := make(map[string]any, len(reminder.Meta)+2)
	for k, v := range reminder.Meta {
		meta[k] = v
	}

	body := fmt.Sprintf("Reminder: %s. Due at %s", reminder.Title, reminder.DueAt.UTC().Format(time.RFC3339))
	if custom, ok := meta["body"].(string); ok && custom != "" {
		body = custom
	}
	if actionURL, ok := meta["action_url"].(string); ok && actionURL != "" {
		body = fmt.Sprintf("%s\n\n%s", body, actionURL)
	}

	e.dispatcher.Dispatch(reminder, user, channels, body)

	dispatched := make([]string, len(channels))
	for i, ch := range channels {
		dispatched[i] = string(ch)
	}
	meta["dispatched_channels"] = dispatched
	meta["dispatched_at"] = now.Format(time.RFC3339)

	reminder.Meta = meta
	reminder.Sent = true
	sentAt := now
	reminder.SentAt = &sentAt
	reminder.Version++
}
