package engine

import (
	"github.com/karashiro/jobtrack-api/internal/logger"
	"github.com/karashiro/jobtrack-api/internal/mailer"
	"github.com/karashiro/jobtrack-api/internal/models"
)

// Dispatcher fans a reminder out to its delivery channels.
type Dispatcher struct {
	mailer mailer.Mailer
	log    *logger.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(m mailer.Mailer, log *logger.Logger) *Dispatcher {
	return &Dispatcher{mailer: m, log: log}
}

// normalizeChannels drops unknown and duplicate channel names. An empty
// result falls back to in_app.
func normalizeChannels(raw []models.ReminderChannel) []models.ReminderChannel {
	seen := make(map[models.ReminderChannel]bool, len(raw))
	out := make([]models.ReminderChannel, 0, len(raw))
	for _, ch := range raw {
		if !ch.Valid() || seen[ch] {
			continue
		}
		seen[ch] = true
		out = append(out, ch)
	}
	if len(out) == 0 {
		out = append(out, models.ChannelInApp)
	}
	return out
}

// Dispatch delivers the reminder over each channel. In-app delivery is the
// marked reminder row itself; calendar delivery is recorded but not yet
// wired to an external calendar.
func (d *Dispatcher) Dispatch(reminder *models.Reminder, user *models.User, channels []models.ReminderChannel, body string) {
	for _, ch := range channels {
		switch ch {
		case models.ChannelInApp:
			// Surfaced through the reminders list once sent is set.
		case models.ChannelEmail:
			d.mailer.Send(mailer.Message{
				Recipients: []string{user.Email},
				Subject:    reminder.Title,
				Body:       body,
			})
		case models.ChannelCalendar:
			d.log.Debug("calendar dispatch recorded", "reminder_id", reminder.ID)
		}
	}
}
