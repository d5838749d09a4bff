package engine

import (
	"time"

	"github.com/karashiro/jobtrack-api/internal/models"
)

type clockTime struct {
	hour   int
	minute int
}

func parseClockTime(value string) (clockTime, bool) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return clockTime{}, false
	}
	return clockTime{hour: t.Hour(), minute: t.Minute()}, true
}

func (c clockTime) minutes() int {
	return c.hour*60 + c.minute
}

// resolveTimezone loads the user's IANA timezone, degrading to UTC when the
// name is empty or unknown.
func resolveTimezone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// withinQuietHours reports whether cur falls inside [start, end). A window
// with start after end wraps across midnight.
func withinQuietHours(cur, start, end clockTime) bool {
	c, s, e := cur.minutes(), start.minutes(), end.minutes()
	if s < e {
		return c >= s && c < e
	}
	return c >= s || c < e
}

// nextAllowedSendTime returns the UTC instant the quiet-hours window ends,
// or nil when sending is allowed now. Identical start and end disable the
// window entirely. Settings that fail to parse are ignored.
func nextAllowedSendTime(user *models.User, settings *models.UserSettings, now time.Time) *time.Time {
	if settings == nil || settings.QuietHoursStart == nil || settings.QuietHoursEnd == nil {
		return nil
	}
	start, ok := parseClockTime(*settings.QuietHoursStart)
	if !ok {
		return nil
	}
	end, ok := parseClockTime(*settings.QuietHoursEnd)
	if !ok {
		return nil
	}
	if start == end {
		return nil
	}

	loc := resolveTimezone(user.Timezone)
	localNow := now.In(loc)
	cur := clockTime{hour: localNow.Hour(), minute: localNow.Minute()}
	if !withinQuietHours(cur, start, end) {
		return nil
	}

	windowEnd := time.Date(localNow.Year(), localNow.Month(), localNow.Day(),
		end.hour, end.minute, 0, 0, loc)
	if !windowEnd.After(localNow) {
		windowEnd = windowEnd.AddDate(0, 0, 1)
	}
	utc := windowEnd.UTC()
	return &utc
}
