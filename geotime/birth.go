package geotime

import (
	"strings"
	"time"

	"github.com/teranos/kpnadi/errors"
)

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseBirth resolves a birth instant.
//
// datetime may be a full RFC3339 timestamp, in which case timezone is only
// used when the timestamp carries no offset. Otherwise date ("2006-01-02")
// and clock ("15:04[:05]") are read in the given timezone.
func ParseBirth(datetime, date, clock, timezone string) (time.Time, error) {
	if dt := strings.TrimSpace(datetime); dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			return t, nil
		}
		return parseLocal(dt, timezone)
	}

	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, errors.New("birth date is required")
	}
	if clock == "" {
		clock = "12:00"
	}
	return parseLocal(date+" "+clock, timezone)
}

func parseLocal(value, timezone string) (time.Time, error) {
	loc := time.UTC
	if strings.TrimSpace(timezone) != "" {
		var err error
		loc, err = LoadLocation(timezone)
		if err != nil {
			return time.Time{}, err
		}
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.WithHint(
		errors.Newf("unrecognized birth time %q", value),
		"use RFC3339 (1990-04-12T06:30:00+05:30) or date 1990-04-12 with time 06:30")
}

// ParseInstant reads a reference time such as the --now flag. It accepts
// everything ParseBirth does plus a bare date, read as midnight.
func ParseInstant(value, timezone string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse("2006-01-02", value); err == nil {
		value += " 00:00"
	}
	t, err := ParseBirth(value, "", "", timezone)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid instant %q", value)
	}
	return t, nil
}
