// Package geotime resolves birth instants: IANA zones, common abbreviations,
// city keywords and fixed UTC offsets.
package geotime

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/teranos/kpnadi/errors"
)

var locationKeywordTimezones = map[string]string{
	"india":         "Asia/Kolkata",
	"delhi":         "Asia/Kolkata",
	"mumbai":        "Asia/Kolkata",
	"chennai":       "Asia/Kolkata",
	"kolkata":       "Asia/Kolkata",
	"bangalore":     "Asia/Kolkata",
	"hyderabad":     "Asia/Kolkata",
	"kathmandu":     "Asia/Kathmandu",
	"nepal":         "Asia/Kathmandu",
	"colombo":       "Asia/Colombo",
	"dhaka":         "Asia/Dhaka",
	"karachi":       "Asia/Karachi",
	"dubai":         "Asia/Dubai",
	"singapore":     "Asia/Singapore",
	"london":        "Europe/London",
	"berlin":        "Europe/Berlin",
	"amsterdam":     "Europe/Amsterdam",
	"new york":      "America/New_York",
	"toronto":       "America/Toronto",
	"chicago":       "America/Chicago",
	"san francisco": "America/Los_Angeles",
	"los angeles":   "America/Los_Angeles",
	"sydney":        "Australia/Sydney",
}

var timezoneByAbbreviation = map[string]string{
	"ist":  "Asia/Kolkata",
	"npt":  "Asia/Kathmandu",
	"pkt":  "Asia/Karachi",
	"gst":  "Asia/Dubai",
	"sgt":  "Asia/Singapore",
	"gmt":  "Etc/GMT",
	"utc":  "UTC",
	"bst":  "Europe/London",
	"cet":  "Europe/Berlin",
	"cest": "Europe/Berlin",
	"est":  "America/New_York",
	"edt":  "America/New_York",
	"cst":  "America/Chicago",
	"cdt":  "America/Chicago",
	"pst":  "America/Los_Angeles",
	"pdt":  "America/Los_Angeles",
	"aest": "Australia/Sydney",
}

// offsetPattern matches "+05:30", "-0400", "UTC+5:30", "GMT-3".
var offsetPattern = regexp.MustCompile(`^(?i:utc|gmt)?\s*([+-])(\d{1,2})(?::?(\d{2}))?$`)

// NormalizeTimezone attempts to resolve user input into a valid IANA timezone.
func NormalizeTimezone(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.New("timezone cannot be empty")
	}

	if isValidTimezone(trimmed) {
		return trimmed, nil
	}

	candidate := sanitizeTimezone(trimmed)
	if isValidTimezone(candidate) {
		return candidate, nil
	}

	lower := strings.ToLower(trimmed)
	if tz, ok := timezoneByAbbreviation[lower]; ok {
		return tz, nil
	}

	if tz := GuessTimezoneFromLocation(lower); tz != "" {
		return tz, nil
	}

	return "", errors.Newf("unknown timezone: %s", input)
}

// GuessTimezoneFromLocation uses keyword heuristics to derive a timezone.
// The longest matching keyword wins so results do not depend on map order.
func GuessTimezoneFromLocation(location string) string {
	lower := strings.ToLower(strings.TrimSpace(location))
	best := ""
	bestLen := 0
	for keyword, timezone := range locationKeywordTimezones {
		if strings.Contains(lower, keyword) && len(keyword) > bestLen {
			best, bestLen = timezone, len(keyword)
		}
	}
	return best
}

// ParseOffset parses a fixed UTC offset such as "+05:30" or "UTC-4".
func ParseOffset(input string) (*time.Location, bool) {
	m := offsetPattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return nil, false
	}
	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	if hours > 14 || minutes > 59 {
		return nil, false
	}
	seconds := hours*3600 + minutes*60
	if m[1] == "-" {
		seconds = -seconds
	}
	return time.FixedZone(FormatOffset(seconds), seconds), true
}

// FormatOffset renders an offset in seconds as "+05:30".
func FormatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return sign + twoDigits(seconds/3600) + ":" + twoDigits((seconds%3600)/60)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// LoadLocation resolves a zone name, abbreviation, location keyword or
// fixed offset into a *time.Location.
func LoadLocation(input string) (*time.Location, error) {
	if loc, ok := ParseOffset(input); ok {
		return loc, nil
	}
	name, err := NormalizeTimezone(input)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load timezone %s", name)
	}
	return loc, nil
}

func sanitizeTimezone(tz string) string {
	trimmed := strings.TrimSpace(tz)
	trimmed = strings.Trim(trimmed, "\"'")
	trimmed = strings.ReplaceAll(trimmed, " ", "_")
	if strings.Contains(trimmed, "/") {
		parts := strings.Split(trimmed, "/")
		for i, part := range parts {
			parts[i] = title(part)
		}
		return strings.Join(parts, "/")
	}
	return title(trimmed)
}

func title(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func isValidTimezone(tz string) bool {
	if tz == "" || strings.EqualFold(tz, "local") {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}
