// ABOUTME: Recurrence rule construction and clock arithmetic for bookings
// ABOUTME: Builds FREQ/UNTIL rule strings and computes HH:MM durations
package recurrence

import (
	"fmt"
	"strconv"
	"strings"
)

// FreqNone is the sentinel for a single, non-repeating booking.
const FreqNone = "none"

// BuildRRule converts a repeat frequency and an optional end date
// (YYYY-MM-DD) into a recurrence rule string. An empty or "none" frequency
// yields "" meaning a single occurrence. The until date is interpreted as
// the last instant of that calendar day in the application timezone:
//
//	BuildRRule("weekly", "2024-06-01") == "FREQ=WEEKLY;UNTIL=20240601T235959"
//	BuildRRule("daily", "")            == "FREQ=DAILY"
func BuildRRule(repeat, repeatUntil string) string {
	if repeat == "" || repeat == FreqNone {
		return ""
	}
	rule := "FREQ=" + strings.ToUpper(repeat)
	if repeatUntil != "" {
		until := strings.ReplaceAll(repeatUntil, "-", "")
		rule += ";UNTIL=" + until + "T235959"
	}
	return rule
}

// MinutesBetween parses two HH:MM clock values on the same calendar day and
// returns end minus start in minutes. The result can be zero or negative;
// the submission flow owns rejecting non-positive durations. Recurrence
// crossing midnight is not supported, so an end clock at or before the start
// clock is always invalid there, never "next day".
func MinutesBetween(startClock, endClock string) (int, error) {
	start, err := parseClock(startClock)
	if err != nil {
		return 0, fmt.Errorf("start time: %w", err)
	}
	end, err := parseClock(endClock)
	if err != nil {
		return 0, fmt.Errorf("end time: %w", err)
	}
	return end - start, nil
}

// BuildDateTime joins a YYYY-MM-DD date and an HH:MM clock into the
// backend's naive local timestamp form.
func BuildDateTime(date, clock string) string {
	if date == "" || clock == "" {
		return ""
	}
	return date + "T" + clock + ":00"
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(clock string) (int, error) {
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock %q out of range", clock)
	}
	return hours*60 + minutes, nil
}
