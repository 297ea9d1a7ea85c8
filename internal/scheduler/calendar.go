package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// AllowedDays lists the schedulable weekdays in canonical form.
var AllowedDays = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

var dayAliases = map[string]string{
	"mon": "Mon", "monday": "Mon", "mon.": "Mon", "월": "Mon", "1": "Mon",
	"tue": "Tue", "tuesday": "Tue", "tue.": "Tue", "화": "Tue", "2": "Tue",
	"wed": "Wed", "wednesday": "Wed", "wed.": "Wed", "수": "Wed", "3": "Wed",
	"thu": "Thu", "thursday": "Thu", "thu.": "Thu", "목": "Thu", "4": "Thu",
	"fri": "Fri", "friday": "Fri", "fri.": "Fri", "금": "Fri", "5": "Fri",
}

// NormalizeDay maps a raw weekday token onto one of AllowedDays.
// Saturday, Sunday and anything unrecognised yield ok=false.
func NormalizeDay(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	day, ok := dayAliases[key]
	return day, ok
}

// ComputePeriod derives the canonical period ordinal from an HH:MM pair.
// Only exact one-hour spans aligned on the hour are accepted, and the
// resulting period must fall in [1,9] (period 1 starts at 09:00).
func ComputePeriod(start, end string) (int, bool) {
	startH, startM, ok := parseClock(start)
	if !ok {
		return 0, false
	}
	endH, endM, ok := parseClock(end)
	if !ok {
		return 0, false
	}
	if startM != 0 || endM != 0 {
		return 0, false
	}
	if (endH*60+endM)-(startH*60+startM) != 60 {
		return 0, false
	}
	period := startH - 8
	if period < 1 || period > 9 {
		return 0, false
	}
	return period, true
}

// PeriodRange returns the canonical wall-clock window for a period.
func PeriodRange(period int) (string, string) {
	startHour := 8 + period
	return fmt.Sprintf("%02d:00", startHour), fmt.Sprintf("%02d:00", startHour+1)
}

// SlotWindow is a raw timeslot reduced to its canonical weekly grid cell.
type SlotWindow struct {
	Day    string
	Period int
	Start  string
	End    string
}

// NormalizeSlot canonicalizes a raw (day, start, end) triple. The returned
// window always carries the derived period times, not the raw strings, so
// slots landing on the same period line up exactly regardless of source
// formatting. ok=false means the slot is unusable and must be dropped.
func NormalizeSlot(day, start, end string) (SlotWindow, bool) {
	normalizedDay, ok := NormalizeDay(day)
	if !ok {
		return SlotWindow{}, false
	}
	period, ok := ComputePeriod(start, end)
	if !ok {
		return SlotWindow{}, false
	}
	canonStart, canonEnd := PeriodRange(period)
	return SlotWindow{Day: normalizedDay, Period: period, Start: canonStart, End: canonEnd}, true
}

func parseClock(raw string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}
