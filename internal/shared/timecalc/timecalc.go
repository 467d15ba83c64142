package timecalc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultRegularHoursThreshold is the daily hour count above which
	// worked time counts as overtime. Overridable via WORK_REGULAR_HOURS.
	DefaultRegularHoursThreshold = 8.0

	minutesPerDay = 24 * 60

	MaxBreakMinutes = 480
)

type Config struct {
	RegularHoursThreshold float64
}

// ConfigFromEnv reads WORK_REGULAR_HOURS, falling back to the default
// when unset or unparsable.
func ConfigFromEnv() Config {
	cfg := Config{RegularHoursThreshold: DefaultRegularHoursThreshold}
	if v := os.Getenv("WORK_REGULAR_HOURS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			cfg.RegularHoursThreshold = parsed
		}
	}
	return cfg
}

type Result struct {
	HoursWorked float64
	OTHours     float64
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", v)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", v)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", v)
	}

	return hour*60 + minute, nil
}

// Compute derives worked and overtime hours from a shift. An end time
// earlier than the start is an overnight shift ending the next day.
// A break longer than the shift clamps worked time to zero.
func (c Config) Compute(startTime, endTime string, breakMinutes int) (Result, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Result{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Result{}, err
	}
	if breakMinutes < 0 || breakMinutes > MaxBreakMinutes {
		return Result{}, fmt.Errorf("break minutes %d out of range 0-%d", breakMinutes, MaxBreakMinutes)
	}

	delta := end - start
	if delta < 0 {
		delta += minutesPerDay
	}

	workMinutes := delta - breakMinutes
	if workMinutes < 0 {
		workMinutes = 0
	}

	threshold := c.RegularHoursThreshold
	if threshold <= 0 {
		threshold = DefaultRegularHoursThreshold
	}

	hoursWorked := float64(workMinutes) / 60
	otHours := hoursWorked - threshold
	if otHours < 0 {
		otHours = 0
	}

	return Result{HoursWorked: hoursWorked, OTHours: otHours}, nil
}
