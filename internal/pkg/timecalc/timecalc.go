// Package timecalc derives gross, break and net minutes from a pair of
// wall-clock times and a break policy.
package timecalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidClock       = errors.New("invalid clock time, expected HH:MM")
	ErrInvalidBreakPolicy = errors.New("break threshold and duration must not be negative")
	ErrNegativeDuration   = errors.New("break duration exceeds worked time")
)

// BreakPolicy deducts DurationMinutes once gross time reaches ThresholdHours.
type BreakPolicy struct {
	ThresholdHours  float64 `json:"break_threshold_hours"`
	DurationMinutes int     `json:"break_duration_minutes"`
}

var DefaultBreakPolicy = BreakPolicy{ThresholdHours: 6, DurationMinutes: 30}

func (p BreakPolicy) Validate() error {
	if p.ThresholdHours < 0 || p.DurationMinutes < 0 {
		return ErrInvalidBreakPolicy
	}
	return nil
}

type Durations struct {
	GrossMinutes int `json:"gross_minutes"`
	BreakMinutes int `json:"break_minutes"`
	NetMinutes   int `json:"net_minutes"`
}

// ParseClock returns minutes since midnight. Seconds, when present, are ignored.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}

	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock parses s and returns its canonical HH:MM form.
func NormalizeClock(s string) (string, error) {
	m, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(m), nil
}

// Calculate computes the durations for a start/end pair. A missing or empty
// time yields all zeros. An end before the start is taken to be on the next
// day. The break applies when gross reaches the threshold exactly.
func Calculate(start, end *string, policy BreakPolicy) (Durations, error) {
	if err := policy.Validate(); err != nil {
		return Durations{}, err
	}
	if start == nil || end == nil || strings.TrimSpace(*start) == "" || strings.TrimSpace(*end) == "" {
		return Durations{}, nil
	}

	startMin, err := ParseClock(*start)
	if err != nil {
		return Durations{}, err
	}
	endMin, err := ParseClock(*end)
	if err != nil {
		return Durations{}, err
	}
	if endMin < startMin {
		endMin += minutesPerDay
	}

	gross := endMin - startMin
	breakMin := 0
	if float64(gross) >= policy.ThresholdHours*60 {
		breakMin = policy.DurationMinutes
	}

	net := gross - breakMin
	if net < 0 {
		return Durations{}, fmt.Errorf("%w: gross %d min, break %d min", ErrNegativeDuration, gross, breakMin)
	}

	return Durations{GrossMinutes: gross, BreakMinutes: breakMin, NetMinutes: net}, nil
}
