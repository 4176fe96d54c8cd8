package timecalc

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestCalculate(t *testing.T) {
	cases := []struct {
		name       string
		start, end *string
		policy     BreakPolicy
		want       Durations
	}{
		{"regular shift with break", strPtr("05:00"), strPtr("13:00"), DefaultBreakPolicy, Durations{480, 30, 450}},
		{"overnight wrap", strPtr("22:00"), strPtr("02:00"), DefaultBreakPolicy, Durations{240, 0, 240}},
		{"below threshold", strPtr("08:00"), strPtr("13:59"), DefaultBreakPolicy, Durations{359, 0, 359}},
		{"exactly at threshold", strPtr("08:00"), strPtr("14:00"), DefaultBreakPolicy, Durations{360, 30, 330}},
		{"fractional threshold", strPtr("08:00"), strPtr("12:30"), BreakPolicy{ThresholdHours: 4.5, DurationMinutes: 15}, Durations{270, 15, 255}},
		{"missing start", nil, strPtr("13:00"), DefaultBreakPolicy, Durations{}},
		{"missing end", strPtr("05:00"), nil, DefaultBreakPolicy, Durations{}},
		{"empty strings", strPtr(""), strPtr(""), DefaultBreakPolicy, Durations{}},
		{"single digit hour and seconds", strPtr("5:00"), strPtr("13:00:59"), DefaultBreakPolicy, Durations{480, 30, 450}},
		{"same start and end", strPtr("09:00"), strPtr("09:00"), DefaultBreakPolicy, Durations{0, 0, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Calculate(c.start, c.end, c.policy)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got != c.want {
				t.Errorf("Calculate() = %+v, want %+v", got, c.want)
			}
			if got.NetMinutes != got.GrossMinutes-got.BreakMinutes {
				t.Errorf("net %d != gross %d - break %d", got.NetMinutes, got.GrossMinutes, got.BreakMinutes)
			}
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	if _, err := Calculate(strPtr("25:00"), strPtr("13:00"), DefaultBreakPolicy); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("invalid start: got %v, want ErrInvalidClock", err)
	}
	if _, err := Calculate(strPtr("05:00"), strPtr("13:0"), DefaultBreakPolicy); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("invalid end: got %v, want ErrInvalidClock", err)
	}
	if _, err := Calculate(strPtr("05:00"), strPtr("13:00"), BreakPolicy{ThresholdHours: -1}); !errors.Is(err, ErrInvalidBreakPolicy) {
		t.Errorf("negative policy: got %v, want ErrInvalidBreakPolicy", err)
	}
	// A zero threshold applies the break to every span, so a 10 minute span
	// with a 30 minute break would go negative.
	if _, err := Calculate(strPtr("05:00"), strPtr("05:10"), BreakPolicy{ThresholdHours: 0, DurationMinutes: 30}); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("negative net: got %v, want ErrNegativeDuration", err)
	}
}

func TestClockRoundTrip(t *testing.T) {
	cases := map[string]string{
		"5:07":     "05:07",
		"05:07":    "05:07",
		"23:59:30": "23:59",
		"00:00":    "00:00",
	}
	for in, want := range cases {
		got, err := NormalizeClock(in)
		if err != nil {
			t.Fatalf("NormalizeClock(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("NormalizeClock(%q) = %q, want %q", in, got, want)
		}
	}
}
