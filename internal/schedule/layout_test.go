package schedule

import (
	"math"
	"testing"
)

func TestGridWindow(t *testing.T) {
	tests := []struct {
		name      string
		week      Week
		wantStart int
		wantEnd   int
	}{
		{
			name:      "empty week falls back to business hours",
			week:      DefaultWeek(),
			wantStart: 8,
			wantEnd:   21,
		},
		{
			name: "global min and max across days",
			week: MergeWithDefault([]DaySchedule{
				{Weekday: 1, Open: true, Periods: []TimePeriod{{Start: "09:00", End: "12:00"}}},
				{Weekday: 3, Open: true, Periods: []TimePeriod{{Start: "07:00", End: "19:30"}}},
			}),
			wantStart: 7,
			wantEnd:   19,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := GridWindow(tt.week)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("window = %d-%d, want %d-%d", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFractionOfDay(t *testing.T) {
	tests := []struct {
		name      string
		hm        string
		start     int
		end       int
		want      float64
		wantOK    bool
	}{
		// Window 09-18 spans (18+1)*60 - 9*60 = 600 minutes.
		{"window start", "09:00", 9, 18, 0.0, true},
		{"mid window", "14:00", 9, 18, 0.5, true},
		{"closing hour still inside", "18:30", 9, 18, 0.95, true},
		{"before window clamps to zero", "08:00", 9, 18, 0.0, true},
		{"degenerate window hidden", "10:00", 18, 9, 0, false},
		{"unparseable time hidden", "nope", 9, 18, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FractionOfDay(tt.hm, tt.start, tt.end)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("fraction = %v, want %v", got, tt.want)
			}
		})
	}
}
