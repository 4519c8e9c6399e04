package schedule

import (
	"testing"
	"time"
)

// 2025-11-10 is a Monday, 2025-11-09 a Sunday.
var (
	monday = date(2025, time.November, 10)
	sunday = date(2025, time.November, 9)
)

func weekOpen(weekday int, periods ...TimePeriod) Week {
	week := DefaultWeek()
	week[weekday] = DaySchedule{Weekday: weekday, Open: true, Periods: periods}
	return week
}

func freeStarts(av DayAvailability) []string {
	out := make([]string, 0, len(av.Free))
	for _, s := range av.Free {
		out = append(out, s.Start)
	}
	return out
}

func assertStarts(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d slots %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestClosedSundayBlocksWholeDay(t *testing.T) {
	av := ComputeDayAvailability(DayInput{
		Date:         sunday,
		LocationWeek: weekOpen(1, TimePeriod{Start: "09:00", End: "18:00"}),
	})

	if len(av.Free) != 0 {
		t.Fatalf("expected no free slots, got %v", av.Free)
	}
	if len(av.Busy) != 1 {
		t.Fatalf("expected single busy interval, got %+v", av.Busy)
	}
	b := av.Busy[0]
	if b.Kind != BusyClosedDay || b.Start != "00:00" || b.End != "23:59" {
		t.Errorf("expected closed_day 00:00-23:59, got %+v", b)
	}
}

func TestFullDayExceptionDominates(t *testing.T) {
	av := ComputeDayAvailability(DayInput{
		Date:         monday,
		LocationWeek: weekOpen(1, TimePeriod{Start: "09:00", End: "18:00"}),
		Exceptions: []Exception{
			{ID: 7, DateStart: monday, DateEnd: monday, Kind: ExceptionHoliday},
		},
	})

	if len(av.Free) != 0 {
		t.Fatalf("expected no free slots on holiday, got %v", av.Free)
	}
	if len(av.Busy) != 1 || av.Busy[0].Kind != BusyClosedDay {
		t.Fatalf("expected single closed_day interval, got %+v", av.Busy)
	}
}

func TestLocationGaps(t *testing.T) {
	tests := []struct {
		name     string
		periods  []TimePeriod
		wantGaps []TimePeriod
	}{
		{
			name:     "two periods produce one gap",
			periods:  []TimePeriod{{Start: "09:00", End: "12:00"}, {Start: "14:00", End: "18:00"}},
			wantGaps: []TimePeriod{{Start: "12:00", End: "14:00"}},
		},
		{
			name:     "single period produces none",
			periods:  []TimePeriod{{Start: "09:00", End: "18:00"}},
			wantGaps: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av := ComputeDayAvailability(DayInput{
				Date:         monday,
				LocationWeek: weekOpen(1, tt.periods...),
			})

			var gaps []TimePeriod
			for _, b := range av.Busy {
				if b.Kind == BusyLocationGap {
					gaps = append(gaps, TimePeriod{Start: b.Start, End: b.End})
				}
			}

			if len(gaps) != len(tt.wantGaps) {
				t.Fatalf("expected %d gaps, got %+v", len(tt.wantGaps), gaps)
			}
			for i, g := range tt.wantGaps {
				if gaps[i] != g {
					t.Errorf("gap %d: expected %+v, got %+v", i, g, gaps[i])
				}
			}
		})
	}
}

func TestExistingAppointmentExcludesSlot(t *testing.T) {
	av := ComputeDayAvailability(DayInput{
		Date:         monday,
		LocationWeek: weekOpen(1, TimePeriod{Start: "09:00", End: "18:00"}),
		Appointments: []Booking{{ID: 1, Start: "13:00", End: "14:00"}},
		SlotMinutes:  60,
	})

	assertStarts(t, freeStarts(av),
		"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00")
}

func TestBackToBackBookingAllowed(t *testing.T) {
	av := ComputeDayAvailability(DayInput{
		Date:         monday,
		LocationWeek: weekOpen(1, TimePeriod{Start: "09:00", End: "12:00"}),
		Appointments: []Booking{{ID: 1, Start: "09:00", End: "10:00"}},
		SlotMinutes:  60,
	})

	// A busy interval ending exactly at 10:00 must not block the 10:00 slot.
	assertStarts(t, freeStarts(av), "10:00", "11:00")
}

func TestFreeSlotsNeverOverlapBusy(t *testing.T) {
	av := ComputeDayAvailability(DayInput{
		Date: monday,
		LocationWeek: weekOpen(1,
			TimePeriod{Start: "09:00", End: "12:00"},
			TimePeriod{Start: "14:00", End: "18:00"},
		),
		Exceptions: []Exception{
			{DateStart: monday, DateEnd: monday, TimeStart: "15:00", TimeEnd: "15:30"},
		},
		Appointments: []Booking{{ID: 4, Start: "10:00", End: "10:45"}},
		Blocks:       []Booking{{ID: 9, Start: "16:30", End: "17:00"}},
		SlotMinutes:  30,
	})

	for _, slot := range av.Free {
		ss, _ := minuteOf(slot.Start)
		se, _ := minuteOf(slot.End)
		for _, b := range av.Busy {
			bs, _ := minuteOf(b.Start)
			be, _ := minuteOf(b.End)
			if bs < se && be > ss {
				t.Errorf("free slot %+v overlaps busy %+v", slot, b)
			}
		}
	}
}

func TestAgentScheduleNarrowsLocationHours(t *testing.T) {
	agent := DefaultWeek()
	agent[1] = DaySchedule{Weekday: 1, Open: true, Periods: []TimePeriod{{Start: "10:00", End: "14:00"}}}

	av := ComputeDayAvailability(DayInput{
		Date:         monday,
		LocationWeek: weekOpen(1, TimePeriod{Start: "09:00", End: "18:00"}),
		AgentWeek:    agent,
		SlotMinutes:  60,
	})

	assertStarts(t, freeStarts(av), "10:00", "11:00", "12:00", "13:00")

	var kinds []BusyKind
	for _, b := range av.Busy {
		kinds = append(kinds, b.Kind)
	}
	if len(kinds) != 2 || kinds[0] != BusyAgentBlock || kinds[1] != BusyAgentBlock {
		t.Errorf("expected two agent_unavailable intervals, got %+v", av.Busy)
	}
}

func TestAgentClosedDayOnOpenLocation(t *testing.T) {
	agent := DefaultWeek() // all closed

	av := ComputeDayAvailability(DayInput{
		Date:         monday,
		LocationWeek: weekOpen(1, TimePeriod{Start: "09:00", End: "18:00"}),
		AgentWeek:    agent,
	})

	if len(av.Free) != 0 {
		t.Fatalf("expected no free slots, got %v", av.Free)
	}
	if len(av.Busy) != 1 || av.Busy[0].Kind != BusyAgentBlock {
		t.Fatalf("expected agent_unavailable over whole window, got %+v", av.Busy)
	}
}

func TestRecurringBlockAndGranularity(t *testing.T) {
	av := ComputeDayAvailability(DayInput{
		Date:         monday,
		LocationWeek: weekOpen(1, TimePeriod{Start: "09:00", End: "11:00"}),
		Blocks:       []Booking{{ID: 2, Start: "09:30", End: "10:00"}},
		SlotMinutes:  30,
	})

	assertStarts(t, freeStarts(av), "09:00", "10:00", "10:30")
}

func TestOpenDayWithoutPeriods(t *testing.T) {
	week := DefaultWeek()
	week[1] = DaySchedule{Weekday: 1, Open: true}

	av := ComputeDayAvailability(DayInput{Date: monday, LocationWeek: week})

	if len(av.Free) != 0 || len(av.Busy) != 0 {
		t.Errorf("open day without periods should yield nothing, got %+v", av)
	}
}

func TestBookable(t *testing.T) {
	in := DayInput{
		Date: monday,
		LocationWeek: weekOpen(1,
			TimePeriod{Start: "09:00", End: "12:00"},
			TimePeriod{Start: "14:00", End: "18:00"},
		),
		Appointments: []Booking{{ID: 1, Start: "15:00", End: "16:00"}},
	}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"fits inside morning period", "09:30", "10:30", true},
		{"spans the lunch gap", "11:00", "14:30", false},
		{"overlaps existing appointment", "15:30", "16:30", false},
		{"back to back after appointment", "16:00", "17:00", true},
		{"outside opening hours", "18:00", "19:00", false},
		{"inverted interval", "11:00", "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bookable(in, tt.start, tt.end); got != tt.want {
				t.Errorf("Bookable(%s-%s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
