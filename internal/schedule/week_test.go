package schedule

import (
	"reflect"
	"testing"
)

func TestMergeWithDefault(t *testing.T) {
	tests := []struct {
		name    string
		partial []DaySchedule
		open    map[int]bool
	}{
		{
			name:    "empty input yields closed week",
			partial: nil,
			open:    map[int]bool{},
		},
		{
			name: "single day survives, rest synthesized closed",
			partial: []DaySchedule{
				{Weekday: 1, Open: true, Periods: []TimePeriod{{Start: "09:00", End: "18:00"}}},
			},
			open: map[int]bool{1: true},
		},
		{
			name: "unsorted input comes back sorted",
			partial: []DaySchedule{
				{Weekday: 5, Open: true, Periods: []TimePeriod{{Start: "10:00", End: "16:00"}}},
				{Weekday: 2, Open: true, Periods: []TimePeriod{{Start: "09:00", End: "12:00"}}},
			},
			open: map[int]bool{2: true, 5: true},
		},
		{
			name: "out of range weekday ignored",
			partial: []DaySchedule{
				{Weekday: 9, Open: true, Periods: []TimePeriod{{Start: "09:00", End: "12:00"}}},
			},
			open: map[int]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := MergeWithDefault(tt.partial)

			if len(week) != 7 {
				t.Fatalf("expected 7 days, got %d", len(week))
			}
			for wd, d := range week {
				if d.Weekday != wd {
					t.Errorf("day %d has weekday %d", wd, d.Weekday)
				}
				if d.Open != tt.open[wd] {
					t.Errorf("day %d: open=%v, expected %v", wd, d.Open, tt.open[wd])
				}
				if !d.Open && len(d.Periods) != 0 {
					t.Errorf("day %d closed but has %d periods", wd, len(d.Periods))
				}
			}
		})
	}
}

func TestMergeWithDefaultIdempotent(t *testing.T) {
	partial := []DaySchedule{
		{Weekday: 3, Open: true, Periods: []TimePeriod{
			{Start: "14:00", End: "18:00"},
			{Start: "09:00", End: "12:00"},
		}},
		{Weekday: 0, Open: false, Periods: []TimePeriod{{Start: "08:00", End: "10:00"}}},
	}

	once := MergeWithDefault(partial)
	twice := MergeWithDefault(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		name string
		in   DaySchedule
		want []TimePeriod
	}{
		{
			name: "closed day loses periods",
			in:   DaySchedule{Weekday: 0, Open: false, Periods: []TimePeriod{{Start: "09:00", End: "12:00"}}},
			want: []TimePeriod{},
		},
		{
			name: "periods sorted by start",
			in: DaySchedule{Weekday: 1, Open: true, Periods: []TimePeriod{
				{Start: "14:00", End: "18:00"},
				{Start: "09:00", End: "12:00"},
			}},
			want: []TimePeriod{{Start: "09:00", End: "12:00"}, {Start: "14:00", End: "18:00"}},
		},
		{
			name: "overlapping periods merged",
			in: DaySchedule{Weekday: 1, Open: true, Periods: []TimePeriod{
				{Start: "09:00", End: "13:00"},
				{Start: "11:00", End: "15:00"},
			}},
			want: []TimePeriod{{Start: "09:00", End: "15:00"}},
		},
		{
			name: "touching periods merged",
			in: DaySchedule{Weekday: 1, Open: true, Periods: []TimePeriod{
				{Start: "09:00", End: "12:00"},
				{Start: "12:00", End: "15:00"},
			}},
			want: []TimePeriod{{Start: "09:00", End: "15:00"}},
		},
		{
			name: "invalid periods dropped",
			in: DaySchedule{Weekday: 1, Open: true, Periods: []TimePeriod{
				{Start: "12:00", End: "09:00"},
				{Start: "xx", End: "10:00"},
				{Start: "10:00", End: "11:00"},
			}},
			want: []TimePeriod{{Start: "10:00", End: "11:00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDay(tt.in)
			if !reflect.DeepEqual(got.Periods, tt.want) {
				t.Errorf("periods = %+v, want %+v", got.Periods, tt.want)
			}
		})
	}
}

func TestValidateWeek(t *testing.T) {
	full := MergeWithDefault(nil)

	if _, err := ValidateWeek(full); err != nil {
		t.Fatalf("complete week rejected: %v", err)
	}

	if _, err := ValidateWeek(full[:6]); err != ErrInvalidWeekLength {
		t.Errorf("expected ErrInvalidWeekLength for 6 days, got %v", err)
	}

	dup := append([]DaySchedule{}, full...)
	dup[6].Weekday = 0
	if _, err := ValidateWeek(dup); err != ErrInvalidWeekLength {
		t.Errorf("expected ErrInvalidWeekLength for duplicated weekday, got %v", err)
	}
}
