package schedule

import (
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveExceptions(t *testing.T) {
	nov10 := date(2025, time.November, 10)

	tests := []struct {
		name       string
		exceptions []Exception
		day        time.Time
		wantKind   EffectKind
		wantRanges []TimePeriod
	}{
		{
			name:     "no exceptions",
			day:      nov10,
			wantKind: EffectNone,
		},
		{
			name: "outside date range",
			exceptions: []Exception{
				{DateStart: date(2025, time.November, 11), DateEnd: date(2025, time.November, 12)},
			},
			day:      nov10,
			wantKind: EffectNone,
		},
		{
			name: "full day on range boundary, inclusive",
			exceptions: []Exception{
				{DateStart: date(2025, time.November, 8), DateEnd: nov10, Kind: ExceptionHoliday},
			},
			day:      nov10,
			wantKind: EffectFullDay,
		},
		{
			name: "date comparison ignores time of day",
			exceptions: []Exception{
				{
					DateStart: time.Date(2025, time.November, 10, 23, 30, 0, 0, time.UTC),
					DateEnd:   time.Date(2025, time.November, 10, 23, 30, 0, 0, time.UTC),
				},
			},
			day:      nov10,
			wantKind: EffectFullDay,
		},
		{
			name: "partial block",
			exceptions: []Exception{
				{DateStart: nov10, DateEnd: nov10, TimeStart: "13:00", TimeEnd: "15:00", Kind: ExceptionMaintenance},
			},
			day:        nov10,
			wantKind:   EffectPartial,
			wantRanges: []TimePeriod{{Start: "13:00", End: "15:00"}},
		},
		{
			name: "full day dominates partials",
			exceptions: []Exception{
				{DateStart: nov10, DateEnd: nov10, TimeStart: "13:00", TimeEnd: "15:00"},
				{DateStart: nov10, DateEnd: nov10},
			},
			day:      nov10,
			wantKind: EffectFullDay,
		},
		{
			name: "overlapping partials union into one range",
			exceptions: []Exception{
				{DateStart: nov10, DateEnd: nov10, TimeStart: "13:00", TimeEnd: "15:00"},
				{DateStart: nov10, DateEnd: nov10, TimeStart: "14:00", TimeEnd: "16:00"},
			},
			day:        nov10,
			wantKind:   EffectPartial,
			wantRanges: []TimePeriod{{Start: "13:00", End: "16:00"}},
		},
		{
			name: "disjoint partials stay separate and sorted",
			exceptions: []Exception{
				{DateStart: nov10, DateEnd: nov10, TimeStart: "16:00", TimeEnd: "17:00"},
				{DateStart: nov10, DateEnd: nov10, TimeStart: "09:00", TimeEnd: "10:00"},
			},
			day:        nov10,
			wantKind:   EffectPartial,
			wantRanges: []TimePeriod{{Start: "09:00", End: "10:00"}, {Start: "16:00", End: "17:00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveExceptions(tt.exceptions, tt.day)
			if got.Kind != tt.wantKind {
				t.Fatalf("kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if tt.wantRanges != nil && !reflect.DeepEqual(got.Ranges, tt.wantRanges) {
				t.Errorf("ranges = %+v, want %+v", got.Ranges, tt.wantRanges)
			}
		})
	}
}
