package schedule

import "time"

// Exception kinds mirror what location admins can register.
const (
	ExceptionHoliday      = "holiday"
	ExceptionVacation     = "vacation"
	ExceptionSpecialEvent = "special_event"
	ExceptionMaintenance  = "maintenance"
	ExceptionOther        = "other"
)

// Exception is a concrete date-range override of a location's normal hours.
// There is no recurrence. When TimeStart/TimeEnd are empty the whole day is
// blocked on every date in [DateStart, DateEnd].
type Exception struct {
	ID        uint
	DateStart time.Time
	DateEnd   time.Time
	TimeStart string
	TimeEnd   string
	Kind      string
}

type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectFullDay
	EffectPartial
)

// ExceptionEffect is the resolved impact of all exceptions on one date.
type ExceptionEffect struct {
	Kind   EffectKind
	Ranges []TimePeriod
}

func sameOrBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad <= bd
}

func (e Exception) coversDate(date time.Time) bool {
	return sameOrBefore(e.DateStart, date) && sameOrBefore(date, e.DateEnd)
}

func (e Exception) fullDay() bool {
	return e.TimeStart == "" || e.TimeEnd == ""
}

// ResolveExceptions computes the combined effect of the exceptions that
// cover date. Date matching is inclusive and date-only. Precedence when
// several exceptions apply: any full-day exception dominates; otherwise all
// partial ranges are unioned into a sorted, non-overlapping list.
func ResolveExceptions(exceptions []Exception, date time.Time) ExceptionEffect {
	var partial []TimePeriod

	for _, e := range exceptions {
		if !e.coversDate(date) {
			continue
		}
		if e.fullDay() {
			return ExceptionEffect{Kind: EffectFullDay}
		}
		partial = append(partial, TimePeriod{Start: e.TimeStart, End: e.TimeEnd})
	}

	if len(partial) == 0 {
		return ExceptionEffect{Kind: EffectNone}
	}

	return ExceptionEffect{Kind: EffectPartial, Ranges: sortAndMergePeriods(partial)}
}
