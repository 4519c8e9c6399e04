package schedule

import (
	"sort"
	"time"
)

type BusyKind string

const (
	BusyAppointment BusyKind = "appointment"
	BusyAgentBlock  BusyKind = "agent_unavailable"
	BusyLocationGap BusyKind = "location_gap"
	BusyClosedDay   BusyKind = "closed_day"
)

// BusyInterval is a derived, never-persisted range unavailable for booking,
// tagged by cause. Recomputed on every pass from fresh snapshots.
type BusyInterval struct {
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Kind     BusyKind `json:"kind"`
	SourceID uint     `json:"source_id,omitempty"`
}

// Booking is an existing occupied range (an appointment or a manual block)
// already filtered to the agent and date under computation.
type Booking struct {
	ID    uint
	Start string
	End   string
}

const DefaultSlotMinutes = 60

// DayInput is a full snapshot for one agent on one date. The caller is
// responsible for the snapshot being at least as fresh as the last
// appointment fetch; nothing here caches between calls.
type DayInput struct {
	Date         time.Time
	LocationWeek Week
	AgentWeek    Week // nil: agent follows the location hours
	Exceptions   []Exception
	Appointments []Booking
	Blocks       []Booking
	SlotMinutes  int
}

type DayAvailability struct {
	Busy []BusyInterval `json:"busy"`
	Free []TimePeriod   `json:"free"`
}

// ComputeDayAvailability reconciles location hours, calendar exceptions,
// the agent's own schedule, existing appointments and manual blocks into a
// single busy list plus the free candidate slots at the requested
// granularity. All interval checks use half-open semantics, so back-to-back
// bookings need no gap between them.
func ComputeDayAvailability(in DayInput) DayAvailability {
	closedAllDay := DayAvailability{
		Busy: []BusyInterval{{Start: "00:00", End: "23:59", Kind: BusyClosedDay}},
		Free: []TimePeriod{},
	}

	effect := ResolveExceptions(in.Exceptions, in.Date)
	if effect.Kind == EffectFullDay {
		return closedAllDay
	}

	weekday := int(in.Date.Weekday())
	day := DaySchedule{Weekday: weekday}
	if len(in.LocationWeek) == 7 {
		day = NormalizeDay(in.LocationWeek[weekday])
	}

	// Exceptions restrict an open day; they never open a closed one.
	if !day.Open {
		return closedAllDay
	}

	// Open day with nothing configured yet: not blocked, but nothing bookable.
	if len(day.Periods) == 0 {
		return DayAvailability{Busy: []BusyInterval{}, Free: []TimePeriod{}}
	}

	windowStart, _ := minuteOf(day.Periods[0].Start)
	windowEnd, _ := minuteOf(day.Periods[len(day.Periods)-1].End)

	var busy []BusyInterval

	if effect.Kind == EffectPartial {
		for _, r := range effect.Ranges {
			busy = append(busy, BusyInterval{Start: r.Start, End: r.End, Kind: BusyClosedDay})
		}
	}

	// Gaps between periods of a multi-period day (e.g. 09-12 / 14-18).
	for i := 0; i+1 < len(day.Periods); i++ {
		endCur, _ := minuteOf(day.Periods[i].End)
		startNext, _ := minuteOf(day.Periods[i+1].Start)
		if endCur < startNext {
			busy = append(busy, BusyInterval{
				Start: day.Periods[i].End,
				End:   day.Periods[i+1].Start,
				Kind:  BusyLocationGap,
			})
		}
	}

	busy = append(busy, agentNarrowing(in.AgentWeek, weekday, windowStart, windowEnd)...)

	for _, ap := range in.Appointments {
		busy = append(busy, BusyInterval{Start: ap.Start, End: ap.End, Kind: BusyAppointment, SourceID: ap.ID})
	}
	for _, b := range in.Blocks {
		busy = append(busy, BusyInterval{Start: b.Start, End: b.End, Kind: BusyAgentBlock, SourceID: b.ID})
	}

	sort.Slice(busy, func(i, j int) bool {
		a, _ := minuteOf(busy[i].Start)
		b, _ := minuteOf(busy[j].Start)
		return a < b
	})

	granularity := in.SlotMinutes
	if granularity <= 0 {
		granularity = DefaultSlotMinutes
	}

	free := []TimePeriod{}
	for cur := windowStart; cur+granularity <= windowEnd; cur += granularity {
		if intervalFree(busy, cur, cur+granularity) {
			free = append(free, TimePeriod{Start: hhmm(cur), End: hhmm(cur + granularity)})
		}
	}

	if busy == nil {
		busy = []BusyInterval{}
	}
	return DayAvailability{Busy: busy, Free: free}
}

// agentNarrowing turns time inside the location window but outside the
// agent's own periods into agent_unavailable intervals. A personal schedule
// only narrows the location hours, never widens them.
func agentNarrowing(agentWeek Week, weekday, windowStart, windowEnd int) []BusyInterval {
	if len(agentWeek) != 7 {
		return nil
	}

	day := NormalizeDay(agentWeek[weekday])
	if !day.Open || len(day.Periods) == 0 {
		return []BusyInterval{{Start: hhmm(windowStart), End: hhmm(windowEnd), Kind: BusyAgentBlock}}
	}

	var out []BusyInterval
	cursor := windowStart
	for _, p := range day.Periods {
		ps, _ := minuteOf(p.Start)
		pe, _ := minuteOf(p.End)
		if ps > cursor {
			out = append(out, BusyInterval{Start: hhmm(cursor), End: hhmm(ps), Kind: BusyAgentBlock})
		}
		if pe > cursor {
			cursor = pe
		}
	}
	if cursor < windowEnd {
		out = append(out, BusyInterval{Start: hhmm(cursor), End: hhmm(windowEnd), Kind: BusyAgentBlock})
	}
	return out
}

// intervalFree reports whether [start, end) overlaps none of the busy
// intervals. Strict comparisons: touching endpoints do not conflict.
func intervalFree(busy []BusyInterval, start, end int) bool {
	for _, b := range busy {
		bs, okS := minuteOf(b.Start)
		be, okE := minuteOf(b.End)
		if !okS || !okE {
			continue
		}
		if bs < end && be > start {
			return false
		}
	}
	return true
}

// Bookable reports whether a candidate booking [start, end) fits the day:
// inside one of the location's open periods and clear of every busy
// interval. Used by the booking flow to re-validate at submit time.
func Bookable(in DayInput, start, end string) bool {
	s, okS := minuteOf(start)
	e, okE := minuteOf(end)
	if !okS || !okE || s >= e {
		return false
	}

	av := ComputeDayAvailability(in)
	for _, b := range av.Busy {
		if b.Kind == BusyClosedDay && b.Start == "00:00" && b.End == "23:59" {
			return false
		}
	}

	weekday := int(in.Date.Weekday())
	if len(in.LocationWeek) != 7 {
		return false
	}
	day := NormalizeDay(in.LocationWeek[weekday])

	inside := false
	for _, p := range day.Periods {
		ps, _ := minuteOf(p.Start)
		pe, _ := minuteOf(p.End)
		if s >= ps && e <= pe {
			inside = true
			break
		}
	}
	if !inside {
		return false
	}

	return intervalFree(av.Busy, s, e)
}
