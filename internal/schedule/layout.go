package schedule

// Default grid window used when a schedule has no valid periods to size
// itself from.
const (
	DefaultGridStartHour = 8
	DefaultGridEndHour   = 21
)

// GridWindow scans every period of every day and returns the earliest start
// hour and latest end hour, so day/week/month views share one vertical (or
// horizontal) scale. Falls back to 08-21 when nothing is configured.
func GridWindow(week Week) (startHour, endHour int) {
	return gridWindow(week)
}

// GridWindowForDay sizes the grid from a single day's periods.
func GridWindowForDay(day DaySchedule) (startHour, endHour int) {
	return gridWindow(Week{day})
}

func gridWindow(days []DaySchedule) (int, int) {
	startHour, endHour := -1, -1

	for _, d := range days {
		for _, p := range d.Periods {
			s, okS := minuteOf(p.Start)
			e, okE := minuteOf(p.End)
			if !okS || !okE || s >= e {
				continue
			}
			if startHour == -1 || s/60 < startHour {
				startHour = s / 60
			}
			// End hour rounds up so a period ending 17:30 still shows hour 17.
			lastHour := (e - 1) / 60
			if endHour == -1 || lastHour > endHour {
				endHour = lastHour
			}
		}
	}

	if startHour == -1 || endHour == -1 || startHour > endHour {
		return DefaultGridStartHour, DefaultGridEndHour
	}
	return startHour, endHour
}

// FractionOfDay maps a time of day onto [0,1] within the grid window. The
// window extends one hour past endHour so the closing hour renders in full.
// Degenerate windows report ok=false instead of dividing by zero.
func FractionOfDay(hm string, startHour, endHour int) (fraction float64, ok bool) {
	m, okM := minuteOf(hm)
	if !okM {
		return 0, false
	}

	windowStart := startHour * 60
	totalMinutes := (endHour+1)*60 - windowStart
	if totalMinutes <= 0 {
		return 0, false
	}

	f := float64(m-windowStart) / float64(totalMinutes)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f, true
}
