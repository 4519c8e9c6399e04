package schedule

import "time"

// CatalogItem is the slice of a service or extra the duration math needs.
type CatalogItem struct {
	ID          uint
	DurationMin int
}

// TotalDuration sums the durations of the selected services and extras.
// IDs missing from the catalogs contribute zero; referential integrity is
// the caller's concern, not this layer's.
func TotalDuration(serviceIDs, extraIDs []uint, services, extras []CatalogItem) int {
	total := 0
	total += sumDurations(serviceIDs, services)
	total += sumDurations(extraIDs, extras)
	return total
}

func sumDurations(ids []uint, catalog []CatalogItem) int {
	byID := make(map[uint]int, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item.DurationMin
	}

	total := 0
	for _, id := range ids {
		total += byID[id]
	}
	return total
}

// EndTime derives the end of an appointment from its start plus the summed
// duration of the selected items. Returns ok=false when the start is absent
// or unparseable, or when the total duration is zero; there is no forced
// minimum. The addition goes through time.Time so hour/minute carry is
// correct even past midnight.
func EndTime(start string, serviceIDs, extraIDs []uint, services, extras []CatalogItem) (string, bool) {
	if start == "" {
		return "", false
	}

	t, err := time.Parse("15:04", start)
	if err != nil {
		return "", false
	}

	total := TotalDuration(serviceIDs, extraIDs, services, extras)
	if total <= 0 {
		return "", false
	}

	return t.Add(time.Duration(total) * time.Minute).Format("15:04"), true
}
