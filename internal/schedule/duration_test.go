package schedule

import "testing"

var (
	testServices = []CatalogItem{
		{ID: 1, DurationMin: 30},
		{ID: 2, DurationMin: 45},
	}
	testExtras = []CatalogItem{
		{ID: 10, DurationMin: 15},
	}
)

func TestEndTime(t *testing.T) {
	tests := []struct {
		name       string
		start      string
		serviceIDs []uint
		extraIDs   []uint
		want       string
		wantOK     bool
	}{
		{"single service", "10:00", []uint{1}, nil, "10:30", true},
		{"services plus extra", "10:00", []uint{1, 2}, []uint{10}, "11:30", true},
		{"unknown ids contribute zero", "10:00", []uint{1, 99}, []uint{77}, "10:30", true},
		{"only unknown ids resolve to nothing", "10:00", []uint{99}, nil, "", false},
		{"no items", "10:00", nil, nil, "", false},
		{"empty start", "", []uint{1}, nil, "", false},
		{"unparseable start", "25:99", []uint{1}, nil, "", false},
		{"carry over midnight", "23:45", []uint{2}, nil, "00:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EndTime(tt.start, tt.serviceIDs, tt.extraIDs, testServices, testExtras)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("end = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTotalDuration(t *testing.T) {
	if got := TotalDuration([]uint{1, 2}, []uint{10}, testServices, testExtras); got != 90 {
		t.Errorf("total = %d, want 90", got)
	}
	if got := TotalDuration(nil, nil, testServices, testExtras); got != 0 {
		t.Errorf("total = %d, want 0", got)
	}
}
