package booking

import (
	"testing"

	"github.com/agendaflow/salon-scheduler/internal/httperr"
)

func TestValidateSubmitOrder(t *testing.T) {
	complete := SubmitInput{
		AgentID:     1,
		ServiceIDs:  []uint{1},
		Date:        "2025-11-10",
		StartTime:   "10:00",
		ClientName:  "Maria",
		ClientPhone: "11999990000",
		LocationID:  1,
	}

	tests := []struct {
		name     string
		mutate   func(*SubmitInput)
		wantCode string
	}{
		{"complete input passes", func(in *SubmitInput) {}, ""},
		{"missing agent", func(in *SubmitInput) { in.AgentID = 0 }, "missing_agent"},
		{"missing service", func(in *SubmitInput) { in.ServiceIDs = nil }, "missing_service"},
		{"missing date", func(in *SubmitInput) { in.Date = "" }, "missing_datetime"},
		{"missing start time", func(in *SubmitInput) { in.StartTime = "" }, "missing_datetime"},
		{
			"new client without phone",
			func(in *SubmitInput) { in.ClientPhone = "" },
			"missing_client",
		},
		{
			"existing client reference suffices",
			func(in *SubmitInput) { in.ClientName, in.ClientPhone, in.ClientID = "", "", 42 },
			"",
		},
		{"missing location", func(in *SubmitInput) { in.LocationID = 0 }, "missing_location"},
		{
			// Agente e cliente ausentes ao mesmo tempo: vale a primeira falha.
			"agent failure reported before client failure",
			func(in *SubmitInput) { in.AgentID = 0; in.ClientName = ""; in.ClientPhone = "" },
			"missing_agent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := complete
			tt.mutate(&in)

			err := ValidateSubmit(in)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("expected business code %q, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name  string
		check func(Status) error
		from  Status
		allow bool
	}{
		{"approve pending", CanApprove, StatusPending, true},
		{"approve approved", CanApprove, StatusApproved, false},
		{"cancel pending", CanCancel, StatusPending, true},
		{"cancel approved", CanCancel, StatusApproved, true},
		{"cancel completed", CanCancel, StatusCompleted, false},
		{"complete approved", CanComplete, StatusApproved, true},
		{"complete pending", CanComplete, StatusPending, false},
		{"no-show approved", CanMarkNoShow, StatusApproved, true},
		{"no-show cancelled", CanMarkNoShow, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.from)
			if tt.allow && err != nil {
				t.Errorf("expected transition allowed, got %v", err)
			}
			if !tt.allow && !httperr.IsBusiness(err, "invalid_state") {
				t.Errorf("expected invalid_state, got %v", err)
			}
		})
	}
}

func TestInitialStatus(t *testing.T) {
	if InitialStatus(true) != StatusPending {
		t.Error("public bookings should start pending")
	}
	if InitialStatus(false) != StatusApproved {
		t.Error("private bookings should start approved")
	}
}
