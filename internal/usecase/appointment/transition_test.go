package appointment

import (
	"context"
	"testing"
)

// Concluir e marcar falta tiram a reserva do conjunto ocupado, então o dia
// cacheado de disponibilidade precisa ser descartado, igual ao cancelamento.

func TestCompleteAppointmentInvalidatesDay(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	uc := NewCompleteAppointment(repo, &fakeAuditor{}, cache)

	ap, err := uc.Execute(context.Background(), 1, nil, 100)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Status != "completed" {
		t.Errorf("status = %q, esperado completed", ap.Status)
	}
	if ap.CompletedAt == nil {
		t.Error("CompletedAt não preenchido")
	}
	if !cache.has(1, 5, "2025-12-01") {
		t.Errorf("dia da reserva não invalidado: %+v", cache.invalidated)
	}
}

func TestMarkNoShowInvalidatesDay(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	uc := NewMarkNoShow(repo, &fakeAuditor{}, cache)

	ap, err := uc.Execute(context.Background(), 1, nil, 100)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Status != "no_show" {
		t.Errorf("status = %q, esperado no_show", ap.Status)
	}
	if !cache.has(1, 5, "2025-12-01") {
		t.Errorf("dia da reserva não invalidado: %+v", cache.invalidated)
	}
}
