package booking

import "github.com/agendaflow/salon-scheduler/internal/httperr"

// SubmitInput é o pedido de criação/edição antes de qualquer acesso a banco.
type SubmitInput struct {
	AgentID    uint
	ServiceIDs []uint
	ExtraIDs   []uint

	Date      string
	StartTime string

	ClientID    uint
	ClientName  string
	ClientPhone string

	LocationID uint

	Observations string
	Discount     float64
}

// ValidateSubmit aplica as pré-condições em ordem fixa; o primeiro erro
// interrompe. A resolução da duração (duration_unresolvable) acontece depois,
// quando o catálogo de serviços já foi carregado.
func ValidateSubmit(in SubmitInput) error {
	if in.AgentID == 0 {
		return httperr.ErrBusiness("missing_agent")
	}
	if len(in.ServiceIDs) == 0 {
		return httperr.ErrBusiness("missing_service")
	}
	if in.Date == "" || in.StartTime == "" {
		return httperr.ErrBusiness("missing_datetime")
	}
	if in.ClientID == 0 && (in.ClientName == "" || in.ClientPhone == "") {
		return httperr.ErrBusiness("missing_client")
	}
	if in.LocationID == 0 {
		return httperr.ErrBusiness("missing_location")
	}
	return nil
}
