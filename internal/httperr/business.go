package httperr

import "errors"

// BusinessError carrega um código de regra de negócio vindo dos use cases
// (slot_unavailable, client_not_found...). Quem traduz código em status HTTP
// é o handler, nunca o domínio.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
