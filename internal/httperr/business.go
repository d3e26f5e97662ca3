package httperr

import "errors"

// ===============================
// Business Errors
// ===============================

// Códigos centralizados. Nunca colapsar em erro genérico:
// o caller precisa do código exato para orientar o cliente.
const (
	CodeInvalidTimezone  = "invalid_timezone"
	CodeTimeConflict     = "time_conflict"
	CodeDuplicateEntry   = "duplicate_waitlist"
	CodeHoldNotFound     = "hold_not_found"
	CodeEntryNotFound    = "entry_not_found"
	CodeStoreUnavailable = "store_unavailable"
)

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

// ===============================
// Classificação
// ===============================

// IsConflict: faixa solicitada já ocupada por booking ou hold ativo.
// Resultado esperado do fluxo de reserva, nunca retentado.
func IsConflict(err error) bool {
	return IsBusiness(err, CodeTimeConflict) || IsExclusionConflict(err)
}

func IsDuplicate(err error) bool {
	return IsBusiness(err, CodeDuplicateEntry)
}

func IsNotFound(err error) bool {
	return IsBusiness(err, CodeHoldNotFound) || IsBusiness(err, CodeEntryNotFound)
}

// IsRetryable: apenas store_unavailable é elegível para retry local.
func IsRetryable(err error) bool {
	return IsBusiness(err, CodeStoreUnavailable)
}
