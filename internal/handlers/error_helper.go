package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-core/internal/httperr"
)

// writeError traduz erros de negócio do engine para HTTP.
// Código desconhecido vira 500 com o fallback informado.
func writeError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {

	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, fallbackCode, fallbackMsg)
		return
	}

	switch be.Code {
	case httperr.CodeTimeConflict:
		httperr.Conflict(c, be.Code, "Conflito de horário.")
	case httperr.CodeDuplicateEntry:
		httperr.Conflict(c, be.Code, "Cliente já está na lista de espera.")
	case httperr.CodeHoldNotFound:
		httperr.NotFound(c, be.Code, "Reserva temporária não encontrada ou expirada.")
	case httperr.CodeEntryNotFound:
		httperr.NotFound(c, be.Code, "Entrada não encontrada.")
	case httperr.CodeStoreUnavailable:
		httperr.Unavailable(c, be.Code, "Serviço temporariamente indisponível.")
	case httperr.CodeInvalidTimezone:
		httperr.BadRequest(c, be.Code, "Timezone inválido.")
	default:
		httperr.BadRequest(c, be.Code, "Requisição inválida.")
	}
}
