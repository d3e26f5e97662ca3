package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraints de backstop no Postgres (exclusion / unique).
// O caminho normal detecta conflito via lock + count; estes códigos
// cobrem a janela residual entre réplicas de transação.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsExclusionConflict reconhece violação de constraint de sobreposição
// vinda do banco e a trata como conflito de horário normal.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
}
