package availability

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/httperr"
)

// withRetry: retry local bounded para leituras do store, com
// uma retentativa imediata e uma com backoff curto. Erros de
// negócio tipados nunca são retentados.
func withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || isTerminal(err) {
		return err
	}

	// retentativa imediata
	if err = fn(); err == nil || isTerminal(err) {
		return err
	}

	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}

	return fn()
}

// asStoreUnavailable rotula falhas cruas do store; erro de negócio
// tipado atravessa intacto.
func asStoreUnavailable(err error) error {
	if isTerminal(err) {
		return err
	}
	return httperr.ErrBusiness(httperr.CodeStoreUnavailable)
}

func isTerminal(err error) bool {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		// todo erro tipado é terminal, exceto store_unavailable
		return be.Code != httperr.CodeStoreUnavailable
	}
	return false
}
