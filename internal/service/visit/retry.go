package visit

import (
	"context"
	"errors"
	"time"

	"github.com/medtrack/clinic-api/internal/repository"
)

const storeTimeout = 5 * time.Second

// withRetry bounds a store operation, read or write, with a timeout and
// retries it once on a transient failure. Not-found results are final and
// never retried.
func withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	attempt := func() error {
		opCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		defer cancel()
		return op(opCtx)
	}

	err := attempt()
	if err == nil || errors.Is(err, repository.ErrNotFound) || ctx.Err() != nil {
		return err
	}
	return attempt()
}
