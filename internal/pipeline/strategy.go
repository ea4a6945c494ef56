package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Strategy is one named way of producing a value. Strategies are tried in
// order; a failing strategy yields to the next one.
type Strategy[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// AttemptInOrder runs strategies until one succeeds. Intermediate failures
// are logged and joined into the returned error when every strategy fails.
func AttemptInOrder[T any](ctx context.Context, logger *zap.Logger, strategies ...Strategy[T]) (T, error) {
	var zero T
	var failures []error
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		out, err := s.Run(ctx)
		if err == nil {
			return out, nil
		}
		logger.Warn("strategy failed, trying next",
			zap.String("strategy", s.Name), zap.Error(err))
		failures = append(failures, err)
	}
	if len(failures) == 0 {
		return zero, errors.New("no strategies supplied")
	}
	return zero, errors.Join(failures...)
}
