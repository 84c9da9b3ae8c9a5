package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"zko-backend/internal/zko"
)

// Policy: ограниченный экспоненциальный повтор.
// Применяется только к идемпотентным чтениям, мутации никогда не повторяются.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Factor      float64
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second, Factor: 2}
}

// NoRetry: одна попытка.
func NoRetry() Policy {
	return Policy{MaxAttempts: 1}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.Multiplier = p.Factor
	if b.Multiplier < 1 {
		b.Multiplier = 1
	}
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// Retryable: повторяем только сетевые сбои (нет ответа, таймаут).
func Retryable(err error) bool {
	return zko.IsKind(err, zko.KindNetwork)
}

// Do выполняет fn до MaxAttempts раз. Неповторяемая ошибка возвращается сразу.
// Если ctx закончился во время паузы, результатом остаётся сетевая ошибка.
func Do(ctx context.Context, p Policy, log *slog.Logger, name string, fn func(ctx context.Context) error) error {
	const op = "retry.Do"

	attempt := 0
	var lastErr error
	operation := func() error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		if log == nil {
			return
		}
		log.Warn("повтор запроса",
			slog.String("op", op),
			slog.String("call", name),
			slog.Int("attempt", attempt),
			slog.Duration("next_in", next),
			slog.String("error", err.Error()),
		)
	}

	err := backoff.RetryNotify(operation, p.backOff(ctx), notify)
	if err == nil || zko.KindOf(err) != 0 {
		return err
	}

	// backoff отдаёт голый ctx.Err(), вид ошибки теряется
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		if lastErr != nil {
			return zko.NewNetworkError(op, fmt.Errorf("%w: %w", ctxErr, lastErr))
		}
		return zko.NewNetworkError(op, ctxErr)
	}
	return err
}
