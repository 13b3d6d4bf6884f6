package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
)

const (
	mysqlErrLockDeadlock    = 1213
	mysqlErrLockWaitTimeout = 1205
	defaultBackoffStep      = 100 * time.Millisecond
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID uint) (*domain.Order, error)
}

// PlaceOrderUseCase runs checkout, retrying the whole transaction when MySQL
// aborts it with a deadlock or lock wait timeout. Exhausted retries surface
// as a storage failure carrying the last error.
type PlaceOrderUseCase struct {
	checkout         CheckoutService
	logger           *zap.Logger
	maxRetryAttempts int
	backoffStep      time.Duration
}

func NewPlaceOrderUseCase(checkout CheckoutService, logger *zap.Logger, maxRetryAttempts int) *PlaceOrderUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &PlaceOrderUseCase{
		checkout:         checkout,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		backoffStep:      defaultBackoffStep,
	}
}

func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, userID uint) (*domain.Order, error) {
	uc.logger.Info("checkout started", zap.Uint("userId", userID))

	var lastErr error
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		order, err := uc.checkout.PlaceOrder(ctx, userID)
		if err == nil {
			return order, nil
		}

		if !isDeadlockError(err) {
			return nil, err
		}
		lastErr = err

		if attempt == uc.maxRetryAttempts {
			break
		}

		uc.logger.Warn("deadlock detected, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxRetryAttempts),
			zap.Uint("userId", userID),
		)

		if err := sleep(ctx, uc.backoff(attempt)); err != nil {
			return nil, err
		}
	}

	uc.logger.Error("checkout failed, retries exhausted", zap.Uint("userId", userID), zap.Int("attempts", uc.maxRetryAttempts))
	return nil, apperrors.NewInternalError("placing order", lastErr)
}

// backoff grows linearly with the attempt number, with ±20% jitter.
func (uc *PlaceOrderUseCase) backoff(attempt int) time.Duration {
	base := time.Duration(attempt) * uc.backoffStep
	return time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrLockDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
	}
	return false
}
