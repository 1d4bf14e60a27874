package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/cidacdata/elab_backend/config"
	"github.com/bsm/redislock"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ProcessValidationErrors flattens binding validation failures into a
// field -> failed-tag map for error responses.
func ProcessValidationErrors(err error) map[string]string {
	errorResponse := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorResponse["request"] = err.Error()
		return errorResponse
	}

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func IntPtr(n int) *int {
	return &n
}

// StringToDecimal parses a decimal string after trimming whitespace.
func StringToDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}

	dec, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	return dec, nil
}

// AcquireSyncLock obtains the shared redis lock that serializes Gold
// resynchronization against diff regeneration. The caller must invoke the
// returned release func when the operation finishes.
func AcquireSyncLock(ctx context.Context, lockType string, moduleName string, functionName string) (func(), error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		// Redis connects after the HTTP server starts listening.
		config.LogError(logger, moduleName, functionName, "Redis lock not initialized", lockType, errors.New("redis lock is nil"))
		return nil, errors.New("service not ready (redis lock not initialized)")
	}

	lockKey := fmt.Sprintf("lock:%s", lockType)
	lock, err := locker.Obtain(ctx, lockKey, 5*time.Minute, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "Could not obtain sync lock", lockKey, err)
		return nil, ErrorLockNotObtained
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining sync lock", lockKey, err)
		return nil, err
	}

	release := func() {
		_ = lock.Release(context.Background())
	}
	return release, nil
}
