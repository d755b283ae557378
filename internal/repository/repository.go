package repository

import (
	"context"
	"errors"
	"time"

	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"gorm.io/gorm"
)

func withFunction(ctx context.Context, function string) context.Context {
	return ctxutil.WithFunction(ctx, "repository", function)
}

// logResult writes the outcome of one query. Missing rows are logged at
// debug because callers treat them as a normal answer.
func logResult(ctx context.Context, msg string, start time.Time, err error) {
	duration := time.Since(start)
	switch {
	case err == nil:
		logger.DebugWithContext(ctx, msg).Duration(duration).Log()
	case errors.Is(err, gorm.ErrRecordNotFound):
		logger.DebugWithContext(ctx, msg+": not found").Duration(duration).Log()
	default:
		logger.ErrorWithContext(ctx, msg+" failed").Duration(duration).Err(err).Log()
	}
}

// affected turns an UPDATE/DELETE that matched nothing into ErrRecordNotFound.
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
