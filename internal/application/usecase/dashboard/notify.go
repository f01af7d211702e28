package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/finance-tracker/insights/internal/application/adapter"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// notifyFailure pushes a dismissable error notification for store and data
// failures. Form validation errors are returned to the caller only.
// Push failures are logged and never replace the original error.
func notifyFailure(ctx context.Context, notifier adapter.Notifier, err error) {
	if notifier == nil || err == nil {
		return
	}

	code, message, ok := describeFailure(err)
	if !ok {
		return
	}

	pushed, pushErr := notifier.Push(context.WithoutCancel(ctx), adapter.Notification{
		Level:   adapter.NotificationLevelError,
		Code:    code,
		Message: message,
	})
	if pushErr != nil {
		slog.Warn("Failed to push notification", "code", code, "error", pushErr)
		return
	}
	slog.Info("Notification pushed", "id", pushed.ID, "code", code)
}

func describeFailure(err error) (code, message string, ok bool) {
	var storeErr *domainerror.StoreError
	if errors.As(err, &storeErr) {
		return string(storeErr.Code), storeErr.Message, true
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		return string(reportErr.Code), "The store returned data that cannot be summarised", true
	}

	return "", "", false
}
