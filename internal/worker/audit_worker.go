package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/service"
)

// AuditWorker turns approved-mutation events into audit rows.
type AuditWorker struct {
	audits *service.AuditService
	logger *zap.Logger
}

// StartAuditWorker subscribes the audit trail to every audited action.
func StartAuditWorker(dispatcher events.Dispatcher, audits *service.AuditService, logger *zap.Logger) {
	if dispatcher == nil || audits == nil {
		return
	}
	w := &AuditWorker{audits: audits, logger: logger}
	for _, action := range events.AuditedActions() {
		dispatcher.Subscribe(action, w.handle)
	}
}

func (w *AuditWorker) handle(ctx context.Context, event events.Event) error {
	if err := w.audits.Record(ctx, event); err != nil {
		// Audit persistence must not break the originating request.
		if w.logger != nil {
			w.logger.Error("audit record failed",
				zap.String("action", string(event.Action)),
				zap.String("company_code", event.CompanyCode),
				zap.Error(err))
		}
		return err
	}
	return nil
}
