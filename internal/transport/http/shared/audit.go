package shared

import (
	"context"
	"log/slog"
	"net/http"

	"hrportal/internal/domain/audit"
	"hrportal/internal/requestctx"
)

type Auditor interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// RecordAudit stores an audit entry for a completed mutation. Failures are
// logged and never fail the request.
func RecordAudit(r *http.Request, auditor Auditor, actorID, action, entityType, entityID string, after any) {
	if auditor == nil {
		return
	}
	err := auditor.Record(r.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestIDFrom(r),
		IP:         requestctx.ClientIPFrom(r),
		After:      after,
	})
	if err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
