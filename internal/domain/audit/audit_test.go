package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestRecordInsertsEvent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO audit_events").
		WithArgs("user-1", "leave.request.approve", "leave_request", "lr-1", pgxmock.AnyArg(), []byte(`{"status":"approved"}`), "req-1", "10.0.0.1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := New(mock)
	err = svc.Record(context.Background(), Entry{
		ActorID:    "user-1",
		Action:     "leave.request.approve",
		EntityType: "leave_request",
		EntityID:   "lr-1",
		RequestID:  "req-1",
		IP:         "10.0.0.1",
		After:      map[string]string{"status": "approved"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppliesFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM audit_events WHERE 1=1 AND entity_type = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("employee", 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "actor", "action", "entity_type", "entity_id", "request_id", "ip", "created_at", "before", "after"}).
			AddRow("a1", "user-1", "employee.create", "employee", "e1", "req-1", "", created, json.RawMessage(nil), json.RawMessage(`{}`)))

	svc := New(mock)
	events, err := svc.List(context.Background(), Filter{EntityType: "employee"}, 20, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "employee.create", events[0].Action)
	require.Equal(t, created, events[0].CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
