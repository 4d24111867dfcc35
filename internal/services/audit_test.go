package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/rhcore/rhcore-backend/internal/permissions"
	"github.com/rhcore/rhcore-backend/internal/repos"
	"github.com/rhcore/rhcore-backend/internal/requestdata"
)

func TestAuditRecordCapturesActor(t *testing.T) {
	gdb := testDB(t)
	log := testLogger()
	svc := NewAuditService(log, repos.NewAuditLogRepo(gdb, log))

	actorID := uuid.New()
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: actorID,
		Login:  "maria",
		Claims: permissions.Claims{},
	})

	svc.Record(ctx, AuditActionCreate, "bank", "001", map[string]string{"name": "BB"})

	result, err := svc.List(context.Background(), 1, 10, "bank")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.TotalCount != 1 {
		t.Fatalf("expected one entry, got %d", result.TotalCount)
	}
	entry := result.Items[0]
	if entry.Actor != "maria" || entry.ActorID != actorID {
		t.Fatalf("actor not captured: %+v", entry)
	}
	if entry.Action != AuditActionCreate || entry.RecordKey != "001" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if len(entry.Detail) == 0 {
		t.Fatalf("detail payload must be stored")
	}
}

func TestAuditRecordWithoutActorStillWrites(t *testing.T) {
	gdb := testDB(t)
	log := testLogger()
	svc := NewAuditService(log, repos.NewAuditLogRepo(gdb, log))

	svc.Record(context.Background(), AuditActionDelete, "system", "FOLHA00001", nil)

	result, err := svc.List(context.Background(), 1, 10, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.TotalCount != 1 || result.Items[0].Actor != "" {
		t.Fatalf("unexpected entries: %+v", result.Items)
	}
}
