package services

import (
	"context"
	"testing"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/repos"
)

func newMunicipalityService(t *testing.T) MunicipalityService {
	t.Helper()
	gdb := testDB(t)
	log := testLogger()
	audit := NewAuditService(log, repos.NewAuditLogRepo(gdb, log))
	return NewMunicipalityService(gdb, log, repos.NewMunicipalityRepo(gdb, log), audit)
}

func TestMunicipalityCreateUppercasesState(t *testing.T) {
	svc := newMunicipalityService(t)

	created, err := svc.Create(context.Background(), CreateMunicipalityInput{
		Code: "3550308", Name: "Sao Paulo", State: "sp",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.State != "SP" {
		t.Fatalf("state must be stored upper case, got %q", created.State)
	}
}

func TestMunicipalityCreateValidatesIBGECode(t *testing.T) {
	svc := newMunicipalityService(t)

	_, err := svc.Create(context.Background(), CreateMunicipalityInput{
		Code: "35503", Name: "Sao Paulo", State: "SP",
	})
	ae := apierr.From(err)
	if ae == nil || ae.Code != apierr.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for a short code, got %v", err)
	}
	if len(ae.Fields["code"]) == 0 {
		t.Fatalf("expected a code field message, got %v", ae.Fields)
	}
}

func TestMunicipalityUpdateKeepsKey(t *testing.T) {
	svc := newMunicipalityService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateMunicipalityInput{Code: "3550308", Name: "Sao Paulo", State: "SP"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.Update(ctx, "3550308", UpdateMunicipalityInput{Name: "São Paulo", State: "sp"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Code != "3550308" || updated.State != "SP" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}
