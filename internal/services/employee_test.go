package services

import (
	"context"
	"testing"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/repos"
)

type employeeFixture struct {
	employees EmployeeService
	banks     BankService
	branches  BankBranchService
	unions    TradeUnionService
}

func newEmployeeFixture(t *testing.T) *employeeFixture {
	t.Helper()
	gdb := testDB(t)
	log := testLogger()
	bankRepo := repos.NewBankRepo(gdb, log)
	branchRepo := repos.NewBankBranchRepo(gdb, log)
	unionRepo := repos.NewTradeUnionRepo(gdb, log)
	employeeRepo := repos.NewEmployeeRepo(gdb, log)
	audit := NewAuditService(log, repos.NewAuditLogRepo(gdb, log))
	return &employeeFixture{
		employees: NewEmployeeService(gdb, log, employeeRepo, bankRepo, branchRepo, unionRepo, audit),
		banks:     NewBankService(gdb, log, bankRepo, branchRepo, employeeRepo, audit),
		branches:  NewBankBranchService(gdb, log, bankRepo, branchRepo, audit),
		unions:    NewTradeUnionService(gdb, log, unionRepo, employeeRepo, audit),
	}
}

func TestEmployeeCreateWithLinks(t *testing.T) {
	f := newEmployeeFixture(t)
	ctx := context.Background()

	if _, err := f.banks.Create(ctx, CreateBankInput{Code: "001", Name: "Banco do Brasil"}); err != nil {
		t.Fatalf("create bank: %v", err)
	}
	if _, err := f.branches.Create(ctx, "001", CreateBankBranchInput{Code: "0001", Name: "Matriz"}); err != nil {
		t.Fatalf("create branch: %v", err)
	}
	if _, err := f.unions.Create(ctx, CreateTradeUnionInput{Code: "SIN01", Name: "Sindicato", CNPJ: "12345678000199"}); err != nil {
		t.Fatalf("create union: %v", err)
	}

	emp, err := f.employees.Create(ctx, CreateEmployeeInput{
		Registration: "000101",
		Name:         "Maria Silva",
		BankCode:     "001",
		BranchCode:   "0001",
		UnionCode:    "SIN01",
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if emp.BankCode != "001" || emp.UnionCode != "SIN01" || !emp.Active {
		t.Fatalf("unexpected employee: %+v", emp)
	}
}

func TestEmployeeCreateRejectsUnknownBank(t *testing.T) {
	f := newEmployeeFixture(t)

	_, err := f.employees.Create(context.Background(), CreateEmployeeInput{
		Registration: "000102",
		Name:         "Joao",
		BankCode:     "999",
	})
	ae := apierr.From(err)
	if ae == nil || ae.Code != apierr.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for unknown bank link, got %v", err)
	}
}

func TestEmployeeCreateRejectsUnknownBranch(t *testing.T) {
	f := newEmployeeFixture(t)
	ctx := context.Background()

	if _, err := f.banks.Create(ctx, CreateBankInput{Code: "001", Name: "Banco do Brasil"}); err != nil {
		t.Fatalf("create bank: %v", err)
	}

	_, err := f.employees.Create(ctx, CreateEmployeeInput{
		Registration: "000104",
		Name:         "Carla",
		BankCode:     "001",
		BranchCode:   "9999",
	})
	ae := apierr.From(err)
	if ae == nil || ae.Code != apierr.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for unknown branch link, got %v", err)
	}
}

func TestEmployeeCreateRejectsBranchWithoutBank(t *testing.T) {
	f := newEmployeeFixture(t)

	_, err := f.employees.Create(context.Background(), CreateEmployeeInput{
		Registration: "000105",
		Name:         "Rita",
		BranchCode:   "0001",
	})
	ae := apierr.From(err)
	if ae == nil || ae.Code != apierr.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for a branch without its bank, got %v", err)
	}
	if len(ae.Fields["branch_code"]) == 0 {
		t.Fatalf("expected a branch_code field message, got %v", ae.Fields)
	}
}

func TestEmployeeCreateValidatesKeyFormat(t *testing.T) {
	f := newEmployeeFixture(t)

	_, err := f.employees.Create(context.Background(), CreateEmployeeInput{
		Registration: "1A23",
		Name:         "Ana",
	})
	ae := apierr.From(err)
	if ae == nil || ae.Code != apierr.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if len(ae.Fields["registration"]) == 0 {
		t.Fatalf("expected registration field message, got %v", ae.Fields)
	}
}

func TestUnionDeleteBlockedByEmployees(t *testing.T) {
	f := newEmployeeFixture(t)
	ctx := context.Background()

	if _, err := f.unions.Create(ctx, CreateTradeUnionInput{Code: "SIN01", Name: "Sindicato", CNPJ: "12345678000199"}); err != nil {
		t.Fatalf("create union: %v", err)
	}
	if _, err := f.employees.Create(ctx, CreateEmployeeInput{
		Registration: "000103",
		Name:         "Pedro",
		UnionCode:    "SIN01",
	}); err != nil {
		t.Fatalf("create employee: %v", err)
	}

	err := f.unions.Delete(ctx, "SIN01")
	ae := apierr.From(err)
	if ae == nil || ae.Code != CodeUnionHasEmployees {
		t.Fatalf("expected HAS_EMPLOYEES, got %v", err)
	}
}
