package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/repos"
	"github.com/rhcore/rhcore-backend/internal/types"
	"github.com/rhcore/rhcore-backend/internal/validation"
)

// Dependency codes returned when a bank delete is blocked.
const (
	CodeBankHasBranches  = "HAS_BRANCHES"
	CodeBankHasEmployees = "HAS_EMPLOYEES"
)

type CreateBankInput struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

// UpdateBankInput carries only the mutable fields; the code is taken from
// the route and never copied from the payload.
type UpdateBankInput struct {
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

type BankService interface {
	Create(ctx context.Context, input CreateBankInput) (*types.Bank, error)
	Update(ctx context.Context, code string, input UpdateBankInput) (*types.Bank, error)
	Delete(ctx context.Context, code string) error
	BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error)
	Get(ctx context.Context, code string) (*types.Bank, error)
	List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.Bank], error)
	ListAll(ctx context.Context) ([]*types.Bank, error)
}

type bankService struct {
	db        *gorm.DB
	log       *logger.Logger
	banks     repos.BankRepo
	branches  repos.BankBranchRepo
	employees repos.EmployeeRepo
	audit     AuditRecorder
}

func NewBankService(
	db *gorm.DB,
	baseLog *logger.Logger,
	banks repos.BankRepo,
	branches repos.BankBranchRepo,
	employees repos.EmployeeRepo,
	audit AuditRecorder,
) BankService {
	return &bankService{
		db:        db,
		log:       baseLog.With("service", "BankService"),
		banks:     banks,
		branches:  branches,
		employees: employees,
		audit:     audit,
	}
}

func (s *bankService) Create(ctx context.Context, input CreateBankInput) (*types.Bank, error) {
	errs := validation.Collect(
		validation.Required("code", input.Code),
		validation.ExactDigits("code", input.Code, 3),
		validation.Required("name", input.Name),
		validation.MaxLen("name", input.Name, 60),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	exists, err := s.banks.Exists(ctx, nil, input.Code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if exists {
		return nil, apierr.Duplicate("bank", input.Code)
	}

	now := time.Now().UTC()
	bank := &types.Bank{
		Code:      input.Code,
		Name:      input.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actorLogin(ctx),
	}
	if input.Active != nil {
		bank.Active = *input.Active
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.banks.Create(ctx, tx, bank)
	}); err != nil {
		s.log.Error("Failed to create bank", "code", input.Code, "error", err)
		return nil, apierr.Save(err)
	}

	s.audit.Record(ctx, AuditActionCreate, "bank", bank.Code, bank)
	return bank, nil
}

func (s *bankService) Update(ctx context.Context, code string, input UpdateBankInput) (*types.Bank, error) {
	errs := validation.Collect(
		validation.Required("name", input.Name),
		validation.MaxLen("name", input.Name, 60),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	var bank *types.Bank
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.banks.GetByCode(ctx, tx, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("bank", code)
		}
		existing.Name = input.Name
		if input.Active != nil {
			existing.Active = *input.Active
		}
		existing.UpdatedAt = time.Now().UTC()
		existing.UpdatedBy = actorLogin(ctx)
		if err := s.banks.Update(ctx, tx, existing); err != nil {
			return err
		}
		bank = existing
		return nil
	}); err != nil {
		return nil, apierr.From(err)
	}

	s.audit.Record(ctx, AuditActionUpdate, "bank", bank.Code, bank)
	return bank, nil
}

func (s *bankService) Delete(ctx context.Context, code string) error {
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteWithin(ctx, tx, code)
	}); err != nil {
		return apierr.From(err)
	}
	s.audit.Record(ctx, AuditActionDelete, "bank", code, nil)
	return nil
}

func (s *bankService) BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error) {
	result, err := runBatchDelete(ctx, s.db, codes, s.deleteWithin)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditActionBatchDelete, "bank", "", result)
	return result, nil
}

// deleteWithin applies the single-delete rules on the supplied transaction:
// existence, then dependency checks before the store-level constraint fires.
func (s *bankService) deleteWithin(ctx context.Context, tx *gorm.DB, code string) error {
	bank, err := s.banks.GetByCode(ctx, tx, code)
	if err != nil {
		return err
	}
	if bank == nil {
		return apierr.NotFound("bank", code)
	}

	branchCount, err := s.branches.CountByBankCode(ctx, tx, code)
	if err != nil {
		return err
	}
	if branchCount > 0 {
		return apierr.Dependency(CodeBankHasBranches,
			fmt.Errorf("bank %q has %d branch(es) and cannot be deleted", code, branchCount))
	}

	employeeCount, err := s.employees.CountByBankCode(ctx, tx, code)
	if err != nil {
		return err
	}
	if employeeCount > 0 {
		return apierr.Dependency(CodeBankHasEmployees,
			fmt.Errorf("bank %q has %d linked employee(s) and cannot be deleted", code, employeeCount))
	}

	return s.banks.Delete(ctx, tx, bank)
}

func (s *bankService) Get(ctx context.Context, code string) (*types.Bank, error) {
	bank, err := s.banks.GetByCode(ctx, nil, code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if bank == nil {
		return nil, apierr.NotFound("bank", code)
	}
	return bank, nil
}

func (s *bankService) List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.Bank], error) {
	page, pageSize = NormalizePage(page, pageSize)
	items, total, err := s.banks.ListPaged(ctx, nil, pageOffset(page, pageSize), pageSize, search)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return NewPagedResult(items, total, page, pageSize), nil
}

func (s *bankService) ListAll(ctx context.Context) ([]*types.Bank, error) {
	items, err := s.banks.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return items, nil
}
