package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/repos"
	"github.com/rhcore/rhcore-backend/internal/types"
	"github.com/rhcore/rhcore-backend/internal/validation"
)

type CreateBankBranchInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

type UpdateBankBranchInput struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// BankBranchService operates on the composite key (bank code, branch code);
// every operation is scoped under an existing bank.
type BankBranchService interface {
	Create(ctx context.Context, bankCode string, input CreateBankBranchInput) (*types.BankBranch, error)
	Update(ctx context.Context, bankCode, code string, input UpdateBankBranchInput) (*types.BankBranch, error)
	Delete(ctx context.Context, bankCode, code string) error
	BatchDelete(ctx context.Context, bankCode string, codes []string) (*BatchDeleteResult, error)
	Get(ctx context.Context, bankCode, code string) (*types.BankBranch, error)
	List(ctx context.Context, bankCode string, page, pageSize int, search string) (*PagedResult[*types.BankBranch], error)
}

type bankBranchService struct {
	db       *gorm.DB
	log      *logger.Logger
	banks    repos.BankRepo
	branches repos.BankBranchRepo
	audit    AuditRecorder
}

func NewBankBranchService(
	db *gorm.DB,
	baseLog *logger.Logger,
	banks repos.BankRepo,
	branches repos.BankBranchRepo,
	audit AuditRecorder,
) BankBranchService {
	return &bankBranchService{
		db:       db,
		log:      baseLog.With("service", "BankBranchService"),
		banks:    banks,
		branches: branches,
		audit:    audit,
	}
}

func (s *bankBranchService) requireBank(ctx context.Context, tx *gorm.DB, bankCode string) error {
	exists, err := s.banks.Exists(ctx, tx, bankCode)
	if err != nil {
		return err
	}
	if !exists {
		return apierr.NotFound("bank", bankCode)
	}
	return nil
}

func (s *bankBranchService) Create(ctx context.Context, bankCode string, input CreateBankBranchInput) (*types.BankBranch, error) {
	errs := validation.Collect(
		validation.Required("code", input.Code),
		validation.ExactDigits("code", input.Code, 4),
		validation.Required("name", input.Name),
		validation.MaxLen("name", input.Name, 60),
		validation.MaxLen("city", input.City, 60),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	if err := s.requireBank(ctx, nil, bankCode); err != nil {
		return nil, apierr.From(err)
	}

	exists, err := s.branches.Exists(ctx, nil, bankCode, input.Code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if exists {
		return nil, apierr.Duplicate("bank branch", bankCode+"/"+input.Code)
	}

	now := time.Now().UTC()
	branch := &types.BankBranch{
		BankCode:  bankCode,
		Code:      input.Code,
		Name:      input.Name,
		City:      input.City,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actorLogin(ctx),
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.branches.Create(ctx, tx, branch)
	}); err != nil {
		s.log.Error("Failed to create bank branch", "bank_code", bankCode, "code", input.Code, "error", err)
		return nil, apierr.Save(err)
	}

	s.audit.Record(ctx, AuditActionCreate, "bank_branch", bankCode+"/"+branch.Code, branch)
	return branch, nil
}

func (s *bankBranchService) Update(ctx context.Context, bankCode, code string, input UpdateBankBranchInput) (*types.BankBranch, error) {
	errs := validation.Collect(
		validation.Required("name", input.Name),
		validation.MaxLen("name", input.Name, 60),
		validation.MaxLen("city", input.City, 60),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	var branch *types.BankBranch
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.branches.GetByCode(ctx, tx, bankCode, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("bank branch", bankCode+"/"+code)
		}
		existing.Name = input.Name
		existing.City = input.City
		existing.UpdatedAt = time.Now().UTC()
		existing.UpdatedBy = actorLogin(ctx)
		if err := s.branches.Update(ctx, tx, existing); err != nil {
			return err
		}
		branch = existing
		return nil
	}); err != nil {
		return nil, apierr.From(err)
	}

	s.audit.Record(ctx, AuditActionUpdate, "bank_branch", bankCode+"/"+branch.Code, branch)
	return branch, nil
}

func (s *bankBranchService) Delete(ctx context.Context, bankCode, code string) error {
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteWithin(ctx, tx, bankCode, code)
	}); err != nil {
		return apierr.From(err)
	}
	s.audit.Record(ctx, AuditActionDelete, "bank_branch", bankCode+"/"+code, nil)
	return nil
}

func (s *bankBranchService) BatchDelete(ctx context.Context, bankCode string, codes []string) (*BatchDeleteResult, error) {
	result, err := runBatchDelete(ctx, s.db, codes, func(ctx context.Context, tx *gorm.DB, code string) error {
		return s.deleteWithin(ctx, tx, bankCode, code)
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditActionBatchDelete, "bank_branch", bankCode, result)
	return result, nil
}

func (s *bankBranchService) deleteWithin(ctx context.Context, tx *gorm.DB, bankCode, code string) error {
	branch, err := s.branches.GetByCode(ctx, tx, bankCode, code)
	if err != nil {
		return err
	}
	if branch == nil {
		return apierr.NotFound("bank branch", bankCode+"/"+code)
	}
	return s.branches.Delete(ctx, tx, branch)
}

func (s *bankBranchService) Get(ctx context.Context, bankCode, code string) (*types.BankBranch, error) {
	branch, err := s.branches.GetByCode(ctx, nil, bankCode, code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if branch == nil {
		return nil, apierr.NotFound("bank branch", bankCode+"/"+code)
	}
	return branch, nil
}

func (s *bankBranchService) List(ctx context.Context, bankCode string, page, pageSize int, search string) (*PagedResult[*types.BankBranch], error) {
	if err := s.requireBank(ctx, nil, bankCode); err != nil {
		return nil, apierr.From(err)
	}
	page, pageSize = NormalizePage(page, pageSize)
	items, total, err := s.branches.ListPaged(ctx, nil, bankCode, pageOffset(page, pageSize), pageSize, search)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return NewPagedResult(items, total, page, pageSize), nil
}
