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

const CodeUnionHasEmployees = "HAS_EMPLOYEES"

type CreateTradeUnionInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}

type UpdateTradeUnionInput struct {
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}

type TradeUnionService interface {
	Create(ctx context.Context, input CreateTradeUnionInput) (*types.TradeUnion, error)
	Update(ctx context.Context, code string, input UpdateTradeUnionInput) (*types.TradeUnion, error)
	Delete(ctx context.Context, code string) error
	BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error)
	Get(ctx context.Context, code string) (*types.TradeUnion, error)
	List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.TradeUnion], error)
	ListAll(ctx context.Context) ([]*types.TradeUnion, error)
}

type tradeUnionService struct {
	db        *gorm.DB
	log       *logger.Logger
	unions    repos.TradeUnionRepo
	employees repos.EmployeeRepo
	audit     AuditRecorder
}

func NewTradeUnionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	unions repos.TradeUnionRepo,
	employees repos.EmployeeRepo,
	audit AuditRecorder,
) TradeUnionService {
	return &tradeUnionService{
		db:        db,
		log:       baseLog.With("service", "TradeUnionService"),
		unions:    unions,
		employees: employees,
		audit:     audit,
	}
}

func (s *tradeUnionService) Create(ctx context.Context, input CreateTradeUnionInput) (*types.TradeUnion, error) {
	errs := validation.Collect(
		validation.Required("code", input.Code),
		validation.ExactLen("code", input.Code, 5),
		validation.Required("name", input.Name),
		validation.MaxLen("name", input.Name, 80),
		validation.ExactDigits("cnpj", input.CNPJ, 14),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	exists, err := s.unions.Exists(ctx, nil, input.Code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if exists {
		return nil, apierr.Duplicate("trade union", input.Code)
	}

	now := time.Now().UTC()
	union := &types.TradeUnion{
		Code:      input.Code,
		Name:      input.Name,
		CNPJ:      input.CNPJ,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actorLogin(ctx),
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.unions.Create(ctx, tx, union)
	}); err != nil {
		s.log.Error("Failed to create trade union", "code", input.Code, "error", err)
		return nil, apierr.Save(err)
	}

	s.audit.Record(ctx, AuditActionCreate, "trade_union", union.Code, union)
	return union, nil
}

func (s *tradeUnionService) Update(ctx context.Context, code string, input UpdateTradeUnionInput) (*types.TradeUnion, error) {
	errs := validation.Collect(
		validation.Required("name", input.Name),
		validation.MaxLen("name", input.Name, 80),
		validation.ExactDigits("cnpj", input.CNPJ, 14),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	var union *types.TradeUnion
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.unions.GetByCode(ctx, tx, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("trade union", code)
		}
		existing.Name = input.Name
		existing.CNPJ = input.CNPJ
		existing.UpdatedAt = time.Now().UTC()
		existing.UpdatedBy = actorLogin(ctx)
		if err := s.unions.Update(ctx, tx, existing); err != nil {
			return err
		}
		union = existing
		return nil
	}); err != nil {
		return nil, apierr.From(err)
	}

	s.audit.Record(ctx, AuditActionUpdate, "trade_union", union.Code, union)
	return union, nil
}

func (s *tradeUnionService) Delete(ctx context.Context, code string) error {
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteWithin(ctx, tx, code)
	}); err != nil {
		return apierr.From(err)
	}
	s.audit.Record(ctx, AuditActionDelete, "trade_union", code, nil)
	return nil
}

func (s *tradeUnionService) BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error) {
	result, err := runBatchDelete(ctx, s.db, codes, s.deleteWithin)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditActionBatchDelete, "trade_union", "", result)
	return result, nil
}

func (s *tradeUnionService) deleteWithin(ctx context.Context, tx *gorm.DB, code string) error {
	union, err := s.unions.GetByCode(ctx, tx, code)
	if err != nil {
		return err
	}
	if union == nil {
		return apierr.NotFound("trade union", code)
	}

	employeeCount, err := s.employees.CountByUnionCode(ctx, tx, code)
	if err != nil {
		return err
	}
	if employeeCount > 0 {
		return apierr.Dependency(CodeUnionHasEmployees,
			fmt.Errorf("trade union %q has %d linked employee(s) and cannot be deleted", code, employeeCount))
	}

	return s.unions.Delete(ctx, tx, union)
}

func (s *tradeUnionService) Get(ctx context.Context, code string) (*types.TradeUnion, error) {
	union, err := s.unions.GetByCode(ctx, nil, code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if union == nil {
		return nil, apierr.NotFound("trade union", code)
	}
	return union, nil
}

func (s *tradeUnionService) List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.TradeUnion], error) {
	page, pageSize = NormalizePage(page, pageSize)
	items, total, err := s.unions.ListPaged(ctx, nil, pageOffset(page, pageSize), pageSize, search)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return NewPagedResult(items, total, page, pageSize), nil
}

func (s *tradeUnionService) ListAll(ctx context.Context) ([]*types.TradeUnion, error) {
	items, err := s.unions.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return items, nil
}
