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

type CreateCostCenterInput struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type UpdateCostCenterInput struct {
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type CostCenterService interface {
	Create(ctx context.Context, input CreateCostCenterInput) (*types.CostCenter, error)
	Update(ctx context.Context, code string, input UpdateCostCenterInput) (*types.CostCenter, error)
	Delete(ctx context.Context, code string) error
	BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error)
	Get(ctx context.Context, code string) (*types.CostCenter, error)
	List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.CostCenter], error)
	ListAll(ctx context.Context) ([]*types.CostCenter, error)
}

type costCenterService struct {
	db          *gorm.DB
	log         *logger.Logger
	costCenters repos.CostCenterRepo
	audit       AuditRecorder
}

func NewCostCenterService(db *gorm.DB, baseLog *logger.Logger, costCenters repos.CostCenterRepo, audit AuditRecorder) CostCenterService {
	return &costCenterService{
		db:          db,
		log:         baseLog.With("service", "CostCenterService"),
		costCenters: costCenters,
		audit:       audit,
	}
}

func (s *costCenterService) Create(ctx context.Context, input CreateCostCenterInput) (*types.CostCenter, error) {
	errs := validation.Collect(
		validation.Required("code", input.Code),
		validation.ExactLen("code", input.Code, 9),
		validation.Required("description", input.Description),
		validation.MaxLen("description", input.Description, 80),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	exists, err := s.costCenters.Exists(ctx, nil, input.Code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if exists {
		return nil, apierr.Duplicate("cost center", input.Code)
	}

	now := time.Now().UTC()
	costCenter := &types.CostCenter{
		Code:        input.Code,
		Description: input.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actorLogin(ctx),
	}
	if input.Active != nil {
		costCenter.Active = *input.Active
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.costCenters.Create(ctx, tx, costCenter)
	}); err != nil {
		s.log.Error("Failed to create cost center", "code", input.Code, "error", err)
		return nil, apierr.Save(err)
	}

	s.audit.Record(ctx, AuditActionCreate, "cost_center", costCenter.Code, costCenter)
	return costCenter, nil
}

func (s *costCenterService) Update(ctx context.Context, code string, input UpdateCostCenterInput) (*types.CostCenter, error) {
	errs := validation.Collect(
		validation.Required("description", input.Description),
		validation.MaxLen("description", input.Description, 80),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	var costCenter *types.CostCenter
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.costCenters.GetByCode(ctx, tx, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("cost center", code)
		}
		existing.Description = input.Description
		if input.Active != nil {
			existing.Active = *input.Active
		}
		existing.UpdatedAt = time.Now().UTC()
		existing.UpdatedBy = actorLogin(ctx)
		if err := s.costCenters.Update(ctx, tx, existing); err != nil {
			return err
		}
		costCenter = existing
		return nil
	}); err != nil {
		return nil, apierr.From(err)
	}

	s.audit.Record(ctx, AuditActionUpdate, "cost_center", costCenter.Code, costCenter)
	return costCenter, nil
}

func (s *costCenterService) Delete(ctx context.Context, code string) error {
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteWithin(ctx, tx, code)
	}); err != nil {
		return apierr.From(err)
	}
	s.audit.Record(ctx, AuditActionDelete, "cost_center", code, nil)
	return nil
}

func (s *costCenterService) BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error) {
	result, err := runBatchDelete(ctx, s.db, codes, s.deleteWithin)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditActionBatchDelete, "cost_center", "", result)
	return result, nil
}

func (s *costCenterService) deleteWithin(ctx context.Context, tx *gorm.DB, code string) error {
	costCenter, err := s.costCenters.GetByCode(ctx, tx, code)
	if err != nil {
		return err
	}
	if costCenter == nil {
		return apierr.NotFound("cost center", code)
	}
	return s.costCenters.Delete(ctx, tx, costCenter)
}

func (s *costCenterService) Get(ctx context.Context, code string) (*types.CostCenter, error) {
	costCenter, err := s.costCenters.GetByCode(ctx, nil, code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if costCenter == nil {
		return nil, apierr.NotFound("cost center", code)
	}
	return costCenter, nil
}

func (s *costCenterService) List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.CostCenter], error) {
	page, pageSize = NormalizePage(page, pageSize)
	items, total, err := s.costCenters.ListPaged(ctx, nil, pageOffset(page, pageSize), pageSize, search)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return NewPagedResult(items, total, page, pageSize), nil
}

func (s *costCenterService) ListAll(ctx context.Context) ([]*types.CostCenter, error) {
	items, err := s.costCenters.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return items, nil
}
