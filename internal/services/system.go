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

type CreateSystemInput struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

type UpdateSystemInput struct {
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

type SystemService interface {
	Create(ctx context.Context, input CreateSystemInput) (*types.System, error)
	Update(ctx context.Context, code string, input UpdateSystemInput) (*types.System, error)
	Delete(ctx context.Context, code string) error
	BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error)
	Get(ctx context.Context, code string) (*types.System, error)
	List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.System], error)
	ListAll(ctx context.Context) ([]*types.System, error)
}

type systemService struct {
	db      *gorm.DB
	log     *logger.Logger
	systems repos.SystemRepo
	audit   AuditRecorder
}

func NewSystemService(db *gorm.DB, baseLog *logger.Logger, systems repos.SystemRepo, audit AuditRecorder) SystemService {
	return &systemService{
		db:      db,
		log:     baseLog.With("service", "SystemService"),
		systems: systems,
		audit:   audit,
	}
}

func (s *systemService) Create(ctx context.Context, input CreateSystemInput) (*types.System, error) {
	errs := validation.Collect(
		validation.Required("code", input.Code),
		validation.ExactLen("code", input.Code, 10),
		validation.Required("name", input.Name),
		validation.MaxLen("name", input.Name, 80),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	exists, err := s.systems.Exists(ctx, nil, input.Code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if exists {
		return nil, apierr.Duplicate("system", input.Code)
	}

	now := time.Now().UTC()
	system := &types.System{
		Code:      input.Code,
		Name:      input.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actorLogin(ctx),
	}
	if input.Active != nil {
		system.Active = *input.Active
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.systems.Create(ctx, tx, system)
	}); err != nil {
		s.log.Error("Failed to create system", "code", input.Code, "error", err)
		return nil, apierr.Save(err)
	}

	s.audit.Record(ctx, AuditActionCreate, "system", system.Code, system)
	return system, nil
}

func (s *systemService) Update(ctx context.Context, code string, input UpdateSystemInput) (*types.System, error) {
	errs := validation.Collect(
		validation.Required("name", input.Name),
		validation.MaxLen("name", input.Name, 80),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	var system *types.System
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.systems.GetByCode(ctx, tx, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("system", code)
		}
		existing.Name = input.Name
		if input.Active != nil {
			existing.Active = *input.Active
		}
		existing.UpdatedAt = time.Now().UTC()
		existing.UpdatedBy = actorLogin(ctx)
		if err := s.systems.Update(ctx, tx, existing); err != nil {
			return err
		}
		system = existing
		return nil
	}); err != nil {
		return nil, apierr.From(err)
	}

	s.audit.Record(ctx, AuditActionUpdate, "system", system.Code, system)
	return system, nil
}

func (s *systemService) Delete(ctx context.Context, code string) error {
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteWithin(ctx, tx, code)
	}); err != nil {
		return apierr.From(err)
	}
	s.audit.Record(ctx, AuditActionDelete, "system", code, nil)
	return nil
}

func (s *systemService) BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error) {
	result, err := runBatchDelete(ctx, s.db, codes, s.deleteWithin)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditActionBatchDelete, "system", "", result)
	return result, nil
}

func (s *systemService) deleteWithin(ctx context.Context, tx *gorm.DB, code string) error {
	system, err := s.systems.GetByCode(ctx, tx, code)
	if err != nil {
		return err
	}
	if system == nil {
		return apierr.NotFound("system", code)
	}
	return s.systems.Delete(ctx, tx, system)
}

func (s *systemService) Get(ctx context.Context, code string) (*types.System, error) {
	system, err := s.systems.GetByCode(ctx, nil, code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if system == nil {
		return nil, apierr.NotFound("system", code)
	}
	return system, nil
}

func (s *systemService) List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.System], error) {
	page, pageSize = NormalizePage(page, pageSize)
	items, total, err := s.systems.ListPaged(ctx, nil, pageOffset(page, pageSize), pageSize, search)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return NewPagedResult(items, total, page, pageSize), nil
}

func (s *systemService) ListAll(ctx context.Context) ([]*types.System, error) {
	items, err := s.systems.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return items, nil
}
