package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/repos"
	"github.com/rhcore/rhcore-backend/internal/types"
	"github.com/rhcore/rhcore-backend/internal/validation"
)

type CreateMunicipalityInput struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	State string `json:"state"`
}

type UpdateMunicipalityInput struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

type MunicipalityService interface {
	Create(ctx context.Context, input CreateMunicipalityInput) (*types.Municipality, error)
	Update(ctx context.Context, code string, input UpdateMunicipalityInput) (*types.Municipality, error)
	Delete(ctx context.Context, code string) error
	BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error)
	Get(ctx context.Context, code string) (*types.Municipality, error)
	List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.Municipality], error)
	ListAll(ctx context.Context) ([]*types.Municipality, error)
}

type municipalityService struct {
	db             *gorm.DB
	log            *logger.Logger
	municipalities repos.MunicipalityRepo
	audit          AuditRecorder
}

func NewMunicipalityService(db *gorm.DB, baseLog *logger.Logger, municipalities repos.MunicipalityRepo, audit AuditRecorder) MunicipalityService {
	return &municipalityService{
		db:             db,
		log:            baseLog.With("service", "MunicipalityService"),
		municipalities: municipalities,
		audit:          audit,
	}
}

func validateMunicipalityFields(name, state string) validation.Errors {
	return validation.Collect(
		validation.Required("name", name),
		validation.MaxLen("name", name, 80),
		validation.Required("state", state),
		validation.ExactLen("state", state, 2),
	)
}

func (s *municipalityService) Create(ctx context.Context, input CreateMunicipalityInput) (*types.Municipality, error) {
	errs := validation.Collect(
		validation.Required("code", input.Code),
		validation.ExactDigits("code", input.Code, 7),
	)
	for field, msgs := range validateMunicipalityFields(input.Name, input.State) {
		errs[field] = append(errs[field], msgs...)
	}
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	exists, err := s.municipalities.Exists(ctx, nil, input.Code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if exists {
		return nil, apierr.Duplicate("municipality", input.Code)
	}

	now := time.Now().UTC()
	municipality := &types.Municipality{
		Code:      input.Code,
		Name:      input.Name,
		State:     strings.ToUpper(input.State),
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actorLogin(ctx),
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.municipalities.Create(ctx, tx, municipality)
	}); err != nil {
		s.log.Error("Failed to create municipality", "code", input.Code, "error", err)
		return nil, apierr.Save(err)
	}

	s.audit.Record(ctx, AuditActionCreate, "municipality", municipality.Code, municipality)
	return municipality, nil
}

func (s *municipalityService) Update(ctx context.Context, code string, input UpdateMunicipalityInput) (*types.Municipality, error) {
	if errs := validateMunicipalityFields(input.Name, input.State); !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	var municipality *types.Municipality
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.municipalities.GetByCode(ctx, tx, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("municipality", code)
		}
		existing.Name = input.Name
		existing.State = strings.ToUpper(input.State)
		existing.UpdatedAt = time.Now().UTC()
		existing.UpdatedBy = actorLogin(ctx)
		if err := s.municipalities.Update(ctx, tx, existing); err != nil {
			return err
		}
		municipality = existing
		return nil
	}); err != nil {
		return nil, apierr.From(err)
	}

	s.audit.Record(ctx, AuditActionUpdate, "municipality", municipality.Code, municipality)
	return municipality, nil
}

func (s *municipalityService) Delete(ctx context.Context, code string) error {
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteWithin(ctx, tx, code)
	}); err != nil {
		return apierr.From(err)
	}
	s.audit.Record(ctx, AuditActionDelete, "municipality", code, nil)
	return nil
}

func (s *municipalityService) BatchDelete(ctx context.Context, codes []string) (*BatchDeleteResult, error) {
	result, err := runBatchDelete(ctx, s.db, codes, s.deleteWithin)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditActionBatchDelete, "municipality", "", result)
	return result, nil
}

func (s *municipalityService) deleteWithin(ctx context.Context, tx *gorm.DB, code string) error {
	municipality, err := s.municipalities.GetByCode(ctx, tx, code)
	if err != nil {
		return err
	}
	if municipality == nil {
		return apierr.NotFound("municipality", code)
	}
	return s.municipalities.Delete(ctx, tx, municipality)
}

func (s *municipalityService) Get(ctx context.Context, code string) (*types.Municipality, error) {
	municipality, err := s.municipalities.GetByCode(ctx, nil, code)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if municipality == nil {
		return nil, apierr.NotFound("municipality", code)
	}
	return municipality, nil
}

func (s *municipalityService) List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.Municipality], error) {
	page, pageSize = NormalizePage(page, pageSize)
	items, total, err := s.municipalities.ListPaged(ctx, nil, pageOffset(page, pageSize), pageSize, search)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return NewPagedResult(items, total, page, pageSize), nil
}

func (s *municipalityService) ListAll(ctx context.Context) ([]*types.Municipality, error) {
	items, err := s.municipalities.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return items, nil
}
