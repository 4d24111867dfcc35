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

type CreateEmployeeInput struct {
	Registration string `json:"registration"`
	Name         string `json:"name"`
	BankCode     string `json:"bank_code"`
	BranchCode   string `json:"branch_code"`
	UnionCode    string `json:"union_code"`
	Active       *bool  `json:"active"`
}

type UpdateEmployeeInput struct {
	Name       string `json:"name"`
	BankCode   string `json:"bank_code"`
	BranchCode string `json:"branch_code"`
	UnionCode  string `json:"union_code"`
	Active     *bool  `json:"active"`
}

type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*types.Employee, error)
	Update(ctx context.Context, registration string, input UpdateEmployeeInput) (*types.Employee, error)
	Delete(ctx context.Context, registration string) error
	BatchDelete(ctx context.Context, registrations []string) (*BatchDeleteResult, error)
	Get(ctx context.Context, registration string) (*types.Employee, error)
	List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.Employee], error)
}

type employeeService struct {
	db        *gorm.DB
	log       *logger.Logger
	employees repos.EmployeeRepo
	banks     repos.BankRepo
	branches  repos.BankBranchRepo
	unions    repos.TradeUnionRepo
	audit     AuditRecorder
}

func NewEmployeeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	employees repos.EmployeeRepo,
	banks repos.BankRepo,
	branches repos.BankBranchRepo,
	unions repos.TradeUnionRepo,
	audit AuditRecorder,
) EmployeeService {
	return &employeeService{
		db:        db,
		log:       baseLog.With("service", "EmployeeService"),
		employees: employees,
		banks:     banks,
		branches:  branches,
		unions:    unions,
		audit:     audit,
	}
}

func validateEmployeeLinks(name, bankCode, branchCode, unionCode string) validation.Errors {
	return validation.Collect(
		validation.Required("name", name),
		validation.MaxLen("name", name, 80),
		validation.ExactDigits("bank_code", bankCode, 3),
		validation.ExactDigits("branch_code", branchCode, 4),
		validation.ExactLen("union_code", unionCode, 5),
	)
}

// checkLinks verifies the optional bank/branch/union references point at
// existing parents so a payroll record never links a code the store does not
// know. A branch is scoped to its bank, so branch_code is meaningless without
// bank_code.
func (s *employeeService) checkLinks(ctx context.Context, bankCode, branchCode, unionCode string) error {
	if bankCode != "" {
		exists, err := s.banks.Exists(ctx, nil, bankCode)
		if err != nil {
			return apierr.Save(err)
		}
		if !exists {
			return apierr.NotFound("bank", bankCode)
		}
	}
	if branchCode != "" {
		if bankCode == "" {
			return apierr.Validation(map[string][]string{
				"branch_code": {"branch_code requires bank_code"},
			})
		}
		exists, err := s.branches.Exists(ctx, nil, bankCode, branchCode)
		if err != nil {
			return apierr.Save(err)
		}
		if !exists {
			return apierr.NotFound("bank branch", bankCode+"/"+branchCode)
		}
	}
	if unionCode != "" {
		exists, err := s.unions.Exists(ctx, nil, unionCode)
		if err != nil {
			return apierr.Save(err)
		}
		if !exists {
			return apierr.NotFound("trade union", unionCode)
		}
	}
	return nil
}

func (s *employeeService) Create(ctx context.Context, input CreateEmployeeInput) (*types.Employee, error) {
	errs := validation.Collect(
		validation.Required("registration", input.Registration),
		validation.ExactDigits("registration", input.Registration, 6),
	)
	for field, msgs := range validateEmployeeLinks(input.Name, input.BankCode, input.BranchCode, input.UnionCode) {
		errs[field] = append(errs[field], msgs...)
	}
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	exists, err := s.employees.Exists(ctx, nil, input.Registration)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if exists {
		return nil, apierr.Duplicate("employee", input.Registration)
	}

	if err := s.checkLinks(ctx, input.BankCode, input.BranchCode, input.UnionCode); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	employee := &types.Employee{
		Registration: input.Registration,
		Name:         input.Name,
		BankCode:     input.BankCode,
		BranchCode:   input.BranchCode,
		UnionCode:    input.UnionCode,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    actorLogin(ctx),
	}
	if input.Active != nil {
		employee.Active = *input.Active
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.employees.Create(ctx, tx, employee)
	}); err != nil {
		s.log.Error("Failed to create employee", "registration", input.Registration, "error", err)
		return nil, apierr.Save(err)
	}

	s.audit.Record(ctx, AuditActionCreate, "employee", employee.Registration, employee)
	return employee, nil
}

func (s *employeeService) Update(ctx context.Context, registration string, input UpdateEmployeeInput) (*types.Employee, error) {
	if errs := validateEmployeeLinks(input.Name, input.BankCode, input.BranchCode, input.UnionCode); !errs.Empty() {
		return nil, apierr.Validation(errs)
	}
	if err := s.checkLinks(ctx, input.BankCode, input.BranchCode, input.UnionCode); err != nil {
		return nil, err
	}

	var employee *types.Employee
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.employees.GetByRegistration(ctx, tx, registration)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("employee", registration)
		}
		existing.Name = input.Name
		existing.BankCode = input.BankCode
		existing.BranchCode = input.BranchCode
		existing.UnionCode = input.UnionCode
		if input.Active != nil {
			existing.Active = *input.Active
		}
		existing.UpdatedAt = time.Now().UTC()
		existing.UpdatedBy = actorLogin(ctx)
		if err := s.employees.Update(ctx, tx, existing); err != nil {
			return err
		}
		employee = existing
		return nil
	}); err != nil {
		return nil, apierr.From(err)
	}

	s.audit.Record(ctx, AuditActionUpdate, "employee", employee.Registration, employee)
	return employee, nil
}

func (s *employeeService) Delete(ctx context.Context, registration string) error {
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteWithin(ctx, tx, registration)
	}); err != nil {
		return apierr.From(err)
	}
	s.audit.Record(ctx, AuditActionDelete, "employee", registration, nil)
	return nil
}

func (s *employeeService) BatchDelete(ctx context.Context, registrations []string) (*BatchDeleteResult, error) {
	result, err := runBatchDelete(ctx, s.db, registrations, s.deleteWithin)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditActionBatchDelete, "employee", "", result)
	return result, nil
}

func (s *employeeService) deleteWithin(ctx context.Context, tx *gorm.DB, registration string) error {
	employee, err := s.employees.GetByRegistration(ctx, tx, registration)
	if err != nil {
		return err
	}
	if employee == nil {
		return apierr.NotFound("employee", registration)
	}
	return s.employees.Delete(ctx, tx, employee)
}

func (s *employeeService) Get(ctx context.Context, registration string) (*types.Employee, error) {
	employee, err := s.employees.GetByRegistration(ctx, nil, registration)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if employee == nil {
		return nil, apierr.NotFound("employee", registration)
	}
	return employee, nil
}

func (s *employeeService) List(ctx context.Context, page, pageSize int, search string) (*PagedResult[*types.Employee], error) {
	page, pageSize = NormalizePage(page, pageSize)
	items, total, err := s.employees.ListPaged(ctx, nil, pageOffset(page, pageSize), pageSize, search)
	if err != nil {
		return nil, apierr.Save(err)
	}
	return NewPagedResult(items, total, page, pageSize), nil
}
