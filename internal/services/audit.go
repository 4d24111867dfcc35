package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/repos"
	"github.com/rhcore/rhcore-backend/internal/requestdata"
	"github.com/rhcore/rhcore-backend/internal/types"
)

const (
	AuditActionCreate      = "CREATE"
	AuditActionUpdate      = "UPDATE"
	AuditActionDelete      = "DELETE"
	AuditActionBatchDelete = "BATCH_DELETE"
)

// AuditRecorder writes the access-control trail for every committed
// mutation. Recording happens after the commit and never fails the write.
type AuditRecorder interface {
	Record(ctx context.Context, action, resource, recordKey string, detail any)
}

type AuditService interface {
	AuditRecorder
	List(ctx context.Context, page, pageSize int, resource string) (*PagedResult[*types.AuditLog], error)
}

type auditService struct {
	log  *logger.Logger
	repo repos.AuditLogRepo
}

func NewAuditService(baseLog *logger.Logger, repo repos.AuditLogRepo) AuditService {
	return &auditService{log: baseLog.With("service", "AuditService"), repo: repo}
}

func (s *auditService) Record(ctx context.Context, action, resource, recordKey string, detail any) {
	entry := &types.AuditLog{
		ID:        uuid.New(),
		Action:    action,
		Resource:  resource,
		RecordKey: recordKey,
		CreatedAt: time.Now().UTC(),
	}
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		entry.ActorID = rd.UserID
		entry.Actor = rd.Login
	}
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			s.log.Warn("Failed to marshal audit detail", "resource", resource, "record_key", recordKey, "error", err)
		} else {
			entry.Detail = raw
		}
	}
	if err := s.repo.Create(ctx, nil, entry); err != nil {
		s.log.Warn("Failed to write audit log entry", "resource", resource, "record_key", recordKey, "error", err)
	}
}

func (s *auditService) List(ctx context.Context, page, pageSize int, resource string) (*PagedResult[*types.AuditLog], error) {
	page, pageSize = NormalizePage(page, pageSize)
	items, total, err := s.repo.ListPaged(ctx, nil, pageOffset(page, pageSize), pageSize, resource)
	if err != nil {
		return nil, err
	}
	return NewPagedResult(items, total, page, pageSize), nil
}
