package services

import (
	"context"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/apierr"
)

type BatchDeleteFailure struct {
	Key     string `json:"key"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchDeleteResult tallies a batch exclusion. SuccessCount+FailureCount
// always equals the number of distinct keys requested.
type BatchDeleteResult struct {
	SuccessCount int                  `json:"success_count"`
	FailureCount int                  `json:"failure_count"`
	Failures     []BatchDeleteFailure `json:"failures,omitempty"`
}

func (r *BatchDeleteResult) AllSucceeded() bool { return r.FailureCount == 0 }

// runBatchDelete applies del to each distinct key inside one transaction.
// Business failures (not found, dependency blocks) are recorded per key and
// processing continues; an unexpected store error aborts the transaction and
// the whole batch reports SAVE_FAILED.
func runBatchDelete(ctx context.Context, db *gorm.DB, keys []string, del func(ctx context.Context, tx *gorm.DB, key string) error) (*BatchDeleteResult, error) {
	distinct := dedupeKeys(keys)
	if len(distinct) == 0 {
		return nil, apierr.Validation(map[string][]string{
			"keys": {"at least one key is required"},
		})
	}

	result := &BatchDeleteResult{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range distinct {
			if delErr := del(ctx, tx, key); delErr != nil {
				ae := apierr.From(delErr)
				if ae.Status >= http.StatusInternalServerError {
					return delErr
				}
				result.FailureCount++
				result.Failures = append(result.Failures, BatchDeleteFailure{
					Key:     key,
					Code:    ae.Code,
					Message: ae.Error(),
				})
				continue
			}
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Save(err)
	}
	return result, nil
}

// dedupeKeys trims, drops empties and removes duplicates preserving the
// first occurrence order.
func dedupeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
