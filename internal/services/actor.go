package services

import (
	"context"

	"github.com/rhcore/rhcore-backend/internal/requestdata"
)

// actorLogin resolves the authenticated principal for audit columns;
// empty when the context carries no request data (tests, bootstrap).
func actorLogin(ctx context.Context) string {
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		return rd.Login
	}
	return ""
}
