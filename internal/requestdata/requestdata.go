package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/rhcore/rhcore-backend/internal/permissions"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

type RequestData struct {
	UserID uuid.UUID
	Login  string
	Claims permissions.Claims
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
