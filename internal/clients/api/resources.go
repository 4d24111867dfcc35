package api

import (
	"context"
	"net/http"

	"github.com/rhcore/rhcore-backend/internal/services"
	"github.com/rhcore/rhcore-backend/internal/types"
)

// LoginRequest and LoginResponse mirror the auth endpoint wire shapes.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	Login        string            `json:"login"`
	Name         string            `json:"name"`
	Permissions  map[string]string `json:"permissions"`
}

type AuthClient struct{ c *Client }

func (c *Client) Auth() *AuthClient { return &AuthClient{c: c} }

func (a *AuthClient) Login(ctx context.Context, login, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := a.c.do(ctx, http.MethodPost, "/api/auth/login", "", LoginRequest{Login: login, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthClient) Logout(ctx context.Context, token, refreshToken string) error {
	body := map[string]string{"refresh_token": refreshToken}
	return a.c.do(ctx, http.MethodPost, "/api/auth/logout", token, body, nil)
}

// resourceClient covers the CRUD surface shared by the simple aggregates.
// The type parameter is the aggregate row type.
type resourceClient[T any] struct {
	c        *Client
	resource string
}

func (r *resourceClient[T]) List(ctx context.Context, token string, page, pageSize int, search string) (*services.PagedResult[T], error) {
	var out services.PagedResult[T]
	if err := r.c.do(ctx, http.MethodGet, listPath(r.resource, page, pageSize, search), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *resourceClient[T]) ListAll(ctx context.Context, token string) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, "/api/"+r.resource+"/all", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *resourceClient[T]) Get(ctx context.Context, token, code string) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodGet, "/api/"+r.resource+"/"+code, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *resourceClient[T]) Create(ctx context.Context, token string, input any) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPost, "/api/"+r.resource, token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *resourceClient[T]) Update(ctx context.Context, token, code string, input any) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPut, "/api/"+r.resource+"/"+code, token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *resourceClient[T]) Delete(ctx context.Context, token, code string) error {
	return r.c.do(ctx, http.MethodDelete, "/api/"+r.resource+"/"+code, token, nil, nil)
}

func (r *resourceClient[T]) BatchDelete(ctx context.Context, token string, keys []string) (*services.BatchDeleteResult, error) {
	var out services.BatchDeleteResult
	body := map[string][]string{"keys": keys}
	if err := r.c.do(ctx, http.MethodPost, "/api/"+r.resource+"/batch-delete", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type SystemsClient struct{ resourceClient[types.System] }
type BanksClient struct{ resourceClient[types.Bank] }
type MunicipalitiesClient struct{ resourceClient[types.Municipality] }
type TradeUnionsClient struct{ resourceClient[types.TradeUnion] }
type CostCentersClient struct{ resourceClient[types.CostCenter] }
type EmployeesClient struct{ resourceClient[types.Employee] }

func (c *Client) Systems() *SystemsClient {
	return &SystemsClient{resourceClient[types.System]{c: c, resource: "systems"}}
}

func (c *Client) Banks() *BanksClient {
	return &BanksClient{resourceClient[types.Bank]{c: c, resource: "banks"}}
}

func (c *Client) Municipalities() *MunicipalitiesClient {
	return &MunicipalitiesClient{resourceClient[types.Municipality]{c: c, resource: "municipalities"}}
}

func (c *Client) TradeUnions() *TradeUnionsClient {
	return &TradeUnionsClient{resourceClient[types.TradeUnion]{c: c, resource: "trade-unions"}}
}

func (c *Client) CostCenters() *CostCentersClient {
	return &CostCentersClient{resourceClient[types.CostCenter]{c: c, resource: "cost-centers"}}
}

func (c *Client) Employees() *EmployeesClient {
	return &EmployeesClient{resourceClient[types.Employee]{c: c, resource: "employees"}}
}

// BranchesClient handles the nested branch routes under a bank.
type BranchesClient struct{ c *Client }

func (c *Client) Branches() *BranchesClient { return &BranchesClient{c: c} }

func (b *BranchesClient) List(ctx context.Context, token, bankCode string, page, pageSize int, search string) (*services.PagedResult[types.BankBranch], error) {
	var out services.PagedResult[types.BankBranch]
	path := listPath("banks/"+bankCode+"/branches", page, pageSize, search)
	if err := b.c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BranchesClient) Get(ctx context.Context, token, bankCode, code string) (*types.BankBranch, error) {
	var out types.BankBranch
	if err := b.c.do(ctx, http.MethodGet, "/api/banks/"+bankCode+"/branches/"+code, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BranchesClient) Create(ctx context.Context, token, bankCode string, input any) (*types.BankBranch, error) {
	var out types.BankBranch
	if err := b.c.do(ctx, http.MethodPost, "/api/banks/"+bankCode+"/branches", token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BranchesClient) Update(ctx context.Context, token, bankCode, code string, input any) (*types.BankBranch, error) {
	var out types.BankBranch
	if err := b.c.do(ctx, http.MethodPut, "/api/banks/"+bankCode+"/branches/"+code, token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BranchesClient) Delete(ctx context.Context, token, bankCode, code string) error {
	return b.c.do(ctx, http.MethodDelete, "/api/banks/"+bankCode+"/branches/"+code, token, nil, nil)
}

func (b *BranchesClient) BatchDelete(ctx context.Context, token, bankCode string, keys []string) (*services.BatchDeleteResult, error) {
	var out services.BatchDeleteResult
	body := map[string][]string{"keys": keys}
	if err := b.c.do(ctx, http.MethodPost, "/api/banks/"+bankCode+"/branches/batch-delete", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuditClient reads the audit trail.
type AuditClient struct{ c *Client }

func (c *Client) Audit() *AuditClient { return &AuditClient{c: c} }

func (a *AuditClient) List(ctx context.Context, token string, page, pageSize int, resource string) (*services.PagedResult[types.AuditLog], error) {
	var out services.PagedResult[types.AuditLog]
	path := listPath("audit-logs", page, pageSize, "")
	if resource != "" {
		path += "&resource=" + resource
	}
	if err := a.c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
