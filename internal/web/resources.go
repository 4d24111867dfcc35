package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/clients/api"
	"github.com/rhcore/rhcore-backend/internal/permissions"
)

const webPageSize = 20

type fieldDef struct {
	Name     string
	Label    string
	Checkbox bool
}

type row struct {
	Key   string
	Cells []string
}

// webResource describes one CRUD screen family: how to list rows, load a
// record into form values and push form values back through the API client.
type webResource struct {
	slug           string
	title          string
	functionCode   string
	keyField       fieldDef
	fields         []fieldDef
	columns        []string
	dashboardCount func(*api.DashboardCounts) int64
	list           func(ctx context.Context, token string, page int, search string) ([]row, int64, error)
	get            func(ctx context.Context, token, key string) (map[string]string, error)
	create         func(ctx context.Context, token string, payload map[string]any) error
	update         func(ctx context.Context, token, key string, payload map[string]any) error
	del            func(ctx context.Context, token, key string) error
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return ""
}

func (h *Handler) resources() []*webResource {
	return []*webResource{
		{
			slug: "systems", title: "Systems", functionCode: permissions.FnSystems,
			keyField: fieldDef{Name: "code", Label: "Code"},
			fields: []fieldDef{
				{Name: "name", Label: "Name"},
				{Name: "active", Label: "Active", Checkbox: true},
			},
			columns:        []string{"Code", "Name", "Active"},
			dashboardCount: func(c *api.DashboardCounts) int64 { return c.Systems },
			list: func(ctx context.Context, token string, page int, search string) ([]row, int64, error) {
				res, err := h.api.Systems().List(ctx, token, page, webPageSize, search)
				if err != nil {
					return nil, 0, err
				}
				rows := make([]row, 0, len(res.Items))
				for _, it := range res.Items {
					rows = append(rows, row{Key: it.Code, Cells: []string{it.Code, it.Name, yesNo(it.Active)}})
				}
				return rows, res.TotalCount, nil
			},
			get: func(ctx context.Context, token, key string) (map[string]string, error) {
				it, err := h.api.Systems().Get(ctx, token, key)
				if err != nil {
					return nil, err
				}
				return map[string]string{"code": it.Code, "name": it.Name, "active": boolValue(it.Active)}, nil
			},
			create: func(ctx context.Context, token string, payload map[string]any) error {
				_, err := h.api.Systems().Create(ctx, token, payload)
				return err
			},
			update: func(ctx context.Context, token, key string, payload map[string]any) error {
				_, err := h.api.Systems().Update(ctx, token, key, payload)
				return err
			},
			del: func(ctx context.Context, token, key string) error {
				return h.api.Systems().Delete(ctx, token, key)
			},
		},
		{
			slug: "banks", title: "Banks", functionCode: permissions.FnBanks,
			keyField: fieldDef{Name: "code", Label: "Code"},
			fields: []fieldDef{
				{Name: "name", Label: "Name"},
				{Name: "active", Label: "Active", Checkbox: true},
			},
			columns:        []string{"Code", "Name", "Active"},
			dashboardCount: func(c *api.DashboardCounts) int64 { return c.Banks },
			list: func(ctx context.Context, token string, page int, search string) ([]row, int64, error) {
				res, err := h.api.Banks().List(ctx, token, page, webPageSize, search)
				if err != nil {
					return nil, 0, err
				}
				rows := make([]row, 0, len(res.Items))
				for _, it := range res.Items {
					rows = append(rows, row{Key: it.Code, Cells: []string{it.Code, it.Name, yesNo(it.Active)}})
				}
				return rows, res.TotalCount, nil
			},
			get: func(ctx context.Context, token, key string) (map[string]string, error) {
				it, err := h.api.Banks().Get(ctx, token, key)
				if err != nil {
					return nil, err
				}
				return map[string]string{"code": it.Code, "name": it.Name, "active": boolValue(it.Active)}, nil
			},
			create: func(ctx context.Context, token string, payload map[string]any) error {
				_, err := h.api.Banks().Create(ctx, token, payload)
				return err
			},
			update: func(ctx context.Context, token, key string, payload map[string]any) error {
				_, err := h.api.Banks().Update(ctx, token, key, payload)
				return err
			},
			del: func(ctx context.Context, token, key string) error {
				return h.api.Banks().Delete(ctx, token, key)
			},
		},
		{
			slug: "municipalities", title: "Municipalities", functionCode: permissions.FnMunicipalities,
			keyField: fieldDef{Name: "code", Label: "IBGE code"},
			fields: []fieldDef{
				{Name: "name", Label: "Name"},
				{Name: "state", Label: "State"},
			},
			columns:        []string{"Code", "Name", "State"},
			dashboardCount: func(c *api.DashboardCounts) int64 { return c.Municipalities },
			list: func(ctx context.Context, token string, page int, search string) ([]row, int64, error) {
				res, err := h.api.Municipalities().List(ctx, token, page, webPageSize, search)
				if err != nil {
					return nil, 0, err
				}
				rows := make([]row, 0, len(res.Items))
				for _, it := range res.Items {
					rows = append(rows, row{Key: it.Code, Cells: []string{it.Code, it.Name, it.State}})
				}
				return rows, res.TotalCount, nil
			},
			get: func(ctx context.Context, token, key string) (map[string]string, error) {
				it, err := h.api.Municipalities().Get(ctx, token, key)
				if err != nil {
					return nil, err
				}
				return map[string]string{"code": it.Code, "name": it.Name, "state": it.State}, nil
			},
			create: func(ctx context.Context, token string, payload map[string]any) error {
				_, err := h.api.Municipalities().Create(ctx, token, payload)
				return err
			},
			update: func(ctx context.Context, token, key string, payload map[string]any) error {
				_, err := h.api.Municipalities().Update(ctx, token, key, payload)
				return err
			},
			del: func(ctx context.Context, token, key string) error {
				return h.api.Municipalities().Delete(ctx, token, key)
			},
		},
		{
			slug: "trade-unions", title: "Trade unions", functionCode: permissions.FnUnions,
			keyField: fieldDef{Name: "code", Label: "Code"},
			fields: []fieldDef{
				{Name: "name", Label: "Name"},
				{Name: "cnpj", Label: "CNPJ"},
			},
			columns:        []string{"Code", "Name", "CNPJ"},
			dashboardCount: func(c *api.DashboardCounts) int64 { return c.TradeUnions },
			list: func(ctx context.Context, token string, page int, search string) ([]row, int64, error) {
				res, err := h.api.TradeUnions().List(ctx, token, page, webPageSize, search)
				if err != nil {
					return nil, 0, err
				}
				rows := make([]row, 0, len(res.Items))
				for _, it := range res.Items {
					rows = append(rows, row{Key: it.Code, Cells: []string{it.Code, it.Name, it.CNPJ}})
				}
				return rows, res.TotalCount, nil
			},
			get: func(ctx context.Context, token, key string) (map[string]string, error) {
				it, err := h.api.TradeUnions().Get(ctx, token, key)
				if err != nil {
					return nil, err
				}
				return map[string]string{"code": it.Code, "name": it.Name, "cnpj": it.CNPJ}, nil
			},
			create: func(ctx context.Context, token string, payload map[string]any) error {
				_, err := h.api.TradeUnions().Create(ctx, token, payload)
				return err
			},
			update: func(ctx context.Context, token, key string, payload map[string]any) error {
				_, err := h.api.TradeUnions().Update(ctx, token, key, payload)
				return err
			},
			del: func(ctx context.Context, token, key string) error {
				return h.api.TradeUnions().Delete(ctx, token, key)
			},
		},
		{
			slug: "cost-centers", title: "Cost centers", functionCode: permissions.FnCostCenters,
			keyField: fieldDef{Name: "code", Label: "Code"},
			fields: []fieldDef{
				{Name: "description", Label: "Description"},
				{Name: "active", Label: "Active", Checkbox: true},
			},
			columns:        []string{"Code", "Description", "Active"},
			dashboardCount: func(c *api.DashboardCounts) int64 { return c.CostCenters },
			list: func(ctx context.Context, token string, page int, search string) ([]row, int64, error) {
				res, err := h.api.CostCenters().List(ctx, token, page, webPageSize, search)
				if err != nil {
					return nil, 0, err
				}
				rows := make([]row, 0, len(res.Items))
				for _, it := range res.Items {
					rows = append(rows, row{Key: it.Code, Cells: []string{it.Code, it.Description, yesNo(it.Active)}})
				}
				return rows, res.TotalCount, nil
			},
			get: func(ctx context.Context, token, key string) (map[string]string, error) {
				it, err := h.api.CostCenters().Get(ctx, token, key)
				if err != nil {
					return nil, err
				}
				return map[string]string{"code": it.Code, "description": it.Description, "active": boolValue(it.Active)}, nil
			},
			create: func(ctx context.Context, token string, payload map[string]any) error {
				_, err := h.api.CostCenters().Create(ctx, token, payload)
				return err
			},
			update: func(ctx context.Context, token, key string, payload map[string]any) error {
				_, err := h.api.CostCenters().Update(ctx, token, key, payload)
				return err
			},
			del: func(ctx context.Context, token, key string) error {
				return h.api.CostCenters().Delete(ctx, token, key)
			},
		},
		{
			slug: "employees", title: "Employees", functionCode: permissions.FnEmployees,
			keyField: fieldDef{Name: "registration", Label: "Registration"},
			fields: []fieldDef{
				{Name: "name", Label: "Name"},
				{Name: "bank_code", Label: "Bank code"},
				{Name: "branch_code", Label: "Branch code"},
				{Name: "union_code", Label: "Union code"},
				{Name: "active", Label: "Active", Checkbox: true},
			},
			columns:        []string{"Registration", "Name", "Bank", "Branch", "Union", "Active"},
			dashboardCount: func(c *api.DashboardCounts) int64 { return c.Employees },
			list: func(ctx context.Context, token string, page int, search string) ([]row, int64, error) {
				res, err := h.api.Employees().List(ctx, token, page, webPageSize, search)
				if err != nil {
					return nil, 0, err
				}
				rows := make([]row, 0, len(res.Items))
				for _, it := range res.Items {
					rows = append(rows, row{Key: it.Registration, Cells: []string{
						it.Registration, it.Name, it.BankCode, it.BranchCode, it.UnionCode, yesNo(it.Active),
					}})
				}
				return rows, res.TotalCount, nil
			},
			get: func(ctx context.Context, token, key string) (map[string]string, error) {
				it, err := h.api.Employees().Get(ctx, token, key)
				if err != nil {
					return nil, err
				}
				return map[string]string{
					"registration": it.Registration,
					"name":         it.Name,
					"bank_code":    it.BankCode,
					"branch_code":  it.BranchCode,
					"union_code":   it.UnionCode,
					"active":       boolValue(it.Active),
				}, nil
			},
			create: func(ctx context.Context, token string, payload map[string]any) error {
				_, err := h.api.Employees().Create(ctx, token, payload)
				return err
			},
			update: func(ctx context.Context, token, key string, payload map[string]any) error {
				_, err := h.api.Employees().Update(ctx, token, key, payload)
				return err
			},
			del: func(ctx context.Context, token, key string) error {
				return h.api.Employees().Delete(ctx, token, key)
			},
		},
	}
}

// branchResource builds the screen family for one bank's branches; the bank
// code is fixed by the path.
func (h *Handler) branchResource(bankCode string) *webResource {
	return &webResource{
		slug: "banks/" + bankCode + "/branches", title: "Branches of bank " + bankCode,
		functionCode: permissions.FnBranches,
		keyField:     fieldDef{Name: "code", Label: "Branch code"},
		fields: []fieldDef{
			{Name: "name", Label: "Name"},
			{Name: "city", Label: "City"},
		},
		columns: []string{"Code", "Name", "City"},
		list: func(ctx context.Context, token string, page int, search string) ([]row, int64, error) {
			res, err := h.api.Branches().List(ctx, token, bankCode, page, webPageSize, search)
			if err != nil {
				return nil, 0, err
			}
			rows := make([]row, 0, len(res.Items))
			for _, it := range res.Items {
				rows = append(rows, row{Key: it.Code, Cells: []string{it.Code, it.Name, it.City}})
			}
			return rows, res.TotalCount, nil
		},
		get: func(ctx context.Context, token, key string) (map[string]string, error) {
			it, err := h.api.Branches().Get(ctx, token, bankCode, key)
			if err != nil {
				return nil, err
			}
			return map[string]string{"code": it.Code, "name": it.Name, "city": it.City}, nil
		},
		create: func(ctx context.Context, token string, payload map[string]any) error {
			_, err := h.api.Branches().Create(ctx, token, bankCode, payload)
			return err
		},
		update: func(ctx context.Context, token, key string, payload map[string]any) error {
			_, err := h.api.Branches().Update(ctx, token, bankCode, key, payload)
			return err
		},
		del: func(ctx context.Context, token, key string) error {
			return h.api.Branches().Delete(ctx, token, bankCode, key)
		},
	}
}

type listView struct {
	Title        string
	Login        string
	BasePath     string
	Search       string
	Columns      []string
	Rows         []row
	Page         int
	PrevPage     int
	NextPage     int
	TotalPages   int
	TotalCount   int64
	CanCreate    bool
	CanEdit      bool
	CanDelete    bool
	ErrorMessage string
}

type formField struct {
	Name     string
	Label    string
	Value    string
	Checkbox bool
	Checked  bool
	ReadOnly bool
}

type formView struct {
	Title        string
	Login        string
	BasePath     string
	FormAction   string
	Fields       []formField
	ErrorMessage string
}

func (h *Handler) listPage(res *webResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		page, _ := strconv.Atoi(c.Query("page"))
		if page < 1 {
			page = 1
		}
		search := strings.TrimSpace(c.Query("search"))

		view := listView{
			Title:     res.title,
			Login:     sess.Login,
			BasePath:  "/web/" + res.slug,
			Search:    search,
			Columns:   res.columns,
			Page:      page,
			PrevPage:  page - 1,
			NextPage:  page + 1,
			CanCreate: permissions.HasAction(sess.Claims, res.functionCode, permissions.ActionCreate),
			CanEdit:   permissions.HasAction(sess.Claims, res.functionCode, permissions.ActionEdit),
			CanDelete: permissions.HasAction(sess.Claims, res.functionCode, permissions.ActionDelete),
		}

		rows, total, err := res.list(c.Request.Context(), sess.Token, page, search)
		if err != nil {
			view.ErrorMessage = errorMessage(err)
			view.TotalPages = 1
			h.render(c, "list", http.StatusOK, view)
			return
		}
		view.Rows = rows
		view.TotalCount = total
		view.TotalPages = int((total + webPageSize - 1) / webPageSize)
		if view.TotalPages < 1 {
			view.TotalPages = 1
		}
		h.render(c, "list", http.StatusOK, view)
	}
}

func (h *Handler) formFieldsNew(res *webResource) []formField {
	fields := []formField{{Name: res.keyField.Name, Label: res.keyField.Label}}
	for _, f := range res.fields {
		fields = append(fields, formField{Name: f.Name, Label: f.Label, Checkbox: f.Checkbox, Checked: f.Checkbox})
	}
	return fields
}

func (h *Handler) formFieldsEdit(res *webResource, key string, values map[string]string) []formField {
	fields := []formField{{Name: res.keyField.Name, Label: res.keyField.Label, Value: key, ReadOnly: true}}
	for _, f := range res.fields {
		fields = append(fields, formField{
			Name:     f.Name,
			Label:    f.Label,
			Value:    values[f.Name],
			Checkbox: f.Checkbox,
			Checked:  f.Checkbox && values[f.Name] != "",
		})
	}
	return fields
}

// payloadFrom converts posted form values into the JSON body the API expects.
func payloadFrom(c *gin.Context, fields []fieldDef) map[string]any {
	payload := make(map[string]any, len(fields))
	for _, f := range fields {
		if f.Checkbox {
			payload[f.Name] = c.PostForm(f.Name) == "on"
			continue
		}
		payload[f.Name] = strings.TrimSpace(c.PostForm(f.Name))
	}
	return payload
}

func (h *Handler) newPage(res *webResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		h.render(c, "form", http.StatusOK, formView{
			Title:      "New - " + res.title,
			Login:      sess.Login,
			BasePath:   "/web/" + res.slug,
			FormAction: "/web/" + res.slug + "/new",
			Fields:     h.formFieldsNew(res),
		})
	}
}

func (h *Handler) createAction(res *webResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		payload := payloadFrom(c, append([]fieldDef{res.keyField}, res.fields...))
		if err := res.create(c.Request.Context(), sess.Token, payload); err != nil {
			fields := h.formFieldsNew(res)
			for i := range fields {
				if fields[i].Checkbox {
					fields[i].Checked = c.PostForm(fields[i].Name) == "on"
					continue
				}
				fields[i].Value = c.PostForm(fields[i].Name)
			}
			h.render(c, "form", http.StatusOK, formView{
				Title:        "New - " + res.title,
				Login:        sess.Login,
				BasePath:     "/web/" + res.slug,
				FormAction:   "/web/" + res.slug + "/new",
				Fields:       fields,
				ErrorMessage: errorMessage(err),
			})
			return
		}
		c.Redirect(http.StatusFound, "/web/"+res.slug)
	}
}

func (h *Handler) editPage(res *webResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.renderEditForm(c, res, c.Param("key"))
	}
}

func (h *Handler) renderEditForm(c *gin.Context, res *webResource, key string) {
	sess := currentSession(c)
	values, err := res.get(c.Request.Context(), sess.Token, key)
	if err != nil {
		h.renderListError(c, res, err)
		return
	}
	h.render(c, "form", http.StatusOK, formView{
		Title:      "Edit - " + res.title,
		Login:      sess.Login,
		BasePath:   "/web/" + res.slug,
		FormAction: "/web/" + res.slug + "/" + key + "/edit",
		Fields:     h.formFieldsEdit(res, key, values),
	})
}

func (h *Handler) updateAction(res *webResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.applyUpdate(c, res, c.Param("key"))
	}
}

func (h *Handler) applyUpdate(c *gin.Context, res *webResource, key string) {
	sess := currentSession(c)
	payload := payloadFrom(c, res.fields)
	if err := res.update(c.Request.Context(), sess.Token, key, payload); err != nil {
		fields := h.formFieldsEdit(res, key, nil)
		for i := range fields {
			if fields[i].ReadOnly {
				continue
			}
			if fields[i].Checkbox {
				fields[i].Checked = c.PostForm(fields[i].Name) == "on"
				continue
			}
			fields[i].Value = c.PostForm(fields[i].Name)
		}
		h.render(c, "form", http.StatusOK, formView{
			Title:        "Edit - " + res.title,
			Login:        sess.Login,
			BasePath:     "/web/" + res.slug,
			FormAction:   "/web/" + res.slug + "/" + key + "/edit",
			Fields:       fields,
			ErrorMessage: errorMessage(err),
		})
		return
	}
	c.Redirect(http.StatusFound, "/web/"+res.slug)
}

func (h *Handler) deleteAction(res *webResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.applyDelete(c, res, c.Param("key"))
	}
}

func (h *Handler) applyDelete(c *gin.Context, res *webResource, key string) {
	sess := currentSession(c)
	if err := res.del(c.Request.Context(), sess.Token, key); err != nil {
		h.renderListError(c, res, err)
		return
	}
	c.Redirect(http.StatusFound, "/web/"+res.slug)
}

// renderListError re-renders the list screen with the failure banner so a
// blocked delete shows its reason in place.
func (h *Handler) renderListError(c *gin.Context, res *webResource, actionErr error) {
	sess := currentSession(c)
	view := listView{
		Title:        res.title,
		Login:        sess.Login,
		BasePath:     "/web/" + res.slug,
		Columns:      res.columns,
		Page:         1,
		TotalPages:   1,
		CanCreate:    permissions.HasAction(sess.Claims, res.functionCode, permissions.ActionCreate),
		CanEdit:      permissions.HasAction(sess.Claims, res.functionCode, permissions.ActionEdit),
		CanDelete:    permissions.HasAction(sess.Claims, res.functionCode, permissions.ActionDelete),
		ErrorMessage: errorMessage(actionErr),
	}
	if rows, total, err := res.list(c.Request.Context(), sess.Token, 1, ""); err == nil {
		view.Rows = rows
		view.TotalCount = total
		view.TotalPages = int((total + webPageSize - 1) / webPageSize)
		if view.TotalPages < 1 {
			view.TotalPages = 1
		}
	}
	h.render(c, "list", http.StatusOK, view)
}

func (h *Handler) editBranchPage(c *gin.Context) {
	h.renderEditForm(c, h.branchResource(c.Param("key")), c.Param("branch"))
}

func (h *Handler) updateBranchAction(c *gin.Context) {
	h.applyUpdate(c, h.branchResource(c.Param("key")), c.Param("branch"))
}

func (h *Handler) deleteBranchAction(c *gin.Context) {
	h.applyDelete(c, h.branchResource(c.Param("key")), c.Param("branch"))
}
