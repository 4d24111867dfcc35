// Package web serves the server-rendered screens. Every screen consumes the
// REST API through the typed clients; nothing here touches the database.
// Action buttons are rendered only when the signed-in user's claims carry the
// matching action letter, and the API enforces the same check again.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/clients/api"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/permissions"
	"github.com/rhcore/rhcore-backend/internal/services"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const sessionCookieName = "rh_session"

type Handler struct {
	api   *api.Client
	auth  services.AuthService
	log   *logger.Logger
	pages map[string]*template.Template
}

func NewHandler(apiClient *api.Client, auth services.AuthService, baseLog *logger.Logger) (*Handler, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"login", "dashboard", "list", "form"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	return &Handler{
		api:   apiClient,
		auth:  auth,
		log:   baseLog.With("handler", "Web"),
		pages: pages,
	}, nil
}

// Register mounts the screens under /web on the shared engine.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/web")
	})

	web := router.Group("/web")
	web.GET("/login", h.LoginPage)
	web.POST("/login", h.Login)
	web.GET("/logout", h.Logout)

	signed := web.Group("")
	signed.Use(h.requireSession())
	signed.GET("", h.Dashboard)

	for _, res := range h.resources() {
		res := res
		signed.GET("/"+res.slug, h.listPage(res))
		signed.GET("/"+res.slug+"/new", h.newPage(res))
		signed.POST("/"+res.slug+"/new", h.createAction(res))
		signed.GET("/"+res.slug+"/:key/edit", h.editPage(res))
		signed.POST("/"+res.slug+"/:key/edit", h.updateAction(res))
		signed.POST("/"+res.slug+"/:key/delete", h.deleteAction(res))
	}

	// Branch screens hang off the bank key.
	signed.GET("/banks/:key/branches", func(c *gin.Context) {
		h.listPage(h.branchResource(c.Param("key")))(c)
	})
	signed.GET("/banks/:key/branches/new", func(c *gin.Context) {
		h.newPage(h.branchResource(c.Param("key")))(c)
	})
	signed.POST("/banks/:key/branches/new", func(c *gin.Context) {
		h.createAction(h.branchResource(c.Param("key")))(c)
	})
	signed.GET("/banks/:key/branches/:branch/edit", func(c *gin.Context) {
		h.editBranchPage(c)
	})
	signed.POST("/banks/:key/branches/:branch/edit", func(c *gin.Context) {
		h.updateBranchAction(c)
	})
	signed.POST("/banks/:key/branches/:branch/delete", func(c *gin.Context) {
		h.deleteBranchAction(c)
	})
}

// session carries what the templates need about the signed-in user.
type session struct {
	Token  string
	Login  string
	Claims permissions.Claims
}

func (h *Handler) sessionFrom(c *gin.Context) *session {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		return nil
	}
	rd, err := h.auth.ParseToken(token)
	if err != nil {
		return nil
	}
	return &session{Token: token, Login: rd.Login, Claims: rd.Claims}
}

func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := h.sessionFrom(c)
		if sess == nil {
			c.Redirect(http.StatusFound, "/web/login")
			c.Abort()
			return
		}
		c.Set("web_session", sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session {
	v, _ := c.Get("web_session")
	sess, _ := v.(*session)
	return sess
}

func (h *Handler) render(c *gin.Context, page string, status int, data any) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.pages[page].ExecuteTemplate(c.Writer, "layout", data); err != nil {
		h.log.Error("Failed to render page", "page", page, "error", err)
	}
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return apierr.From(err).Error()
}

type loginView struct {
	Title        string
	Login        string
	FormLogin    string
	ErrorMessage string
}

func (h *Handler) LoginPage(c *gin.Context) {
	if h.sessionFrom(c) != nil {
		c.Redirect(http.StatusFound, "/web")
		return
	}
	h.render(c, "login", http.StatusOK, loginView{Title: "Sign in"})
}

func (h *Handler) Login(c *gin.Context) {
	login := c.PostForm("login")
	password := c.PostForm("password")

	result, err := h.api.Auth().Login(c.Request.Context(), login, password)
	if err != nil {
		h.render(c, "login", http.StatusUnauthorized, loginView{
			Title:        "Sign in",
			FormLogin:    login,
			ErrorMessage: errorMessage(err),
		})
		return
	}

	c.SetCookie(sessionCookieName, result.AccessToken, int(h.auth.AccessTTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/web")
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/web/login")
}

type dashboardCard struct {
	Label string
	URL   string
	Count int64
}

type dashboardModule struct {
	Label string
	URL   string
}

type dashboardView struct {
	Title        string
	Login        string
	Cards        []dashboardCard
	Modules      []dashboardModule
	ErrorMessage string
}

func (h *Handler) Dashboard(c *gin.Context) {
	sess := currentSession(c)
	view := dashboardView{Title: "Dashboard", Login: sess.Login}

	counts, err := h.api.DashboardCounts(c.Request.Context(), sess.Token)
	if err != nil {
		view.ErrorMessage = errorMessage(err)
		counts = &api.DashboardCounts{}
	}

	for _, res := range h.resources() {
		if !permissions.HasAction(sess.Claims, res.functionCode, permissions.ActionView) {
			continue
		}
		view.Modules = append(view.Modules, dashboardModule{Label: res.title, URL: "/web/" + res.slug})
		view.Cards = append(view.Cards, dashboardCard{
			Label: res.title,
			URL:   "/web/" + res.slug,
			Count: res.dashboardCount(counts),
		})
	}
	h.render(c, "dashboard", http.StatusOK, view)
}
