// Package admin serves a small HTML console for staff users to browse and
// edit boards, columns, labels, cards and comments.
package admin

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/rs/zerolog"
	"github.com/yukikurage/kanban-board-api/internal/config"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/logging"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// Repositories are used for the list pages and counts
type Repositories struct {
	Users    repository.UserRepository
	Boards   repository.BoardRepository
	Columns  repository.ColumnRepository
	Labels   repository.LabelRepository
	Cards    repository.CardRepository
	Comments repository.CommentRepository
	Teams    repository.TeamRepository
}

// Services perform every write so the console validates like the API
type Services struct {
	Users    *services.UserService
	Boards   *services.BoardService
	Columns  *services.ColumnService
	Labels   *services.LabelService
	Cards    *services.CardService
	Comments *services.CommentService
}

type Admin struct {
	repos     Repositories
	svc       Services
	markdown  *Markdown
	templates *template.Template
	models    []*modelAdmin
	byName    map[string]*modelAdmin
	log       zerolog.Logger
}

// New parses the embedded templates and registers the model pages
func New(repos Repositories, svc Services) (*Admin, error) {
	a := &Admin{
		repos:    repos,
		svc:      svc,
		markdown: NewMarkdown(),
		log:      logging.Component("admin"),
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"markdown": a.markdown.Render,
		"add":      func(a, b int) int { return a + b },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin templates: %w", err)
	}
	a.templates = tmpl

	a.models = a.registry()
	a.byName = make(map[string]*modelAdmin, len(a.models))
	for _, m := range a.models {
		a.byName[m.name] = m
	}
	return a, nil
}

// NewSessionStore builds the session store selected by SESSION_STORE
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			redisAddr,
			"", // username (empty for default user)
			"", // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = s
	case "cookie", "":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/admin",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// Register mounts the console under /admin
func (a *Admin) Register(r gin.IRouter, store sessions.Store) {
	g := r.Group("/admin", sessions.Sessions(constants.SessionCookieName, store))
	g.GET("/login", a.loginForm)
	g.POST("/login", a.login)
	g.POST("/logout", a.logout)

	staff := g.Group("", a.requireStaff)
	staff.GET("/", a.index)
	staff.GET("/:model/", a.list)
	staff.GET("/:model/:id/", a.edit)
	staff.POST("/:model/:id/", a.save)
	staff.POST("/:model/:id/delete", a.remove)
}

func (a *Admin) render(c *gin.Context, status int, name string, data any) {
	c.Render(status, render.HTML{Template: a.templates, Name: name, Data: data})
}

// requireStaff lets signed-in staff users through and sends everyone else
// to the login form
func (a *Admin) requireStaff(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get(constants.SessionKeyAdminUserID).(uint64)
	if ok {
		user, err := a.svc.Users.GetUser(userID)
		if err == nil && user.IsStaff {
			c.Set(constants.ContextKeyUser, user)
			c.Next()
			return
		}
		if err != nil && !errors.Is(err, services.ErrUserNotFound) {
			a.fail(c, err)
			return
		}
	}

	c.Redirect(http.StatusFound, "/admin/login?next="+url.QueryEscape(c.Request.URL.Path))
	c.Abort()
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(constants.ContextKeyUser); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

type loginPage struct {
	Title    string
	User     *models.User
	Username string
	Next     string
	Error    string
}

func (a *Admin) loginForm(c *gin.Context) {
	a.render(c, http.StatusOK, "login.html", loginPage{
		Title: "Log in",
		Next:  safeNext(c.Query("next")),
	})
}

func (a *Admin) login(c *gin.Context) {
	username := c.PostForm("username")
	next := safeNext(c.PostForm("next"))

	user, err := a.svc.Users.Authenticate(username, c.PostForm("password"))
	if err != nil && !errors.Is(err, services.ErrInvalidCredentials) {
		a.fail(c, err)
		return
	}
	if err != nil || !user.IsStaff {
		a.render(c, http.StatusOK, "login.html", loginPage{
			Title:    "Log in",
			Username: username,
			Next:     next,
			Error:    "Please enter the correct username and password for a staff account.",
		})
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.SessionKeyAdminUserID, user.ID)
	if err := session.Save(); err != nil {
		a.fail(c, fmt.Errorf("failed to save session: %w", err))
		return
	}

	a.log.Info().Str("username", user.Username).Msg("staff login")
	c.Redirect(http.StatusFound, next)
}

func (a *Admin) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/admin", MaxAge: -1})
	if err := session.Save(); err != nil {
		a.fail(c, fmt.Errorf("failed to clear session: %w", err))
		return
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// safeNext keeps redirects inside the console
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/admin/"
}

type errorPage struct {
	Title   string
	User    *models.User
	Message string
}

// fail renders not-found errors as 404 and everything else as 500
func (a *Admin) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrLabelNotFound),
		errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		a.render(c, http.StatusNotFound, "error.html", errorPage{Title: "Not found", User: currentUser(c), Message: "Not found."})
	default:
		a.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("admin request failed")
		a.render(c, http.StatusInternalServerError, "error.html", errorPage{Title: "Server error", User: currentUser(c), Message: "Internal server error"})
	}
	c.Abort()
}
