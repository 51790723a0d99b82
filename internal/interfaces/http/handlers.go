package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/service"
	"github.com/akhilsingh-git/timesheetapplication/internal/application/workflow"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	engine         workflow.Engine
	authService    service.AuthService
	userService    service.UserService
	projectService service.ProjectService
	logger         Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	engine workflow.Engine,
	authService service.AuthService,
	userService service.UserService,
	projectService service.ProjectService,
	logger Logger,
) *Handlers {
	return &Handlers{
		engine:         engine,
		authService:    authService,
		userService:    userService,
		projectService: projectService,
		logger:         logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=5"`
	Role      string `json:"role"`
	ReportsTo string `json:"reports_to"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the login result
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *entity.User `json:"user"`
}

// CreateProjectRequest represents the project creation payload
type CreateProjectRequest struct {
	Name        string              `json:"name" binding:"required"`
	Code        string              `json:"code" binding:"required"`
	SubProjects []entity.SubProject `json:"sub_projects"`
}

// ListRequest represents pagination query parameters
type ListRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r *ListRequest) normalize() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 50
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// Root handles GET /api/
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Timesheet API Running"})
}

// Register handles POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid payload"})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  req.Password,
		Role:      req.Role,
		ReportsTo: req.ReportsTo,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: gin.H{"id": user.ID, "email": user.Email}})
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid payload"})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// Me handles GET /api/auth/me
func (h *Handlers) Me(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true, Data: currentUser(c)})
}

// ListUsers handles GET /api/users
func (h *Handlers) ListUsers(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	req.normalize()

	users, err := h.userService.List(c.Request.Context(), currentUser(c), req.Limit, req.Offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: users})
}

// ListProjects handles GET /api/projects
func (h *Handlers) ListProjects(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	req.normalize()

	projects, err := h.projectService.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: projects})
}

// CreateProject handles POST /api/projects
func (h *Handlers) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid payload"})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), currentUser(c), service.CreateProjectRequest{
		Name:        req.Name,
		Code:        req.Code,
		SubProjects: req.SubProjects,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: project})
}

// GetTimesheetByWeek handles GET /api/timesheets/week
func (h *Handlers) GetTimesheetByWeek(c *gin.Context) {
	weekStart := c.Query("week_start")
	if weekStart == "" {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "week_start is required"})
		return
	}
	targetUserID := c.Query("user_id")

	ts, err := h.engine.GetByWeek(c.Request.Context(), currentUser(c), targetUserID, weekStart)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Absence is a normal outcome: success with empty data
	c.JSON(http.StatusOK, Response{Success: true, Data: ts})
}

// ListPendingTimesheets handles GET /api/timesheets/pending
func (h *Handlers) ListPendingTimesheets(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	req.normalize()

	sheets, err := h.engine.ListPending(c.Request.Context(), currentUser(c), req.Limit, req.Offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: sheets})
}

// SaveTimesheet handles POST /api/timesheets
func (h *Handlers) SaveTimesheet(c *gin.Context) {
	var payload workflow.SavePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid payload"})
		return
	}

	actor := currentUser(c)
	if payload.UserID == "" {
		payload.UserID = actor.ID
	}

	ts, err := h.engine.Save(c.Request.Context(), actor, &payload)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: ts})
}

// SubmitTimesheet handles POST /api/timesheets/:id/submit
func (h *Handlers) SubmitTimesheet(c *gin.Context) {
	ts, err := h.engine.Submit(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: ts})
}

// ApproveTimesheet handles POST /api/timesheets/:id/approve
func (h *Handlers) ApproveTimesheet(c *gin.Context) {
	ts, err := h.engine.Approve(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: ts})
}

// RejectTimesheet handles POST /api/timesheets/:id/reject
func (h *Handlers) RejectTimesheet(c *gin.Context) {
	ts, err := h.engine.Reject(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: ts})
}

// fail maps engine failure kinds onto status codes. Every kind surfaces
// 1:1; anything unrecognized is a 500 with the detail kept server-side.
func (h *Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, workflow.ErrForbidden):
		c.JSON(http.StatusForbidden, Response{Success: false, Error: err.Error()})
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case errors.Is(err, workflow.ErrConflict):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	case errors.Is(err, workflow.ErrLocked):
		c.JSON(http.StatusLocked, Response{Success: false, Error: err.Error()})
	default:
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}
