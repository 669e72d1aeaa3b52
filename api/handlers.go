package api

import (
	"net/http"
	"strconv"
	"strings"

	"bootcamp/models"
	"bootcamp/service"

	"github.com/gin-gonic/gin"
)

// DefaultHistoryLimit is used when a history request has no limit
const DefaultHistoryLimit = 20

// Handler serves the points HTTP API
type Handler struct {
	pointsService service.PointsService
	auditService  service.AuditService
	userService   service.UserService
}

// NewHandler creates a handler over the points services
func NewHandler(pointsService service.PointsService, auditService service.AuditService, userService service.UserService) *Handler {
	return &Handler{
		pointsService: pointsService,
		auditService:  auditService,
		userService:   userService,
	}
}

// RegisterRoutes mounts every route on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.Health)
	r.GET("/leaderboard", h.GetLeaderboard)

	r.POST("/users", h.CreateUser)
	users := r.Group("/users/:id")
	users.GET("", h.GetUser)
	users.PUT("/profile", h.SyncProfile)
	users.POST("/points/adjust", h.AdjustPoints)
	users.GET("/points/breakdown", h.GetBreakdown)
	users.GET("/points/history", h.GetHistory)
	users.POST("/submissions/:submissionId/review", h.ReviewSubmission)
	users.POST("/events/:eventId/attendance", h.RecordAttendance)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type createUserRequest struct {
	UserID      string `json:"userId" binding:"required"`
	DisplayName string `json:"displayName"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.userService.GetOrCreateUser(c.Request.Context(), req.UserID, req.DisplayName)
	if err != nil {
		respondWithError(c, err, "failed to create user")
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit, ok := queryLimit(c, 0)
	if !ok {
		return
	}

	users, err := h.userService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondWithError(c, err, "failed to load leaderboard")
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

type adjustPointsRequest struct {
	PointsChange *int64 `json:"pointsChange" binding:"required"`
	Reason       string `json:"reason"`
	AdminID      string `json:"adminId"`
	Source       string `json:"source"`
}

// AdjustPoints applies a manual change. Unlike the ledger itself, operators
// must always say why.
func (h *Handler) AdjustPoints(c *gin.Context) {
	var req adjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		badRequest(c, "reason is required")
		return
	}

	source := models.PointSourceAdminAdjustment
	if req.Source != "" {
		source = models.PointSource(req.Source)
		if !source.IsManual() {
			badRequest(c, "source must be admin_adjustment or bonus")
			return
		}
	}

	award := models.AwardRequest{
		UserID:       c.Param("id"),
		PointsChange: *req.PointsChange,
		Source:       source,
		Reason:       reason,
	}
	if req.AdminID != "" {
		adminID := req.AdminID
		award.AdminID = &adminID
	}

	result, err := h.pointsService.AwardPoints(c.Request.Context(), award)
	if err != nil {
		respondWithError(c, err, "failed to adjust points")
		return
	}
	c.JSON(http.StatusOK, newAwardResponse(result))
}

type reviewSubmissionRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

func (h *Handler) ReviewSubmission(c *gin.Context) {
	var req reviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.pointsService.AwardSubmission(c.Request.Context(), c.Param("id"), c.Param("submissionId"), *req.Approved)
	if err != nil {
		respondWithError(c, err, "failed to award submission points")
		return
	}
	c.JSON(http.StatusOK, newAwardResponse(result))
}

type recordAttendanceRequest struct {
	EventTitle string `json:"eventTitle" binding:"required"`
}

func (h *Handler) RecordAttendance(c *gin.Context) {
	var req recordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.pointsService.AwardEventAttendance(c.Request.Context(), c.Param("id"), c.Param("eventId"), req.EventTitle)
	if err != nil {
		respondWithError(c, err, "failed to award attendance points")
		return
	}
	c.JSON(http.StatusOK, newAwardResponse(result))
}

func (h *Handler) SyncProfile(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.pointsService.SyncProfileCompletion(c.Request.Context(), c.Param("id"), profile)
	if err != nil {
		respondWithError(c, err, "failed to sync profile points")
		return
	}
	c.JSON(http.StatusOK, newProfileSyncResponse(result))
}

func (h *Handler) GetBreakdown(c *gin.Context) {
	breakdown, err := h.auditService.GetBreakdown(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "failed to load breakdown")
		return
	}
	c.JSON(http.StatusOK, newBreakdownResponse(breakdown))
}

func (h *Handler) GetHistory(c *gin.Context) {
	limit, ok := queryLimit(c, DefaultHistoryLimit)
	if !ok {
		return
	}

	transactions, err := h.auditService.GetHistory(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondWithError(c, err, "failed to load history")
		return
	}
	c.JSON(http.StatusOK, newTransactionResponses(transactions))
}

// queryLimit reads ?limit=, writing a 400 and returning false when it is not
// a non-negative integer
func queryLimit(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return fallback, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		badRequest(c, "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}
