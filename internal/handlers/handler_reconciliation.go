package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portssvc "github.com/smartduka/smartduka_backend/internal/core/ports/services"
	"github.com/smartduka/smartduka_backend/internal/dto"
	"github.com/smartduka/smartduka_backend/internal/middleware"
)

// reconciliationHandler handles HTTP requests for the daily cash reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
	location              *time.Location
	now                   func() time.Time
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade, loc *time.Location) *reconciliationHandler {
	if loc == nil {
		loc = time.Local
	}
	return &reconciliationHandler{reconciliationService: rs, location: loc, now: time.Now}
}

// RegisterReconciliationRoutes registers the admin-only reconciliation routes. Dates
// in requests are calendar days in loc.
func RegisterReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade, loc *time.Location) {
	registerValidation()
	h := newReconciliationHandler(reconciliationService, loc)

	recon := rg.Group("/financial/reconciliation", middleware.RequireRoles(domain.RoleAdmin))
	{
		recon.POST("", h.createReconciliation)
		recon.GET("/history", h.getReconciliationHistory)
		recon.GET("/variance-report", h.getVarianceReport)
		recon.GET("/stats", h.getReconciliationStats)
		recon.GET("/:reconciliationID", h.getReconciliation)
		recon.PUT("/:reconciliationID/investigate", h.investigateVariance)
		recon.PUT("/:reconciliationID/approve", h.approveReconciliation)
	}
}

// createReconciliation godoc
// @Summary Create the daily cash reconciliation
// @Description Compares counted cash with the cash payments of the day's paid and partially paid orders.
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   reconciliation body dto.CreateReconciliationRequest true "Cash count"
// @Success 201 {object} domain.Reconciliation
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Admin only"
// @Failure 409 {object} map[string]string "Already reconciled for this day"
// @Failure 500 {object} map[string]string "Failed to create reconciliation"
// @Security BearerAuth
// @Router /financial/reconciliation [post]
func (h *reconciliationHandler) createReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "reconciliation request", err)
		return
	}
	day, err := parseDay(req.ReconciliationDate, h.location)
	if err != nil {
		respondError(c, logger, err, "Invalid reconciliation date")
		return
	}
	date := h.now()
	if day != nil {
		date = *day
	}

	rec, err := h.reconciliationService.CreateDailyReconciliation(c.Request.Context(), actor.ShopID, date, *req.ActualCash, actor.UserID, req.ReconciliationNotes)
	if err != nil {
		respondError(c, logger, err, "Failed to create reconciliation")
		return
	}

	logger.Info("Reconciliation created",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.String("status", string(rec.Status)))
	c.JSON(http.StatusCreated, rec)
}

// getReconciliationHistory godoc
// @Summary List reconciliations
// @Description Lists reconciliations newest first, optionally within an inclusive date range and by status.
// @Tags reconciliation
// @Produce  json
// @Param   startDate query string false "YYYY-MM-DD"
// @Param   endDate query string false "YYYY-MM-DD"
// @Param   status query string false "pending, reconciled or variance_pending"
// @Success 200 {array} domain.Reconciliation
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list reconciliations"
// @Security BearerAuth
// @Router /financial/reconciliation/history [get]
func (h *reconciliationHandler) getReconciliationHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var params dto.ReconciliationHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "reconciliation history query", err)
		return
	}
	start, err := parseDay(params.StartDate, h.location)
	if err != nil {
		respondError(c, logger, err, "Invalid start date")
		return
	}
	end, err := parseDay(params.EndDate, h.location)
	if err != nil {
		respondError(c, logger, err, "Invalid end date")
		return
	}
	var status *domain.ReconciliationStatus
	if params.Status != "" {
		s := domain.ReconciliationStatus(params.Status)
		status = &s
	}

	recs, err := h.reconciliationService.GetReconciliationHistory(c.Request.Context(), actor.ShopID, start, end, status)
	if err != nil {
		respondError(c, logger, err, "Failed to list reconciliations")
		return
	}
	c.JSON(http.StatusOK, recs)
}

// getVarianceReport godoc
// @Summary Variance report
// @Description Aggregates absolute variances between two dates (both required).
// @Tags reconciliation
// @Produce  json
// @Param   startDate query string true "YYYY-MM-DD"
// @Param   endDate query string true "YYYY-MM-DD"
// @Success 200 {object} domain.VarianceReport
// @Failure 400 {object} map[string]string "Missing or invalid dates"
// @Failure 500 {object} map[string]string "Failed to build variance report"
// @Security BearerAuth
// @Router /financial/reconciliation/variance-report [get]
func (h *reconciliationHandler) getVarianceReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var params dto.VarianceReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "variance report query", err)
		return
	}
	start, err := parseDay(params.StartDate, h.location)
	if err != nil {
		respondError(c, logger, err, "Invalid start date")
		return
	}
	end, err := parseDay(params.EndDate, h.location)
	if err != nil {
		respondError(c, logger, err, "Invalid end date")
		return
	}

	report, err := h.reconciliationService.GetVarianceReport(c.Request.Context(), actor.ShopID, *start, *end)
	if err != nil {
		respondError(c, logger, err, "Failed to build variance report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getReconciliationStats godoc
// @Summary Reconciliation statistics
// @Tags reconciliation
// @Produce  json
// @Success 200 {object} domain.ReconciliationStats
// @Failure 500 {object} map[string]string "Failed to compute statistics"
// @Security BearerAuth
// @Router /financial/reconciliation/stats [get]
func (h *reconciliationHandler) getReconciliationStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	stats, err := h.reconciliationService.GetReconciliationStats(c.Request.Context(), actor.ShopID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getReconciliation godoc
// @Summary Get a reconciliation
// @Tags reconciliation
// @Produce  json
// @Param   reconciliationID path string true "Reconciliation ID"
// @Success 200 {object} domain.Reconciliation
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve reconciliation"
// @Security BearerAuth
// @Router /financial/reconciliation/{reconciliationID} [get]
func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	rec, err := h.reconciliationService.GetReconciliation(c.Request.Context(), actor.ShopID, c.Param("reconciliationID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// investigateVariance godoc
// @Summary Record a variance investigation
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   reconciliationID path string true "Reconciliation ID"
// @Param   investigation body dto.InvestigateVarianceRequest true "Investigation"
// @Success 200 {object} domain.Reconciliation
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Failed to investigate variance"
// @Security BearerAuth
// @Router /financial/reconciliation/{reconciliationID}/investigate [put]
func (h *reconciliationHandler) investigateVariance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var req dto.InvestigateVarianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "investigation request", err)
		return
	}

	rec, err := h.reconciliationService.InvestigateVariance(c.Request.Context(), actor.ShopID, c.Param("reconciliationID"), req.VarianceType, req.InvestigationNotes, actor.UserID)
	if err != nil {
		respondError(c, logger, err, "Failed to investigate variance")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// approveReconciliation godoc
// @Summary Approve a reconciliation
// @Description Signs off a reconciliation whose variance is pending approval.
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   reconciliationID path string true "Reconciliation ID"
// @Param   approval body dto.ApproveReconciliationRequest false "Approval notes"
// @Success 200 {object} domain.Reconciliation
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 409 {object} map[string]string "Not awaiting approval"
// @Failure 500 {object} map[string]string "Failed to approve reconciliation"
// @Security BearerAuth
// @Router /financial/reconciliation/{reconciliationID}/approve [put]
func (h *reconciliationHandler) approveReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var req dto.ApproveReconciliationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logger, "approval request", err)
			return
		}
	}

	rec, err := h.reconciliationService.ApproveReconciliation(c.Request.Context(), actor.ShopID, c.Param("reconciliationID"), actor.UserID, req.Notes)
	if err != nil {
		respondError(c, logger, err, "Failed to approve reconciliation")
		return
	}
	c.JSON(http.StatusOK, rec)
}
