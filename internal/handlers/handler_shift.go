package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portssvc "github.com/smartduka/smartduka_backend/internal/core/ports/services"
	"github.com/smartduka/smartduka_backend/internal/dto"
	"github.com/smartduka/smartduka_backend/internal/middleware"
)

// shiftHandler handles HTTP requests related to cashier shifts.
type shiftHandler struct {
	shiftService portssvc.ShiftSvcFacade
	now          func() time.Time
}

func newShiftHandler(ss portssvc.ShiftSvcFacade) *shiftHandler {
	return &shiftHandler{shiftService: ss, now: time.Now}
}

// RegisterShiftRoutes registers routes related to shifts. Cashiers manage their own
// shift; reconciliation and listings are admin only.
func RegisterShiftRoutes(rg *gin.RouterGroup, shiftService portssvc.ShiftSvcFacade) {
	registerValidation()
	h := newShiftHandler(shiftService)

	anyStaff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleCashier)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	shifts := rg.Group("/shifts")
	{
		shifts.POST("/clock-in", anyStaff, h.clockIn)
		shifts.POST("/clock-out", anyStaff, h.clockOut)
		shifts.GET("/current", anyStaff, h.getCurrentShift)
		shifts.GET("/history/list", adminOnly, h.getShiftHistory)
		shifts.GET("/status/:status", adminOnly, h.getShiftsByStatus)
		shifts.GET("/:shiftID", anyStaff, h.getShift)
		shifts.PUT("/:shiftID/reconcile", adminOnly, h.reconcileShift)
	}
}

// clockIn godoc
// @Summary Clock in
// @Description Opens a shift for the calling cashier. A cashier can hold one open shift per shop.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shift body dto.ClockInRequest true "Shop and opening float"
// @Success 201 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Shop does not match token"
// @Failure 409 {object} map[string]string "Cashier already has an open shift"
// @Failure 500 {object} map[string]string "Failed to clock in"
// @Security BearerAuth
// @Router /shifts/clock-in [post]
func (h *shiftHandler) clockIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var req dto.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "clock-in request", err)
		return
	}
	if req.ShopID != actor.ShopID {
		logger = logger.With(slog.String("requested_shop_id", req.ShopID))
		respondError(c, logger, apperrors.NewForbiddenError("Cannot clock in to another shop"), "Clock-in shop does not match token")
		return
	}

	shift, err := h.shiftService.ClockIn(c.Request.Context(), actor.ShopID, actor.UserID, actor.Name, *req.OpeningBalance)
	if err != nil {
		respondError(c, logger, err, "Failed to clock in")
		return
	}

	logger.Info("Shift opened", slog.String("shift_id", shift.ShiftID))
	c.JSON(http.StatusCreated, dto.ToShiftResponse(shift, h.now()))
}

// clockOut godoc
// @Summary Clock out
// @Description Closes an open shift.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shift body dto.ClockOutRequest true "Shift to close"
// @Success 200 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Shift belongs to another cashier"
// @Failure 404 {object} map[string]string "Shift not found"
// @Failure 409 {object} map[string]string "Shift is not open"
// @Failure 500 {object} map[string]string "Failed to clock out"
// @Security BearerAuth
// @Router /shifts/clock-out [post]
func (h *shiftHandler) clockOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var req dto.ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "clock-out request", err)
		return
	}

	if actor.Role != domain.RoleAdmin {
		if _, ok := h.loadOwnShift(c, logger, actor, req.ShiftID, "Failed to clock out"); !ok {
			return
		}
	}

	shift, err := h.shiftService.ClockOut(c.Request.Context(), actor.ShopID, req.ShiftID, actor.UserID)
	if err != nil {
		respondError(c, logger, err, "Failed to clock out")
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift, h.now()))
}

// getCurrentShift godoc
// @Summary Get the caller's open shift
// @Description Returns the open shift of the calling cashier, or null when none is open.
// @Tags shifts
// @Produce  json
// @Success 200 {object} dto.ShiftResponse
// @Failure 500 {object} map[string]string "Failed to retrieve shift"
// @Security BearerAuth
// @Router /shifts/current [get]
func (h *shiftHandler) getCurrentShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	shift, err := h.shiftService.GetCurrentShift(c.Request.Context(), actor.ShopID, actor.UserID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve shift")
		return
	}
	if shift == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift, h.now()))
}

// getShift godoc
// @Summary Get a shift
// @Tags shifts
// @Produce  json
// @Param   shiftID path string true "Shift ID"
// @Success 200 {object} dto.ShiftResponse
// @Failure 403 {object} map[string]string "Shift belongs to another cashier"
// @Failure 404 {object} map[string]string "Shift not found"
// @Failure 500 {object} map[string]string "Failed to retrieve shift"
// @Security BearerAuth
// @Router /shifts/{shiftID} [get]
func (h *shiftHandler) getShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	shift, ok := h.loadOwnShift(c, logger, actor, c.Param("shiftID"), "Failed to retrieve shift")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift, h.now()))
}

// loadOwnShift fetches a shift of the caller's shop and writes 403 when a cashier asks
// for someone else's shift.
func (h *shiftHandler) loadOwnShift(c *gin.Context, logger *slog.Logger, actor domain.Actor, shiftID, failMsg string) (*domain.Shift, bool) {
	shift, err := h.shiftService.GetShift(c.Request.Context(), actor.ShopID, shiftID)
	if err != nil {
		respondError(c, logger, err, failMsg)
		return nil, false
	}
	if !actor.CanAccessShift(shift) {
		logger = logger.With(slog.String("shift_id", shiftID), slog.String("shift_cashier_id", shift.CashierID))
		respondError(c, logger, apperrors.NewForbiddenError("Cannot access another cashier's shift"), "Shift belongs to another cashier")
		return nil, false
	}
	return shift, true
}

// reconcileShift godoc
// @Summary Reconcile a closed shift
// @Description Records the counted cash and computes expected cash from the shift's completed and paid orders.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shiftID path string true "Shift ID"
// @Param   count body dto.ReconcileShiftRequest true "Counted cash"
// @Success 200 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Admin only"
// @Failure 404 {object} map[string]string "Shift not found"
// @Failure 409 {object} map[string]string "Shift is not closed"
// @Failure 500 {object} map[string]string "Failed to reconcile shift"
// @Security BearerAuth
// @Router /shifts/{shiftID}/reconcile [put]
func (h *shiftHandler) reconcileShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var req dto.ReconcileShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "reconcile shift request", err)
		return
	}

	shift, err := h.shiftService.ReconcileShift(c.Request.Context(), actor.ShopID, c.Param("shiftID"), *req.ActualCash, actor.UserID, req.Notes)
	if err != nil {
		respondError(c, logger, err, "Failed to reconcile shift")
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift, h.now()))
}

// getShiftHistory godoc
// @Summary List shifts
// @Description Lists the shop's shifts newest first. limit defaults to 50 and is capped at 200.
// @Tags shifts
// @Produce  json
// @Param   limit query int false "Maximum number of shifts"
// @Param   cashierId query string false "Only shifts of this cashier"
// @Success 200 {array} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list shifts"
// @Security BearerAuth
// @Router /shifts/history/list [get]
func (h *shiftHandler) getShiftHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var params dto.ShiftHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "shift history query", err)
		return
	}
	var cashierID *string
	if params.CashierID != "" {
		cashierID = &params.CashierID
	}

	shifts, err := h.shiftService.GetShiftHistory(c.Request.Context(), actor.ShopID, cashierID, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list shifts")
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftListResponse(shifts, h.now()))
}

// getShiftsByStatus godoc
// @Summary List shifts by status
// @Tags shifts
// @Produce  json
// @Param   status path string true "open, closed or reconciled"
// @Success 200 {array} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 500 {object} map[string]string "Failed to list shifts"
// @Security BearerAuth
// @Router /shifts/status/{status} [get]
func (h *shiftHandler) getShiftsByStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	shifts, err := h.shiftService.GetShiftsByStatus(c.Request.Context(), actor.ShopID, domain.ShiftStatus(c.Param("status")))
	if err != nil {
		respondError(c, logger, err, "Failed to list shifts")
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftListResponse(shifts, h.now()))
}
