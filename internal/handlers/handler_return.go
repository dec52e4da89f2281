package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portssvc "github.com/smartduka/smartduka_backend/internal/core/ports/services"
	"github.com/smartduka/smartduka_backend/internal/dto"
	"github.com/smartduka/smartduka_backend/internal/middleware"
)

// returnHandler handles HTTP requests related to customer returns.
type returnHandler struct {
	returnService portssvc.ReturnSvcFacade
}

func newReturnHandler(rs portssvc.ReturnSvcFacade) *returnHandler {
	return &returnHandler{returnService: rs}
}

// RegisterReturnRoutes registers routes related to returns. Any authenticated staff
// member may request and read returns; decisions and statistics are admin only.
func RegisterReturnRoutes(rg *gin.RouterGroup, returnService portssvc.ReturnSvcFacade) {
	registerValidation()
	h := newReturnHandler(returnService)

	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	returns := rg.Group("/returns")
	{
		returns.POST("", h.createReturn)
		returns.GET("", h.listReturns)
		returns.GET("/history", h.getReturnHistory)
		returns.GET("/pending", adminOnly, h.getPendingReturns)
		returns.GET("/stats", adminOnly, h.getReturnStats)
		returns.GET("/:returnID", h.getReturn)
		returns.PUT("/:returnID/approve", adminOnly, h.approveReturn)
		returns.PUT("/:returnID/reject", adminOnly, h.rejectReturn)
		returns.PUT("/:returnID/complete", adminOnly, h.completeReturn)
	}
}

// createReturn godoc
// @Summary Request a return
// @Description Records a pending return if the order is still inside its return window (7 days by default).
// @Tags returns
// @Accept  json
// @Produce  json
// @Param   return body dto.CreateReturnRequest true "Return request"
// @Success 201 {object} domain.Return
// @Failure 400 {object} map[string]string "Invalid input or return window expired"
// @Failure 500 {object} map[string]string "Failed to create return"
// @Security BearerAuth
// @Router /returns [post]
func (h *returnHandler) createReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var req dto.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "return request", err)
		return
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), actor.ShopID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create return")
		return
	}

	logger.Info("Return requested",
		slog.String("return_id", ret.ReturnID),
		slog.String("order_id", ret.OrderID))
	c.JSON(http.StatusCreated, ret)
}

// listReturns godoc
// @Summary List returns
// @Tags returns
// @Produce  json
// @Param   status query string false "pending, approved, rejected or completed"
// @Success 200 {array} domain.Return
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 500 {object} map[string]string "Failed to list returns"
// @Security BearerAuth
// @Router /returns [get]
func (h *returnHandler) listReturns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var params dto.ListReturnsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "return list query", err)
		return
	}
	var status *domain.ReturnStatus
	if params.Status != "" {
		s := domain.ReturnStatus(params.Status)
		status = &s
	}

	returns, err := h.returnService.ListReturns(c.Request.Context(), actor.ShopID, status)
	if err != nil {
		respondError(c, logger, err, "Failed to list returns")
		return
	}
	c.JSON(http.StatusOK, returns)
}

// getReturnHistory godoc
// @Summary Recent returns
// @Tags returns
// @Produce  json
// @Param   limit query int false "Maximum number of returns (default 50, max 200)"
// @Success 200 {array} domain.Return
// @Failure 500 {object} map[string]string "Failed to list returns"
// @Security BearerAuth
// @Router /returns/history [get]
func (h *returnHandler) getReturnHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var params dto.ReturnHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "return history query", err)
		return
	}

	returns, err := h.returnService.GetReturnHistory(c.Request.Context(), actor.ShopID, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list returns")
		return
	}
	c.JSON(http.StatusOK, returns)
}

// getPendingReturns godoc
// @Summary Returns awaiting a decision
// @Description Lists pending returns oldest first.
// @Tags returns
// @Produce  json
// @Success 200 {array} domain.Return
// @Failure 403 {object} map[string]string "Admin only"
// @Failure 500 {object} map[string]string "Failed to list returns"
// @Security BearerAuth
// @Router /returns/pending [get]
func (h *returnHandler) getPendingReturns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	returns, err := h.returnService.GetPendingReturns(c.Request.Context(), actor.ShopID)
	if err != nil {
		respondError(c, logger, err, "Failed to list returns")
		return
	}
	c.JSON(http.StatusOK, returns)
}

// getReturnStats godoc
// @Summary Return statistics
// @Tags returns
// @Produce  json
// @Success 200 {object} domain.ReturnStats
// @Failure 403 {object} map[string]string "Admin only"
// @Failure 500 {object} map[string]string "Failed to compute statistics"
// @Security BearerAuth
// @Router /returns/stats [get]
func (h *returnHandler) getReturnStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	stats, err := h.returnService.GetReturnStats(c.Request.Context(), actor.ShopID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getReturn godoc
// @Summary Get a return
// @Tags returns
// @Produce  json
// @Param   returnID path string true "Return ID"
// @Success 200 {object} domain.Return
// @Failure 404 {object} map[string]string "Return not found"
// @Failure 500 {object} map[string]string "Failed to retrieve return"
// @Security BearerAuth
// @Router /returns/{returnID} [get]
func (h *returnHandler) getReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	ret, err := h.returnService.GetReturn(c.Request.Context(), actor.ShopID, c.Param("returnID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve return")
		return
	}
	c.JSON(http.StatusOK, ret)
}

// approveReturn godoc
// @Summary Approve a pending return
// @Tags returns
// @Accept  json
// @Produce  json
// @Param   returnID path string true "Return ID"
// @Param   decision body dto.ReturnDecisionRequest true "Decision"
// @Success 200 {object} domain.Return
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Return not found"
// @Failure 409 {object} map[string]string "Return is not pending"
// @Failure 500 {object} map[string]string "Failed to approve return"
// @Security BearerAuth
// @Router /returns/{returnID}/approve [put]
func (h *returnHandler) approveReturn(c *gin.Context) {
	h.decide(c, h.returnService.ApproveReturn, "Failed to approve return")
}

// rejectReturn godoc
// @Summary Reject a pending return
// @Tags returns
// @Accept  json
// @Produce  json
// @Param   returnID path string true "Return ID"
// @Param   decision body dto.ReturnDecisionRequest true "Decision"
// @Success 200 {object} domain.Return
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Return not found"
// @Failure 409 {object} map[string]string "Return is not pending"
// @Failure 500 {object} map[string]string "Failed to reject return"
// @Security BearerAuth
// @Router /returns/{returnID}/reject [put]
func (h *returnHandler) rejectReturn(c *gin.Context) {
	h.decide(c, h.returnService.RejectReturn, "Failed to reject return")
}

type returnDecision func(ctx context.Context, shopID, returnID, approvedBy string, notes *string) (*domain.Return, error)

func (h *returnHandler) decide(c *gin.Context, decide returnDecision, failMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	var req dto.ReturnDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "return decision", err)
		return
	}

	ret, err := decide(c.Request.Context(), actor.ShopID, c.Param("returnID"), req.ApprovedBy, req.ApprovalNotes)
	if err != nil {
		respondError(c, logger, err, failMsg)
		return
	}
	c.JSON(http.StatusOK, ret)
}

// completeReturn godoc
// @Summary Complete an approved return
// @Tags returns
// @Produce  json
// @Param   returnID path string true "Return ID"
// @Success 200 {object} domain.Return
// @Failure 404 {object} map[string]string "Return not found"
// @Failure 409 {object} map[string]string "Return is not approved"
// @Failure 500 {object} map[string]string "Failed to complete return"
// @Security BearerAuth
// @Router /returns/{returnID}/complete [put]
func (h *returnHandler) completeReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, _ := middleware.GetActorFromContext(c)

	ret, err := h.returnService.CompleteReturn(c.Request.Context(), actor.ShopID, c.Param("returnID"), actor.UserID)
	if err != nil {
		respondError(c, logger, err, "Failed to complete return")
		return
	}
	c.JSON(http.StatusOK, ret)
}
