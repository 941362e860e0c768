package controller

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/service"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

type PlannerController struct {
	Planner *service.PlannerService
}

func NewPlannerController(planner *service.PlannerService) *PlannerController {
	return &PlannerController{Planner: planner}
}

// GeneratePlan godoc
// @Summary Build a deterministic study schedule
// @Description Splits daily hours across subjects by priority weight up to the exam date
// @Tags planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PlanRequest true "subjects, exam date and daily hours"
// @Success 200 {object} util.Response{data=model.GeneratedPlan}
// @Failure 400 {object} util.Response
// @Router /api/study-plan [post]
func (c *PlannerController) GeneratePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	plan, err := c.Planner.GeneratePlan(req, time.Now())
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, plan)
}

type AddPlanRequest struct {
	Title string `json:"title" binding:"required"`
	Date  string `json:"date"`
}

// AddPlan godoc
// @Summary Add a plan item to the checklist
// @Tags planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddPlanRequest true "title and optional date"
// @Success 200 {object} util.Response{data=model.StudyPlan}
// @Failure 400 {object} util.Response
// @Router /api/plans [post]
func (c *PlannerController) AddPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	plan, err := c.Planner.AddPlan(claims.UserID, req.Title, req.Date)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, plan)
}

// ListPlans godoc
// @Summary List the user's plan items
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.StudyPlan}
// @Router /api/plans [get]
func (c *PlannerController) ListPlans(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plans, err := c.Planner.ListPlans(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, plans)
}

// TogglePlan godoc
// @Summary Toggle a plan item's done flag
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "plan id"
// @Success 200 {object} util.Response{data=model.StudyPlan}
// @Failure 404 {object} util.Response
// @Router /api/plans/{id}/toggle [patch]
func (c *PlannerController) TogglePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plan, err := c.Planner.TogglePlan(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.Error(ctx, 404, "Study plan not found.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, plan)
}

// DeletePlan godoc
// @Summary Delete a plan item
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "plan id"
// @Success 200 {object} util.Response
// @Router /api/plans/{id} [delete]
func (c *PlannerController) DeletePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Planner.DeletePlan(claims.UserID, ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
