package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/repository"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/service"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

const leaderboardSize = 10

type DashboardController struct {
	Analytics *service.AnalyticsService
	Sessions  *repository.StudySessionRepository
	Results   *repository.QuizResultRepository
}

func NewDashboardController(analytics *service.AnalyticsService, sessions *repository.StudySessionRepository, results *repository.QuizResultRepository) *DashboardController {
	return &DashboardController{Analytics: analytics, Sessions: sessions, Results: results}
}

// Snapshot godoc
// @Summary Aggregated study statistics for the dashboard
// @Description Totals, streaks, a 7-day activity window and the recent accuracy trend
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.AnalyticsSnapshot}
// @Router /api/dashboard [get]
func (c *DashboardController) Snapshot(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	snapshot, err := c.Analytics.Snapshot(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}

// ListSessions godoc
// @Summary Recent study sessions, newest first
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.StudySession}
// @Router /api/sessions [get]
func (c *DashboardController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.Sessions.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sessions)
}

// ListResults godoc
// @Summary The user's quiz results, newest first
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuizResult}
// @Router /api/quiz-results [get]
func (c *DashboardController) ListResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.Results.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// Leaderboard godoc
// @Summary The user's best quiz runs
// @Description Top results ordered by score, faster runs first on ties
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuizResult}
// @Router /api/leaderboard [get]
func (c *DashboardController) Leaderboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.Results.Leaderboard(claims.UserID, leaderboardSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, results)
}
