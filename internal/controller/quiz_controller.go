package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/service"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

type QuizController struct {
	Engine *service.QuizSessionEngine
	Quiz   *service.QuizService
}

func NewQuizController(engine *service.QuizSessionEngine, quiz *service.QuizService) *QuizController {
	return &QuizController{Engine: engine, Quiz: quiz}
}

type GenerateQuizRequest struct {
	Topic        string           `json:"topic" binding:"required"`
	Difficulty   model.Difficulty `json:"difficulty"`
	NumQuestions int              `json:"numQuestions"`
	Mood         model.Mood       `json:"mood"`
}

// Generate godoc
// @Summary Generate a question set without a session
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateQuizRequest true "topic and options"
// @Success 200 {object} util.Response{data=object}
// @Failure 500 {object} util.Response "no usable questions"
// @Failure 502 {object} util.Response "AI provider unavailable"
// @Router /api/quiz/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Quiz.Generate(ctx.Request.Context(), req.Topic, req.Difficulty, req.NumQuestions, req.Mood)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizGenerationFailed):
			util.Error(ctx, 500, "Could not generate quiz questions. Please try again.")
		case errors.Is(err, util.ErrUpstreamAI):
			util.Error(ctx, 502, "The AI service is unavailable right now. Please try again.")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}

// CreateSession godoc
// @Summary Open a new quiz session
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response{data=object}
// @Router /api/quiz/sessions [post]
func (c *QuizController) CreateSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session := c.Engine.CreateSession(claims.UserID)
	util.Created(ctx, gin.H{"id": session.ID, "state": session.State})
}

// Configure godoc
// @Summary Set game parameters for a session
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Param body body service.QuizConfig true "topic, difficulty, mode, question count"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "round in progress"
// @Router /api/quiz/sessions/{id}/configure [post]
func (c *QuizController) Configure(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var cfg service.QuizConfig
	if err := ctx.ShouldBindJSON(&cfg); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Engine.Configure(claims.UserID, ctx.Param("id"), cfg); err != nil {
		c.writeEngineError(ctx, err)
		return
	}
	c.writeSession(ctx, claims.UserID)
}

// StartRound godoc
// @Summary Start the next round
// @Description Generates questions for a fresh game, or hands the device to player 2
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Failure 404 {object} util.Response
// @Router /api/quiz/sessions/{id}/start [post]
func (c *QuizController) StartRound(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Engine.StartRound(ctx.Request.Context(), claims.UserID, ctx.Param("id")); err != nil {
		c.writeEngineError(ctx, err)
		return
	}
	c.writeSession(ctx, claims.UserID)
}

// swagger:model SelectOptionRequest
type SelectOptionRequest struct {
	OptionIndex *int `json:"optionIndex" binding:"required"`
}

// SelectOption godoc
// @Summary Answer the current question
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Param body body SelectOptionRequest true "chosen option index"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Failure 404 {object} util.Response
// @Router /api/quiz/sessions/{id}/select [post]
func (c *QuizController) SelectOption(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SelectOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Engine.SelectOption(claims.UserID, ctx.Param("id"), *req.OptionIndex); err != nil {
		c.writeEngineError(ctx, err)
		return
	}
	c.writeSession(ctx, claims.UserID)
}

// NextQuestion godoc
// @Summary Advance to the next question
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Failure 404 {object} util.Response
// @Router /api/quiz/sessions/{id}/next [post]
func (c *QuizController) NextQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Engine.NextQuestion(claims.UserID, ctx.Param("id")); err != nil {
		c.writeEngineError(ctx, err)
		return
	}
	c.writeSession(ctx, claims.UserID)
}

// Finish godoc
// @Summary End the current round early
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Failure 404 {object} util.Response
// @Router /api/quiz/sessions/{id}/finish [post]
func (c *QuizController) Finish(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Engine.Finish(claims.UserID, ctx.Param("id")); err != nil {
		c.writeEngineError(ctx, err)
		return
	}
	c.writeSession(ctx, claims.UserID)
}

// GetSession godoc
// @Summary Poll session state
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Failure 404 {object} util.Response
// @Router /api/quiz/sessions/{id} [get]
func (c *QuizController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	c.writeSession(ctx, claims.UserID)
}

// DiscardSession godoc
// @Summary Drop a session
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/sessions/{id} [delete]
func (c *QuizController) DiscardSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Engine.DiscardSession(claims.UserID, ctx.Param("id")); err != nil {
		c.writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"discarded": true})
}

func (c *QuizController) writeSession(ctx *gin.Context, userID uint) {
	view, err := c.Engine.GetSession(userID, ctx.Param("id"))
	if err != nil {
		c.writeEngineError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

func (c *QuizController) writeEngineError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSessionNotActive):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
