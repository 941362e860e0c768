package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/service"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

type ExamController struct {
	Exams *service.ExamService
}

func NewExamController(exams *service.ExamService) *ExamController {
	return &ExamController{Exams: exams}
}

// Predict godoc
// @Summary Predict likely exam topics and questions
// @Description Analyses a syllabus and/or past papers; either input alone is accepted
// @Tags exam
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ExamRequest true "syllabus and past paper text"
// @Success 200 {object} util.Response{data=model.ExamPrediction}
// @Failure 400 {object} util.Response "both inputs empty"
// @Failure 502 {object} util.Response "AI provider unavailable"
// @Router /api/exam-predictor [post]
func (c *ExamController) Predict(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	prediction, err := c.Exams.Predict(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrUpstreamAI) {
			util.Error(ctx, 502, "The AI service is unavailable right now. Please try again.")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, prediction)
}
