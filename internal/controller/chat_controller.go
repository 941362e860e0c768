package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/service"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

type ChatController struct {
	Service *service.ChatService
}

func NewChatController(chat *service.ChatService) *ChatController {
	return &ChatController{Service: chat}
}

// Chat godoc
// @Summary Talk to the AI tutor
// @Description Persona and subject shape the reply; supports practice questions and re-explaining
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ChatRequest true "conversation and tutor options"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response "AI provider unavailable"
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.Service.Reply(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrUpstreamAI) {
			util.Error(ctx, 502, "The AI service is unavailable right now. Please try again.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"reply": reply})
}
