package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/service"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

type StudyPackController struct {
	StudyPacks *service.StudyPackService
	Flashcards *service.FlashcardService
}

func NewStudyPackController(studyPacks *service.StudyPackService, flashcards *service.FlashcardService) *StudyPackController {
	return &StudyPackController{StudyPacks: studyPacks, Flashcards: flashcards}
}

// Summarize godoc
// @Summary Generate a study pack from source text
// @Description Summary, keywords, MCQs, slide outline, mindmap and flashcards in one pass
// @Tags studypack
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.StudyPackRequest true "source material and options"
// @Success 200 {object} util.Response{data=model.StudyPackResponse}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response "AI provider unavailable"
// @Router /api/summarize [post]
func (c *StudyPackController) Summarize(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StudyPackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pack, err := c.StudyPacks.Generate(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrUpstreamAI) {
			util.Error(ctx, 502, "The AI service is unavailable right now. Please try again.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, pack)
}

// swagger:model StartDeckRequest
type StartDeckRequest struct {
	Flashcards []model.Flashcard `json:"flashcards" binding:"required,min=1"`
}

// StartDeck godoc
// @Summary Start reviewing a set of flashcards
// @Tags flashcards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartDeckRequest true "cards from a study pack"
// @Success 201 {object} util.Response{data=service.DeckView}
// @Router /api/flashcards/decks [post]
func (c *StudyPackController) StartDeck(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartDeckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deck := c.Flashcards.StartDeck(claims.UserID, req.Flashcards)
	view, err := c.Flashcards.GetDeck(claims.UserID, deck.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// Reveal godoc
// @Summary Flip the current card
// @Tags flashcards
// @Produce json
// @Security BearerAuth
// @Param id path string true "deck id"
// @Success 200 {object} util.Response{data=service.DeckView}
// @Failure 404 {object} util.Response
// @Router /api/flashcards/decks/{id}/reveal [post]
func (c *StudyPackController) Reveal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Flashcards.Reveal(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, view)
}

// swagger:model GradeRequest
type GradeRequest struct {
	Grade string `json:"grade" binding:"required,oneof=again good easy"`
}

// Grade godoc
// @Summary Grade the current card
// @Description "again" re-queues the card right after the next one; "good" and "easy" move on
// @Tags flashcards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "deck id"
// @Param body body GradeRequest true "grade"
// @Success 200 {object} util.Response{data=service.DeckView}
// @Failure 404 {object} util.Response
// @Router /api/flashcards/decks/{id}/grade [post]
func (c *StudyPackController) Grade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.Flashcards.Grade(claims.UserID, ctx.Param("id"), service.Grade(req.Grade))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, view)
}

// GetDeck godoc
// @Summary Current card and position in a review deck
// @Tags flashcards
// @Produce json
// @Security BearerAuth
// @Param id path string true "deck id"
// @Success 200 {object} util.Response{data=service.DeckView}
// @Failure 404 {object} util.Response
// @Router /api/flashcards/decks/{id} [get]
func (c *StudyPackController) GetDeck(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Flashcards.GetDeck(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, view)
}

// DiscardDeck godoc
// @Summary Abandon a review deck
// @Tags flashcards
// @Produce json
// @Security BearerAuth
// @Param id path string true "deck id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/flashcards/decks/{id} [delete]
func (c *StudyPackController) DiscardDeck(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Flashcards.DiscardDeck(claims.UserID, ctx.Param("id")); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"discarded": true})
}
