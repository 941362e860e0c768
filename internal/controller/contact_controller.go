package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/service"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

type ContactController struct {
	Mail *service.MailService
}

func NewContactController(mail *service.MailService) *ContactController {
	return &ContactController{Mail: mail}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Submit godoc
// @Summary Forward a contact-form message to the team inbox
// @Tags contact
// @Accept json
// @Produce json
// @Param body body ContactRequest true "name, reply address and message"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/contact [post]
func (c *ContactController) Submit(ctx *gin.Context) {
	var req ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Mail.ForwardContactMessage(req.Name, req.Email, req.Message); err != nil {
		util.Error(ctx, 502, "Could not deliver your message right now. Please try again later.")
		return
	}

	util.Success(ctx, gin.H{"sent": true})
}
