package controller

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/service"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

const (
	maxDocumentUploadBytes = 25 << 20
	maxAudioUploadBytes    = 50 << 20
)

type ExtractController struct {
	Extraction *service.ExtractionService
}

func NewExtractController(extraction *service.ExtractionService) *ExtractController {
	return &ExtractController{Extraction: extraction}
}

// ExtractPDF godoc
// @Summary Extract text from an uploaded PDF
// @Tags extract
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PDF document"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "missing file or no readable text"
// @Router /api/extract/pdf [post]
func (c *ExtractController) ExtractPDF(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	header, data, ok := c.readUpload(ctx, maxDocumentUploadBytes)
	if !ok {
		return
	}

	text, err := c.Extraction.PDFText(data)
	if err != nil {
		if errors.Is(err, util.ErrNoReadableText) {
			util.BadRequest(ctx, "This PDF has no selectable text. If it is a scanned document, upload a photo of the page instead.")
		} else {
			util.BadRequest(ctx, "Could not read this PDF. Please try another file.")
		}
		return
	}

	c.Extraction.Archive(ctx.Request.Context(), claims.UserID, header.Filename, util.MimePDF, data)

	util.Success(ctx, gin.H{"text": text})
}

// ExtractImage godoc
// @Summary Extract text from an uploaded image via OCR
// @Tags extract
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "photo or screenshot"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "missing file or no readable text"
// @Failure 502 {object} util.Response "OCR provider unavailable"
// @Router /api/extract/image [post]
func (c *ExtractController) ExtractImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	header, data, ok := c.readUpload(ctx, maxDocumentUploadBytes)
	if !ok {
		return
	}

	mimeType := header.Header.Get("Content-Type")
	text, err := c.Extraction.ImageText(ctx.Request.Context(), data, mimeType)
	if err != nil {
		if errors.Is(err, util.ErrNoReadableText) {
			util.BadRequest(ctx, "No readable text was found in this image. Try a sharper, well-lit photo.")
		} else {
			util.Error(ctx, 502, "The OCR service is unavailable right now. Please try again.")
		}
		return
	}

	c.Extraction.Archive(ctx.Request.Context(), claims.UserID, header.Filename, mimeType, data)

	util.Success(ctx, gin.H{"text": text})
}

// ExtractAudio godoc
// @Summary Transcribe an uploaded audio recording
// @Tags extract
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "audio recording"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response "transcription provider unavailable"
// @Router /api/extract/audio [post]
func (c *ExtractController) ExtractAudio(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	header, data, ok := c.readUpload(ctx, maxAudioUploadBytes)
	if !ok {
		return
	}

	text, err := c.Extraction.AudioText(ctx.Request.Context(), header.Filename, data)
	if err != nil {
		if errors.Is(err, util.ErrUpstreamAI) {
			util.Error(ctx, 502, "The transcription service is unavailable right now. Please try again.")
		} else {
			util.BadRequest(ctx, "Could not process this audio file. Please try another recording.")
		}
		return
	}

	c.Extraction.Archive(ctx.Request.Context(), claims.UserID, header.Filename, header.Header.Get("Content-Type"), data)

	util.Success(ctx, gin.H{"text": text})
}

// readUpload pulls the "file" part into memory, rejecting oversized
// uploads before any provider call. Writes the error response itself.
func (c *ExtractController) readUpload(ctx *gin.Context, limit int64) (*multipart.FileHeader, []byte, bool) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return nil, nil, false
	}
	if header.Size > limit {
		util.BadRequest(ctx, "File is too large")
		return nil, nil, false
	}

	src, err := header.Open()
	if err != nil {
		util.BadRequest(ctx, "Could not read the uploaded file")
		return nil, nil, false
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil || int64(len(data)) > limit {
		util.BadRequest(ctx, "Could not read the uploaded file")
		return nil, nil, false
	}

	return header, data, true
}
