package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	request "quote3d/internal/adapter/http/dto/request"
	response "quote3d/internal/adapter/http/dto/response"
	"quote3d/internal/usecase"
	"quote3d/pkg"

	"github.com/gin-gonic/gin"
)

// FileHandler handles CAD file intake and extraction status reads.
type FileHandler struct {
	usecase usecase.IFileUseCase
	now     func() time.Time
}

func NewFileHandler(uc usecase.IFileUseCase) *FileHandler {
	return &FileHandler{usecase: uc, now: time.Now}
}

// StartProcessing godoc
// @Summary      Register an uploaded file and start geometry extraction
// @Tags         files
// @Accept       json
// @Produce      json
// @Param        body  body      request.StartProcessingRequest  true  "Stored file"
// @Success      202   {object}  response.FileAcceptedResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /files/startProcessing [post]
func (h *FileHandler) StartProcessing(c *gin.Context) {
	var payload request.StartProcessingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	f, err := h.usecase.StartProcessing(c.Request.Context(), payload.ToFile())
	if err != nil {
		writeError(c, mapFileError(err))
		return
	}
	c.JSON(http.StatusAccepted, response.FromFileAccepted(f))
}

// Upload godoc
// @Summary      Upload a STEP file and start geometry extraction
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "STEP file (.step or .stp, up to 50MB)"
// @Success      202   {object}  response.FileAcceptedResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /files/upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		writeError(c, pkg.NewDomainErrorSimple("MISSING_FILE", "A file must be provided", http.StatusBadRequest))
		return
	}
	body, err := header.Open()
	if err != nil {
		writeError(c, newInternalError(err))
		return
	}
	defer body.Close()

	log.Printf("[file][handler] upload start name=%q size=%d", header.Filename, header.Size)
	f, err := h.usecase.Upload(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, body)
	if err != nil {
		writeError(c, mapFileError(err))
		return
	}
	c.JSON(http.StatusAccepted, response.FromFileAccepted(f))
}

// GetFile godoc
// @Summary      Get the extraction status of a file
// @Tags         files
// @Produce      json
// @Param        id   path      string  true  "File ID"
// @Success      200  {object}  response.FileStatusResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /files/{id} [get]
func (h *FileHandler) GetFile(c *gin.Context) {
	f, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapFileError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromFileStatus(f, h.now()))
}

func mapFileError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidFileID), errors.Is(err, usecase.ErrInvalidFilePayload):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrUnsupportedFileType):
		return badRequest("UNSUPPORTED_FILE_TYPE", usecase.ErrUnsupportedFileType)
	case errors.Is(err, usecase.ErrFileTooLarge):
		return badRequest("FILE_TOO_LARGE", usecase.ErrFileTooLarge)
	case errors.Is(err, usecase.ErrFileAlreadyExists):
		return badRequest("FILE_ALREADY_EXISTS", usecase.ErrFileAlreadyExists)
	case errors.Is(err, usecase.ErrFileNotFound):
		return pkg.NewDomainErrorSimple("FILE_NOT_FOUND", "File not found", http.StatusNotFound).WithAction(actionUploadNewFile)
	case errors.Is(err, usecase.ErrExtractionStartFailed):
		return pkg.NewDomainError("EXTRACTION_FAILED", "Geometry data extraction failed", err, http.StatusInternalServerError).
			WithAction(actionUploadNewFile)
	case errors.Is(err, usecase.ErrStorageUploadFailed), errors.Is(err, usecase.ErrStorageNotConfigured):
		return pkg.NewDomainError("STORAGE_FAILED", "We could not store your file.", err, http.StatusInternalServerError).
			WithAction(actionRetryLater)
	default:
		return newInternalError(err)
	}
}
