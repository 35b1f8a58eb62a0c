package handlers

import (
	"log"
	"net/http"

	"quote3d/pkg"

	"github.com/gin-gonic/gin"
)

const (
	actionRetryLater     = "Please try again later."
	actionUploadNewFile  = "Upload a new file."
	actionNewQuote       = "Create a new quote and place another order."
	actionSelectMaterial = "Select another material."
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

func newInternalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "There was an unexpected issue.", err, http.StatusInternalServerError).
		WithAction(actionRetryLater)
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError && appErr.Err != nil {
		log.Printf("[http][handler] %s %s failed code=%s err=%v", c.Request.Method, c.FullPath(), appErr.Code, appErr.Err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func badRequest(code string, err error) *pkg.AppError {
	return pkg.NewDomainErrorSimple(code, err.Error(), http.StatusBadRequest)
}
