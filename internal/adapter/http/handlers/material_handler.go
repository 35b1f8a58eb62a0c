package handlers

import (
	"net/http"

	response "quote3d/internal/adapter/http/dto/response"
	"quote3d/internal/usecase"

	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	usecase usecase.IMaterialUseCase
}

func NewMaterialHandler(uc usecase.IMaterialUseCase) *MaterialHandler {
	return &MaterialHandler{usecase: uc}
}

// ListMaterials godoc
// @Summary      List the material catalog
// @Tags         materials
// @Produce      json
// @Success      200  {array}   response.MaterialResponse
// @Failure      500  {object}  pkg.HTTPError
// @Router       /materials [get]
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	materials, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, newInternalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromMaterials(materials))
}
