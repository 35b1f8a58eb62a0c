package handlers

import (
	"errors"
	"net/http"
	"testing"

	"quote3d/internal/adapter/http/handlers/mocks"
	"quote3d/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestMaterialHandler_ListMaterials(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMaterialUseCase(ctrl)
		h := NewMaterialHandler(uc)

		r := gin.New()
		r.GET("/api/materials", h.ListMaterials)

		uc.EXPECT().List(gomock.Any()).Return([]entities.Material{
			{Code: "pla", Name: "PLA", Price: decimal.RequireFromString("0.05"), LeadTimeDays: 3, Properties: []string{"rigid"}},
		}, nil)

		w := performJSON(r, http.MethodGet, "/api/materials", "")
		expectStatus(t, w, http.StatusOK)
		want := `[{"name":"PLA","code":"pla","price":0.05,"leadTimeDays":3,"properties":["rigid"]}]`
		if w.Body.String() != want {
			t.Fatalf("expected %s, got %s", want, w.Body.String())
		}
	})

	t.Run("failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMaterialUseCase(ctrl)
		h := NewMaterialHandler(uc)

		r := gin.New()
		r.GET("/api/materials", h.ListMaterials)

		uc.EXPECT().List(gomock.Any()).Return(nil, errors.New("scan failed"))

		w := performJSON(r, http.MethodGet, "/api/materials", "")
		expectStatus(t, w, http.StatusInternalServerError)
		decodeError(t, w)
	})
}
