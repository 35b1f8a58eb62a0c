package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quote3d/internal/adapter/http/handlers"
	"quote3d/internal/adapter/http/handlers/mocks"
	"quote3d/internal/domain/entities"
	"quote3d/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockIMaterialUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	materials := mocks.NewMockIMaterialUseCase(ctrl)
	h := Handlers{
		Files:     handlers.NewFileHandler(mocks.NewMockIFileUseCase(ctrl)),
		Materials: handlers.NewMaterialHandler(materials),
		Quotes:    handlers.NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl)),
		Orders:    handlers.NewOrderHandler(mocks.NewMockIOrderUseCase(ctrl)),
		Checkout:  handlers.NewCheckoutHandler(mocks.NewMockICheckoutUseCase(ctrl), "/"),
	}
	cfg := &config.Config{CORSAllowedOrigins: []string{"http://localhost:5173"}}
	return NewRouter(cfg, h), materials
}

func TestNewRouter(t *testing.T) {
	t.Run("ping", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	})

	t.Run("api routes are mounted", func(t *testing.T) {
		r, materials := newTestRouter(t)
		materials.EXPECT().List(gomock.Any()).Return([]entities.Material{}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/materials", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("cors allows configured origin", func(t *testing.T) {
		r, materials := newTestRouter(t)
		materials.EXPECT().List(gomock.Any()).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/materials", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown route", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
