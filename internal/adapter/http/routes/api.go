package routes

import (
	"quote3d/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathFiles             = "/files"
	PathMaterials         = "/materials"
	PathQuotes            = "/quotes"
	PathMaterialSelection = "/material-selection"
	PathOrders            = "/orders"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Files     *handlers.FileHandler
	Materials *handlers.MaterialHandler
	Quotes    *handlers.QuoteHandler
	Orders    *handlers.OrderHandler
	Checkout  *handlers.CheckoutHandler
}

func addFileRoutes(rg *gin.RouterGroup, h *handlers.FileHandler) {
	files := rg.Group(PathFiles)
	{
		files.POST("/startProcessing", h.StartProcessing)
		files.POST("/upload", h.Upload)
		files.GET("/:id", h.GetFile)
	}
}

func addMaterialRoutes(rg *gin.RouterGroup, h *handlers.MaterialHandler) {
	rg.GET(PathMaterials, h.ListMaterials)
}

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", h.CreateQuote)
		quotes.GET("/:id", h.GetQuote)
		quotes.POST("/:id/complete", h.CompleteQuote)
	}
	rg.POST(PathMaterialSelection+"/:fileId", h.OpenSelection)
}

func addOrderRoutes(rg *gin.RouterGroup, orders *handlers.OrderHandler, checkout *handlers.CheckoutHandler) {
	group := rg.Group(PathOrders)
	{
		group.POST("", orders.CreateOrder)
		group.GET("/:id", orders.GetOrder)
		group.POST("/:id/payment", orders.ProcessPayment)
		group.POST("/:id/checkout", checkout.BeginCheckout)
		group.GET("/:id/completion", checkout.CompleteCheckout)
	}
}
