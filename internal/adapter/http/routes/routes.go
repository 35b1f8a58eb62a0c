package routes

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	_ "quote3d/docs"
	"quote3d/internal/infrastructure/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Run builds the application, serves HTTP on cfg.Port and shuts down when ctx
// is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	app, err := buildApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	go app.notifier.Drain(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, app.handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	log.Printf("[http][server] listening port=%s record_store=%s", cfg.Port, cfg.RecordStore)
	return serve(ctx, srv, ln)
}

// serve runs srv on ln until ctx is cancelled. It returns only after Shutdown
// has let in-flight requests finish or shutdownTimeout has passed.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[http][server] shutdown failed err=%v", err)
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	log.Printf("[http][server] stopped")
	return nil
}

// NewRouter registers middlewares and every API route on a new engine.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	api := router.Group("/api")
	addFileRoutes(api, h.Files)
	addMaterialRoutes(api, h.Materials)
	addQuoteRoutes(api, h.Quotes)
	addOrderRoutes(api, h.Orders, h.Checkout)
	return router
}

func setMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[http][recovery] recovered from panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": "There was an unexpected issue.",
			"code":    "INTERNAL_ERROR",
		})
	}))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}
