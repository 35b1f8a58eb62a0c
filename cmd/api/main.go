package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "quote3d/docs"
	"quote3d/internal/adapter/http/routes"
	"quote3d/internal/infrastructure/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           3D Print Quoting API
// @version         1.0
// @description     Upload CAD files, price 3D prints and pay for orders.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg); err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}
}
