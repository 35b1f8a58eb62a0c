package routes

import (
	"context"
	"fmt"
	"log"

	"quote3d/internal/adapter/http/handlers"
	"quote3d/internal/adapter/persistence"
	"quote3d/internal/infrastructure/config"
	"quote3d/internal/infrastructure/database"
	"quote3d/internal/infrastructure/extraction"
	"quote3d/internal/infrastructure/notify"
	"quote3d/internal/infrastructure/payments"
	"quote3d/internal/infrastructure/storage"
	"quote3d/internal/usecase"
	"quote3d/internal/usecase/interfaces"
)

type application struct {
	handlers  Handlers
	store     *persistence.RecordStore
	extractor *extraction.SimulatedExtractor
	notifier  *notify.ChannelNotifier
}

func (a *application) Close() {
	if n := a.extractor.Stop(); n > 0 {
		log.Printf("[app] dropped pending extractions count=%d", n)
	}
	a.store.Close()
}

func buildApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	store, err := persistence.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	awsCfg, err := database.NewAWSConfig(ctx, cfg.AWS)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	objects := storage.NewS3Storage(database.ConnectS3(awsCfg, cfg.AWS), cfg.AWS.S3Bucket)

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(payments.Options{
		AccessToken: cfg.MercadoPagoAccessToken,
		Mock:        cfg.PaymentGatewayMock,
	})
	if err != nil {
		log.Printf("[app] Mercado Pago gateway not configured: %v", err)
	} else {
		gateway = mpGateway
	}

	extractor := extraction.NewSimulatedExtractor(store.Files, cfg.ExtractionDelay)
	notifier := notify.NewChannelNotifier(notify.DefaultBufferSize)
	poller := usecase.NewGeometryPoller(store.Files, cfg.GeometryPollTimeout, cfg.GeometryPollInterval)

	fileUseCase := usecase.NewFileUseCase(store.Files, objects, extractor)
	materialUseCase := usecase.NewMaterialUseCase(store.Materials)
	quoteUseCase := usecase.NewQuoteUseCase(store.Quotes, store.Files, materialUseCase, poller, cfg.QuoteTTL)
	orderUseCase := usecase.NewOrderUseCase(store.Orders, store.Quotes, store.Materials, cfg.Currency)
	checkoutUseCase := usecase.NewCheckoutUseCase(orderUseCase, quoteUseCase, gateway, notifier, cfg.CompletionURL)

	return &application{
		handlers: Handlers{
			Files:     handlers.NewFileHandler(fileUseCase),
			Materials: handlers.NewMaterialHandler(materialUseCase),
			Quotes:    handlers.NewQuoteHandler(quoteUseCase),
			Orders:    handlers.NewOrderHandler(orderUseCase),
			Checkout:  handlers.NewCheckoutHandler(checkoutUseCase, cfg.StartURL),
		},
		store:     store,
		extractor: extractor,
		notifier:  notifier,
	}, nil
}
