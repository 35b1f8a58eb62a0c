// Package persistence selects the record-store backend.
package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"quote3d/internal/adapter/persistence/postgres"
	"quote3d/internal/adapter/persistence/repository"
	"quote3d/internal/infrastructure/config"
	"quote3d/internal/infrastructure/database"
	"quote3d/internal/usecase/interfaces"
)

// RecordStore is the set of repositories backing the application.
type RecordStore struct {
	Files     interfaces.IFileRepository
	Quotes    interfaces.IQuoteRepository
	Orders    interfaces.IOrderRepository
	Materials interfaces.IMaterialRepository

	db *sql.DB
}

func (s *RecordStore) Close() {
	if s.db != nil {
		database.ClosePostgresDB(s.db)
	}
}

// Open connects the backend selected by cfg.RecordStore. The Postgres schema
// is created if missing; DynamoDB tables are expected to exist.
func Open(ctx context.Context, cfg *config.Config) (*RecordStore, error) {
	switch cfg.RecordStore {
	case config.RecordStorePostgres:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURI)
		if err != nil {
			return nil, err
		}
		if err := database.InitSchema(ctx, db); err != nil {
			database.ClosePostgresDB(db)
			return nil, err
		}
		return &RecordStore{
			Files:     postgres.NewFileRepository(db),
			Quotes:    postgres.NewQuoteRepository(db),
			Orders:    postgres.NewOrderRepository(db),
			Materials: postgres.NewMaterialRepository(db),
			db:        db,
		}, nil
	case config.RecordStoreDynamoDB:
		awsCfg, err := database.NewAWSConfig(ctx, cfg.AWS)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		ddb := database.ConnectDynamoDB(awsCfg, cfg.AWS)
		return &RecordStore{
			Files:     repository.NewFileDynamoRepository(ddb, cfg.AWS.FilesTable),
			Quotes:    repository.NewQuoteDynamoRepository(ddb, cfg.AWS.QuotesTable),
			Orders:    repository.NewOrderDynamoRepository(ddb, cfg.AWS.OrdersTable, cfg.AWS.QuotesTable),
			Materials: repository.NewMaterialDynamoRepository(ddb, cfg.AWS.MaterialsTable),
		}, nil
	default:
		return nil, fmt.Errorf("unknown record store %q", cfg.RecordStore)
	}
}
