package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

const quoteColumns = `id, file_id, status, created_at, expires_at,
material_id, material_name, material_price_factor, quantity, volume_cm3,
unit_price, quantity_discount, total_price`

type QuoteRepository struct {
	db *sql.DB
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quotes (id, file_id, status, created_at, expires_at) VALUES ($1, $2, $3, $4, $5)`,
		q.ID, q.FileID, string(q.Status), q.CreatedAt, q.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Quote{}, interfaces.ErrRecordExists
		}
		return entities.Quote{}, fmt.Errorf("insert quote: %w", err)
	}
	return q, nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	q, err := scanQuote(r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Quote{}, nil
	}
	if err != nil {
		return entities.Quote{}, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

func (r *QuoteRepository) Complete(ctx context.Context, id string, p entities.QuotePricing) (entities.Quote, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE quotes
		 SET status = 'ready', material_id = $2, material_name = $3, material_price_factor = $4,
		     quantity = $5, volume_cm3 = $6, unit_price = $7, quantity_discount = $8, total_price = $9
		 WHERE id = $1 AND status = 'draft'
		 RETURNING `+quoteColumns,
		id, p.MaterialID, p.MaterialName, p.MaterialPriceFactor.Round(4), p.Quantity,
		p.VolumeCm3.Round(3), p.UnitPrice.Round(2), p.QuantityDiscount.Round(2), p.TotalPrice.Round(2),
	)
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Quote{}, fmt.Errorf("complete quote %s: %w", id, interfaces.ErrStaleState)
	}
	if err != nil {
		return entities.Quote{}, fmt.Errorf("complete quote: %w", err)
	}
	return q, nil
}

func scanQuote(row rowScanner) (entities.Quote, error) {
	var (
		q                                     entities.Quote
		status                                string
		materialID, materialName              sql.NullString
		quantity                              sql.NullInt32
		factor, volume, unit, discount, total decimal.NullDecimal
	)
	err := row.Scan(&q.ID, &q.FileID, &status, &q.CreatedAt, &q.ExpiresAt,
		&materialID, &materialName, &factor, &quantity, &volume, &unit, &discount, &total)
	if err != nil {
		return entities.Quote{}, err
	}

	q.Status = entities.QuoteStatus(status)
	q.CreatedAt = q.CreatedAt.UTC()
	q.ExpiresAt = q.ExpiresAt.UTC()
	if materialID.Valid {
		q.Pricing = &entities.QuotePricing{
			MaterialID:          materialID.String,
			MaterialName:        materialName.String,
			MaterialPriceFactor: factor.Decimal,
			Quantity:            int(quantity.Int32),
			VolumeCm3:           volume.Decimal,
			UnitPrice:           unit.Decimal,
			QuantityDiscount:    discount.Decimal,
			TotalPrice:          total.Decimal,
		}
	}
	return q, nil
}
