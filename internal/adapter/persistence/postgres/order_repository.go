package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"
)

const orderColumns = `id, quote_id, customer_name, customer_email, customer_company,
payment_method, payment_status, total_amount, currency, created_at, expected_delivery_at`

type OrderRepository struct {
	db *sql.DB
}

var _ interfaces.IOrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateForQuote locks the quote row, checks it is ready, inserts the order
// and marks the quote ordered before committing.
func (r *OrderRepository) CreateForQuote(ctx context.Context, o entities.Order) (entities.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM quotes WHERE id = $1 FOR UPDATE`, o.QuoteID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, fmt.Errorf("order quote %s: %w", o.QuoteID, interfaces.ErrStaleState)
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("lock quote: %w", err)
	}
	if entities.QuoteStatus(status) != entities.QuoteStatusReady {
		return entities.Order{}, fmt.Errorf("order quote %s in state %s: %w", o.QuoteID, status, interfaces.ErrStaleState)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.QuoteID, o.CustomerName, o.CustomerEmail, o.CustomerCompany,
		string(o.PaymentMethod), string(o.PaymentStatus), o.TotalAmount.Round(2), o.Currency,
		o.CreatedAt, o.ExpectedDeliveryAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Order{}, interfaces.ErrRecordExists
		}
		return entities.Order{}, fmt.Errorf("insert order: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE quotes SET status = 'ordered' WHERE id = $1`, o.QuoteID)
	if err != nil {
		return entities.Order{}, fmt.Errorf("mark quote ordered: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return entities.Order{}, fmt.Errorf("commit order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, nil
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id string, status entities.PaymentStatus) (entities.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE orders SET payment_status = $2
		 WHERE id = $1 AND payment_status IN ('pending', $2)
		 RETURNING `+orderColumns,
		id, string(status),
	)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, fmt.Errorf("update payment of order %s: %w", id, interfaces.ErrStaleState)
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("update payment status: %w", err)
	}
	return o, nil
}

func scanOrder(row rowScanner) (entities.Order, error) {
	var (
		o               entities.Order
		company         sql.NullString
		method, payment string
	)
	err := row.Scan(&o.ID, &o.QuoteID, &o.CustomerName, &o.CustomerEmail, &company,
		&method, &payment, &o.TotalAmount, &o.Currency, &o.CreatedAt, &o.ExpectedDeliveryAt)
	if err != nil {
		return entities.Order{}, err
	}

	o.PaymentMethod = entities.PaymentMethod(method)
	o.PaymentStatus = entities.PaymentStatus(payment)
	o.CreatedAt = o.CreatedAt.UTC()
	o.ExpectedDeliveryAt = o.ExpectedDeliveryAt.UTC()
	if company.Valid {
		c := company.String
		o.CustomerCompany = &c
	}
	return o, nil
}
