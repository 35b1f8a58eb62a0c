package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5/pgtype"
)

const materialColumns = `code, name, price, lead_time_days, properties`

type MaterialRepository struct {
	db *sql.DB
}

var _ interfaces.IMaterialRepository = (*MaterialRepository)(nil)

func NewMaterialRepository(db *sql.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) List(ctx context.Context) ([]entities.Material, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	typeMap := pgtype.NewMap()
	materials := make([]entities.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows, typeMap)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return materials, nil
}

func (r *MaterialRepository) GetByCode(ctx context.Context, code string) (entities.Material, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+materialColumns+` FROM materials WHERE code = $1`, code)
	m, err := scanMaterial(row, pgtype.NewMap())
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Material{}, nil
	}
	if err != nil {
		return entities.Material{}, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

func (r *MaterialRepository) Put(ctx context.Context, m entities.Material) error {
	props := m.Properties
	if props == nil {
		props = []string{}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO materials (`+materialColumns+`) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (code) DO UPDATE
		 SET name = EXCLUDED.name, price = EXCLUDED.price,
		     lead_time_days = EXCLUDED.lead_time_days, properties = EXCLUDED.properties`,
		m.Code, m.Name, m.Price.Round(4), m.LeadTimeDays, props,
	)
	if err != nil {
		return fmt.Errorf("upsert material: %w", err)
	}
	return nil
}

// scanMaterial reads a materials row. typeMap decodes the properties array and
// must not be shared between goroutines.
func scanMaterial(row rowScanner, typeMap *pgtype.Map) (entities.Material, error) {
	var m entities.Material
	if err := row.Scan(&m.Code, &m.Name, &m.Price, &m.LeadTimeDays, typeMap.SQLScanner(&m.Properties)); err != nil {
		return entities.Material{}, err
	}
	return m, nil
}
