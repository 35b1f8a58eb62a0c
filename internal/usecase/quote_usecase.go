package usecase

//go:generate mockgen -source=quote_usecase.go -destination=../adapter/http/handlers/mocks/quote_usecase_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/domain/pricing"
	"quote3d/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrInvalidQuoteID       = errors.New("invalid quote id")
	ErrInvalidQuantity      = errors.New("quantity must be a whole number of at least 1")
	ErrQuoteStateConflict   = errors.New("quote state conflict")
	ErrGeometryNotAvailable = errors.New("geometry data not available for quote file")
)

// QuoteStateError reports an operation attempted on a quote whose stored
// status does not allow it. It matches ErrQuoteStateConflict.
type QuoteStateError struct {
	QuoteID  string
	Current  entities.QuoteStatus
	Required entities.QuoteStatus
}

func (e *QuoteStateError) Error() string {
	switch e.Required {
	case entities.QuoteStatusDraft:
		return fmt.Sprintf("Cannot complete quote, because quote with id '%s' is no longer in 'draft' state. Quote is already in '%s' state.", e.QuoteID, e.Current)
	case entities.QuoteStatusReady:
		return fmt.Sprintf("Cannot create order, because quote with id '%s' is not in 'ready' state. Quote is currently in '%s' state.", e.QuoteID, e.Current)
	default:
		return fmt.Sprintf("quote with id '%s' is in '%s' state, expected '%s'", e.QuoteID, e.Current, e.Required)
	}
}

func (e *QuoteStateError) Is(target error) bool {
	return target == ErrQuoteStateConflict
}

// QuoteSelection is everything the material selection step needs: the new
// draft quote, the file geometry and the catalog.
type QuoteSelection struct {
	Quote     entities.Quote
	Geometry  entities.GeometryProperties
	Materials []entities.Material
}

// IQuoteUseCase drives the quote lifecycle (draft -> ready -> ordered).
type IQuoteUseCase interface {
	Create(ctx context.Context, fileID string) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Complete(ctx context.Context, id, materialID string, quantity int) (entities.Quote, error)
	OpenSelection(ctx context.Context, fileID string) (QuoteSelection, error)
}

type QuoteUseCase struct {
	quotes    interfaces.IQuoteRepository
	files     interfaces.IFileRepository
	catalog   IMaterialUseCase
	poller    *GeometryPoller
	ttl       time.Duration
	now       func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(quotes interfaces.IQuoteRepository, files interfaces.IFileRepository, catalog IMaterialUseCase, poller *GeometryPoller, ttl time.Duration) *QuoteUseCase {
	if ttl <= 0 {
		ttl = entities.DefaultQuoteTTL
	}
	return &QuoteUseCase{
		quotes:    quotes,
		files:     files,
		catalog:   catalog,
		poller:    poller,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Create opens a draft quote for fileID. Extraction may still be running.
func (u *QuoteUseCase) Create(ctx context.Context, fileID string) (entities.Quote, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return entities.Quote{}, ErrInvalidFileID
	}

	f, err := u.files.GetByID(ctx, fileID)
	if err != nil {
		return entities.Quote{}, err
	}
	if f.ID == "" {
		return entities.Quote{}, ErrFileNotFound
	}

	now := u.now().UTC()
	q := entities.Quote{
		ID:        uuid.NewString(),
		FileID:    fileID,
		Status:    entities.QuoteStatusDraft,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	log.Printf("[quote][usecase] create quote_id=%s file_id=%s", q.ID, fileID)
	return u.quotes.Create(ctx, q)
}

// GetByID returns the quote with its expiry applied: a draft or ready quote
// past ExpiresAt is reported as expired. Nothing is written back.
func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	q.Status = q.EffectiveStatus(u.now())
	return q, nil
}

// Complete prices a draft quote for the given material and quantity and moves
// it to ready. The status check and the write are a single conditional update,
// so two concurrent completions cannot both succeed.
func (u *QuoteUseCase) Complete(ctx context.Context, id, materialID string, quantity int) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	materialID = strings.TrimSpace(materialID)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	if materialID == "" {
		return entities.Quote{}, ErrInvalidMaterialID
	}
	if quantity < 1 {
		return entities.Quote{}, ErrInvalidQuantity
	}

	log.Printf("[quote][usecase] complete start quote_id=%s material_id=%s quantity=%d", id, materialID, quantity)
	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusDraft {
		return entities.Quote{}, &QuoteStateError{QuoteID: id, Current: q.Status, Required: entities.QuoteStatusDraft}
	}

	m, err := u.catalog.GetByCode(ctx, materialID)
	if err != nil {
		return entities.Quote{}, err
	}

	f, err := u.files.GetByID(ctx, q.FileID)
	if err != nil {
		return entities.Quote{}, err
	}
	if f.ID == "" || f.Status != entities.FileStatusDone || f.Geometry == nil {
		log.Printf("[quote][usecase] complete without geometry quote_id=%s file_id=%s file_status=%s", id, q.FileID, f.Status)
		return entities.Quote{}, ErrGeometryNotAvailable
	}

	volume := decimal.NewFromFloat(f.Geometry.VolumeCm3)
	price := pricing.Calculate(volume, m.Price, quantity).Rounded()
	p := entities.QuotePricing{
		MaterialID:          m.Code,
		MaterialName:        m.Name,
		MaterialPriceFactor: m.Price,
		Quantity:            quantity,
		VolumeCm3:           volume,
		UnitPrice:           price.UnitPrice,
		QuantityDiscount:    price.Discount,
		TotalPrice:          price.Total,
	}

	updated, err := u.quotes.Complete(ctx, id, p)
	if err != nil {
		if errors.Is(err, interfaces.ErrStaleState) {
			return entities.Quote{}, u.stateConflict(ctx, id, entities.QuoteStatusDraft)
		}
		log.Printf("[quote][usecase] complete write failed quote_id=%s err=%v", id, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] complete success quote_id=%s total=%s", id, p.TotalPrice.StringFixed(pricing.MoneyPlaces))
	return updated, nil
}

// OpenSelection opens a draft quote for fileID, waits for the file's geometry
// and returns both together with the material catalog.
func (u *QuoteUseCase) OpenSelection(ctx context.Context, fileID string) (QuoteSelection, error) {
	q, err := u.Create(ctx, fileID)
	if err != nil {
		return QuoteSelection{}, err
	}

	geometry, err := u.poller.Wait(ctx, q.FileID)
	if err != nil {
		log.Printf("[quote][usecase] selection geometry wait failed quote_id=%s file_id=%s err=%v", q.ID, q.FileID, err)
		return QuoteSelection{}, err
	}

	materials, err := u.catalog.List(ctx)
	if err != nil {
		return QuoteSelection{}, err
	}
	return QuoteSelection{Quote: q, Geometry: geometry, Materials: materials}, nil
}

// stateConflict re-reads the quote after a failed conditional write so the
// error can name the status that won.
func (u *QuoteUseCase) stateConflict(ctx context.Context, id string, required entities.QuoteStatus) error {
	current, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.ID == "" {
		return ErrQuoteNotFound
	}
	return &QuoteStateError{QuoteID: id, Current: current.Status, Required: required}
}
