package contracts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kgrubic/boston-energy/internal/models"

	"gorm.io/gorm"
)

// Sortable fields and their columns. "date" sorts on the delivery window start.
var sortColumns = map[string]string{
	"price":    "price_per_mwh",
	"quantity": "quantity_mwh",
	"date":     "delivery_start",
}

// Service executes contract queries and mutations against the store.
type Service struct {
	DB *gorm.DB
}

// ListParams is a validated-on-use query: filter + sort + page window.
type ListParams struct {
	Filter   Filter
	SortBy   string // empty means newest-first by id
	SortDir  string // "asc" or "desc"
	Page     int
	PageSize int
}

// Validate checks sort and pagination parameters along with the filter's
// range pairs, before any data access.
func (p ListParams) Validate() error {
	if err := p.Filter.validateRanges(); err != nil {
		return err
	}
	if p.SortDir != "asc" && p.SortDir != "desc" {
		return invalid("sort_dir must be asc or desc")
	}
	if p.SortBy != "" {
		if _, ok := sortColumns[p.SortBy]; !ok {
			return invalid("sort_by must be one of: price, quantity, date")
		}
	}
	if p.Page < 1 {
		return invalid("page must be >= 1")
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		return invalid("page_size must be 1..100")
	}
	return nil
}

// ListResult is one page of matching contracts plus the filter-wide total.
type ListResult struct {
	Items    []models.Contract `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int64             `json:"total"`
}

// List returns the requested page and the total count of all records
// matching the filter. The count runs over the full predicate, independent
// of the page window. An explicit sort key gets id as a secondary key so
// equal-valued rows page deterministically.
func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	base := p.Filter.Apply(s.DB.WithContext(ctx).Model(&models.Contract{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count contracts: %w", err)
	}

	q := base.Session(&gorm.Session{})
	if p.SortBy != "" {
		q = q.Order(sortColumns[p.SortBy] + " " + p.SortDir).Order("id desc")
	} else {
		q = q.Order("id desc")
	}

	var items []models.Contract
	offset := (p.Page - 1) * p.PageSize
	if err := q.Offset(offset).Limit(p.PageSize).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}

	return &ListResult{Items: items, Page: p.Page, PageSize: p.PageSize, Total: total}, nil
}

// Get returns a single contract or ErrNotFound.
func (s *Service) Get(ctx context.Context, id uint) (*models.Contract, error) {
	var c models.Contract
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// CreateInput is a fully specified new contract.
type CreateInput struct {
	EnergyType    models.EnergyType
	QuantityMwh   int
	PricePerMwh   float64
	DeliveryStart time.Time
	DeliveryEnd   time.Time
	Location      string
	Status        models.ContractStatus
}

// Create persists a new contract and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Contract, error) {
	status := in.Status
	if status == "" {
		status = models.StatusAvailable
	}
	c := &models.Contract{
		EnergyType:    in.EnergyType,
		QuantityMwh:   in.QuantityMwh,
		PricePerMwh:   in.PricePerMwh,
		DeliveryStart: in.DeliveryStart,
		DeliveryEnd:   in.DeliveryEnd,
		Location:      in.Location,
		Status:        status,
	}
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("create contract: %w", err)
	}
	return c, nil
}

// UpdateInput is a sparse field set; nil fields retain their prior values.
type UpdateInput struct {
	EnergyType    *models.EnergyType
	QuantityMwh   *int
	PricePerMwh   *float64
	DeliveryStart *time.Time
	DeliveryEnd   *time.Time
	Location      *string
	Status        *models.ContractStatus
}

// Update applies the supplied fields to an existing contract in one
// statement, so either all of them land or none do. Fails with ErrNotFound
// for an unknown id.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.Contract, error) {
	var c models.Contract
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.EnergyType != nil {
		updates["energy_type"] = *in.EnergyType
	}
	if in.QuantityMwh != nil {
		updates["quantity_mwh"] = *in.QuantityMwh
	}
	if in.PricePerMwh != nil {
		updates["price_per_mwh"] = *in.PricePerMwh
	}
	if in.DeliveryStart != nil {
		updates["delivery_start"] = *in.DeliveryStart
	}
	if in.DeliveryEnd != nil {
		updates["delivery_end"] = *in.DeliveryEnd
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&c).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update contract: %w", err)
		}
	}
	return &c, nil
}

// Delete removes a contract and its portfolio associations. Deleting an
// absent id is a silent success.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", id).Delete(&models.PortfolioItem{}).Error; err != nil {
			return fmt.Errorf("delete portfolio items: %w", err)
		}
		if err := tx.Delete(&models.Contract{}, id).Error; err != nil {
			return fmt.Errorf("delete contract: %w", err)
		}
		return nil
	})
}

// PriceBounds holds the min/max price over a filtered view; both nil when
// nothing matches.
type PriceBounds struct {
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}

// GetPriceBounds computes min/max price under the same predicate semantics
// as List. Price bounds themselves are not applicable as filters here and
// are ignored if set.
func (s *Service) GetPriceBounds(ctx context.Context, f Filter) (*PriceBounds, error) {
	f.PriceMin, f.PriceMax = nil, nil
	if err := f.validateRanges(); err != nil {
		return nil, err
	}

	var row struct {
		Min sql.NullFloat64
		Max sql.NullFloat64
	}
	q := f.Apply(s.DB.WithContext(ctx).Model(&models.Contract{}))
	if err := q.Select("MIN(price_per_mwh) AS min, MAX(price_per_mwh) AS max").Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("price bounds: %w", err)
	}

	bounds := &PriceBounds{}
	if row.Min.Valid {
		bounds.MinPrice = &row.Min.Float64
	}
	if row.Max.Valid {
		bounds.MaxPrice = &row.Max.Float64
	}
	return bounds, nil
}

// ListLocations returns every distinct location across all contracts,
// lexicographically ordered. No filter applies: the list feeds the
// filter UI itself.
func (s *Service) ListLocations(ctx context.Context) ([]string, error) {
	var locations []string
	err := s.DB.WithContext(ctx).Model(&models.Contract{}).
		Distinct("location").
		Order("location asc").
		Pluck("location", &locations).Error
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}
