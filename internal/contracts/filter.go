package contracts

import (
	"time"

	"github.com/kgrubic/boston-energy/internal/models"

	"gorm.io/gorm"
)

// Filter is the optional-parameter set a listing request may constrain on.
// Nil pointers and empty slices impose no constraint. The same filter is
// applied to the page query, the total count and the price-bounds query so
// all three always see the same view of the data.
type Filter struct {
	Status      *models.ContractStatus
	EnergyTypes []models.EnergyType
	Locations   []string
	PriceMin    *float64
	PriceMax    *float64
	QtyMin      *int
	QtyMax      *int
	StartFrom   *time.Time
	EndTo       *time.Time
}

// Apply chains the filter's constraints onto q as a conjunction. Set-valued
// parameters use inclusion semantics; range bounds are inclusive.
func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if len(f.EnergyTypes) > 0 {
		q = q.Where("energy_type IN ?", f.EnergyTypes)
	}
	if len(f.Locations) > 0 {
		q = q.Where("location IN ?", f.Locations)
	}
	if f.PriceMin != nil {
		q = q.Where("price_per_mwh >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price_per_mwh <= ?", *f.PriceMax)
	}
	if f.QtyMin != nil {
		q = q.Where("quantity_mwh >= ?", *f.QtyMin)
	}
	if f.QtyMax != nil {
		q = q.Where("quantity_mwh <= ?", *f.QtyMax)
	}
	if f.StartFrom != nil {
		q = q.Where("delivery_start >= ?", *f.StartFrom)
	}
	if f.EndTo != nil {
		q = q.Where("delivery_end <= ?", *f.EndTo)
	}
	return q
}

// validateRanges rejects contradictory min/max pairs. Each pair is checked
// independently so any of the three can be reported.
func (f Filter) validateRanges() error {
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return invalid("price_min cannot be greater than price_max")
	}
	if f.QtyMin != nil && f.QtyMax != nil && *f.QtyMin > *f.QtyMax {
		return invalid("qty_min cannot be greater than qty_max")
	}
	if f.StartFrom != nil && f.EndTo != nil && f.StartFrom.After(*f.EndTo) {
		return invalid("start_from cannot be after end_to")
	}
	return nil
}
