package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/kgrubic/boston-energy/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service manages a user's held-contract set and its aggregate metrics.
// Every operation takes the user id explicitly; no identity is baked in
// below the auth boundary.
type Service struct {
	DB *gorm.DB
}

// Add inserts a membership for (userID, contractID) unless one exists.
// Returns true when the membership was already present. A racing duplicate
// insert trips the store's unique index and is collapsed to the same
// already-present outcome.
func (s *Service) Add(ctx context.Context, userID int, contractID uint) (already bool, err error) {
	var existing models.PortfolioItem
	err = s.DB.WithContext(ctx).
		Where("user_id = ? AND contract_id = ?", userID, contractID).
		First(&existing).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	item := &models.PortfolioItem{UserID: userID, ContractID: contractID}
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, fmt.Errorf("add portfolio item: %w", err)
	}
	return false, nil
}

// Remove deletes the membership if present; removing an absent membership
// is a silent no-op.
func (s *Service) Remove(ctx context.Context, userID int, contractID uint) error {
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND contract_id = ?", userID, contractID).
		Delete(&models.PortfolioItem{}).Error
	if err != nil {
		return fmt.Errorf("remove portfolio item: %w", err)
	}
	return nil
}

// Item is a held membership joined with its full contract record.
type Item struct {
	ID       uint            `json:"id"`
	Contract models.Contract `json:"contract"`
}

// Items returns the user's held contracts, most recently added first.
func (s *Service) Items(ctx context.Context, userID int) ([]Item, error) {
	var rows []models.PortfolioItem
	err := s.DB.WithContext(ctx).
		Preload("Contract").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}

	items := make([]Item, len(rows))
	for i, r := range rows {
		items[i] = Item{ID: r.ID, Contract: r.Contract}
	}
	return items, nil
}

// TypeTotals is the raw capacity and cost subtotal for one energy type.
type TypeTotals struct {
	CapacityMwh float64 `json:"capacity_mwh"`
	Cost        float64 `json:"cost"`
}

// Metrics summarizes a held-contract set.
type Metrics struct {
	TotalContracts         int                   `json:"total_contracts"`
	TotalCapacityMwh       int64                 `json:"total_capacity_mwh"`
	TotalCost              float64               `json:"total_cost"`
	WeightedAvgPricePerMwh float64               `json:"weighted_avg_price_per_mwh"`
	ByEnergyType           map[string]TypeTotals `json:"by_energy_type"`
}

// Metrics joins the user's held items to their contracts and aggregates
// count, capacity, cost, the capacity-weighted average price and per-type
// subtotals. Summation runs at full precision; monetary outputs are rounded
// to 2 decimals only at the boundary.
func (s *Service) Metrics(ctx context.Context, userID int) (*Metrics, error) {
	var rows []struct {
		EnergyType  string
		QuantityMwh int64
		PricePerMwh float64
	}
	err := s.DB.WithContext(ctx).
		Model(&models.PortfolioItem{}).
		Select("contracts.energy_type, contracts.quantity_mwh, contracts.price_per_mwh").
		Joins("JOIN contracts ON contracts.id = portfolio_items.contract_id").
		Where("portfolio_items.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("portfolio metrics: %w", err)
	}

	var totalCapacity int64
	totalCost := decimal.Zero
	type typeAcc struct {
		capacity int64
		cost     decimal.Decimal
	}
	byType := map[string]typeAcc{}

	for _, r := range rows {
		cost := decimal.NewFromFloat(r.PricePerMwh).Mul(decimal.NewFromInt(r.QuantityMwh))
		totalCapacity += r.QuantityMwh
		totalCost = totalCost.Add(cost)

		acc := byType[r.EnergyType]
		acc.capacity += r.QuantityMwh
		acc.cost = acc.cost.Add(cost)
		byType[r.EnergyType] = acc
	}

	weighted := decimal.Zero
	if totalCapacity > 0 {
		weighted = totalCost.Div(decimal.NewFromInt(totalCapacity))
	}

	m := &Metrics{
		TotalContracts:         len(rows),
		TotalCapacityMwh:       totalCapacity,
		TotalCost:              totalCost.Round(2).InexactFloat64(),
		WeightedAvgPricePerMwh: weighted.Round(2).InexactFloat64(),
		ByEnergyType:           make(map[string]TypeTotals, len(byType)),
	}
	for et, acc := range byType {
		m.ByEnergyType[et] = TypeTotals{
			CapacityMwh: float64(acc.capacity),
			Cost:        acc.cost.Round(2).InexactFloat64(),
		}
	}
	return m, nil
}
