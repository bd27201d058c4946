package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/kgrubic/boston-energy/internal/contracts"
	"github.com/kgrubic/boston-energy/internal/database"
	"github.com/kgrubic/boston-energy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUserID = 1

func setupPortfolioTest(t *testing.T) (*Service, *contracts.Service, *gorm.DB) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Service{DB: db}, &contracts.Service{DB: db}, db
}

func newContract(t *testing.T, cs *contracts.Service, et models.EnergyType, qty int, price float64) *models.Contract {
	t.Helper()
	c, err := cs.Create(context.Background(), contracts.CreateInput{
		EnergyType:    et,
		QuantityMwh:   qty,
		PricePerMwh:   price,
		DeliveryStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DeliveryEnd:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		Location:      "California",
		Status:        models.StatusAvailable,
	})
	require.NoError(t, err)
	return c
}

func TestAdd_Idempotent(t *testing.T) {
	s, cs, db := setupPortfolioTest(t)
	c := newContract(t, cs, models.EnergySolar, 500, 45.50)

	already, err := s.Add(context.Background(), testUserID, c.ID)
	require.NoError(t, err)
	assert.False(t, already)

	already, err = s.Add(context.Background(), testUserID, c.ID)
	require.NoError(t, err)
	assert.True(t, already)

	var count int64
	require.NoError(t, db.Model(&models.PortfolioItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAdd_DuplicateInsertCollapsesToAlreadyPresent(t *testing.T) {
	s, cs, db := setupPortfolioTest(t)
	c := newContract(t, cs, models.EnergySolar, 500, 45.50)

	// pre-insert behind the service's back so the existence check passes
	// but the unique index rejects the insert, as a racing request would
	require.NoError(t, db.Create(&models.PortfolioItem{UserID: testUserID, ContractID: c.ID}).Error)

	already, err := s.Add(context.Background(), testUserID, c.ID)
	require.NoError(t, err)
	assert.True(t, already)

	var count int64
	require.NoError(t, db.Model(&models.PortfolioItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRemove_NoopWhenAbsent(t *testing.T) {
	s, cs, _ := setupPortfolioTest(t)
	c := newContract(t, cs, models.EnergyWind, 1200, 38.75)

	require.NoError(t, s.Remove(context.Background(), testUserID, c.ID))

	_, err := s.Add(context.Background(), testUserID, c.ID)
	require.NoError(t, err)
	require.NoError(t, s.Remove(context.Background(), testUserID, c.ID))

	items, err := s.Items(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItems_JoinedAndNewestFirst(t *testing.T) {
	s, cs, _ := setupPortfolioTest(t)
	first := newContract(t, cs, models.EnergySolar, 500, 45.50)
	second := newContract(t, cs, models.EnergyWind, 1200, 38.75)

	_, err := s.Add(context.Background(), testUserID, first.ID)
	require.NoError(t, err)
	_, err = s.Add(context.Background(), testUserID, second.ID)
	require.NoError(t, err)

	items, err := s.Items(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].Contract.ID)
	assert.Equal(t, models.EnergyWind, items[0].Contract.EnergyType)
	assert.Equal(t, first.ID, items[1].Contract.ID)
}

func TestItems_ScopedToUser(t *testing.T) {
	s, cs, _ := setupPortfolioTest(t)
	c := newContract(t, cs, models.EnergySolar, 500, 45.50)

	_, err := s.Add(context.Background(), testUserID, c.ID)
	require.NoError(t, err)

	items, err := s.Items(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMetrics_EmptyPortfolio(t *testing.T) {
	s, _, _ := setupPortfolioTest(t)

	m, err := s.Metrics(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.TotalContracts)
	assert.EqualValues(t, 0, m.TotalCapacityMwh)
	assert.Equal(t, 0.0, m.TotalCost)
	assert.Equal(t, 0.0, m.WeightedAvgPricePerMwh)
	assert.Empty(t, m.ByEnergyType)
}

func TestMetrics_WeightedAverage(t *testing.T) {
	s, cs, _ := setupPortfolioTest(t)
	a := newContract(t, cs, models.EnergySolar, 500, 40.00)
	b := newContract(t, cs, models.EnergyWind, 1500, 60.00)

	for _, c := range []*models.Contract{a, b} {
		_, err := s.Add(context.Background(), testUserID, c.ID)
		require.NoError(t, err)
	}

	m, err := s.Metrics(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalContracts)
	assert.EqualValues(t, 2000, m.TotalCapacityMwh)
	// 500*40 + 1500*60 = 20000 + 90000 = 110000
	assert.Equal(t, 110000.00, m.TotalCost)
	// 110000 / 2000 = 55.00
	assert.Equal(t, 55.00, m.WeightedAvgPricePerMwh)
}

func TestMetrics_ByEnergyTypeSubtotals(t *testing.T) {
	s, cs, _ := setupPortfolioTest(t)
	solar1 := newContract(t, cs, models.EnergySolar, 500, 45.50)
	solar2 := newContract(t, cs, models.EnergySolar, 900, 47.80)
	gas := newContract(t, cs, models.EnergyNaturalGas, 800, 52.00)

	for _, c := range []*models.Contract{solar1, solar2, gas} {
		_, err := s.Add(context.Background(), testUserID, c.ID)
		require.NoError(t, err)
	}

	m, err := s.Metrics(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, m.ByEnergyType, 2)

	solar := m.ByEnergyType["Solar"]
	assert.Equal(t, 1400.0, solar.CapacityMwh)
	// 500*45.50 + 900*47.80 = 22750 + 43020 = 65770
	assert.Equal(t, 65770.00, solar.Cost)

	natGas := m.ByEnergyType["Natural Gas"]
	assert.Equal(t, 800.0, natGas.CapacityMwh)
	assert.Equal(t, 41600.00, natGas.Cost)

	assert.Equal(t, 3, m.TotalContracts)
	assert.EqualValues(t, 2200, m.TotalCapacityMwh)
	assert.Equal(t, 107370.00, m.TotalCost)
}

func TestContractDelete_CascadesToPortfolio(t *testing.T) {
	s, cs, db := setupPortfolioTest(t)
	c := newContract(t, cs, models.EnergyCoal, 1500, 35.90)

	_, err := s.Add(context.Background(), testUserID, c.ID)
	require.NoError(t, err)

	require.NoError(t, cs.Delete(context.Background(), c.ID))

	items, err := s.Items(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)

	var count int64
	require.NoError(t, db.Model(&models.PortfolioItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
