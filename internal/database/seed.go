package database

import (
	"time"

	"github.com/kgrubic/boston-energy/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var sampleContracts = []models.Contract{
	{EnergyType: models.EnergySolar, QuantityMwh: 500, PricePerMwh: 45.50, DeliveryStart: d(2026, 3, 1), DeliveryEnd: d(2026, 5, 31), Location: "California", Status: models.StatusAvailable},
	{EnergyType: models.EnergyWind, QuantityMwh: 1200, PricePerMwh: 38.75, DeliveryStart: d(2026, 4, 1), DeliveryEnd: d(2026, 9, 30), Location: "Texas", Status: models.StatusAvailable},
	{EnergyType: models.EnergyNaturalGas, QuantityMwh: 800, PricePerMwh: 52.00, DeliveryStart: d(2026, 2, 15), DeliveryEnd: d(2026, 8, 15), Location: "Northeast", Status: models.StatusAvailable},
	{EnergyType: models.EnergyHydro, QuantityMwh: 650, PricePerMwh: 41.25, DeliveryStart: d(2026, 6, 1), DeliveryEnd: d(2026, 11, 30), Location: "Pacific Northwest", Status: models.StatusAvailable},
	{EnergyType: models.EnergyNuclear, QuantityMwh: 2000, PricePerMwh: 62.10, DeliveryStart: d(2026, 5, 15), DeliveryEnd: d(2027, 5, 14), Location: "Midwest", Status: models.StatusAvailable},
	{EnergyType: models.EnergyCoal, QuantityMwh: 1500, PricePerMwh: 35.90, DeliveryStart: d(2026, 3, 15), DeliveryEnd: d(2026, 12, 31), Location: "Appalachia", Status: models.StatusAvailable},
	{EnergyType: models.EnergySolar, QuantityMwh: 900, PricePerMwh: 47.80, DeliveryStart: d(2026, 7, 1), DeliveryEnd: d(2026, 10, 31), Location: "Arizona", Status: models.StatusAvailable},
	{EnergyType: models.EnergyWind, QuantityMwh: 1100, PricePerMwh: 39.40, DeliveryStart: d(2026, 8, 1), DeliveryEnd: d(2027, 1, 31), Location: "Oklahoma", Status: models.StatusAvailable},
	{EnergyType: models.EnergyNaturalGas, QuantityMwh: 700, PricePerMwh: 50.25, DeliveryStart: d(2026, 9, 15), DeliveryEnd: d(2027, 3, 15), Location: "Louisiana", Status: models.StatusAvailable},
	{EnergyType: models.EnergyHydro, QuantityMwh: 480, PricePerMwh: 43.60, DeliveryStart: d(2026, 10, 1), DeliveryEnd: d(2027, 4, 30), Location: "New York", Status: models.StatusAvailable},
	{EnergyType: models.EnergyNuclear, QuantityMwh: 1800, PricePerMwh: 60.50, DeliveryStart: d(2026, 11, 1), DeliveryEnd: d(2027, 10, 31), Location: "Southeast", Status: models.StatusAvailable},
	{EnergyType: models.EnergyCoal, QuantityMwh: 1300, PricePerMwh: 33.75, DeliveryStart: d(2026, 12, 1), DeliveryEnd: d(2027, 6, 30), Location: "Wyoming", Status: models.StatusAvailable},
	{EnergyType: models.EnergySolar, QuantityMwh: 750, PricePerMwh: 44.20, DeliveryStart: d(2027, 1, 15), DeliveryEnd: d(2027, 6, 15), Location: "Nevada", Status: models.StatusAvailable},
}

// Seed inserts the demo contract set once; a non-empty table skips it.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Contract{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("contracts already exist; skipping seed")
		return nil
	}
	rows := make([]models.Contract, len(sampleContracts))
	copy(rows, sampleContracts)
	if err := db.Create(&rows).Error; err != nil {
		return err
	}
	log.Info().Int("contracts", len(rows)).Msg("seeded contracts")
	return nil
}
