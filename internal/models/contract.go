package models

import (
	"fmt"
	"time"
)

// EnergyType is the generation source of a contract. Stored as its canonical
// display string ("Natural Gas" contains a space).
type EnergyType string

const (
	EnergySolar      EnergyType = "Solar"
	EnergyWind       EnergyType = "Wind"
	EnergyNaturalGas EnergyType = "Natural Gas"
	EnergyNuclear    EnergyType = "Nuclear"
	EnergyCoal       EnergyType = "Coal"
	EnergyHydro      EnergyType = "Hydro"
)

// ContractStatus is the trading state of a contract.
type ContractStatus string

const (
	StatusAvailable ContractStatus = "Available"
	StatusReserved  ContractStatus = "Reserved"
	StatusSold      ContractStatus = "Sold"
)

// ParseEnergyType validates a wire string against the known energy types.
func ParseEnergyType(s string) (EnergyType, error) {
	switch EnergyType(s) {
	case EnergySolar, EnergyWind, EnergyNaturalGas, EnergyNuclear, EnergyCoal, EnergyHydro:
		return EnergyType(s), nil
	}
	return "", fmt.Errorf("invalid energy_type: %q", s)
}

// ParseContractStatus validates a wire string against the known statuses.
func ParseContractStatus(s string) (ContractStatus, error) {
	switch ContractStatus(s) {
	case StatusAvailable, StatusReserved, StatusSold:
		return ContractStatus(s), nil
	}
	return "", fmt.Errorf("invalid status: %q", s)
}

// Contract is a tradable energy supply contract: a quantity of energy
// deliverable over a date window at a fixed price per MWh.
type Contract struct {
	ID            uint           `gorm:"column:id;primaryKey" json:"id"`
	EnergyType    EnergyType     `gorm:"column:energy_type;type:varchar(20);not null;index" json:"energy_type"`
	QuantityMwh   int            `gorm:"column:quantity_mwh;not null;index" json:"quantity_mwh"`
	PricePerMwh   float64        `gorm:"column:price_per_mwh;type:decimal(12,2);not null;index" json:"price_per_mwh"`
	DeliveryStart time.Time      `gorm:"column:delivery_start;type:date;not null;index" json:"delivery_start"`
	DeliveryEnd   time.Time      `gorm:"column:delivery_end;type:date;not null;index" json:"delivery_end"`
	Location      string         `gorm:"column:location;type:varchar(50);not null;index" json:"location"`
	Status        ContractStatus `gorm:"column:status;type:varchar(20);not null;default:'Available';index" json:"status"`
}

func (Contract) TableName() string {
	return "contracts"
}
