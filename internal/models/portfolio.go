package models

// PortfolioItem marks a contract as held by a user. Membership is a set:
// the (user_id, contract_id) pair carries a unique index so a racing
// duplicate insert is rejected by the store rather than by application
// timing.
type PortfolioItem struct {
	ID         uint     `gorm:"column:id;primaryKey" json:"id"`
	UserID     int      `gorm:"column:user_id;not null;index;uniqueIndex:uq_user_contract" json:"user_id"`
	ContractID uint     `gorm:"column:contract_id;not null;index;uniqueIndex:uq_user_contract" json:"contract_id"`
	Contract   Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"contract"`
}

func (PortfolioItem) TableName() string {
	return "portfolio_items"
}
