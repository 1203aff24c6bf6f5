package entity

import "database/sql"

// Pick is one drafted asset slot within an entry. PickOrder values of
// one entry form a contiguous range starting at 1.
type Pick struct {
	Base

	EntryID string `gorm:"uniqueIndex:idx_pick_entry_order"`
	Entry   Entry  `gorm:"foreignKey:EntryID"`

	AssetID string
	Symbol  string
	Name    string
	Logo    string

	PickOrder int `gorm:"uniqueIndex:idx_pick_entry_order"`

	PriceAtDraft float64
	EndPrice     sql.NullFloat64

	BoostMultiplier float64

	IsFrozen      bool
	FrozenAtPrice float64
	FrozenChange  sql.NullFloat64
}
