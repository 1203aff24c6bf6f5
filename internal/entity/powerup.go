package entity

import (
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/enum"
)

type PowerUpType string

var (
	PowerUpSwap   = enum.New(PowerUpType("swap"))
	PowerUpBoost  = enum.New(PowerUpType("boost"))
	PowerUpFreeze = enum.New(PowerUpType("freeze"))
)

// PowerUpUsage records one application of a power-up to a pick. The
// unique (entry, type) index is the only authority for the one use per
// tournament rule.
type PowerUpUsage struct {
	Base

	EntryID string      `gorm:"uniqueIndex:idx_powerup_entry_type"`
	Entry   Entry       `gorm:"foreignKey:EntryID"`
	Type    PowerUpType `gorm:"uniqueIndex:idx_powerup_entry_type"`

	PickID string
	Pick   Pick `gorm:"foreignKey:PickID"`

	// Swap bookkeeping; empty for boost and freeze.
	FromAssetID string
	ToAssetID   string
}
