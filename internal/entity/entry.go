package entity

import "database/sql"

// Entry is one wallet's participation in one tournament.
type Entry struct {
	Base

	TournamentID string     `gorm:"uniqueIndex:idx_entry_tournament_wallet"`
	Tournament   Tournament `gorm:"foreignKey:TournamentID"`

	Wallet string `gorm:"uniqueIndex:idx_entry_tournament_wallet"`

	EntryFee       uint64
	DraftCompleted bool

	// Score is refreshed by the scoring sweep while the tournament is
	// active. FinalScore is written once at settlement.
	Score      float64
	FinalScore sql.NullFloat64
	FinalRank  sql.NullInt64

	// Payout stays null until settlement, then holds the credited
	// lamports (zero for non-winners).
	Payout sql.NullInt64
}
