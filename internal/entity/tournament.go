package entity

import (
	"time"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/enum"
)

type TournamentStatus string

var (
	TournamentUpcoming  = enum.New(TournamentStatus("upcoming"))
	TournamentDrafting  = enum.New(TournamentStatus("drafting"))
	TournamentActive    = enum.New(TournamentStatus("active"))
	TournamentCompleted = enum.New(TournamentStatus("completed"))
)

// Tournament is one weekly competition for one entry-fee tier. Rows are
// never deleted; completed is a terminal status.
type Tournament struct {
	Base

	Tier          string    `gorm:"uniqueIndex:idx_tournament_tier_week"`
	WeekStart     time.Time `gorm:"uniqueIndex:idx_tournament_tier_week"`
	WeekEnd       time.Time
	DraftDeadline time.Time

	Status TournamentStatus

	// EntryFee and PrizePool are lamport amounts.
	EntryFee   uint64
	PrizePool  uint64
	EntryCount int
}

// AcceptsEntries reports whether new wallets may still enter.
func (t *Tournament) AcceptsEntries() bool {
	return t.Status == TournamentUpcoming || t.Status == TournamentDrafting
}
