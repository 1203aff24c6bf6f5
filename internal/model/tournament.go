package model

import "time"

type Tournament struct {
	ID            string    `json:"id"`
	Tier          string    `json:"tier"`
	WeekStart     time.Time `json:"week_start"`
	WeekEnd       time.Time `json:"week_end"`
	DraftDeadline time.Time `json:"draft_deadline"`
	Status        string    `json:"status"`
	EntryFee      uint64    `json:"entry_fee"`
	PrizePool     uint64    `json:"prize_pool"`
	EntryCount    int       `json:"entry_count"`
}

type GetTournamentRequest struct {
	TournamentID string `json:"tournament_id"`
}

type GetTournamentResponse struct {
	Tournament Tournament `json:"tournament"`
}

type GetActiveTournamentsRequest struct{}

type GetActiveTournamentsResponse struct {
	Tournaments []Tournament `json:"tournaments"`
}
