package model

import "time"

type Asset struct {
	ID      string  `json:"id"`
	Symbol  string  `json:"symbol"`
	Name    string  `json:"name"`
	LogoURL string  `json:"logo_url"`
	Price   float64 `json:"price"`
}

type Entry struct {
	ID            string    `json:"id"`
	TournamentID  string    `json:"tournament_id"`
	Wallet        string    `json:"wallet"`
	EntryFee      uint64    `json:"entry_fee"`
	DraftComplete bool      `json:"draft_complete"`
	CreatedAt     time.Time `json:"created_at"`
}

type Pick struct {
	ID              string  `json:"id"`
	EntryID         string  `json:"entry_id"`
	PickOrder       int     `json:"pick_order"`
	AssetID         string  `json:"asset_id"`
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Logo            string  `json:"logo"`
	PriceAtDraft    float64 `json:"price_at_draft"`
	BoostMultiplier float64 `json:"boost_multiplier"`
	IsFrozen        bool    `json:"is_frozen"`
}

type EnterTournamentRequest struct {
	TournamentID string `json:"tournament_id"`
}

type EnterTournamentResponse struct {
	Entry Entry `json:"entry"`
}

type StartDraftRequest struct {
	EntryID string `json:"entry_id"`
}

type StartDraftResponse struct {
	Round   int     `json:"round"`
	Options []Asset `json:"options"`
	Picks   []Pick  `json:"picks"`
}

type MakePickRequest struct {
	EntryID string `json:"entry_id"`
	Round   int    `json:"round"`
	AssetID string `json:"asset_id"`
}

type MakePickResponse struct {
	Pick        Pick    `json:"pick"`
	Completed   bool    `json:"completed"`
	NextRound   int     `json:"next_round,omitempty"`
	NextOptions []Asset `json:"next_options,omitempty"`
}

type RankedEntry struct {
	Rank   int64   `json:"rank"`
	Wallet string  `json:"wallet"`
	Score  float64 `json:"score"`
}

type GetLeaderboardRequest struct {
	TournamentID string `json:"tournament_id"`
	Offset       int    `json:"offset"`
	Limit        int    `json:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []RankedEntry `json:"entries"`
}

type GetRankRequest struct {
	TournamentID string `json:"tournament_id"`
}

type GetRankResponse struct {
	Rank  int64   `json:"rank"`
	Score float64 `json:"score"`
}
