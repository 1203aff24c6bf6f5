package model

// Event payloads published to the event topic. The pack key carries the
// event name, the message carries one of these.

type EntryCreatedEvent struct {
	TournamentID string `json:"tournament_id"`
	EntryID      string `json:"entry_id"`
	Wallet       string `json:"wallet"`
	EntryFee     uint64 `json:"entry_fee"`
}

type DraftCompletedEvent struct {
	TournamentID string `json:"tournament_id"`
	EntryID      string `json:"entry_id"`
	Wallet       string `json:"wallet"`
}

type PickMadeEvent struct {
	EntryID   string `json:"entry_id"`
	PickOrder int    `json:"pick_order"`
	AssetID   string `json:"asset_id"`
}

type PowerUpUsedEvent struct {
	EntryID string `json:"entry_id"`
	PickID  string `json:"pick_id"`
	Type    string `json:"type"`
}

type TournamentStatusChangedEvent struct {
	TournamentID string `json:"tournament_id"`
	Tier         string `json:"tier"`
	From         string `json:"from"`
	To           string `json:"to"`
}

type ScoreUpdateEvent struct {
	TournamentID string  `json:"tournament_id"`
	EntryID      string  `json:"entry_id"`
	Wallet       string  `json:"wallet"`
	Score        float64 `json:"score"`
}

type LeaderboardUpdateEvent struct {
	TournamentID string `json:"tournament_id"`
}

type TournamentSettledEvent struct {
	TournamentID string        `json:"tournament_id"`
	PrizePool    uint64        `json:"prize_pool"`
	Winners      []RankedEntry `json:"winners"`
}
