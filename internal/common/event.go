package common

// Event names carried as the key of published packs.
const (
	EventTournamentCreated       = "tournament_created"
	EventTournamentStatusChanged = "tournament_status_changed"
	EventEntryCreated            = "entry_created"
	EventPickMade                = "pick_made"
	EventDraftCompleted          = "draft_completed"
	EventPowerUpUsed             = "powerup_used"
	EventScoreUpdate             = "score_update"
	EventLeaderboardUpdate       = "leaderboard_update"
	EventTournamentSettled       = "tournament_settled"
)
