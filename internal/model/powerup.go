package model

type UseSwapRequest struct {
	EntryID string `json:"entry_id"`
	PickID  string `json:"pick_id"`
}

type UseSwapResponse struct {
	Candidates []Asset `json:"candidates"`
}

type CommitSwapRequest struct {
	EntryID string `json:"entry_id"`
	PickID  string `json:"pick_id"`
	AssetID string `json:"asset_id"`
}

type CommitSwapResponse struct {
	Pick Pick `json:"pick"`
}

type UseBoostRequest struct {
	EntryID string `json:"entry_id"`
	PickID  string `json:"pick_id"`
}

type UseBoostResponse struct {
	Pick Pick `json:"pick"`
}

type UseFreezeRequest struct {
	EntryID string `json:"entry_id"`
	PickID  string `json:"pick_id"`
}

type UseFreezeResponse struct {
	Pick         Pick    `json:"pick"`
	FrozenChange float64 `json:"frozen_change"`
}
