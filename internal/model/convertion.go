package model

import "github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"

func ConvertTournament(tournament *entity.Tournament) Tournament {
	if tournament == nil {
		return Tournament{}
	}

	return Tournament{
		ID:            tournament.ID,
		Tier:          tournament.Tier,
		WeekStart:     tournament.WeekStart,
		WeekEnd:       tournament.WeekEnd,
		DraftDeadline: tournament.DraftDeadline,
		Status:        string(tournament.Status),
		EntryFee:      tournament.EntryFee,
		PrizePool:     tournament.PrizePool,
		EntryCount:    tournament.EntryCount,
	}
}

func ConvertEntry(entry *entity.Entry) Entry {
	if entry == nil {
		return Entry{}
	}

	return Entry{
		ID:            entry.ID,
		TournamentID:  entry.TournamentID,
		Wallet:        entry.Wallet,
		EntryFee:      entry.EntryFee,
		DraftComplete: entry.DraftCompleted,
		CreatedAt:     entry.CreatedAt,
	}
}

func ConvertPick(pick *entity.Pick) Pick {
	if pick == nil {
		return Pick{}
	}

	return Pick{
		ID:              pick.ID,
		EntryID:         pick.EntryID,
		PickOrder:       pick.PickOrder,
		AssetID:         pick.AssetID,
		Symbol:          pick.Symbol,
		Name:            pick.Name,
		Logo:            pick.Logo,
		PriceAtDraft:    pick.PriceAtDraft,
		BoostMultiplier: pick.BoostMultiplier,
		IsFrozen:        pick.IsFrozen,
	}
}
