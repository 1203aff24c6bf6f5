package domain

import (
	"context"
	"fmt"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/common"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain/statistic"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type SettlementDomain interface {
	Settle(ctx context.Context, tournamentID string) error
}

type settlementDomain struct {
	tournamentRepo repository.TournamentRepository
	entryRepo      repository.EntryRepository
	pickRepo       repository.PickRepository
	leaderboard    statistic.Leaderboard
	priceCaller    client.PriceCaller
	fundsCaller    client.FundsCaller
	rewardCaller   client.RewardCaller
	publisher      pubsub.Publisher
}

func NewSettlementDomain(
	tournamentRepo repository.TournamentRepository,
	entryRepo repository.EntryRepository,
	pickRepo repository.PickRepository,
	leaderboard statistic.Leaderboard,
	priceCaller client.PriceCaller,
	fundsCaller client.FundsCaller,
	rewardCaller client.RewardCaller,
	publisher pubsub.Publisher,
) *settlementDomain {
	return &settlementDomain{
		tournamentRepo: tournamentRepo,
		entryRepo:      entryRepo,
		pickRepo:       pickRepo,
		leaderboard:    leaderboard,
		priceCaller:    priceCaller,
		fundsCaller:    fundsCaller,
		rewardCaller:   rewardCaller,
		publisher:      publisher,
	}
}

type settledEntry struct {
	entry *entity.Entry
	score float64
}

func (d *settlementDomain) Settle(ctx context.Context, tournamentID string) error {
	tournament, err := d.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return err
	}

	// Completed is terminal, a second invocation is a no-op.
	if tournament.Status == entity.TournamentCompleted {
		return nil
	}

	entries, err := d.entryRepo.GetCompletedByTournamentID(ctx, tournamentID)
	if err != nil {
		return err
	}

	ranked := make([]settledEntry, 0, len(entries))
	for i := range entries {
		score, err := d.finalizeEntryScore(ctx, &entries[i])
		if err != nil {
			return err
		}

		ranked = append(ranked, settledEntry{entry: &entries[i], score: score})
	}

	// Descending by score. Stable keeps creation order for equal scores,
	// the earlier entrant takes the better rank.
	slices.SortStableFunc(ranked, func(a, b settledEntry) bool {
		return a.score > b.score
	})

	payouts := distributePayouts(
		tournament.PrizePool,
		xcontext.Configs(ctx).Tournament.RakeBasisPoints,
		len(ranked),
	)

	// Drop the live board and rebuild it from the final scores, so the
	// settled leaderboard holds exactly the ranked entries.
	if err := d.leaderboard.Clear(ctx, tournamentID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot clear leaderboard: %v", err)
	}

	for i, se := range ranked {
		rank := int64(i + 1)

		var payout uint64
		if i < len(payouts) {
			payout = payouts[i]
		}

		if payout > 0 {
			refID := fmt.Sprintf("%s:%s", tournamentID, se.entry.Wallet)
			_, err := d.fundsCaller.CreditWinnings(
				ctx, se.entry.Wallet, payout, "tournament_payout", refID)
			if err != nil {
				// Reconciled out-of-band, the remaining winners still
				// get paid.
				xcontext.Logger(ctx).Errorf("Cannot credit %s in tournament %s: %v",
					se.entry.Wallet, tournamentID, err)
			}
		}

		err := d.entryRepo.SetFinalResult(ctx, se.entry.ID, se.score, rank, payout)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot persist final result of %s: %v",
				se.entry.ID, err)
			continue
		}

		d.awardPlacementXP(ctx, se.entry, rank, payout > 0)

		if err := d.leaderboard.UpdateScore(ctx, tournamentID, se.entry.Wallet, se.score); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update final leaderboard: %v", err)
		}
	}

	err = d.tournamentRepo.UpdateStatus(
		ctx, tournamentID, tournament.Status, entity.TournamentCompleted)
	if err != nil {
		return err
	}

	winners := []model.RankedEntry{}
	for i, se := range ranked {
		if i < len(payouts) && payouts[i] > 0 {
			winners = append(winners, model.RankedEntry{
				Rank:   int64(i + 1),
				Wallet: se.entry.Wallet,
				Score:  se.score,
			})
		}
	}

	publishEvent(ctx, d.publisher, common.EventTournamentSettled, model.TournamentSettledEvent{
		TournamentID: tournamentID,
		PrizePool:    tournament.PrizePool,
		Winners:      winners,
	})
	publishEvent(ctx, d.publisher, common.EventLeaderboardUpdate, model.LeaderboardUpdateEvent{
		TournamentID: tournamentID,
	})

	return nil
}

// finalizeEntryScore fixes each pick's end price from the current
// snapshot and persists the frozen-floor final score.
func (d *settlementDomain) finalizeEntryScore(
	ctx context.Context, entry *entity.Entry,
) (float64, error) {
	picks, err := d.pickRepo.GetByEntryID(ctx, entry.ID)
	if err != nil {
		return 0, err
	}

	prices := map[string]float64{}
	for i := range picks {
		price, err := d.priceCaller.GetPrice(ctx, picks[i].AssetID)
		if err != nil {
			return 0, err
		}

		prices[picks[i].AssetID] = price
		if err := d.pickRepo.UpdateEndPrice(ctx, picks[i].ID, price); err != nil {
			return 0, err
		}
	}

	return EntryScore(picks, prices), nil
}

func (d *settlementDomain) awardPlacementXP(
	ctx context.Context, entry *entity.Entry, rank int64, winner bool,
) {
	cfg := xcontext.Configs(ctx).Tournament

	var amount int
	switch {
	case rank == 1:
		amount = cfg.ChampionXP
	case rank <= 3:
		amount = cfg.PodiumXP
	case winner:
		amount = cfg.WinnerXP
	default:
		return
	}

	err := d.rewardCaller.AwardXP(ctx, entry.Wallet, amount,
		"tournament_placement", entry.ID, fmt.Sprintf("Placed #%d", rank))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot award placement xp: %v", err)
	}
}

// distributePayouts returns the lamport payout per rank, index 0 is rank
// one. The pool is reduced by the rake, winners are the top tenth of the
// field rounded up with a single winner floor. The curve pays 30/20/15
// percent to the podium and splits the remaining 35 percent evenly over
// ranks four and beyond. With three or fewer winners that remainder
// stays in the house, every amount floors to whole lamports so the sum
// never exceeds the raked pool.
func distributePayouts(prizePool, rakeBasisPoints uint64, entryCount int) []uint64 {
	if entryCount == 0 || prizePool == 0 {
		return nil
	}

	payoutPool := prizePool * (10000 - rakeBasisPoints) / 10000

	winners := (entryCount + 9) / 10
	if winners < 1 {
		winners = 1
	}

	payouts := make([]uint64, winners)
	payouts[0] = payoutPool * 30 / 100
	if winners > 1 {
		payouts[1] = payoutPool * 20 / 100
	}
	if winners > 2 {
		payouts[2] = payoutPool * 15 / 100
	}

	if winners > 3 {
		remainder := payoutPool * 35 / 100
		share := remainder / uint64(winners-3)
		for i := 3; i < winners; i++ {
			payouts[i] = share
		}
	}

	return payouts
}
