package cron

import (
	"context"
	"time"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/common"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain/statistic"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/dateutil"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
)

// ScoreRefreshCronJob recomputes and persists the score of every
// draft-completed entry in every active tournament once a minute, then
// broadcasts the refreshed leaderboards.
type ScoreRefreshCronJob struct {
	tournamentRepo repository.TournamentRepository
	entryRepo      repository.EntryRepository
	pickRepo       repository.PickRepository
	leaderboard    statistic.Leaderboard
	priceCaller    client.PriceCaller
	publisher      pubsub.Publisher
}

func NewScoreRefreshCronJob(
	tournamentRepo repository.TournamentRepository,
	entryRepo repository.EntryRepository,
	pickRepo repository.PickRepository,
	leaderboard statistic.Leaderboard,
	priceCaller client.PriceCaller,
	publisher pubsub.Publisher,
) *ScoreRefreshCronJob {
	return &ScoreRefreshCronJob{
		tournamentRepo: tournamentRepo,
		entryRepo:      entryRepo,
		pickRepo:       pickRepo,
		leaderboard:    leaderboard,
		priceCaller:    priceCaller,
		publisher:      publisher,
	}
}

func (job *ScoreRefreshCronJob) Do(ctx context.Context) {
	tournaments, err := job.tournamentRepo.GetByStatus(ctx, entity.TournamentActive)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active tournaments: %v", err)
		return
	}

	for i := range tournaments {
		if err := job.refreshTournament(ctx, &tournaments[i]); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot refresh scores of tournament %s: %v",
				tournaments[i].ID, err)
		}
	}
}

func (job *ScoreRefreshCronJob) RunNow() bool {
	return false
}

func (job *ScoreRefreshCronJob) Next() time.Time {
	return dateutil.NextMinute(time.Now())
}

func (job *ScoreRefreshCronJob) refreshTournament(
	ctx context.Context, tournament *entity.Tournament,
) error {
	entries, err := job.entryRepo.GetCompletedByTournamentID(ctx, tournament.ID)
	if err != nil {
		return err
	}

	for i := range entries {
		score, err := job.entryScore(ctx, entries[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot score entry %s: %v", entries[i].ID, err)
			continue
		}

		if err := job.entryRepo.UpdateScore(ctx, entries[i].ID, score); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot persist score of %s: %v", entries[i].ID, err)
			continue
		}

		err = job.leaderboard.UpdateScore(ctx, tournament.ID, entries[i].Wallet, score)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
		}

		job.publish(ctx, common.EventScoreUpdate, model.ScoreUpdateEvent{
			TournamentID: tournament.ID,
			EntryID:      entries[i].ID,
			Wallet:       entries[i].Wallet,
			Score:        score,
		})
	}

	job.publish(ctx, common.EventLeaderboardUpdate, model.LeaderboardUpdateEvent{
		TournamentID: tournament.ID,
	})

	return nil
}

func (job *ScoreRefreshCronJob) entryScore(ctx context.Context, entryID string) (float64, error) {
	picks, err := job.pickRepo.GetByEntryID(ctx, entryID)
	if err != nil {
		return 0, err
	}

	prices := map[string]float64{}
	for i := range picks {
		price, err := job.priceCaller.GetPrice(ctx, picks[i].AssetID)
		if err != nil {
			return 0, err
		}

		prices[picks[i].AssetID] = price
	}

	return domain.EntryScore(picks, prices), nil
}

func (job *ScoreRefreshCronJob) publish(ctx context.Context, event string, payload any) {
	publishEvent(ctx, job.publisher, event, payload)
}
