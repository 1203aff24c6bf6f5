package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain/statistic"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/dateutil"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/testutil"
)

func newPhaseSweepJob(events *[]string) *PhaseSweepCronJob {
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			if events != nil {
				*events = append(*events, string(pack.Key))
			}

			return nil
		},
	}

	settlement := domain.NewSettlementDomain(
		repository.NewTournamentRepository(),
		repository.NewEntryRepository(),
		repository.NewPickRepository(),
		statistic.New(repository.NewEntryRepository(), testutil.NewInMemoryRedisClient()),
		&testutil.MockPriceCaller{},
		&testutil.MockFundsCaller{},
		&testutil.MockRewardCaller{},
		publisher,
	)

	return NewPhaseSweepCronJob(repository.NewTournamentRepository(), settlement, publisher)
}

func Test_PhaseSweepCronJob_EnsuresWeeklyTournaments(t *testing.T) {
	ctx := testutil.MockContext()
	job := newPhaseSweepJob(nil)

	job.Do(ctx)

	weekStart := dateutil.CurrentWeek(time.Now())
	tournamentRepo := repository.NewTournamentRepository()

	bronze, err := tournamentRepo.GetByTierAndWeek(ctx, "bronze", weekStart)
	require.NoError(t, err)
	require.Equal(t, uint64(100_000_000), bronze.EntryFee)
	require.True(t, bronze.DraftDeadline.Equal(weekStart.Add(24*time.Hour)))

	silver, err := tournamentRepo.GetByTierAndWeek(ctx, "silver", weekStart)
	require.NoError(t, err)
	require.Equal(t, uint64(500_000_000), silver.EntryFee)

	// A second sweep keeps the same tournaments instead of recreating.
	job.Do(ctx)

	again, err := tournamentRepo.GetByTierAndWeek(ctx, "bronze", weekStart)
	require.NoError(t, err)
	require.Equal(t, bronze.ID, again.ID)
}

func Test_PhaseSweepCronJob_OneTransitionPerSweep(t *testing.T) {
	ctx := testutil.MockContext()
	job := newPhaseSweepJob(nil)

	// A tournament of the previous week whose every deadline has passed.
	// Each sweep still moves it a single step down the lifecycle.
	weekStart := dateutil.CurrentWeek(time.Now()).AddDate(0, 0, -7)
	tournament, err := testutil.SampleTournament(ctx, &entity.Tournament{
		WeekStart:     weekStart,
		WeekEnd:       weekStart.AddDate(0, 0, 7),
		DraftDeadline: weekStart.Add(24 * time.Hour),
		Status:        entity.TournamentUpcoming,
	})
	require.NoError(t, err)

	tournamentRepo := repository.NewTournamentRepository()

	job.Do(ctx)
	after, err := tournamentRepo.GetByID(ctx, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TournamentDrafting, after.Status)

	job.Do(ctx)
	after, err = tournamentRepo.GetByID(ctx, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TournamentActive, after.Status)

	job.Do(ctx)
	after, err = tournamentRepo.GetByID(ctx, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TournamentCompleted, after.Status)
}

func Test_PhaseSweepCronJob_PublishesStatusChanges(t *testing.T) {
	ctx := testutil.MockContext()

	var events []string
	job := newPhaseSweepJob(&events)

	weekStart := dateutil.CurrentWeek(time.Now()).AddDate(0, 0, -7)
	_, err := testutil.SampleTournament(ctx, &entity.Tournament{
		WeekStart:     weekStart,
		WeekEnd:       weekStart.AddDate(0, 0, 7),
		DraftDeadline: weekStart.Add(24 * time.Hour),
		Status:        entity.TournamentActive,
	})
	require.NoError(t, err)

	job.Do(ctx)

	require.Contains(t, events, "tournament_created")
	require.Contains(t, events, "tournament_settled")
	require.Contains(t, events, "tournament_status_changed")
}
