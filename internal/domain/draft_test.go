package domain

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain/statistic"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/errorx"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/testutil"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
)

func newDraftTestDomain(funds *testutil.MockFundsCaller) DraftDomain {
	catalog := testutil.SampleCatalog()

	return NewDraftDomain(
		repository.NewTournamentRepository(),
		repository.NewEntryRepository(),
		repository.NewPickRepository(),
		statistic.New(repository.NewEntryRepository(), testutil.NewInMemoryRedisClient()),
		&testutil.MockPriceCaller{
			GetCatalogFunc: func(ctx context.Context) ([]client.Asset, error) {
				return catalog, nil
			},
			GetPriceFunc: func(ctx context.Context, assetID string) (float64, error) {
				for _, asset := range catalog {
					if asset.ID == assetID {
						return asset.Price, nil
					}
				}

				return 0, fmt.Errorf("no price for %s", assetID)
			},
		},
		funds,
		&testutil.MockRewardCaller{},
		&testutil.MockPublisher{},
	)
}

func Test_draftDomain_Enter(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, nil)
	require.NoError(t, err)

	var confirmed []string
	domain := newDraftTestDomain(&testutil.MockFundsCaller{
		ConfirmDebitFunc: func(ctx context.Context, pendingID string) error {
			confirmed = append(confirmed, pendingID)
			return nil
		},
	})

	resp, err := domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.NoError(t, err)
	require.Equal(t, "player-1", resp.Entry.Wallet)
	require.Equal(t, tournament.EntryFee, resp.Entry.EntryFee)
	require.Len(t, confirmed, 1)

	after, err := repository.NewTournamentRepository().GetByID(ctx, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, tournament.EntryFee, after.PrizePool)
	require.Equal(t, 1, after.EntryCount)

	// A second entry of the same wallet is rejected and must not touch
	// the pool again.
	_, err = domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.ErrorIs(t, err, errorx.New(errorx.AlreadyExists, ""))

	after, err = repository.NewTournamentRepository().GetByID(ctx, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, tournament.EntryFee, after.PrizePool)
	require.Equal(t, 1, after.EntryCount)
}

func Test_draftDomain_Enter_InsufficientBalance(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, nil)
	require.NoError(t, err)

	domain := newDraftTestDomain(&testutil.MockFundsCaller{
		HasSufficientBalanceFunc: func(ctx context.Context, wallet string, amount uint64) (bool, error) {
			return false, nil
		},
	})

	_, err = domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.ErrorIs(t, err, errorx.New(errorx.Unavailable, ""))
}

func Test_draftDomain_Enter_ClosedTournament(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, &entity.Tournament{
		Status: entity.TournamentActive,
	})
	require.NoError(t, err)

	domain := newDraftTestDomain(&testutil.MockFundsCaller{})
	_, err = domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.ErrorIs(t, err, errorx.New(errorx.Unavailable, ""))
}

func Test_draftDomain_FullDraft(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, nil)
	require.NoError(t, err)

	domain := newDraftTestDomain(&testutil.MockFundsCaller{})
	entered, err := domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.NoError(t, err)

	started, err := domain.StartDraft(ctx, &model.StartDraftRequest{EntryID: entered.Entry.ID})
	require.NoError(t, err)
	require.Equal(t, 1, started.Round)
	require.Len(t, started.Options, 5)
	require.Empty(t, started.Picks)

	// Picking for the wrong round or an asset that was never offered is
	// rejected without consuming the round.
	_, err = domain.MakePick(ctx, &model.MakePickRequest{
		EntryID: entered.Entry.ID, Round: 2, AssetID: started.Options[0].ID,
	})
	require.ErrorIs(t, err, errorx.New(errorx.WrongRound, ""))

	_, err = domain.MakePick(ctx, &model.MakePickRequest{
		EntryID: entered.Entry.ID, Round: 1, AssetID: "never-offered",
	})
	require.ErrorIs(t, err, errorx.New(errorx.InvalidOption, ""))

	seen := map[string]bool{}
	options := started.Options
	for round := 1; round <= 6; round++ {
		picked := options[0]
		require.False(t, seen[picked.ID])
		seen[picked.ID] = true

		resp, err := domain.MakePick(ctx, &model.MakePickRequest{
			EntryID: entered.Entry.ID, Round: round, AssetID: picked.ID,
		})
		require.NoError(t, err)
		require.Equal(t, round, resp.Pick.PickOrder)
		require.Equal(t, picked.ID, resp.Pick.AssetID)

		if round < 6 {
			require.False(t, resp.Completed)
			require.Equal(t, round+1, resp.NextRound)
			require.Len(t, resp.NextOptions, 5)

			// Owned assets never reappear in later rounds.
			for _, option := range resp.NextOptions {
				require.False(t, seen[option.ID])
			}

			options = resp.NextOptions
		} else {
			require.True(t, resp.Completed)
			require.Empty(t, resp.NextOptions)
		}
	}

	entry, err := repository.NewEntryRepository().GetByID(ctx, entered.Entry.ID)
	require.NoError(t, err)
	require.True(t, entry.DraftCompleted)

	picks, err := repository.NewPickRepository().GetByEntryID(ctx, entered.Entry.ID)
	require.NoError(t, err)
	require.Len(t, picks, 6)

	// The session is gone, another pick has nowhere to go.
	_, err = domain.MakePick(ctx, &model.MakePickRequest{
		EntryID: entered.Entry.ID, Round: 7, AssetID: "asset-00",
	})
	require.ErrorIs(t, err, errorx.New(errorx.NoSession, ""))

	// And the draft cannot be restarted once completed.
	_, err = domain.StartDraft(ctx, &model.StartDraftRequest{EntryID: entered.Entry.ID})
	require.ErrorIs(t, err, errorx.New(errorx.Unavailable, ""))
}

func Test_draftDomain_StartDraft_ResumesAfterRestart(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, nil)
	require.NoError(t, err)

	domain := newDraftTestDomain(&testutil.MockFundsCaller{})
	entered, err := domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.NoError(t, err)

	started, err := domain.StartDraft(ctx, &model.StartDraftRequest{EntryID: entered.Entry.ID})
	require.NoError(t, err)

	_, err = domain.MakePick(ctx, &model.MakePickRequest{
		EntryID: entered.Entry.ID, Round: 1, AssetID: started.Options[0].ID,
	})
	require.NoError(t, err)

	// A fresh domain simulates a process restart: the session is rebuilt
	// from the two persisted facts, round count and owned assets.
	restarted := newDraftTestDomain(&testutil.MockFundsCaller{})
	resumed, err := restarted.StartDraft(ctx, &model.StartDraftRequest{EntryID: entered.Entry.ID})
	require.NoError(t, err)
	require.Equal(t, 2, resumed.Round)
	require.Len(t, resumed.Picks, 1)
	require.Len(t, resumed.Options, 5)

	for _, option := range resumed.Options {
		require.NotEqual(t, started.Options[0].ID, option.ID)
	}
}

func Test_draftDomain_StartDraft_BeforeDraftWindow(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	// The draft may begin as soon as the wallet holds an entry, even
	// before the tournament flips to its drafting window.
	tournament, err := testutil.SampleTournament(ctx, &entity.Tournament{
		Status: entity.TournamentUpcoming,
	})
	require.NoError(t, err)

	domain := newDraftTestDomain(&testutil.MockFundsCaller{})
	entered, err := domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.NoError(t, err)

	started, err := domain.StartDraft(ctx, &model.StartDraftRequest{EntryID: entered.Entry.ID})
	require.NoError(t, err)
	require.Equal(t, 1, started.Round)
	require.Len(t, started.Options, 5)
}

func Test_draftDomain_MakePick_RecoversFromCatalogOutage(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, nil)
	require.NoError(t, err)

	catalog := testutil.SampleCatalog()
	catalogDown := false
	domain := NewDraftDomain(
		repository.NewTournamentRepository(),
		repository.NewEntryRepository(),
		repository.NewPickRepository(),
		statistic.New(repository.NewEntryRepository(), testutil.NewInMemoryRedisClient()),
		&testutil.MockPriceCaller{
			GetCatalogFunc: func(ctx context.Context) ([]client.Asset, error) {
				if catalogDown {
					return nil, fmt.Errorf("catalog feed is down")
				}

				return catalog, nil
			},
			GetPriceFunc: func(ctx context.Context, assetID string) (float64, error) {
				for _, asset := range catalog {
					if asset.ID == assetID {
						return asset.Price, nil
					}
				}

				return 0, fmt.Errorf("no price for %s", assetID)
			},
		},
		&testutil.MockFundsCaller{},
		&testutil.MockRewardCaller{},
		&testutil.MockPublisher{},
	)

	entered, err := domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.NoError(t, err)

	started, err := domain.StartDraft(ctx, &model.StartDraftRequest{EntryID: entered.Entry.ID})
	require.NoError(t, err)

	// The catalog goes away after the pick is committed, while the next
	// round's options are drawn.
	catalogDown = true
	_, err = domain.MakePick(ctx, &model.MakePickRequest{
		EntryID: entered.Entry.ID, Round: 1, AssetID: started.Options[0].ID,
	})
	require.Error(t, err)

	picks, err := repository.NewPickRepository().GetByEntryID(ctx, entered.Entry.ID)
	require.NoError(t, err)
	require.Len(t, picks, 1)

	// Once the catalog is back, StartDraft rebuilds from the persisted
	// pick and the draft continues at round 2.
	catalogDown = false
	resumed, err := domain.StartDraft(ctx, &model.StartDraftRequest{EntryID: entered.Entry.ID})
	require.NoError(t, err)
	require.Equal(t, 2, resumed.Round)
	require.Len(t, resumed.Picks, 1)
	require.Len(t, resumed.Options, 5)

	resp, err := domain.MakePick(ctx, &model.MakePickRequest{
		EntryID: entered.Entry.ID, Round: 2, AssetID: resumed.Options[0].ID,
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Pick.PickOrder)
}

func Test_draftDomain_Enter_LosesRaceToDuplicate(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, nil)
	require.NoError(t, err)

	// A competing enter of the same wallet lands between the duplicate
	// pre-check and the insert. The balance check is the last step before
	// the insert, so the competitor slips in there.
	domain := newDraftTestDomain(&testutil.MockFundsCaller{
		HasSufficientBalanceFunc: func(ctx context.Context, wallet string, amount uint64) (bool, error) {
			_, err := testutil.SampleEntry(ctx, &entity.Entry{
				TournamentID: tournament.ID,
				Wallet:       "player-1",
			})
			require.NoError(t, err)
			return true, nil
		},
	})

	_, err = domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.ErrorIs(t, err, errorx.New(errorx.AlreadyExists, ""))

	after, err := repository.NewTournamentRepository().GetByID(ctx, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), after.PrizePool)
	require.Equal(t, 0, after.EntryCount)
}

func Test_draftDomain_PermissionDenied(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, nil)
	require.NoError(t, err)

	domain := newDraftTestDomain(&testutil.MockFundsCaller{})
	entered, err := domain.Enter(ctx, &model.EnterTournamentRequest{TournamentID: tournament.ID})
	require.NoError(t, err)

	intruder := xcontext.WithRequestWallet(ctx, "player-2")
	_, err = domain.StartDraft(intruder, &model.StartDraftRequest{EntryID: entered.Entry.ID})
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))
}
