package domain

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/errorx"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/testutil"
)

type powerUpFixture struct {
	domain PowerUpDomain
	entry  entity.Entry
	picks  []entity.Pick
	prices map[string]float64
}

func newPowerUpTestDomain(prices map[string]float64) PowerUpDomain {
	catalog := testutil.SampleCatalog()

	return NewPowerUpDomain(
		repository.NewTournamentRepository(),
		repository.NewEntryRepository(),
		repository.NewPickRepository(),
		repository.NewPowerUpRepository(),
		&testutil.MockPriceCaller{
			GetCatalogFunc: func(ctx context.Context) ([]client.Asset, error) {
				return catalog, nil
			},
			GetPriceFunc: func(ctx context.Context, assetID string) (float64, error) {
				price, ok := prices[assetID]
				if !ok {
					return 0, fmt.Errorf("no price for %s", assetID)
				}

				return price, nil
			},
		},
		&testutil.MockPublisher{},
	)
}

// newPowerUpFixture seeds an active tournament with one completed entry
// holding picks on asset-00 through asset-05, all drafted at price 100.
func newPowerUpFixture(t *testing.T, ctx context.Context) *powerUpFixture {
	tournament, err := testutil.SampleTournament(ctx, &entity.Tournament{
		Status: entity.TournamentActive,
	})
	require.NoError(t, err)

	entry, err := testutil.SampleEntry(ctx, &entity.Entry{
		TournamentID:   tournament.ID,
		Wallet:         "player-1",
		DraftCompleted: true,
	})
	require.NoError(t, err)

	picks := make([]entity.Pick, 0, 6)
	for i := 0; i < 6; i++ {
		pick, err := testutil.SamplePick(ctx, &entity.Pick{
			EntryID:   entry.ID,
			PickOrder: i + 1,
			AssetID:   fmt.Sprintf("asset-%02d", i),
		})
		require.NoError(t, err)
		picks = append(picks, pick)
	}

	fixture := &powerUpFixture{entry: entry, picks: picks, prices: map[string]float64{}}
	for _, asset := range testutil.SampleCatalog() {
		fixture.prices[asset.ID] = asset.Price
	}

	fixture.domain = newPowerUpTestDomain(fixture.prices)
	return fixture
}

func Test_powerUpDomain_UseBoost(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")
	fixture := newPowerUpFixture(t, ctx)

	resp, err := fixture.domain.UseBoost(ctx, &model.UseBoostRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[0].ID,
	})
	require.NoError(t, err)
	require.Equal(t, float64(2), resp.Pick.BoostMultiplier)

	stored, err := repository.NewPickRepository().GetByID(ctx, fixture.picks[0].ID)
	require.NoError(t, err)
	require.Equal(t, float64(2), stored.BoostMultiplier)

	// One boost per entry, even on a different pick.
	_, err = fixture.domain.UseBoost(ctx, &model.UseBoostRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[1].ID,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NotEligible, ""))
}

func Test_powerUpDomain_UseFreeze(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")
	fixture := newPowerUpFixture(t, ctx)

	fixture.prices[fixture.picks[0].AssetID] = 120

	resp, err := fixture.domain.UseFreeze(ctx, &model.UseFreezeRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[0].ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Pick.IsFrozen)
	require.Equal(t, float64(20), resp.FrozenChange)

	stored, err := repository.NewPickRepository().GetByID(ctx, fixture.picks[0].ID)
	require.NoError(t, err)
	require.True(t, stored.IsFrozen)
	require.Equal(t, float64(120), stored.FrozenAtPrice)
	require.True(t, stored.FrozenChange.Valid)
	require.Equal(t, float64(20), stored.FrozenChange.Float64)

	_, err = fixture.domain.UseFreeze(ctx, &model.UseFreezeRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[1].ID,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NotEligible, ""))
}

func Test_powerUpDomain_Swap(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")
	fixture := newPowerUpFixture(t, ctx)

	resp, err := fixture.domain.UseSwap(ctx, &model.UseSwapRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[0].ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 3)

	owned := map[string]bool{}
	for _, pick := range fixture.picks {
		owned[pick.AssetID] = true
	}

	for _, candidate := range resp.Candidates {
		require.False(t, owned[candidate.ID])
	}

	// Swapping to an asset the entry already drafted is rejected.
	_, err = fixture.domain.CommitSwap(ctx, &model.CommitSwapRequest{
		EntryID: fixture.entry.ID,
		PickID:  fixture.picks[0].ID,
		AssetID: fixture.picks[1].AssetID,
	})
	require.ErrorIs(t, err, errorx.New(errorx.InvalidOption, ""))

	committed, err := fixture.domain.CommitSwap(ctx, &model.CommitSwapRequest{
		EntryID: fixture.entry.ID,
		PickID:  fixture.picks[0].ID,
		AssetID: "asset-10",
	})
	require.NoError(t, err)
	require.Equal(t, "asset-10", committed.Pick.AssetID)
	require.Equal(t, float64(20), committed.Pick.PriceAtDraft)
	require.Equal(t, "TKN10", committed.Pick.Symbol)

	usages, err := repository.NewPowerUpRepository().GetByEntryID(ctx, fixture.entry.ID)
	require.NoError(t, err)
	require.Len(t, usages, 1)
	require.Equal(t, entity.PowerUpSwap, usages[0].Type)
	require.Equal(t, "asset-00", usages[0].FromAssetID)
	require.Equal(t, "asset-10", usages[0].ToAssetID)

	// The swap is spent, another one is not available.
	_, err = fixture.domain.UseSwap(ctx, &model.UseSwapRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[1].ID,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NotEligible, ""))
}

func Test_powerUpDomain_Swap_LockedPick(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")
	fixture := newPowerUpFixture(t, ctx)

	_, err := fixture.domain.UseBoost(ctx, &model.UseBoostRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[0].ID,
	})
	require.NoError(t, err)

	_, err = fixture.domain.UseFreeze(ctx, &model.UseFreezeRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[1].ID,
	})
	require.NoError(t, err)

	// Neither the boosted nor the frozen pick can be swapped away.
	_, err = fixture.domain.UseSwap(ctx, &model.UseSwapRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[0].ID,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NotEligible, ""))

	_, err = fixture.domain.UseSwap(ctx, &model.UseSwapRequest{
		EntryID: fixture.entry.ID, PickID: fixture.picks[1].ID,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NotEligible, ""))
}

func Test_powerUpDomain_RequiresActiveTournament(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, nil)
	require.NoError(t, err)

	entry, err := testutil.SampleEntry(ctx, &entity.Entry{
		TournamentID:   tournament.ID,
		Wallet:         "player-1",
		DraftCompleted: true,
	})
	require.NoError(t, err)

	pick, err := testutil.SamplePick(ctx, &entity.Pick{EntryID: entry.ID})
	require.NoError(t, err)

	domain := newPowerUpTestDomain(map[string]float64{})
	_, err = domain.UseBoost(ctx, &model.UseBoostRequest{
		EntryID: entry.ID, PickID: pick.ID,
	})
	require.ErrorIs(t, err, errorx.New(errorx.Unavailable, ""))
}

func Test_powerUpDomain_RequiresCompletedDraft(t *testing.T) {
	ctx := testutil.MockContextWithWallet("player-1")

	tournament, err := testutil.SampleTournament(ctx, &entity.Tournament{
		Status: entity.TournamentActive,
	})
	require.NoError(t, err)

	entry, err := testutil.SampleEntry(ctx, &entity.Entry{
		TournamentID: tournament.ID,
		Wallet:       "player-1",
	})
	require.NoError(t, err)

	pick, err := testutil.SamplePick(ctx, &entity.Pick{EntryID: entry.ID})
	require.NoError(t, err)

	domain := newPowerUpTestDomain(map[string]float64{})
	_, err = domain.UseBoost(ctx, &model.UseBoostRequest{
		EntryID: entry.ID, PickID: pick.ID,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NotEligible, ""))
}
