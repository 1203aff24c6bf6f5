package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/dateutil"
)

// SampleTournament creates a tournament with sensible defaults. Non-zero
// fields of init overwrite the sample before it is persisted.
func SampleTournament(ctx context.Context, init *entity.Tournament) (entity.Tournament, error) {
	weekStart := dateutil.CurrentWeek(time.Now())

	sample := &entity.Tournament{
		Base:          entity.Base{ID: uuid.NewString()},
		Tier:          "bronze",
		WeekStart:     weekStart,
		WeekEnd:       weekStart.AddDate(0, 0, 7),
		DraftDeadline: weekStart.Add(24 * time.Hour),
		Status:        entity.TournamentDrafting,
		EntryFee:      100_000_000,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewTournamentRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SampleEntry(ctx context.Context, init *entity.Entry) (entity.Entry, error) {
	sample := &entity.Entry{
		Base:         entity.Base{ID: uuid.NewString()},
		TournamentID: uuid.NewString(),
		Wallet:       uuid.NewString(),
		EntryFee:     100_000_000,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewEntryRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func SamplePick(ctx context.Context, init *entity.Pick) (entity.Pick, error) {
	sample := &entity.Pick{
		Base:            entity.Base{ID: uuid.NewString()},
		EntryID:         uuid.NewString(),
		PickOrder:       1,
		AssetID:         uuid.NewString(),
		Symbol:          "SOL",
		Name:            "Solana",
		PriceAtDraft:    100,
		BoostMultiplier: 1,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewPickRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.Comparable() {
			continue
		}

		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
