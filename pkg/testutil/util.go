package testutil

import (
	"context"
	"time"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/config"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/logger"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Kafka: config.KafkaConfigs{
			EventTopic: "engine-events",
			PriceTopic: "price-ticks",
		},
		Tournament: config.TournamentConfigs{
			Tiers: []config.TierConfigs{
				{Name: "bronze", FeeLamports: 100_000_000},
				{Name: "silver", FeeLamports: 500_000_000},
			},
			DraftWindow:     24 * time.Hour,
			PicksPerEntry:   6,
			OptionsPerRound: 5,
			SwapCandidates:  3,
			RakeBasisPoints: 1000,
			ParticipationXP: 10,
			ChampionXP:      500,
			PodiumXP:        200,
			WinnerXP:        50,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithWallet(wallet string) context.Context {
	return xcontext.WithRequestWallet(MockContext(), wallet)
}
