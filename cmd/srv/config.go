package main

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/config"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/logger"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
)

func (s *srv) loadConfig() {
	s.ctx = xcontext.WithConfigs(s.ctx, config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "draftengine"),
			User:     getEnv("MYSQL_USER", "draftengine"),
			Password: getEnv("MYSQL_PASSWORD", "draftengine"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addrs:      strings.Split(getEnv("KAFKA_ADDRS", "localhost:9092"), ","),
			EventTopic: getEnv("KAFKA_EVENT_TOPIC", "engine-events"),
			PriceTopic: getEnv("KAFKA_PRICE_TOPIC", "price-ticks"),
		},
		Price: config.PriceConfigs{
			Endpoint: getEnv("PRICE_ENDPOINT", "http://localhost:8081"),
			Timeout:  getDuration("PRICE_TIMEOUT", 10*time.Second),
		},
		Funds: config.FundsConfigs{
			Endpoint: getEnv("FUNDS_ENDPOINT", "http://localhost:8082"),
			Timeout:  getDuration("FUNDS_TIMEOUT", 30*time.Second),
		},
		Reward: config.RewardConfigs{
			Endpoint: getEnv("REWARD_ENDPOINT", "http://localhost:8083"),
			Timeout:  getDuration("REWARD_TIMEOUT", 10*time.Second),
		},
		Tournament: config.TournamentConfigs{
			Tiers: []config.TierConfigs{
				{Name: "bronze", FeeLamports: getUint64("BRONZE_FEE_LAMPORTS", 100_000_000)},
				{Name: "silver", FeeLamports: getUint64("SILVER_FEE_LAMPORTS", 500_000_000)},
				{Name: "gold", FeeLamports: getUint64("GOLD_FEE_LAMPORTS", 1_000_000_000)},
			},
			DraftWindow:     getDuration("DRAFT_WINDOW", 24*time.Hour),
			PicksPerEntry:   6,
			OptionsPerRound: 5,
			SwapCandidates:  3,
			RakeBasisPoints: getUint64("RAKE_BASIS_POINTS", 1000),
			ParticipationXP: 10,
			ChampionXP:      500,
			PodiumXP:        200,
			WinnerXP:        50,
		},
	})
}

func logLevel(ctx context.Context) int {
	if xcontext.Configs(ctx).Env == "local" {
		return logger.DEBUG
	}

	return logger.INFO
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func getUint64(key string, fallback uint64) uint64 {
	value, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}

	return value
}
