package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database   DatabaseConfigs
	Redis      RedisConfigs
	Kafka      KafkaConfigs
	Price      PriceConfigs
	Funds      FundsConfigs
	Reward     RewardConfigs
	Tournament TournamentConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addrs []string

	// EventTopic receives every engine event; PriceTopic is consumed for
	// market-data refresh ticks.
	EventTopic string
	PriceTopic string
}

type PriceConfigs struct {
	Endpoint string
	Timeout  time.Duration
}

type FundsConfigs struct {
	Endpoint string
	Timeout  time.Duration
}

type RewardConfigs struct {
	Endpoint string
	Timeout  time.Duration
}

// TierConfigs is one entry-fee bracket. Fees and payouts are denominated
// in lamports, the custody ledger's smallest unit.
type TierConfigs struct {
	Name        string
	FeeLamports uint64
}

type TournamentConfigs struct {
	Tiers       []TierConfigs
	DraftWindow time.Duration

	PicksPerEntry   int
	OptionsPerRound int
	SwapCandidates  int

	RakeBasisPoints uint64

	// XP bands granted through the progression service.
	ParticipationXP int
	ChampionXP      int
	PodiumXP        int
	WinnerXP        int
}
