package main

import (
	"context"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain/statistic"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/kafka"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/logger"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	tournamentRepo repository.TournamentRepository
	entryRepo      repository.EntryRepository
	pickRepo       repository.PickRepository
	powerUpRepo    repository.PowerUpRepository

	priceCaller  client.PriceCaller
	fundsCaller  client.FundsCaller
	rewardCaller client.RewardCaller

	leaderboard statistic.Leaderboard

	draftDomain        domain.DraftDomain
	powerUpDomain      domain.PowerUpDomain
	settlementDomain   domain.SettlementDomain
	tournamentDomain   domain.TournamentDomain
	priceRefreshDomain domain.PriceRefreshDomain

	redisClient xredis.Client
	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logLevel(s.ctx)))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	var err error
	s.publisher, err = kafka.NewPublisher(
		"draft-engine", xcontext.Configs(s.ctx).Kafka.Addrs)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadSubscriber() {
	var err error
	s.subscriber, err = kafka.NewSubscriber(
		"draft-engine",
		xcontext.Configs(s.ctx).Kafka.Addrs,
		[]string{xcontext.Configs(s.ctx).Kafka.PriceTopic},
		s.priceRefreshDomain.Subscribe,
	)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadClients() {
	cfg := xcontext.Configs(s.ctx)
	s.priceCaller = client.NewPriceCaller(cfg.Price)
	s.fundsCaller = client.NewFundsCaller(cfg.Funds)
	s.rewardCaller = client.NewRewardCaller(cfg.Reward)
}

func (s *srv) loadRepos() {
	s.tournamentRepo = repository.NewTournamentRepository()
	s.entryRepo = repository.NewEntryRepository()
	s.pickRepo = repository.NewPickRepository()
	s.powerUpRepo = repository.NewPowerUpRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = statistic.New(s.entryRepo, s.redisClient)

	s.draftDomain = domain.NewDraftDomain(s.tournamentRepo, s.entryRepo, s.pickRepo,
		s.leaderboard, s.priceCaller, s.fundsCaller, s.rewardCaller, s.publisher)
	s.powerUpDomain = domain.NewPowerUpDomain(s.tournamentRepo, s.entryRepo, s.pickRepo,
		s.powerUpRepo, s.priceCaller, s.publisher)
	s.settlementDomain = domain.NewSettlementDomain(s.tournamentRepo, s.entryRepo, s.pickRepo,
		s.leaderboard, s.priceCaller, s.fundsCaller, s.rewardCaller, s.publisher)
	s.tournamentDomain = domain.NewTournamentDomain(s.tournamentRepo)
	s.priceRefreshDomain = domain.NewPriceRefreshDomain(s.priceCaller)
}
