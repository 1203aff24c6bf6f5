package main

import (
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/domain/cron"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startEngine(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadClients()
	s.loadRepos()
	s.loadDomains()
	s.loadSubscriber()

	go s.subscriber.Subscribe(s.ctx)

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewPhaseSweepCronJob(
		s.tournamentRepo, s.settlementDomain, s.publisher))
	cronJobManager.Register(cron.NewScoreRefreshCronJob(
		s.tournamentRepo, s.entryRepo, s.pickRepo,
		s.leaderboard, s.priceCaller, s.publisher))

	cronJobManager.Start(s.ctx)
	return nil
}
