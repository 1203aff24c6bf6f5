package main

import (
	"fmt"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/migration"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()

	version := cctx.String("version")
	migrator, ok := migration.Migrators[version]
	if !ok {
		return fmt.Errorf("not found version %s", version)
	}

	return migrator(s.ctx)
}
