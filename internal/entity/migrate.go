package entity

import (
	"context"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Tournament{},
		&Entry{},
		&Pick{},
		&PowerUpUsage{},
		&Migration{},
	)
}
