package migration

import (
	"context"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
)

// migrate0000 creates the schema at the latest version. When this
// migrator is called, no need to call other migrators.
func migrate0000(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
