package migration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

// Migrators holds post-deploy migrations by version. Each one is applied
// at most once, the applied versions are tracked in the migrations table.
var Migrators = map[string]func(context.Context) error{
	"0000": recorded("0000", migrate0000),
	"0001": recorded("0001", migrate0001),
}

func recorded(version string, migrate func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		err := xcontext.DB(ctx).
			Take(&entity.Migration{}, "version=?", version).Error
		if err == nil {
			xcontext.Logger(ctx).Infof("Migration %s was already applied", version)
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := migrate(ctx); err != nil {
			return err
		}

		return xcontext.DB(ctx).Create(&entity.Migration{
			Base:    entity.Base{ID: uuid.NewString()},
			Version: version,
		}).Error
	}
}
