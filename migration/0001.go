package migration

import (
	"context"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
)

// migrate0001 backfills the entry_count counter from the entries table
// for tournaments created before the counter existed.
func migrate0001(ctx context.Context) error {
	return xcontext.DB(ctx).
		Model(&entity.Tournament{}).
		Where("entry_count = ?", 0).
		Update("entry_count", xcontext.DB(ctx).
			Model(&entity.Entry{}).
			Select("COUNT(*)").
			Where("entries.tournament_id = tournaments.id"),
		).Error
}
