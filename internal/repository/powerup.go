package repository

import (
	"context"
	"errors"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

type PowerUpRepository interface {
	CreateUsage(ctx context.Context, usage *entity.PowerUpUsage) error
	HasBeenUsed(ctx context.Context, entryID string, powerupType entity.PowerUpType) (bool, error)
	GetByEntryID(ctx context.Context, entryID string) ([]entity.PowerUpUsage, error)
}

type powerUpRepository struct{}

func NewPowerUpRepository() *powerUpRepository {
	return &powerUpRepository{}
}

func (r *powerUpRepository) CreateUsage(ctx context.Context, usage *entity.PowerUpUsage) error {
	return xcontext.DB(ctx).Create(usage).Error
}

func (r *powerUpRepository) HasBeenUsed(
	ctx context.Context, entryID string, powerupType entity.PowerUpType,
) (bool, error) {
	err := xcontext.DB(ctx).
		Where("entry_id=? AND type=?", entryID, powerupType).
		Take(&entity.PowerUpUsage{}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *powerUpRepository) GetByEntryID(
	ctx context.Context, entryID string,
) ([]entity.PowerUpUsage, error) {
	var result []entity.PowerUpUsage
	err := xcontext.DB(ctx).
		Where("entry_id=?", entryID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
