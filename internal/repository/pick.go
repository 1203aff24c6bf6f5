package repository

import (
	"context"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

type PickRepository interface {
	Create(ctx context.Context, pick *entity.Pick) error
	GetByID(ctx context.Context, id string) (*entity.Pick, error)
	GetByEntryID(ctx context.Context, entryID string) ([]entity.Pick, error)
	Swap(ctx context.Context, id string, asset SwapAsset) error
	Boost(ctx context.Context, id string, multiplier float64) error
	Freeze(ctx context.Context, id string, atPrice, change float64) error
	UpdateEndPrice(ctx context.Context, id string, price float64) error
}

// SwapAsset carries the replacement asset written over a swapped pick.
type SwapAsset struct {
	AssetID string
	Symbol  string
	Name    string
	Logo    string
	Price   float64
}

type pickRepository struct{}

func NewPickRepository() *pickRepository {
	return &pickRepository{}
}

func (r *pickRepository) Create(ctx context.Context, pick *entity.Pick) error {
	return xcontext.DB(ctx).Create(pick).Error
}

func (r *pickRepository) GetByID(ctx context.Context, id string) (*entity.Pick, error) {
	var result entity.Pick
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pickRepository) GetByEntryID(ctx context.Context, entryID string) ([]entity.Pick, error) {
	var result []entity.Pick
	err := xcontext.DB(ctx).
		Where("entry_id=?", entryID).
		Order("pick_order ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Swap replaces the asset of an unmodified pick. A pick that is frozen or
// already boosted cannot be swapped, the guard is in the WHERE clause.
func (r *pickRepository) Swap(ctx context.Context, id string, asset SwapAsset) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Pick{}).
		Where("id=? AND is_frozen=? AND boost_multiplier=?", id, false, 1.0).
		Updates(map[string]any{
			"asset_id":       asset.AssetID,
			"symbol":         asset.Symbol,
			"name":           asset.Name,
			"logo":           asset.Logo,
			"price_at_draft": asset.Price,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *pickRepository) Boost(ctx context.Context, id string, multiplier float64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Pick{}).
		Where("id=? AND boost_multiplier=?", id, 1.0).
		Update("boost_multiplier", multiplier)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *pickRepository) UpdateEndPrice(ctx context.Context, id string, price float64) error {
	return xcontext.DB(ctx).
		Model(&entity.Pick{}).
		Where("id=?", id).
		Update("end_price", price).Error
}

func (r *pickRepository) Freeze(ctx context.Context, id string, atPrice, change float64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Pick{}).
		Where("id=? AND is_frozen=?", id, false).
		Updates(map[string]any{
			"is_frozen":       true,
			"frozen_at_price": atPrice,
			"frozen_change":   change,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
