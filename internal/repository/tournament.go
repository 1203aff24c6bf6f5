package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *entity.Tournament) error
	GetByID(ctx context.Context, id string) (*entity.Tournament, error)
	GetByTierAndWeek(ctx context.Context, tier string, weekStart time.Time) (*entity.Tournament, error)
	GetUnfinished(ctx context.Context) ([]entity.Tournament, error)
	GetByStatus(ctx context.Context, status entity.TournamentStatus) ([]entity.Tournament, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.TournamentStatus) error
	AddEntry(ctx context.Context, id string, fee uint64) error
}

type tournamentRepository struct{}

func NewTournamentRepository() *tournamentRepository {
	return &tournamentRepository{}
}

func (r *tournamentRepository) Create(ctx context.Context, tournament *entity.Tournament) error {
	return xcontext.DB(ctx).Create(tournament).Error
}

func (r *tournamentRepository) GetByID(ctx context.Context, id string) (*entity.Tournament, error) {
	var result entity.Tournament
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *tournamentRepository) GetByTierAndWeek(
	ctx context.Context, tier string, weekStart time.Time,
) (*entity.Tournament, error) {
	var result entity.Tournament
	err := xcontext.DB(ctx).
		Where("tier=? AND week_start=?", tier, weekStart).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *tournamentRepository) GetUnfinished(ctx context.Context) ([]entity.Tournament, error) {
	var result []entity.Tournament
	err := xcontext.DB(ctx).
		Where("status != ?", entity.TournamentCompleted).
		Order("week_start ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *tournamentRepository) GetByStatus(
	ctx context.Context, status entity.TournamentStatus,
) ([]entity.Tournament, error) {
	var result []entity.Tournament
	if err := xcontext.DB(ctx).Where("status=?", status).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateStatus transitions only from the expected previous status and
// returns gorm.ErrRecordNotFound if another writer got there first.
func (r *tournamentRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.TournamentStatus,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Tournament{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *tournamentRepository) AddEntry(ctx context.Context, id string, fee uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Tournament{}).
		Where("id=?", id).
		Updates(map[string]any{
			"prize_pool":  gorm.Expr("prize_pool+?", fee),
			"entry_count": gorm.Expr("entry_count+1"),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
