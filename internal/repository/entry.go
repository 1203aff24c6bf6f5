package repository

import (
	"context"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, id string) (*entity.Entry, error)
	GetByTournamentAndWallet(ctx context.Context, tournamentID, wallet string) (*entity.Entry, error)
	GetByTournamentID(ctx context.Context, tournamentID string) ([]entity.Entry, error)
	GetCompletedByTournamentID(ctx context.Context, tournamentID string) ([]entity.Entry, error)
	MarkDraftCompleted(ctx context.Context, id string) error
	UpdateScore(ctx context.Context, id string, score float64) error
	SetFinalResult(ctx context.Context, id string, score float64, rank int64, payout uint64) error
	Count(ctx context.Context, tournamentID string) (int64, error)
}

type entryRepository struct{}

func NewEntryRepository() *entryRepository {
	return &entryRepository{}
}

func (r *entryRepository) Create(ctx context.Context, entry *entity.Entry) error {
	return xcontext.DB(ctx).Create(entry).Error
}

func (r *entryRepository) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	var result entity.Entry
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *entryRepository) GetByTournamentAndWallet(
	ctx context.Context, tournamentID, wallet string,
) (*entity.Entry, error) {
	var result entity.Entry
	err := xcontext.DB(ctx).
		Where("tournament_id=? AND wallet=?", tournamentID, wallet).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *entryRepository) GetByTournamentID(
	ctx context.Context, tournamentID string,
) ([]entity.Entry, error) {
	var result []entity.Entry
	err := xcontext.DB(ctx).
		Where("tournament_id=?", tournamentID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetCompletedByTournamentID returns draft-completed entries in the order
// they were created. Settlement depends on this ordering to break ties.
func (r *entryRepository) GetCompletedByTournamentID(
	ctx context.Context, tournamentID string,
) ([]entity.Entry, error) {
	var result []entity.Entry
	err := xcontext.DB(ctx).
		Where("tournament_id=? AND draft_completed=?", tournamentID, true).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *entryRepository) MarkDraftCompleted(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Entry{}).
		Where("id=? AND draft_completed=?", id, false).
		Update("draft_completed", true)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *entryRepository) UpdateScore(ctx context.Context, id string, score float64) error {
	return xcontext.DB(ctx).
		Model(&entity.Entry{}).
		Where("id=?", id).
		Update("score", score).Error
}

func (r *entryRepository) SetFinalResult(
	ctx context.Context, id string, score float64, rank int64, payout uint64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Entry{}).
		Where("id=?", id).
		Updates(map[string]any{
			"final_score": score,
			"final_rank":  rank,
			"payout":      payout,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *entryRepository) Count(ctx context.Context, tournamentID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Entry{}).
		Where("tournament_id=?", tournamentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
