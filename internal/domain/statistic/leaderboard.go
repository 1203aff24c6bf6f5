package statistic

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/common"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/errorx"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xredis"
)

type Leaderboard interface {
	GetLeaderboard(ctx context.Context, tournamentID string, offset, limit int) ([]model.RankedEntry, error)
	GetRank(ctx context.Context, tournamentID, wallet string) (uint64, error)
	UpdateScore(ctx context.Context, tournamentID, wallet string, score float64) error
	Clear(ctx context.Context, tournamentID string) error
}

type leaderboard struct {
	entryRepo   repository.EntryRepository
	redisClient xredis.Client
}

func New(entryRepo repository.EntryRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{entryRepo: entryRepo, redisClient: redisClient}
}

func (l *leaderboard) GetLeaderboard(
	ctx context.Context, tournamentID string, offset, limit int,
) ([]model.RankedEntry, error) {
	key := common.RedisKeyLeaderboard(tournamentID)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadFromDB(ctx, tournamentID); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	ranked := []model.RankedEntry{}
	for i, z := range results {
		ranked = append(ranked, model.RankedEntry{
			Rank:   int64(offset + i + 1),
			Wallet: z.Member.(string),
			Score:  z.Score,
		})
	}

	return ranked, nil
}

func (l *leaderboard) GetRank(ctx context.Context, tournamentID, wallet string) (uint64, error) {
	key := common.RedisKeyLeaderboard(tournamentID)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return 0, errorx.Unknown
	}

	if !ok {
		if err := l.loadFromDB(ctx, tournamentID); err != nil {
			return 0, err
		}
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, wallet)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) UpdateScore(
	ctx context.Context, tournamentID, wallet string, score float64,
) error {
	key := common.RedisKeyLeaderboard(tournamentID)

	if err := l.redisClient.ZAdd(ctx, key, redis.Z{Member: wallet, Score: score}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZAdd redis: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *leaderboard) Clear(ctx context.Context, tournamentID string) error {
	if err := l.redisClient.Del(ctx, common.RedisKeyLeaderboard(tournamentID)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot del leaderboard key: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *leaderboard) loadFromDB(ctx context.Context, tournamentID string) error {
	entries, err := l.entryRepo.GetCompletedByTournamentID(ctx, tournamentID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load entries for leaderboard: %v", err)
		return errorx.Unknown
	}

	key := common.RedisKeyLeaderboard(tournamentID)
	for _, entry := range entries {
		score := entry.Score
		if entry.FinalScore.Valid {
			score = entry.FinalScore.Float64
		}

		err := l.redisClient.ZAdd(ctx, key, redis.Z{Member: entry.Wallet, Score: score})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot call ZAdd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
