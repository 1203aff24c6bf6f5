package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/common"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/crypto"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/errorx"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

type PowerUpDomain interface {
	UseSwap(ctx context.Context, req *model.UseSwapRequest) (*model.UseSwapResponse, error)
	CommitSwap(ctx context.Context, req *model.CommitSwapRequest) (*model.CommitSwapResponse, error)
	UseBoost(ctx context.Context, req *model.UseBoostRequest) (*model.UseBoostResponse, error)
	UseFreeze(ctx context.Context, req *model.UseFreezeRequest) (*model.UseFreezeResponse, error)
}

type powerUpDomain struct {
	tournamentRepo repository.TournamentRepository
	entryRepo      repository.EntryRepository
	pickRepo       repository.PickRepository
	powerUpRepo    repository.PowerUpRepository
	priceCaller    client.PriceCaller
	publisher      pubsub.Publisher
}

func NewPowerUpDomain(
	tournamentRepo repository.TournamentRepository,
	entryRepo repository.EntryRepository,
	pickRepo repository.PickRepository,
	powerUpRepo repository.PowerUpRepository,
	priceCaller client.PriceCaller,
	publisher pubsub.Publisher,
) *powerUpDomain {
	return &powerUpDomain{
		tournamentRepo: tournamentRepo,
		entryRepo:      entryRepo,
		pickRepo:       pickRepo,
		powerUpRepo:    powerUpRepo,
		priceCaller:    priceCaller,
		publisher:      publisher,
	}
}

// UseSwap draws the swap candidates without committing anything. The
// usage record is only written by CommitSwap.
func (d *powerUpDomain) UseSwap(
	ctx context.Context, req *model.UseSwapRequest,
) (*model.UseSwapResponse, error) {
	entry, pick, err := d.eligiblePick(ctx, req.EntryID, req.PickID, entity.PowerUpSwap)
	if err != nil {
		return nil, err
	}

	if pick.IsFrozen || pick.BoostMultiplier != 1 {
		return nil, errorx.New(errorx.NotEligible,
			"Cannot swap a frozen or boosted pick")
	}

	candidates, err := d.swapCandidates(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	resp := &model.UseSwapResponse{}
	for _, candidate := range candidates {
		resp.Candidates = append(resp.Candidates, convertAsset(candidate))
	}

	return resp, nil
}

func (d *powerUpDomain) CommitSwap(
	ctx context.Context, req *model.CommitSwapRequest,
) (*model.CommitSwapResponse, error) {
	entry, pick, err := d.eligiblePick(ctx, req.EntryID, req.PickID, entity.PowerUpSwap)
	if err != nil {
		return nil, err
	}

	if pick.IsFrozen || pick.BoostMultiplier != 1 {
		return nil, errorx.New(errorx.NotEligible,
			"Cannot swap a frozen or boosted pick")
	}

	owned, err := d.ownedAssets(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	if _, ok := owned[req.AssetID]; ok {
		return nil, errorx.New(errorx.InvalidOption, "Asset is already drafted")
	}

	asset, err := d.lookupAsset(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}

	price, err := d.priceCaller.GetPrice(ctx, asset.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get price of %s: %v", asset.ID, err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.recordUsage(ctx, &entity.PowerUpUsage{
		Base:        entity.Base{ID: uuid.NewString()},
		EntryID:     entry.ID,
		Type:        entity.PowerUpSwap,
		PickID:      pick.ID,
		FromAssetID: pick.AssetID,
		ToAssetID:   asset.ID,
	})
	if err != nil {
		return nil, err
	}

	err = d.pickRepo.Swap(ctx, pick.ID, repository.SwapAsset{
		AssetID: asset.ID,
		Symbol:  asset.Symbol,
		Name:    asset.Name,
		Logo:    asset.LogoURL,
		Price:   price,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotEligible, "Pick is no longer swappable")
		}

		xcontext.Logger(ctx).Errorf("Cannot swap pick: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.publishUsage(ctx, entry.ID, pick.ID, entity.PowerUpSwap)

	swapped, err := d.pickRepo.GetByID(ctx, pick.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload swapped pick: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CommitSwapResponse{Pick: model.ConvertPick(swapped)}, nil
}

func (d *powerUpDomain) UseBoost(
	ctx context.Context, req *model.UseBoostRequest,
) (*model.UseBoostResponse, error) {
	entry, pick, err := d.eligiblePick(ctx, req.EntryID, req.PickID, entity.PowerUpBoost)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.recordUsage(ctx, &entity.PowerUpUsage{
		Base:    entity.Base{ID: uuid.NewString()},
		EntryID: entry.ID,
		Type:    entity.PowerUpBoost,
		PickID:  pick.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := d.pickRepo.Boost(ctx, pick.ID, 2); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotEligible, "Pick is already boosted")
		}

		xcontext.Logger(ctx).Errorf("Cannot boost pick: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.publishUsage(ctx, entry.ID, pick.ID, entity.PowerUpBoost)

	pick.BoostMultiplier = 2
	return &model.UseBoostResponse{Pick: model.ConvertPick(pick)}, nil
}

func (d *powerUpDomain) UseFreeze(
	ctx context.Context, req *model.UseFreezeRequest,
) (*model.UseFreezeResponse, error) {
	entry, pick, err := d.eligiblePick(ctx, req.EntryID, req.PickID, entity.PowerUpFreeze)
	if err != nil {
		return nil, err
	}

	price, err := d.priceCaller.GetPrice(ctx, pick.AssetID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get price of %s: %v", pick.AssetID, err)
		return nil, errorx.Unknown
	}

	change := EffectiveChange(pick, price)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.recordUsage(ctx, &entity.PowerUpUsage{
		Base:    entity.Base{ID: uuid.NewString()},
		EntryID: entry.ID,
		Type:    entity.PowerUpFreeze,
		PickID:  pick.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := d.pickRepo.Freeze(ctx, pick.ID, price, change); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotEligible, "Pick is already frozen")
		}

		xcontext.Logger(ctx).Errorf("Cannot freeze pick: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.publishUsage(ctx, entry.ID, pick.ID, entity.PowerUpFreeze)

	pick.IsFrozen = true
	return &model.UseFreezeResponse{
		Pick:         model.ConvertPick(pick),
		FrozenChange: change,
	}, nil
}

// eligiblePick runs the checks shared by every power-up: the wallet owns
// the entry, the draft is complete, the tournament is live, the pick
// belongs to the entry, and this power-up type has not been used yet.
func (d *powerUpDomain) eligiblePick(
	ctx context.Context, entryID, pickID string, powerupType entity.PowerUpType,
) (*entity.Entry, *entity.Pick, error) {
	entry, err := authorizedEntry(ctx, d.entryRepo, entryID)
	if err != nil {
		return nil, nil, err
	}

	if !entry.DraftCompleted {
		return nil, nil, errorx.New(errorx.NotEligible, "Draft is not completed yet")
	}

	tournament, err := d.tournamentRepo.GetByID(ctx, entry.TournamentID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tournament: %v", err)
		return nil, nil, errorx.Unknown
	}

	if tournament.Status != entity.TournamentActive {
		return nil, nil, errorx.New(errorx.Unavailable, "Tournament is not active")
	}

	pick, err := d.pickRepo.GetByID(ctx, pickID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errorx.New(errorx.NotFound, "Not found pick")
		}

		xcontext.Logger(ctx).Errorf("Cannot get pick: %v", err)
		return nil, nil, errorx.Unknown
	}

	if pick.EntryID != entry.ID {
		return nil, nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	used, err := d.powerUpRepo.HasBeenUsed(ctx, entry.ID, powerupType)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check powerup usage: %v", err)
		return nil, nil, errorx.Unknown
	}

	if used {
		return nil, nil, errorx.New(errorx.NotEligible,
			"The %s powerup was already used for this entry", powerupType)
	}

	return entry, pick, nil
}

// recordUsage persists the usage row. The unique (entry, type) index is
// what actually enforces at-most-once when two requests race past the
// HasBeenUsed check, the loser's insert fails here.
func (d *powerUpDomain) recordUsage(ctx context.Context, usage *entity.PowerUpUsage) error {
	if err := d.powerUpRepo.CreateUsage(ctx, usage); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record powerup usage: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *powerUpDomain) ownedAssets(ctx context.Context, entryID string) (map[string]struct{}, error) {
	picks, err := d.pickRepo.GetByEntryID(ctx, entryID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get picks: %v", err)
		return nil, errorx.Unknown
	}

	owned := map[string]struct{}{}
	for _, pick := range picks {
		owned[pick.AssetID] = struct{}{}
	}

	return owned, nil
}

func (d *powerUpDomain) swapCandidates(ctx context.Context, entryID string) ([]client.Asset, error) {
	owned, err := d.ownedAssets(ctx, entryID)
	if err != nil {
		return nil, err
	}

	catalog, err := d.priceCaller.GetCatalog(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get asset catalog: %v", err)
		return nil, errorx.Unknown
	}

	pool := make([]client.Asset, 0, len(catalog))
	for _, asset := range catalog {
		if _, ok := owned[asset.ID]; !ok {
			pool = append(pool, asset)
		}
	}

	n := xcontext.Configs(ctx).Tournament.SwapCandidates
	if len(pool) < n {
		return nil, errorx.New(errorx.Unavailable, "Not enough assets to swap to")
	}

	crypto.Shuffle(pool)
	return pool[:n], nil
}

func (d *powerUpDomain) lookupAsset(ctx context.Context, assetID string) (*client.Asset, error) {
	catalog, err := d.priceCaller.GetCatalog(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get asset catalog: %v", err)
		return nil, errorx.Unknown
	}

	for i := range catalog {
		if catalog[i].ID == assetID {
			return &catalog[i], nil
		}
	}

	return nil, errorx.New(errorx.NotFound, "Not found asset")
}

func (d *powerUpDomain) publishUsage(
	ctx context.Context, entryID, pickID string, powerupType entity.PowerUpType,
) {
	publishEvent(ctx, d.publisher, common.EventPowerUpUsed, model.PowerUpUsedEvent{
		EntryID: entryID,
		PickID:  pickID,
		Type:    string(powerupType),
	})
}
