package domain

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/entity"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/model"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/repository"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/errorx"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
	"gorm.io/gorm"
)

// authorizedEntry loads an entry and checks the request wallet owns it.
func authorizedEntry(
	ctx context.Context, entryRepo repository.EntryRepository, entryID string,
) (*entity.Entry, error) {
	wallet := xcontext.RequestWallet(ctx)
	if wallet == "" {
		return nil, errorx.New(errorx.Unauthenticated, "No wallet in request")
	}

	entry, err := entryRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found entry")
		}

		xcontext.Logger(ctx).Errorf("Cannot get entry: %v", err)
		return nil, errorx.Unknown
	}

	if entry.Wallet != wallet {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return entry, nil
}

// publishEvent sends an engine event to the event topic. Publishing is
// best effort, failures are logged and never fail the operation.
func publishEvent(ctx context.Context, publisher pubsub.Publisher, event string, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", event, err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.EventTopic
	err = publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(event), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish %s event: %v", event, err)
	}
}

func convertAsset(asset client.Asset) model.Asset {
	return model.Asset{
		ID:      asset.ID,
		Symbol:  asset.Symbol,
		Name:    asset.Name,
		LogoURL: asset.LogoURL,
		Price:   asset.Price,
	}
}
