package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
)

// PriceRefreshDomain consumes market-data ticks and feeds them into the
// price snapshot the draft and scoring paths read from.
type PriceRefreshDomain interface {
	Subscribe(ctx context.Context, pack *pubsub.Pack, tt time.Time)
}

type priceRefreshDomain struct {
	priceCaller client.PriceCaller
}

func NewPriceRefreshDomain(priceCaller client.PriceCaller) *priceRefreshDomain {
	return &priceRefreshDomain{priceCaller: priceCaller}
}

func (d *priceRefreshDomain) Subscribe(ctx context.Context, pack *pubsub.Pack, tt time.Time) {
	var assets []client.Asset
	if err := json.Unmarshal(pack.Msg, &assets); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal price refresh: %v", err)
		return
	}

	if len(assets) == 0 {
		return
	}

	d.priceCaller.ApplyRefresh(assets)
	xcontext.Logger(ctx).Debugf("Applied price refresh of %d assets", len(assets))
}
