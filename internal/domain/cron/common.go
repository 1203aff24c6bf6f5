package cron

import (
	"context"
	"encoding/json"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/pubsub"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/pkg/xcontext"
)

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
