package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/config"
)

// RewardCaller grants progression XP. Calls are fire-and-forget from the
// engine's point of view: failures are logged by callers, never
// propagated.
type RewardCaller interface {
	AwardXP(ctx context.Context, wallet string, amount int, source, sourceID, description string) error
}

type rewardCaller struct {
	endpoint string
	client   *http.Client
}

func NewRewardCaller(cfg config.RewardConfigs) *rewardCaller {
	return &rewardCaller{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *rewardCaller) AwardXP(
	ctx context.Context, wallet string, amount int, source, sourceID, description string,
) error {
	body, err := json.Marshal(map[string]any{
		"wallet":      wallet,
		"amount":      amount,
		"source":      source,
		"source_id":   sourceID,
		"description": description,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint+"/xp", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("progression service returned status %d", resp.StatusCode)
	}

	return nil
}
