package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/config"
)

// FundsCaller is the custody ledger. Debits are two-phase: DebitPending
// places a hold before any engine state is written, ConfirmDebit
// finalizes it after the entry is durably recorded. CreditWinnings is
// idempotent by refID, so a repeated settlement attempt cannot pay a
// winner twice.
type FundsCaller interface {
	HasSufficientBalance(ctx context.Context, wallet string, amount uint64) (bool, error)
	DebitPending(ctx context.Context, wallet string, amount uint64, reason, refID string) (string, error)
	ConfirmDebit(ctx context.Context, pendingID string) error
	CreditWinnings(ctx context.Context, wallet string, amount uint64, reason, refID string) (string, error)
}

type fundsCaller struct {
	endpoint string
	client   *http.Client
}

func NewFundsCaller(cfg config.FundsConfigs) *fundsCaller {
	return &fundsCaller{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *fundsCaller) HasSufficientBalance(
	ctx context.Context, wallet string, amount uint64,
) (bool, error) {
	var result struct {
		Sufficient bool `json:"sufficient"`
	}

	err := c.postJSON(ctx, "/balance/check", map[string]any{
		"wallet": wallet,
		"amount": amount,
	}, &result)
	if err != nil {
		return false, err
	}

	return result.Sufficient, nil
}

func (c *fundsCaller) DebitPending(
	ctx context.Context, wallet string, amount uint64, reason, refID string,
) (string, error) {
	var result struct {
		PendingID string `json:"pending_id"`
	}

	err := c.postJSON(ctx, "/debits/pending", map[string]any{
		"wallet": wallet,
		"amount": amount,
		"reason": reason,
		"ref_id": refID,
	}, &result)
	if err != nil {
		return "", err
	}

	return result.PendingID, nil
}

func (c *fundsCaller) ConfirmDebit(ctx context.Context, pendingID string) error {
	return c.postJSON(ctx, fmt.Sprintf("/debits/%s/confirm", pendingID), nil, nil)
}

func (c *fundsCaller) CreditWinnings(
	ctx context.Context, wallet string, amount uint64, reason, refID string,
) (string, error) {
	var result struct {
		TransactionRef string `json:"transaction_ref"`
	}

	err := c.postJSON(ctx, "/credits", map[string]any{
		"wallet": wallet,
		"amount": amount,
		"reason": reason,
		"ref_id": refID,
	}, &result)
	if err != nil {
		return "", err
	}

	return result.TransactionRef, nil
}

func (c *fundsCaller) postJSON(ctx context.Context, path string, body, v any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, &buf)
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
		return fmt.Errorf("funds ledger returned status %d", resp.StatusCode)
	}

	if v == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
