package testutil

import (
	"context"
	"fmt"

	"github.com/tmelvin-bc-web3/collateral-combat-sub004/internal/client"
)

type MockPriceCaller struct {
	GetPriceFunc   func(ctx context.Context, assetID string) (float64, error)
	GetCatalogFunc func(ctx context.Context) ([]client.Asset, error)
}

func (m *MockPriceCaller) GetPrice(ctx context.Context, assetID string) (float64, error) {
	if m.GetPriceFunc != nil {
		return m.GetPriceFunc(ctx, assetID)
	}

	return 0, fmt.Errorf("no price for %s", assetID)
}

func (m *MockPriceCaller) GetCatalog(ctx context.Context) ([]client.Asset, error) {
	if m.GetCatalogFunc != nil {
		return m.GetCatalogFunc(ctx)
	}

	return nil, nil
}

func (m *MockPriceCaller) ApplyRefresh(assets []client.Asset) {}

// SampleCatalog is a price snapshot big enough for a full six round
// draft with swaps left over.
func SampleCatalog() []client.Asset {
	catalog := make([]client.Asset, 0, 40)
	for i := 0; i < 40; i++ {
		catalog = append(catalog, client.Asset{
			ID:     fmt.Sprintf("asset-%02d", i),
			Symbol: fmt.Sprintf("TKN%02d", i),
			Name:   fmt.Sprintf("Token %02d", i),
			Price:  float64(10 + i),
		})
	}

	return catalog
}

type MockFundsCaller struct {
	HasSufficientBalanceFunc func(ctx context.Context, wallet string, amount uint64) (bool, error)
	DebitPendingFunc         func(ctx context.Context, wallet string, amount uint64, reason, refID string) (string, error)
	ConfirmDebitFunc         func(ctx context.Context, pendingID string) error
	CreditWinningsFunc       func(ctx context.Context, wallet string, amount uint64, reason, refID string) (string, error)
}

func (m *MockFundsCaller) HasSufficientBalance(
	ctx context.Context, wallet string, amount uint64,
) (bool, error) {
	if m.HasSufficientBalanceFunc != nil {
		return m.HasSufficientBalanceFunc(ctx, wallet, amount)
	}

	return true, nil
}

func (m *MockFundsCaller) DebitPending(
	ctx context.Context, wallet string, amount uint64, reason, refID string,
) (string, error) {
	if m.DebitPendingFunc != nil {
		return m.DebitPendingFunc(ctx, wallet, amount, reason, refID)
	}

	return "pending-id", nil
}

func (m *MockFundsCaller) ConfirmDebit(ctx context.Context, pendingID string) error {
	if m.ConfirmDebitFunc != nil {
		return m.ConfirmDebitFunc(ctx, pendingID)
	}

	return nil
}

func (m *MockFundsCaller) CreditWinnings(
	ctx context.Context, wallet string, amount uint64, reason, refID string,
) (string, error) {
	if m.CreditWinningsFunc != nil {
		return m.CreditWinningsFunc(ctx, wallet, amount, reason, refID)
	}

	return "transaction-ref", nil
}

type MockRewardCaller struct {
	AwardXPFunc func(ctx context.Context, wallet string, amount int, source, sourceID, description string) error
}

func (m *MockRewardCaller) AwardXP(
	ctx context.Context, wallet string, amount int, source, sourceID, description string,
) error {
	if m.AwardXPFunc != nil {
		return m.AwardXPFunc(ctx, wallet, amount, source, sourceID, description)
	}

	return nil
}
