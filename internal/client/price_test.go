package client

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmelvin-bc-web3/collateral-combat-sub004/config"
)

func sampleAssets(n int) []Asset {
	assets := make([]Asset, 0, n)
	for i := 0; i < n; i++ {
		assets = append(assets, Asset{
			ID:    fmt.Sprintf("asset-%02d", i),
			Price: float64(10 + i),
		})
	}

	return assets
}

func Test_priceCaller_ApplyRefresh(t *testing.T) {
	caller := NewPriceCaller(config.PriceConfigs{})
	caller.ApplyRefresh(sampleAssets(5))

	price, err := caller.GetPrice(context.Background(), "asset-03")
	require.NoError(t, err)
	require.Equal(t, float64(13), price)

	catalog, err := caller.GetCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 5)
}

func Test_priceCaller_ConcurrentRefresh(t *testing.T) {
	caller := NewPriceCaller(config.PriceConfigs{})
	caller.ApplyRefresh(sampleAssets(5))

	// Refresh ticks arrive on the subscriber goroutine while request
	// goroutines read the catalog and prices.
	var wait sync.WaitGroup
	for i := 0; i < 4; i++ {
		wait.Add(2)

		go func() {
			defer wait.Done()
			for j := 0; j < 100; j++ {
				caller.ApplyRefresh(sampleAssets(5))
			}
		}()

		go func() {
			defer wait.Done()
			for j := 0; j < 100; j++ {
				_, _ = caller.GetCatalog(context.Background())
				_, _ = caller.GetPrice(context.Background(), "asset-00")
			}
		}()
	}

	wait.Wait()

	catalog, err := caller.GetCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 5)
}
