package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/marketledger/internal/marketplace/application"
	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
	"github.com/wyfcoding/marketledger/internal/marketplace/infrastructure/persistence/memory"
)

func newTestService(t *testing.T) *application.MarketService {
	t.Helper()
	return application.NewMarketService(memory.NewMarketRepository(), nil)
}

func registerWidget(t *testing.T, svc *application.MarketService, initialQty int) {
	t.Helper()
	err := svc.RegisterProduct(context.Background(), application.RegisterProductCommand{
		ID:              "P1",
		Name:            "Widget",
		Category:        "Tools",
		InitialQuantity: initialQty,
	})
	require.NoError(t, err)
}

func TestRegisterProduct_SeedsStockOffer(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 100)

	offer, err := svc.GetOffer(context.Background(), "widget", "stock")
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, domain.BaselineListedPrice, offer.Price)
	assert.Equal(t, 100, offer.Quantity)
	assert.Equal(t, []float64{domain.BaselineListedPrice}, offer.ListedHistory)
}

func TestRegisterProduct_ZeroInitialQuantityHasNoOffer(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 0)

	product, err := svc.GetProduct(context.Background(), "Widget")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Empty(t, product.Offers)
}

func TestRegisterProduct_DuplicateNameIsNoOpInMemoryMode(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 0)

	err := svc.RegisterProduct(context.Background(), application.RegisterProductCommand{
		ID:       "P2",
		Name:     "widget",
		Category: "Other",
	})
	require.NoError(t, err)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "P1", products[0].ID)
	assert.Equal(t, "Tools", products[0].Category)
}

func TestRegisterProduct_DuplicateLeavesStockOfferUntouched(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 100)

	// 重名注册整体不生效：不累加库存、不重置价格、不追加窗口。
	registerWidget(t, svc, 100)

	offer, err := svc.GetOffer(context.Background(), "Widget", "Stock")
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, 100, offer.Quantity)
	assert.Equal(t, domain.BaselineListedPrice, offer.Price)
	assert.Equal(t, []float64{domain.BaselineListedPrice}, offer.ListedHistory)
}

func TestSearchProducts(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 0)
	require.NoError(t, svc.RegisterProduct(context.Background(), application.RegisterProductCommand{
		ID: "P2", Name: "Gadget", Category: "Electronics",
	}))

	all, err := svc.SearchProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	blank, err := svc.SearchProducts(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, blank, 2)

	byName, err := svc.SearchProducts(context.Background(), "wid")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Widget", byName[0].Name)

	byCategory, err := svc.SearchProducts(context.Background(), "electro")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Gadget", byCategory[0].Name)
}

func TestGetProduct_NotFoundIsNilNotError(t *testing.T) {
	svc := newTestService(t)

	product, err := svc.GetProduct(context.Background(), "Missing")
	require.NoError(t, err)
	assert.Nil(t, product)

	offer, err := svc.GetOffer(context.Background(), "Missing", "Stock")
	require.NoError(t, err)
	assert.Nil(t, offer)
}

func TestUpsertOffer_CreateThenMerge(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 0)
	ctx := context.Background()

	ok, err := svc.UpsertOffer(ctx, application.UpsertOfferCommand{
		ProductName: "Widget", Seller: "Alice", Price: 20.0, QuantityDelta: 5,
	})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.UpsertOffer(ctx, application.UpsertOfferCommand{
		ProductName: "Widget", Seller: "Alice", Price: 25.0, QuantityDelta: 3,
	})
	require.NoError(t, err)
	require.True(t, ok)

	offer, err := svc.GetOffer(ctx, "Widget", "Alice")
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, 8, offer.Quantity)
	assert.Equal(t, 25.0, offer.Price)
}

func TestUpsertOffer_UnknownProductFails(t *testing.T) {
	svc := newTestService(t)

	ok, err := svc.UpsertOffer(context.Background(), application.UpsertOfferCommand{
		ProductName: "Missing", Seller: "Alice", Price: 20.0, QuantityDelta: 5,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPurchase_HappyPath(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 100)
	ctx := context.Background()

	ok, err := svc.Purchase(ctx, application.PurchaseCommand{
		ProductName: "Widget", Seller: "Stock", Quantity: 10,
	})
	require.NoError(t, err)
	require.True(t, ok)

	offer, err := svc.GetOffer(ctx, "Widget", "Stock")
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, 90, offer.Quantity)

	// 成交历史记录的是修正前的实际支付价。
	trades, err := svc.LastTradePrices(ctx, "Widget", 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{10.0}, trades)

	// 挂牌价被确定性修正并追加进报价窗口。
	expected := domain.ReviseListedPrice(10.0, 10, 90)
	assert.Equal(t, expected, offer.Price)
	assert.Equal(t, []float64{10.0, expected}, offer.ListedHistory)
}

func TestPurchase_NonPositiveQuantityFailsWithoutMutation(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 100)
	ctx := context.Background()

	for _, qty := range []int{0, -1} {
		ok, err := svc.Purchase(ctx, application.PurchaseCommand{
			ProductName: "Widget", Seller: "Stock", Quantity: qty,
		})
		require.NoError(t, err)
		assert.False(t, ok, "quantity=%d", qty)
	}

	offer, err := svc.GetOffer(ctx, "Widget", "Stock")
	require.NoError(t, err)
	assert.Equal(t, 100, offer.Quantity)
	assert.Equal(t, domain.BaselineListedPrice, offer.Price)

	trades, err := svc.LastTradePrices(ctx, "Widget", 3)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestPurchase_InsufficientStockFailsWithoutMutation(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 5)
	ctx := context.Background()

	ok, err := svc.Purchase(ctx, application.PurchaseCommand{
		ProductName: "Widget", Seller: "Stock", Quantity: 6,
	})
	require.NoError(t, err)
	assert.False(t, ok)

	offer, err := svc.GetOffer(ctx, "Widget", "Stock")
	require.NoError(t, err)
	assert.Equal(t, 5, offer.Quantity)
	assert.Equal(t, domain.BaselineListedPrice, offer.Price)
}

func TestPurchase_UnknownProductOrSellerFails(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 5)
	ctx := context.Background()

	ok, err := svc.Purchase(ctx, application.PurchaseCommand{
		ProductName: "Missing", Seller: "Stock", Quantity: 1,
	})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Purchase(ctx, application.PurchaseCommand{
		ProductName: "Widget", Seller: "Nobody", Quantity: 1,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastTradePrices_NewestFirst(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 0)
	ctx := context.Background()

	// 三个不同价位的卖家，按时间顺序成交 10.0、12.0、9.0。
	for _, fixture := range []struct {
		seller string
		price  float64
	}{
		{"A", 10.0}, {"B", 12.0}, {"C", 9.0},
	} {
		ok, err := svc.UpsertOffer(ctx, application.UpsertOfferCommand{
			ProductName: "Widget", Seller: fixture.seller, Price: fixture.price, QuantityDelta: 10,
		})
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = svc.Purchase(ctx, application.PurchaseCommand{
			ProductName: "Widget", Seller: fixture.seller, Quantity: 1,
		})
		require.NoError(t, err)
		require.True(t, ok)
	}

	trades, err := svc.LastTradePrices(ctx, "Widget", 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{9.0, 12.0, 10.0}, trades)
}

func TestLastTradePrices_EmptyCases(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 100)
	ctx := context.Background()

	trades, err := svc.LastTradePrices(ctx, "Widget", 0)
	require.NoError(t, err)
	assert.Empty(t, trades)

	trades, err = svc.LastTradePrices(ctx, "Widget", -3)
	require.NoError(t, err)
	assert.Empty(t, trades)

	trades, err = svc.LastTradePrices(ctx, "Missing", 3)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestPurchase_TradeHistoryBoundedToThree(t *testing.T) {
	svc := newTestService(t)
	registerWidget(t, svc, 100)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := svc.Purchase(ctx, application.PurchaseCommand{
			ProductName: "Widget", Seller: "Stock", Quantity: 1,
		})
		require.NoError(t, err)
		require.True(t, ok)
	}

	trades, err := svc.LastTradePrices(ctx, "Widget", 10)
	require.NoError(t, err)
	assert.Len(t, trades, 3)
}
