package application

import (
	"context"

	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
)

// MarketService 市场服务门面，整合命令和查询服务。
type MarketService struct {
	Command *MarketCommandService
	Query   *MarketQueryService
}

// NewMarketService 构造函数
func NewMarketService(repo domain.MarketRepository, publisher domain.EventPublisher) *MarketService {
	return &MarketService{
		Command: NewMarketCommandService(repo, publisher),
		Query:   NewMarketQueryService(repo),
	}
}

// --- Command (Writes) ---

// RegisterProduct 注册产品
func (s *MarketService) RegisterProduct(ctx context.Context, cmd RegisterProductCommand) error {
	return s.Command.RegisterProduct(ctx, cmd)
}

// UpsertOffer 创建/合并卖家报价
func (s *MarketService) UpsertOffer(ctx context.Context, cmd UpsertOfferCommand) (bool, error) {
	return s.Command.UpsertOffer(ctx, cmd)
}

// Purchase 购买
func (s *MarketService) Purchase(ctx context.Context, cmd PurchaseCommand) (bool, error) {
	return s.Command.Purchase(ctx, cmd)
}

// --- Query (Reads) ---

// ListProducts 列出全部产品
func (s *MarketService) ListProducts(ctx context.Context) ([]*ProductDTO, error) {
	return s.Query.ListProducts(ctx)
}

// SearchProducts 搜索产品
func (s *MarketService) SearchProducts(ctx context.Context, query string) ([]*ProductDTO, error) {
	return s.Query.SearchProducts(ctx, query)
}

// GetProduct 获取产品详情
func (s *MarketService) GetProduct(ctx context.Context, name string) (*ProductDTO, error) {
	return s.Query.GetProduct(ctx, name)
}

// GetOffer 获取指定卖家报价
func (s *MarketService) GetOffer(ctx context.Context, productName, seller string) (*OfferDTO, error) {
	return s.Query.GetOffer(ctx, productName, seller)
}

// LastTradePrices 最近成交价
func (s *MarketService) LastTradePrices(ctx context.Context, name string, limit int) ([]float64, error) {
	return s.Query.LastTradePrices(ctx, name, limit)
}
