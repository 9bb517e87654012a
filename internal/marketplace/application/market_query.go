package application

import (
	"context"
	"strings"

	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
)

// MarketQueryService 市场读路径。"未找到"一律返回 nil 视图而非错误，
// 与"找到但为空"分开表达。
type MarketQueryService struct {
	repo domain.MarketRepository
}

// NewMarketQueryService 创建市场查询服务实例
func NewMarketQueryService(repo domain.MarketRepository) *MarketQueryService {
	return &MarketQueryService{repo: repo}
}

// ListProducts 返回全部产品及其报价，不做过滤。
func (s *MarketQueryService) ListProducts(ctx context.Context) ([]*ProductDTO, error) {
	products, err := s.repo.FetchAllWithOffers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out, nil
}

// SearchProducts 按名称或分类做不区分大小写的子串匹配；空白查询返回全部。
func (s *MarketQueryService) SearchProducts(ctx context.Context, query string) ([]*ProductDTO, error) {
	products, err := s.repo.FetchAllWithOffers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		if p.MatchesQuery(query) {
			out = append(out, toProductDTO(p))
		}
	}
	return out, nil
}

// GetProduct 按名称精确查找（不区分大小写），未找到返回 nil。
func (s *MarketQueryService) GetProduct(ctx context.Context, name string) (*ProductDTO, error) {
	p, err := s.findProduct(ctx, name)
	if err != nil || p == nil {
		return nil, err
	}
	return toProductDTO(p), nil
}

// GetOffer 按产品名与卖家精确查找报价（均不区分大小写），未找到返回 nil。
func (s *MarketQueryService) GetOffer(ctx context.Context, productName, seller string) (*OfferDTO, error) {
	p, err := s.findProduct(ctx, productName)
	if err != nil || p == nil {
		return nil, err
	}
	offer := p.FindOffer(seller)
	if offer == nil {
		return nil, nil
	}
	return toOfferDTO(offer), nil
}

// LastTradePrices 最近 limit 条成交价，从新到旧；产品不存在或 limit <= 0
// 时返回空切片。
func (s *MarketQueryService) LastTradePrices(ctx context.Context, name string, limit int) ([]float64, error) {
	if limit <= 0 {
		return []float64{}, nil
	}
	return s.repo.LastTradePrices(ctx, name, limit)
}

func (s *MarketQueryService) findProduct(ctx context.Context, name string) (*domain.Product, error) {
	products, err := s.repo.FetchAllWithOffers(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, nil
}
