package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
)

// marketRepository 非持久化模式的市场存储：进程内结构，单把互斥锁
// 把"调用方串行化"的要求收敛到适配器边界，进程退出即丢失。
type marketRepository struct {
	mu       sync.Mutex
	products []*domain.Product
}

// NewMarketRepository 创建内存市场存储。
func NewMarketRepository() domain.MarketRepository {
	return &marketRepository{}
}

func (r *marketRepository) findByName(name string) *domain.Product {
	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

func (r *marketRepository) findByID(id string) *domain.Product {
	for _, p := range r.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FetchAllWithOffers 返回全部产品的深拷贝，调用方的读取不受后续写入影响。
func (r *marketRepository) FetchAllWithOffers(ctx context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

// UpsertProduct 内存模式冲突策略：名称（不区分大小写）已存在时为 no-op，
// 返回 false 表示登记未被接纳。
func (r *marketRepository) UpsertProduct(ctx context.Context, id, name, category string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findByName(name) != nil {
		return false, nil
	}
	r.products = append(r.products, &domain.Product{ID: id, Name: name, Category: category})
	return true, nil
}

func (r *marketRepository) UpsertOffer(ctx context.Context, productID, seller string, price float64, quantityDelta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findByID(productID)
	if p == nil {
		return false, nil
	}
	return p.UpsertOffer(seller, price, quantityDelta), nil
}

// ExecutePurchase 锁内复核后一次性变更，校验失败时不触碰任何状态。
func (r *marketRepository) ExecutePurchase(ctx context.Context, productName, seller string, quantity int, executionPrice, newListedPrice float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if quantity <= 0 {
		return false, nil
	}
	p := r.findByName(productName)
	if p == nil {
		return false, nil
	}
	offer := p.FindOffer(seller)
	if offer == nil || offer.Quantity < quantity {
		return false, nil
	}

	offer.Quantity -= quantity
	offer.Price = newListedPrice
	offer.ListedHistory.Append(newListedPrice)
	p.RecordTradePrice(executionPrice)
	return true, nil
}

func (r *marketRepository) FindProductIDByName(ctx context.Context, name string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.findByName(name); p != nil {
		return p.ID, true, nil
	}
	return "", false, nil
}

func (r *marketRepository) TotalAvailableQuantity(ctx context.Context, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.findByName(name); p != nil {
		return p.AvailableQuantity(), nil
	}
	return 0, nil
}

func (r *marketRepository) LastTradePrices(ctx context.Context, name string, limit int) ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findByName(name)
	if p == nil {
		return []float64{}, nil
	}
	return p.TradeHistory.Recent(limit), nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	cp := &domain.Product{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		TradeHistory: domain.NewPriceWindow(p.TradeHistory.Prices()...),
	}
	for _, o := range p.Offers {
		cp.Offers = append(cp.Offers, &domain.Offer{
			Seller:        o.Seller,
			Price:         o.Price,
			Quantity:      o.Quantity,
			ListedHistory: domain.NewPriceWindow(o.ListedHistory.Prices()...),
		})
	}
	return cp
}
