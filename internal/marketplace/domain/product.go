package domain

import "strings"

// StockSeller 注册产品时用于初始库存报价的保留卖家标识。
const StockSeller = "Stock"

// BaselineListedPrice 初始库存报价的固定基准挂牌价。
const BaselineListedPrice = 10.0

// Offer 某个卖家对单个产品的报价：当前挂牌价与可售数量。
// ListedHistory 记录该报价自身最近的挂牌价变动（非成交价）。
type Offer struct {
	Seller        string
	Price         float64
	Quantity      int
	ListedHistory PriceWindow
}

// NewOffer 创建报价并以初始挂牌价播种其价格窗口。
func NewOffer(seller string, price float64, quantity int) *Offer {
	return &Offer{
		Seller:        seller,
		Price:         price,
		Quantity:      quantity,
		ListedHistory: NewPriceWindow(price),
	}
}

// Product 管理端定义的产品目录条目，卖家针对它提交报价。
// TradeHistory 记录产品级最近的成交价（实际支付价，非挂牌价）。
type Product struct {
	ID           string
	Name         string
	Category     string
	Offers       []*Offer
	TradeHistory PriceWindow
}

// FindOffer 按卖家（不区分大小写）查找报价，未找到返回 nil。
func (p *Product) FindOffer(seller string) *Offer {
	for _, o := range p.Offers {
		if strings.EqualFold(o.Seller, seller) {
			return o
		}
	}
	return nil
}

// AddOffer 追加报价；同一卖家（不区分大小写）已有报价时拒绝。
func (p *Product) AddOffer(offer *Offer) bool {
	if p.FindOffer(offer.Seller) != nil {
		return false
	}
	p.Offers = append(p.Offers, offer)
	return true
}

// UpsertOffer 创建或合并卖家报价。
// 已有报价：数量累加（结果不得为负），挂牌价整体替换并记入其价格窗口。
// 无报价：要求初始数量为正，新报价的窗口以初始价播种。
func (p *Product) UpsertOffer(seller string, price float64, quantityDelta int) bool {
	if existing := p.FindOffer(seller); existing != nil {
		if existing.Quantity+quantityDelta < 0 {
			return false
		}
		existing.Quantity += quantityDelta
		existing.Price = price
		existing.ListedHistory.Append(price)
		return true
	}
	if quantityDelta <= 0 {
		return false
	}
	return p.AddOffer(NewOffer(seller, price, quantityDelta))
}

// MarketPrice 当前各报价挂牌价的简单平均，无报价时为 0。
func (p *Product) MarketPrice() float64 {
	if len(p.Offers) == 0 {
		return 0
	}
	var sum float64
	for _, o := range p.Offers {
		sum += o.Price
	}
	return sum / float64(len(p.Offers))
}

// AvailableQuantity 所有报价的可售数量之和。
func (p *Product) AvailableQuantity() int {
	var total int
	for _, o := range p.Offers {
		total += o.Quantity
	}
	return total
}

// RecordTradePrice 将成交价记入产品级成交历史窗口。
func (p *Product) RecordTradePrice(executionPrice float64) {
	p.TradeHistory.Append(executionPrice)
}

// MatchesQuery 名称或分类包含查询串（不区分大小写）。空查询匹配一切。
func (p *Product) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}
