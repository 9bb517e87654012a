package application

import (
	"context"
	"strings"
	"sync"

	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
)

// Ticker 单个产品的最新成交快照读模型
type Ticker struct {
	ProductName       string  `json:"product_name"`
	LastPrice         float64 `json:"last_price"`
	LastQuantity      int     `json:"last_quantity"`
	ListedPrice       float64 `json:"listed_price"`
	RemainingQuantity int     `json:"remaining_quantity"`
	TradeCount        int64   `json:"trade_count"`
}

// TickerProjectionService 由成交事件流驱动的行情投影，独立于主存储。
type TickerProjectionService struct {
	mu      sync.RWMutex
	tickers map[string]*Ticker // key: 产品名小写
}

// NewTickerProjectionService 创建行情投影服务实例
func NewTickerProjectionService() *TickerProjectionService {
	return &TickerProjectionService{tickers: make(map[string]*Ticker)}
}

// Apply 应用一条成交事件。
func (s *TickerProjectionService) Apply(ctx context.Context, event domain.TradeExecutedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(event.ProductName)
	t, ok := s.tickers[key]
	if !ok {
		t = &Ticker{ProductName: event.ProductName}
		s.tickers[key] = t
	}
	t.LastPrice = event.ExecutionPrice
	t.LastQuantity = event.Quantity
	t.ListedPrice = event.NewListedPrice
	t.RemainingQuantity = event.RemainingQuantity
	t.TradeCount++
	return nil
}

// Get 按产品名读取行情快照，未知产品返回 nil。
func (s *TickerProjectionService) Get(productName string) *Ticker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tickers[strings.ToLower(productName)]
	if !ok {
		return nil
	}
	snapshot := *t
	return &snapshot
}
