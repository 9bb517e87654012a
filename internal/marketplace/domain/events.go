package domain

import "time"

// 事件主题
const (
	ProductRegisteredTopic = "market.product.registered"
	OfferUpsertedTopic     = "market.offer.upserted"
	TradeExecutedTopic     = "market.trade.executed"
)

// ProductRegisteredEvent 产品注册事件
type ProductRegisteredEvent struct {
	ProductID       string    `json:"product_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	InitialQuantity int       `json:"initial_quantity"`
	Timestamp       time.Time `json:"timestamp"`
}

// OfferUpsertedEvent 报价创建/合并事件
type OfferUpsertedEvent struct {
	ProductID     string    `json:"product_id"`
	Seller        string    `json:"seller"`
	Price         float64   `json:"price"`
	QuantityDelta int       `json:"quantity_delta"`
	Timestamp     time.Time `json:"timestamp"`
}

// TradeExecutedEvent 成交事件，购买成功后发布。
// ExecutionPrice 为本次实际支付价（修正前），NewListedPrice 为修正后挂牌价。
type TradeExecutedEvent struct {
	TradeID           string    `json:"trade_id"`
	ProductName       string    `json:"product_name"`
	Seller            string    `json:"seller"`
	Quantity          int       `json:"quantity"`
	ExecutionPrice    float64   `json:"execution_price"`
	NewListedPrice    float64   `json:"new_listed_price"`
	RemainingQuantity int       `json:"remaining_quantity"`
	Timestamp         time.Time `json:"timestamp"`
}
