package mysql

import (
	"time"

	"github.com/wyfcoding/marketledger/internal/marketplace/domain"
)

// ProductPO 产品持久化对象
type ProductPO struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(255);uniqueIndex;not null"`
	Category  string    `gorm:"column:category;type:varchar(100);index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Offers []OfferPO `gorm:"foreignKey:ProductID"`
}

func (ProductPO) TableName() string { return "products" }

// OfferPO 报价持久化对象，(product_id, seller) 唯一。
type OfferPO struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID string    `gorm:"column:product_id;type:varchar(64);uniqueIndex:uk_offer_product_seller;not null"`
	Seller    string    `gorm:"column:seller;type:varchar(100);uniqueIndex:uk_offer_product_seller;not null"`
	Price     float64   `gorm:"column:price;type:decimal(20,8);not null"`
	Quantity  int       `gorm:"column:quantity;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (OfferPO) TableName() string { return "offers" }

// PriceHistoryPO 产品级成交价流水，只追加。
type PriceHistoryPO struct {
	ID         uint      `gorm:"primaryKey"`
	ProductID  string    `gorm:"column:product_id;type:varchar(64);index;not null"`
	Price      float64   `gorm:"column:price;type:decimal(20,8);not null"`
	InsertedAt time.Time `gorm:"column:inserted_at;autoCreateTime"`
}

func (PriceHistoryPO) TableName() string { return "price_history" }

func toProduct(po *ProductPO) *domain.Product {
	p := &domain.Product{
		ID:       po.ID,
		Name:     po.Name,
		Category: po.Category,
	}
	for i := range po.Offers {
		o := &po.Offers[i]
		// 挂牌价窗口不落盘，持久化模式下读出的报价窗口为空。
		p.Offers = append(p.Offers, &domain.Offer{
			Seller:   o.Seller,
			Price:    o.Price,
			Quantity: o.Quantity,
		})
	}
	return p
}
