package application

import "github.com/wyfcoding/marketledger/internal/marketplace/domain"

// OfferDTO 报价视图
type OfferDTO struct {
	Seller        string    `json:"seller"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	ListedHistory []float64 `json:"listed_history"`
}

// ProductDTO 产品视图，含派生的市场均价与总可售量。
type ProductDTO struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Category          string      `json:"category"`
	MarketPrice       float64     `json:"market_price"`
	AvailableQuantity int         `json:"available_quantity"`
	Offers            []*OfferDTO `json:"offers"`
}

func toOfferDTO(o *domain.Offer) *OfferDTO {
	return &OfferDTO{
		Seller:        o.Seller,
		Price:         o.Price,
		Quantity:      o.Quantity,
		ListedHistory: o.ListedHistory.Prices(),
	}
}

func toProductDTO(p *domain.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		MarketPrice:       p.MarketPrice(),
		AvailableQuantity: p.AvailableQuantity(),
		Offers:            make([]*OfferDTO, 0, len(p.Offers)),
	}
	for _, o := range p.Offers {
		dto.Offers = append(dto.Offers, toOfferDTO(o))
	}
	return dto
}
