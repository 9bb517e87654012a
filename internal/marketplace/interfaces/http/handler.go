package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/marketledger/internal/marketplace/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// MarketHandler HTTP 处理器
// 负责处理市场目录、报价与购买相关的 HTTP 请求
type MarketHandler struct {
	service    *application.MarketService
	projection *application.TickerProjectionService
}

// NewMarketHandler 创建 HTTP 处理器实例
func NewMarketHandler(service *application.MarketService, projection *application.TickerProjectionService) *MarketHandler {
	return &MarketHandler{service: service, projection: projection}
}

// 注册路由
func (h *MarketHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1")
	{
		api.POST("/products", h.RegisterProduct)
		api.GET("/products", h.ListProducts) // ?q= 为空时列出全部
		api.GET("/products/:name", h.GetProduct)
		api.GET("/products/:name/trades", h.LastTradePrices)
		api.GET("/products/:name/offers/:seller", h.GetOffer)
		api.PUT("/products/:name/offers", h.UpsertOffer)
		api.POST("/purchases", h.Purchase)
		api.GET("/ticker/:name", h.GetTicker)
	}
}

// RegisterProductRequest 注册产品请求
type RegisterProductRequest struct {
	ID              string `json:"id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Category        string `json:"category" binding:"required"`
	InitialQuantity int    `json:"initial_quantity"`
}

// RegisterProduct 注册产品
func (h *MarketHandler) RegisterProduct(c *gin.Context) {
	var req RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.RegisterProductCommand{
		ID:              req.ID,
		Name:            req.Name,
		Category:        req.Category,
		InitialQuantity: req.InitialQuantity,
	}
	if err := h.service.RegisterProduct(c.Request.Context(), cmd); err != nil {
		logging.Error(c.Request.Context(), "failed to register product", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, gin.H{"name": req.Name})
}

// ListProducts 列出或搜索产品
func (h *MarketHandler) ListProducts(c *gin.Context) {
	query := c.Query("q")

	products, err := h.service.SearchProducts(c.Request.Context(), query)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to list products", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, products)
}

// GetProduct 获取产品详情
func (h *MarketHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("name"))
	if err != nil {
		logging.Error(c.Request.Context(), "failed to get product", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if product == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
		return
	}

	response.Success(c, product)
}

// GetOffer 获取指定卖家报价
func (h *MarketHandler) GetOffer(c *gin.Context) {
	offer, err := h.service.GetOffer(c.Request.Context(), c.Param("name"), c.Param("seller"))
	if err != nil {
		logging.Error(c.Request.Context(), "failed to get offer", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if offer == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "offer not found", "")
		return
	}

	response.Success(c, offer)
}

// LastTradePrices 最近成交价（从新到旧）
func (h *MarketHandler) LastTradePrices(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "3"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid limit", "")
		return
	}

	prices, err := h.service.LastTradePrices(c.Request.Context(), c.Param("name"), limit)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to fetch trade prices", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, prices)
}

// UpsertOfferRequest 创建/合并报价请求
type UpsertOfferRequest struct {
	Seller        string  `json:"seller" binding:"required"`
	Price         float64 `json:"price"`
	QuantityDelta int     `json:"quantity_delta"`
}

// UpsertOffer 创建或合并卖家报价
func (h *MarketHandler) UpsertOffer(c *gin.Context) {
	var req UpsertOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.UpsertOfferCommand{
		ProductName:   c.Param("name"),
		Seller:        req.Seller,
		Price:         req.Price,
		QuantityDelta: req.QuantityDelta,
	}
	ok, err := h.service.UpsertOffer(c.Request.Context(), cmd)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to upsert offer", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnprocessableEntity, h.explainOfferRejection(c, cmd), "")
		return
	}

	response.Success(c, gin.H{"product": cmd.ProductName, "seller": cmd.Seller})
}

// PurchaseRequest 购买请求
type PurchaseRequest struct {
	Product  string `json:"product" binding:"required"`
	Seller   string `json:"seller" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// Purchase 购买
func (h *MarketHandler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.PurchaseCommand{
		ProductName: req.Product,
		Seller:      req.Seller,
		Quantity:    req.Quantity,
	}
	ok, err := h.service.Purchase(c.Request.Context(), cmd)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to execute purchase", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if !ok {
		status, reason := h.explainPurchaseRejection(c, cmd)
		response.ErrorWithStatus(c, status, reason, "")
		return
	}

	offer, err := h.service.GetOffer(c.Request.Context(), req.Product, req.Seller)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to reload offer after purchase", "error", err)
	}
	response.Success(c, gin.H{
		"product":  req.Product,
		"seller":   req.Seller,
		"quantity": req.Quantity,
		"offer":    offer,
	})
}

// GetTicker 获取行情快照
func (h *MarketHandler) GetTicker(c *gin.Context) {
	ticker := h.projection.Get(c.Param("name"))
	if ticker == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "no trades recorded", "")
		return
	}

	response.Success(c, ticker)
}

// explainPurchaseRejection 购买被拒后回查状态，把"产品不存在 / 卖家无报价 /
// 库存不足 / 数量非法"区分给调用方。
func (h *MarketHandler) explainPurchaseRejection(c *gin.Context, cmd application.PurchaseCommand) (int, string) {
	if cmd.Quantity <= 0 {
		return http.StatusBadRequest, "quantity must be positive"
	}
	product, err := h.service.GetProduct(c.Request.Context(), cmd.ProductName)
	if err != nil || product == nil {
		return http.StatusNotFound, "product not found"
	}
	offer, err := h.service.GetOffer(c.Request.Context(), cmd.ProductName, cmd.Seller)
	if err != nil || offer == nil {
		return http.StatusNotFound, "seller has no offer for this product"
	}
	return http.StatusConflict, "insufficient stock"
}

func (h *MarketHandler) explainOfferRejection(c *gin.Context, cmd application.UpsertOfferCommand) string {
	product, err := h.service.GetProduct(c.Request.Context(), cmd.ProductName)
	if err != nil || product == nil {
		return "product not found"
	}
	offer, err := h.service.GetOffer(c.Request.Context(), cmd.ProductName, cmd.Seller)
	if err == nil && offer == nil && cmd.QuantityDelta <= 0 {
		return "initial quantity must be positive"
	}
	return "cannot reduce quantity below zero"
}
