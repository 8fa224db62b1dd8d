package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"water-dashboard/internal/ledger"
	"water-dashboard/internal/service"
	"water-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler contains HTTP handlers
type Handler struct {
	orderService *service.OrderService
}

// NewHandler creates a new HTTP handler
func NewHandler(orderService *service.OrderService) *Handler {
	return &Handler{
		orderService: orderService,
	}
}

// SelectionRequest selects a client or a product by name
type SelectionRequest struct {
	Name string `json:"name"`
}

// QuantityRequest steps the draft quantity
type QuantityRequest struct {
	Delta int `json:"delta" binding:"required,oneof=-1 1"`
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/dashboard", h.getDashboard)
		v1.GET("/clients", h.listClients)
		v1.GET("/products", h.listProducts)

		v1.GET("/draft", h.getDraft)
		v1.PUT("/draft/client", h.setClient)
		v1.PUT("/draft/product", h.setProduct)
		v1.POST("/draft/quantity", h.adjustQuantity)

		v1.POST("/orders", h.placeOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/export", h.exportOrders)

		v1.GET("/notifications", h.listNotifications)
		v1.POST("/notifications/read", h.markNotificationsRead)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports ready once the ledger has been restored
func (h *Handler) readinessCheck(c *gin.Context) {
	if !h.orderService.Ready(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "loading",
			"time":   time.Now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.orderService.Summary(c.Request.Context()))
}

func (h *Handler) listClients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clients": h.orderService.Clients(c.Request.Context())})
}

func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.orderService.Products()})
}

func (h *Handler) getDraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.orderService.Draft(c.Request.Context()))
}

func (h *Handler) setClient(c *gin.Context) {
	var req SelectionRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.orderService.SetClient(c.Request.Context(), req.Name))
}

func (h *Handler) setProduct(c *gin.Context) {
	var req SelectionRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.orderService.SetProduct(c.Request.Context(), req.Name))
}

func (h *Handler) adjustQuantity(c *gin.Context) {
	var req QuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.orderService.AdjustQuantity(c.Request.Context(), req.Delta)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid quantity step",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// placeOrder submits the current draft
func (h *Handler) placeOrder(c *gin.Context) {
	record, err := h.orderService.PlaceOrder(c.Request.Context())
	switch {
	case errors.Is(err, ledger.ErrInvalidDraft):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Select a client and a product first",
			"details": err.Error(),
		})
		return
	case errors.Is(err, ledger.ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Orders are still loading",
			"details": err.Error(),
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to place order",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": record,
		"draft": h.orderService.Draft(c.Request.Context()),
	})
}

func (h *Handler) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.orderService.Orders(c.Request.Context())})
}

func (h *Handler) exportOrders(c *gin.Context) {
	data, err := h.orderService.ExportOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to export orders",
			"details": err.Error(),
		})
		return
	}

	fileName := fmt.Sprintf("pedidos_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *Handler) listNotifications(c *gin.Context) {
	inbox := h.orderService.Inbox()
	c.JSON(http.StatusOK, gin.H{
		"notifications": inbox.List(),
		"unread":        inbox.UnreadCount(),
	})
}

func (h *Handler) markNotificationsRead(c *gin.Context) {
	changed := h.orderService.Inbox().MarkAllRead()
	c.JSON(http.StatusOK, gin.H{"marked": changed, "unread": 0})
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
