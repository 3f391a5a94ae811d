package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/http/middleware"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
)

func NewRouter(
	carts *CartHandler,
	orders *OrderHandler,
	funnel *FunnelHandler,
	admin *AdminHandler,
	th *TokenHandler,
	authz *middleware.Authz,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Info("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.IssueToken)

	// Shopper funnel: session-scoped, no auth.
	v1 := r.Group("/v1", middleware.Session())
	{
		v1.GET("/cart", carts.GetCart)
		v1.POST("/cart/items", carts.AddItem)
		v1.DELETE("/cart/items/:name", carts.RemoveItem)
		v1.DELETE("/cart", carts.ClearCart)
		v1.POST("/cart/checkout", carts.BeginCheckout)

		v1.GET("/checkout", funnel.CheckoutView)
		v1.POST("/orders", orders.PlaceOrder)
		v1.GET("/orders/:id/status", orders.OrderStatus)
		v1.GET("/payment", funnel.PaymentView)
		v1.POST("/payment/cancel", funnel.CancelPayment)
		v1.POST("/orders/:id/complete", orders.CompleteOrder)
		v1.GET("/ticket", funnel.TicketView)
	}

	// Admin/reporting surface: JWT with explicit permissions.
	adm := r.Group("/v1/admin")
	{
		adm.POST("/orders/status", authz.Require("orders.write"), admin.UpdateStatus)
		adm.GET("/orders", authz.Require("orders.read"), admin.ListOrders)
		adm.GET("/revenue", authz.Require("reports.read"), admin.Revenue)
	}

	return r
}
