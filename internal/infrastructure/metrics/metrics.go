package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultInvalid = "invalid"
)

var (
	MailMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mailrelay_messages_total",
		Help: "Contact messages handled by the mail relay, by result.",
	}, []string{"result"})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_order_status_changes_total",
		Help: "Order status change attempts, by requested status and result.",
	}, []string{"status", "result"})

	CatalogRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_catalog_refresh_total",
		Help: "Catalog cache refreshes, by result.",
	}, []string{"result"})

	ImageOrderingSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_image_ordering_saves_total",
		Help: "Image ordering saves, by result. Failures are reverted locally.",
	}, []string{"result"})
)
