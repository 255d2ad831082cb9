package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sources of a bidding configuration update
const (
	biddingUpdateSourceWire         = "wire"
	biddingUpdateSourceDiscountForm = "discount_form"
)

var (
	// Bid evaluations partitioned by outcome (auto_accepted, rejected, bidding_disabled)
	bidEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentora_bid_evaluations_total",
			Help: "Total number of bids evaluated against a company's bidding floor",
		},
		[]string{"outcome"},
	)

	// Bidding configuration writes partitioned by the form they arrived in
	biddingConfigUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentora_bidding_config_updates_total",
			Help: "Total number of bidding configuration updates",
		},
		[]string{"source"},
	)
)
