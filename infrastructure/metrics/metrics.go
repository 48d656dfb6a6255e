package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CoinbaseVerdicts counts coinbase validations by outcome. The reason
	// label is "accepted" or the rejection reason code.
	CoinbaseVerdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anchord",
			Name:      "coinbase_verdicts_total",
			Help:      "Coinbase validations by outcome",
		},
		[]string{"reason"},
	)

	// AnchorActivations counts changes of the active anchor, including
	// becoming empty.
	AnchorActivations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "anchord",
			Name:      "anchor_activations_total",
			Help:      "Changes of the active anchor",
		},
	)

	// ActiveAnchorLocalHeight is the local height of the active anchor, or
	// -1 when none is active.
	ActiveAnchorLocalHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "anchord",
			Name:      "active_anchor_local_height",
			Help:      "Local height of the active anchor, -1 when none is active",
		},
	)

	// ExternalHeight is the last notary chain height reported to the node.
	ExternalHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "anchord",
			Name:      "external_height",
			Help:      "Last reported notary chain height",
		},
	)

	// StoredAnchors is the number of anchors in the anchor store.
	StoredAnchors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "anchord",
			Name:      "stored_anchors",
			Help:      "Number of anchors in the anchor store",
		},
	)
)

func init() {
	prometheus.MustRegister(CoinbaseVerdicts)
	prometheus.MustRegister(AnchorActivations)
	prometheus.MustRegister(ActiveAnchorLocalHeight)
	prometheus.MustRegister(ExternalHeight)
	prometheus.MustRegister(StoredAnchors)

	ActiveAnchorLocalHeight.Set(-1)
}

// AcceptedReason is the CoinbaseVerdicts label of accepted coinbases.
const AcceptedReason = "accepted"

// RecordCoinbaseVerdict counts a coinbase validation outcome.
func RecordCoinbaseVerdict(accepted bool, reasonCode string) {
	if accepted {
		reasonCode = AcceptedReason
	}
	CoinbaseVerdicts.WithLabelValues(reasonCode).Inc()
}

// RecordActiveAnchor records a change of the active anchor. hasActive is
// false when no anchor is active.
func RecordActiveAnchor(hasActive bool, localHeight uint64) {
	AnchorActivations.Inc()
	if !hasActive {
		ActiveAnchorLocalHeight.Set(-1)
		return
	}
	ActiveAnchorLocalHeight.Set(float64(localHeight))
}
