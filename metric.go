package hodlbank

import (
	"github.com/everFinance/hodlbank/schema"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricNameSpace = "hodlbank"
)

var (
	tokenSupply = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "token_supply",
			Help:      "current supply in raw ledger units",
		},
		[]string{"symbol"},
	)
	tokenForfeiturePool = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "token_forfeiture_pool",
			Help:      "forfeiture pool in raw ledger units",
		},
		[]string{"symbol"},
	)
	tokenStaked = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "token_staked",
			Help:      "total delegated stake in raw ledger units",
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(
		tokenSupply,
		tokenForfeiturePool,
		tokenStaked,
	)
}

func metricTokenStats(tok schema.Token, totalStaked int64) {
	tokenSupply.WithLabelValues(tok.Symbol).Set(float64(tok.Supply))
	tokenForfeiturePool.WithLabelValues(tok.Symbol).Set(float64(tok.ForfeiturePool))
	tokenStaked.WithLabelValues(tok.Symbol).Set(float64(totalStaked))
}
