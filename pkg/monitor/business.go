package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	PurchaseInitiatedTotal *prometheus.CounterVec
	PurchaseCompletedTotal *prometheus.CounterVec
	ConfirmRejectedTotal   *prometheus.CounterVec
	PaymentVerifyTotal     *prometheus.CounterVec
	TokensDisbursedTotal   prometheus.Counter
	DisbursementDuration   prometheus.Histogram
	ExpiredIntentsTotal    prometheus.Counter
	EventsConsumedTotal    *prometheus.CounterVec
}

// Business 全局业务指标，包加载时即可使用，Init 时才注册到 Registry
var Business = &BusinessMetrics{
	PurchaseInitiatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "presale_purchase_initiated_total",
		Help: "The total number of purchase intents created",
	}, []string{"currency"}),
	PurchaseCompletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "presale_purchase_completed_total",
		Help: "The total number of purchases whose tokens were disbursed",
	}, []string{"currency"}),
	ConfirmRejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "presale_confirm_rejected_total",
		Help: "Rejected payment confirmations by reason",
	}, []string{"reason"}),
	PaymentVerifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "presale_payment_verify_total",
		Help: "On-chain payment verifications by currency and result",
	}, []string{"currency", "result"}),
	TokensDisbursedTotal: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "presale_tokens_disbursed_base_units_total",
		Help: "Presale token base units sent to buyers",
	}),
	DisbursementDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "presale_disbursement_duration_seconds",
		Help:    "Duration of token disbursement including confirmation wait",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
	}),
	ExpiredIntentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "presale_expired_intents_total",
		Help: "Pending purchase intents removed by the expiry sweep",
	}),
	EventsConsumedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "presale_events_consumed_total",
		Help: "Purchase events consumed by the worker",
	}, []string{"currency"}),
}

func registerBusinessMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		Business.PurchaseInitiatedTotal,
		Business.PurchaseCompletedTotal,
		Business.ConfirmRejectedTotal,
		Business.PaymentVerifyTotal,
		Business.TokensDisbursedTotal,
		Business.DisbursementDuration,
		Business.ExpiredIntentsTotal,
		Business.EventsConsumedTotal,
	)
}
