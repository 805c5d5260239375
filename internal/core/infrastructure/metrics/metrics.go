// Package metrics 提供签名与安全消息操作的 Prometheus 指标
//
// 指标只记录操作名、结果与错误分类，不记录任何消息内容或密钥材料。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cryptointf "github.com/weisyn/securemsg/pkg/interfaces/infrastructure/crypto"
)

// 操作名
const (
	OpSign       = "sign"
	OpSignDigest = "sign_digest"
	OpVerify     = "verify"
	OpEncrypt    = "encrypt"
	OpDecrypt    = "decrypt"
)

var (
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "securemsg",
			Name:      "operations_total",
			Help:      "Total number of signing and secure message operations.",
		},
		[]string{"op", "result"}, // result: ok | error
	)
	failuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "securemsg",
			Name:      "failures_total",
			Help:      "Failed operations by error kind.",
		},
		[]string{"op", "kind"},
	)
	kdfDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "securemsg",
		Name:      "kdf_duration_seconds",
		Help:      "Duration of secure message key derivation.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
)

func init() {
	prometheus.MustRegister(
		operationsTotal,
		failuresTotal,
		kdfDuration,
	)
}

// ObserveOperation 记录一次操作的结果
func ObserveOperation(op string, err error) {
	if err == nil {
		operationsTotal.WithLabelValues(op, "ok").Inc()
		return
	}
	operationsTotal.WithLabelValues(op, "error").Inc()
	failuresTotal.WithLabelValues(op, cryptointf.KindOf(err).String()).Inc()
}

// ObserveKDF 记录一次密钥派生的耗时
func ObserveKDF(start time.Time) {
	kdfDuration.Observe(time.Since(start).Seconds())
}
