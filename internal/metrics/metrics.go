// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tamzrod/modbus-devctl/internal/status"
)

var (
	// Counters
	Transactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devctl_modbus_transactions_total",
		Help: "MODBUS transactions issued per device, function code and result",
	}, []string{"device", "fc", "result"})

	Connects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devctl_modbus_connects_total",
		Help: "Serial line connect attempts per device and result",
	}, []string{"device", "result"})

	// Histograms
	TransactionSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devctl_modbus_transaction_seconds",
		Help:    "Round trip time of MODBUS transactions",
		Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"device", "fc"})

	// Gauges
	Health = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "devctl_device_health",
		Help: "Device health: 0 unknown, 1 ok, 2 error",
	}, []string{"device"})

	LastErrorCode = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "devctl_device_last_error_code",
		Help: "Code of the last failure, 0 when healthy",
	}, []string{"device"})

	SecondsInError = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "devctl_device_seconds_in_error",
		Help: "Seconds the device has been in a non-OK state",
	}, []string{"device"})

	Flow = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "devctl_rrg_flow_sccm",
		Help: "Last measured flow in SCCM",
	}, []string{"device"})
)

// Function code labels
const (
	FCReadHolding = "03"
	FCWriteSingle = "06"
)

// Result constants
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
)

func result(err error) string {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}

// ObserveStatus publishes a tracker snapshot for one device.
func ObserveStatus(device string, s status.Snapshot) {
	Health.WithLabelValues(device).Set(float64(s.Health))
	LastErrorCode.WithLabelValues(device).Set(float64(s.LastErrorCode))
	SecondsInError.WithLabelValues(device).Set(float64(s.SecondsInError))
}

// SetFlow records the last successful flow reading.
func SetFlow(device string, sccm float64) {
	Flow.WithLabelValues(device).Set(sccm)
}
