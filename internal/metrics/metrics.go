// Package metrics exposes scorecard gauges and request metrics to Prometheus.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ukaji3/scorecard-go/pkg/scorecard"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
)

// otherSheet is the table label shared by every non-canonical sheet so that
// uploaded sheet names never become label values.
const otherSheet = "other"

// Registry holds every scorecard collector.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Loads counts workbook loads by result: ok, invalid, sample.
	Loads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorecard_loads_total",
			Help: "Total number of scorecard workbooks loaded",
		},
		[]string{"result"},
	)

	// LoadWarnings counts missing or unreadable sheets by canonical sheet
	// (or "other") and the component that failed.
	LoadWarnings = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorecard_load_warnings_total",
			Help: "Total number of sheets that were missing or unreadable",
		},
		[]string{"sheet", "component"},
	)

	// StatusCount is the latest status tally per canonical table; passthrough
	// sheets are summed under "other".
	StatusCount = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scorecard_status_count",
			Help: "Rows per canonical status label in the latest scorecard",
		},
		[]string{"table", "status"},
	)

	// HealthCount is the latest portfolio health distribution.
	HealthCount = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scorecard_initiatives_by_health",
			Help: "Initiatives per health category in the latest scorecard",
		},
		[]string{"health"},
	)

	// Milestones counts overdue and upcoming milestones.
	Milestones = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scorecard_milestones",
			Help: "Milestones in the latest scorecard by bucket",
		},
		[]string{"bucket"},
	)

	ActiveInitiatives = factory.NewGauge(prometheus.GaugeOpts{
		Name: "scorecard_active_initiatives",
		Help: "Initiatives in the latest filtered scorecard",
	})
	AvgProgress = factory.NewGauge(prometheus.GaugeOpts{
		Name: "scorecard_avg_progress_percent",
		Help: "Mean percent complete of the latest scorecard",
	})
	BudgetTotal = factory.NewGauge(prometheus.GaugeOpts{
		Name: "scorecard_budget_total",
		Help: "Sum of initiative budgets",
	})
	ActualTotal = factory.NewGauge(prometheus.GaugeOpts{
		Name: "scorecard_actual_spend_total",
		Help: "Sum of actual spend",
	})
	BudgetBurn = factory.NewGauge(prometheus.GaugeOpts{
		Name: "scorecard_budget_burn_ratio",
		Help: "Actual spend divided by budget",
	})
	CriticalRisks = factory.NewGauge(prometheus.GaugeOpts{
		Name: "scorecard_critical_risks",
		Help: "Risks with a severity score of 6 or more",
	})

	// HTTPRequestDuration records request latency in seconds.
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scorecard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// observeMu keeps one summary's gauges from interleaving with another's.
var observeMu sync.Mutex

// Observe publishes the headline metrics of a summary, replacing the previous one.
func Observe(s models.Summary) {
	observeMu.Lock()
	defer observeMu.Unlock()

	StatusCount.Reset()
	byTable := make(map[[2]string]float64)
	for table, tally := range s.Status.ByTable {
		for label, n := range tally {
			byTable[[2]string{sheetLabel(table), string(label)}] += float64(n)
		}
	}
	for k, n := range byTable {
		StatusCount.WithLabelValues(k[0], k[1]).Set(n)
	}

	HealthCount.Reset()
	for _, lc := range s.HealthDistribution {
		HealthCount.WithLabelValues(string(lc.Label)).Set(float64(lc.Count))
	}

	Milestones.WithLabelValues(string(models.BucketOverdue)).Set(float64(s.OverdueCount))
	Milestones.WithLabelValues(string(models.BucketUpcoming)).Set(float64(s.UpcomingCount))

	ActiveInitiatives.Set(float64(s.ActiveInitiatives))
	AvgProgress.Set(valueOrZero(s.AvgProgress))
	BudgetTotal.Set(s.BudgetTotal)
	ActualTotal.Set(s.ActualTotal)
	BudgetBurn.Set(valueOrZero(s.BudgetBurn))
	CriticalRisks.Set(float64(s.CriticalRisks))
}

// RecordLoad counts one load and its warnings.
func RecordLoad(result string, warnings []*scorecard.SheetError) {
	Loads.WithLabelValues(result).Inc()
	for _, w := range warnings {
		LoadWarnings.WithLabelValues(sheetLabel(w.SheetName), w.Component).Inc()
	}
}

func sheetLabel(name string) string {
	switch name {
	case models.SheetPortfolio, models.SheetMilestones, models.SheetRisks:
		return name
	}
	return otherSheet
}

// RecordHTTPRequestDuration records one request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry for the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
