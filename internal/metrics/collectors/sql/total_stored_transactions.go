package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

const TotalStoredTransactionsQuery = `SELECT COUNT(*) FROM ledger.transactions`

// TotalStoredTransactionsCollector reports how many distinct transactions the
// PostgreSQL sink holds. Identical transfers share a canonical hash and count
// once.
type TotalStoredTransactionsCollector struct {
	db           *sql.DB
	totalTxCount *prometheus.Desc
}

func NewTotalStoredTransactionsCollector(db *sql.DB) *TotalStoredTransactionsCollector {
	return &TotalStoredTransactionsCollector{
		db: db,
		totalTxCount: prometheus.NewDesc(
			prometheus.BuildFQName("basicchain", "transactions", "stored_total"),
			"Total number of distinct transactions stored in the PostgreSQL sink",
			nil,
			prometheus.Labels{"source": "postgres"},
		),
	}
}

func (c *TotalStoredTransactionsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalTxCount
}

func (c *TotalStoredTransactionsCollector) Collect(ch chan<- prometheus.Metric) {
	var count int64
	err := c.db.QueryRow(TotalStoredTransactionsQuery).Scan(&count)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.totalTxCount, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.totalTxCount, prometheus.GaugeValue, float64(count))
}

func init() {
	RegisterCollectorFactory(func(db *sql.DB, extraParams ...interface{}) (prometheus.Collector, error) {
		return NewTotalStoredTransactionsCollector(db), nil
	})
}
