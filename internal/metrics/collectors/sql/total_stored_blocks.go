package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

const TotalStoredBlocksQuery = `SELECT COUNT(*) FROM ledger.blocks`

// TotalStoredBlocksCollector reports how many blocks the PostgreSQL sink
// currently holds, genesis included.
type TotalStoredBlocksCollector struct {
	db          *sql.DB
	totalBlocks *prometheus.Desc
}

func NewTotalStoredBlocksCollector(db *sql.DB) *TotalStoredBlocksCollector {
	return &TotalStoredBlocksCollector{
		db: db,
		totalBlocks: prometheus.NewDesc(
			prometheus.BuildFQName("basicchain", "blocks", "stored_total"),
			"Total number of blocks stored in the PostgreSQL sink",
			nil,
			prometheus.Labels{"source": "postgres"},
		),
	}
}

func (c *TotalStoredBlocksCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalBlocks
}

func (c *TotalStoredBlocksCollector) Collect(ch chan<- prometheus.Metric) {
	var count int64
	err := c.db.QueryRow(TotalStoredBlocksQuery).Scan(&count)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.totalBlocks, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.totalBlocks, prometheus.GaugeValue, float64(count))
}

func init() {
	RegisterCollectorFactory(func(db *sql.DB, extraParams ...interface{}) (prometheus.Collector, error) {
		return NewTotalStoredBlocksCollector(db), nil
	})
}
