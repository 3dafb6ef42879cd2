package metrics_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"

	"github.com/brandonsean08/basic-blockchain/internal/metrics"
	"github.com/brandonsean08/basic-blockchain/internal/metrics/collectors"
	sqlcollectors "github.com/brandonsean08/basic-blockchain/internal/metrics/collectors/sql"
)

func TestCreateMetricsServer(t *testing.T) {
	t.Run("StartServer", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// Collectors may be gathered in any order.
		mock.MatchExpectationsInOrder(false)
		mock.ExpectQuery(regexp.QuoteMeta(sqlcollectors.TotalStoredBlocksQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
		mock.ExpectQuery(regexp.QuoteMeta(sqlcollectors.TotalStoredTransactionsQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		admission := collectors.NewAdmission()
		admission.ObserveAdmission(25*time.Millisecond, 31337)
		admission.SignaturesRejected.Inc()

		server, err := metrics.CreateMetricsServer(db, "127.0.0.1:2112", admission.Collectors()...)
		require.NoError(t, err)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			err := server.Shutdown(ctx)
			require.NoError(t, err)
		}()

		time.Sleep(100 * time.Millisecond)

		resp, err := resty.New().R().Get("http://127.0.0.1:2112/metrics")
		require.NoError(t, err, "Failed to connect to metrics server")
		require.Equal(t, 200, resp.StatusCode(), "Expected status code 200, body: %s", resp.String())

		body := resp.String()
		require.Contains(t, body, "basicchain_blocks_stored_total")
		require.Contains(t, body, "basicchain_transactions_stored_total")
		require.Contains(t, body, "basicchain_blocks_admitted_total 1")
		require.Contains(t, body, "basicchain_admissions_rejected_signatures_total 1")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WithoutDatabase", func(t *testing.T) {
		server, err := metrics.CreateMetricsServer(nil, "127.0.0.1:12346")
		require.NoError(t, err)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, server.Shutdown(ctx))
		}()
	})

	t.Run("WhenInvalidAddress", func(t *testing.T) {
		_, err := metrics.CreateMetricsServer(nil, "invalid-address😆")
		require.Error(t, err)
	})

	t.Run("WhenInvalidPort", func(t *testing.T) {
		_, err := metrics.CreateMetricsServer(nil, "localhost:99999")
		require.Error(t, err)
	})
}
