package queries_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/model/timeline"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var storedCountersSQL = regexp.QuoteMeta(`SELECT id, total_sheets, reserved_sheets, last_sequence FROM "paper_stock"`)

// historyLedger serves a fixed history; appends are not expected.
type historyLedger struct {
	history []*stock.Transaction
}

func (l historyLedger) Append(context.Context, kernel.UUID, stock.Entry, ...*timeline.Event) (*stock.Transaction, error) {
	panic("unexpected append")
}

func (l historyLedger) History(context.Context, kernel.UUID) ([]*stock.Transaction, error) {
	return l.history, nil
}

func newMockedDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, sqlMock
}

func ledgerEntry(t *testing.T, paperID kernel.UUID, sequence int64, e stock.Entry) *stock.Transaction {
	t.Helper()
	tx, err := stock.RestoreTransaction(stock.TransactionSnapshot{
		ID:        kernel.NewUUID(),
		PaperID:   paperID,
		Type:      e.Type,
		Quantity:  e.Quantity,
		JobID:     e.JobID,
		ActorID:   e.ActorID,
		Sequence:  sequence,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return tx
}

func TestVerifyLedgerQueryHandler_ReplaysUpToStoredSequence(t *testing.T) {
	ctx := context.Background()
	paperID := kernel.NewUUID()
	jobID := kernel.NewUUID()
	history := []*stock.Transaction{
		ledgerEntry(t, paperID, 1, stock.Entry{Type: stock.TxIn, Quantity: 1000, ActorID: "keeper"}),
		ledgerEntry(t, paperID, 2, stock.Entry{Type: stock.TxReserve, Quantity: 500, JobID: &jobID, ActorID: "planner"}),
	}

	tests := []struct {
		name         string
		total        int
		reserved     int
		lastSequence int64
		history      []*stock.Transaction
		consistent   bool
		entries      int
		problem      string
	}{
		{
			name:         "an append committed after the counter read is not replayed",
			total:        1000,
			lastSequence: 1,
			history:      history,
			consistent:   true,
			entries:      1,
		},
		{
			name:         "counters that include every entry",
			total:        1000,
			reserved:     500,
			lastSequence: 2,
			history:      history,
			consistent:   true,
			entries:      2,
		},
		{
			name:         "stored counters that differ from the replay",
			total:        999,
			lastSequence: 1,
			history:      history,
			entries:      1,
			problem:      "stored total=999 reserved=0, replay gives total=1000 reserved=0",
		},
		{
			name:         "entries missing behind the stored sequence",
			total:        1000,
			reserved:     500,
			lastSequence: 2,
			history:      history[:1],
			entries:      1,
			problem:      "replay gives total=1000 reserved=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, sqlMock := newMockedDB(t)
			sqlMock.ExpectQuery(storedCountersSQL).
				WillReturnRows(sqlmock.NewRows([]string{"id", "total_sheets", "reserved_sheets", "last_sequence"}).
					AddRow(paperID.String(), tt.total, tt.reserved, tt.lastSequence))

			query, err := queries.NewVerifyLedgerQuery(&paperID)
			require.NoError(t, err)

			reports, err := queries.NewVerifyLedgerQueryHandler(db, historyLedger{history: tt.history}).Handle(ctx, query)

			require.NoError(t, err)
			require.NoError(t, sqlMock.ExpectationsWereMet())
			require.Len(t, reports, 1)
			report := reports[0]
			assert.Equal(t, paperID, report.PaperID)
			assert.Equal(t, tt.consistent, report.Consistent)
			assert.Equal(t, tt.entries, report.Entries)
			assert.Equal(t, tt.lastSequence, report.AsOfSequence)
			assert.Equal(t, stock.Counters{Total: tt.total, Reserved: tt.reserved}, report.Stored)
			if tt.problem != "" {
				assert.Contains(t, report.Problem, tt.problem)
			} else {
				assert.Empty(t, report.Problem)
			}
		})
	}
}
