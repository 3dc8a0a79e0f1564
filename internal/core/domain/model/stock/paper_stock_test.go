package stock_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newPaper(t *testing.T, total int) *stock.PaperStock {
	t.Helper()
	p, err := stock.NewPaperStock(kernel.NewUUID(), "Art card 300", 300, 700, 1000, 100, now)
	require.NoError(t, err)
	if total > 0 {
		_, err = p.Record(stock.Entry{Type: stock.TxIn, Quantity: total, ActorID: "store"}, 0, kernel.NewUUID(), now)
		require.NoError(t, err)
	}
	return p
}

func TestNewPaperStock(t *testing.T) {
	t.Run("should start empty and active", func(t *testing.T) {
		p := newPaper(t, 0)

		require.NoError(t, p.Validate())
		assert.Equal(t, 0, p.TotalSheets())
		assert.Equal(t, 0, p.ReservedSheets())
		assert.Equal(t, stock.StatusActive, p.Status())
		assert.Equal(t, int64(0), p.LastSequence())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		p, err := stock.NewPaperStock(kernel.UUID{}, "", 0, -1, 10, -5, now)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "paper name")
		assert.Contains(t, err.Error(), "gsm")
		assert.Contains(t, err.Error(), "width")
		assert.Contains(t, err.Error(), "reorder threshold")
	})

	t.Run("restore rejects reserved above total", func(t *testing.T) {
		s := newPaper(t, 10).Snapshot()
		s.ReservedSheets = 11

		_, err := stock.RestorePaperStock(s)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestPaperStock_ReservationScenarios(t *testing.T) {
	p := newPaper(t, 1000)
	jobID := kernel.NewUUID()

	// reserve 500 of 1000
	tx, err := p.Record(stock.Entry{Type: stock.TxReserve, Quantity: 500, JobID: &jobID, ActorID: "u-1"}, 0, kernel.NewUUID(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tx.Sequence())
	assert.Equal(t, 500, p.AvailableSheets())

	// 600 more does not fit
	_, err = p.Record(stock.Entry{Type: stock.TxReserve, Quantity: 600, JobID: &jobID, ActorID: "u-1"}, 500, kernel.NewUUID(), now)
	require.ErrorIs(t, err, errs.ErrInsufficientStock)
	assert.Equal(t, 1000, p.TotalSheets())
	assert.Equal(t, 500, p.ReservedSheets())
	assert.Equal(t, int64(2), p.LastSequence())

	// consume the reservation
	_, err = p.Record(stock.Entry{Type: stock.TxConsume, Quantity: 500, JobID: &jobID, ActorID: "u-1"}, 500, kernel.NewUUID(), now)
	require.NoError(t, err)
	assert.Equal(t, 500, p.TotalSheets())
	assert.Equal(t, 0, p.ReservedSheets())

	// nothing left reserved for the job
	_, err = p.Record(stock.Entry{Type: stock.TxConsume, Quantity: 500, JobID: &jobID, ActorID: "u-1"}, 0, kernel.NewUUID(), now)
	require.ErrorIs(t, err, errs.ErrDoubleConsume)
}

func TestPaperStock_Record(t *testing.T) {
	jobID := kernel.NewUUID()

	tests := []struct {
		name    string
		entry   stock.Entry
		jobRes  int
		wantErr error
		total   int
		res     int
	}{
		{"in adds to total", stock.Entry{Type: stock.TxIn, Quantity: 50}, 0, nil, 150, 40},
		{"out within available", stock.Entry{Type: stock.TxOut, Quantity: 60}, 0, nil, 40, 40},
		{"out beyond available", stock.Entry{Type: stock.TxOut, Quantity: 61}, 0, errs.ErrInsufficientStock, 100, 40},
		{"release job reservation", stock.Entry{Type: stock.TxRelease, Quantity: 40, JobID: &jobID}, 40, nil, 100, 0},
		{"release more than job holds", stock.Entry{Type: stock.TxRelease, Quantity: 30, JobID: &jobID}, 20, errs.ErrOverRelease, 100, 40},
		{"release more than reserved", stock.Entry{Type: stock.TxRelease, Quantity: 41}, 0, errs.ErrOverRelease, 100, 40},
		{"negative adjust", stock.Entry{Type: stock.TxAdjust, Quantity: -60}, 0, nil, 40, 40},
		{"adjust below reserved", stock.Entry{Type: stock.TxAdjust, Quantity: -61}, 0, errs.ErrInsufficientStock, 100, 40},
		{"zero quantity", stock.Entry{Type: stock.TxIn, Quantity: 0}, 0, errs.ErrInvalidQuantity, 100, 40},
		{"negative reserve", stock.Entry{Type: stock.TxReserve, Quantity: -1}, 0, errs.ErrInvalidQuantity, 100, 40},
		{"consume without job", stock.Entry{Type: stock.TxConsume, Quantity: 1}, 0, errs.ErrValueIsRequired, 100, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPaper(t, 100)
			_, err := p.Record(stock.Entry{Type: stock.TxReserve, Quantity: 40, JobID: &jobID, ActorID: "u"}, 0, kernel.NewUUID(), now)
			require.NoError(t, err)

			tt.entry.ActorID = "u"
			_, err = p.Record(tt.entry, tt.jobRes, kernel.NewUUID(), now)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.total, p.TotalSheets())
			assert.Equal(t, tt.res, p.ReservedSheets())
		})
	}
}

func TestPaperStock_Discontinue(t *testing.T) {
	p := newPaper(t, 100)
	jobID := kernel.NewUUID()
	_, err := p.Record(stock.Entry{Type: stock.TxReserve, Quantity: 10, JobID: &jobID, ActorID: "u"}, 0, kernel.NewUUID(), now)
	require.NoError(t, err)

	require.NoError(t, p.Discontinue(now))
	require.ErrorIs(t, p.Discontinue(now), errs.ErrInvalidTransition)

	_, err = p.Record(stock.Entry{Type: stock.TxReserve, Quantity: 1, JobID: &jobID, ActorID: "u"}, 10, kernel.NewUUID(), now)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	_, err = p.Record(stock.Entry{Type: stock.TxIn, Quantity: 1, ActorID: "u"}, 0, kernel.NewUUID(), now)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = p.Record(stock.Entry{Type: stock.TxRelease, Quantity: 10, JobID: &jobID, ActorID: "u"}, 10, kernel.NewUUID(), now)
	require.NoError(t, err)
}

// Random valid and invalid entries never break 0 <= reserved <= total, and replaying
// the accepted entries reproduces the materialized counters.
func TestPaperStock_ConservationUnderRandomEntries(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	types := []stock.TxType{stock.TxIn, stock.TxOut, stock.TxReserve, stock.TxRelease, stock.TxConsume, stock.TxAdjust}
	jobs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

	p := newPaper(t, 0)
	balances := stock.JobBalances{}
	var accepted []*stock.Transaction

	for range 2000 {
		txType := types[rng.IntN(len(types))]
		qty := rng.IntN(300) + 1
		if txType == stock.TxAdjust && rng.IntN(2) == 0 {
			qty = -qty
		}
		var jobID *kernel.UUID
		if txType != stock.TxIn && txType != stock.TxOut && txType != stock.TxAdjust {
			j := jobs[rng.IntN(len(jobs))]
			jobID = &j
		}

		tx, err := p.Record(stock.Entry{Type: txType, Quantity: qty, JobID: jobID, ActorID: "fuzz"},
			balances.Of(jobID, p.ReservedSheets()), kernel.NewUUID(), now)
		if err != nil {
			continue
		}
		balances.Apply(txType, qty, jobID)
		accepted = append(accepted, tx)

		require.GreaterOrEqual(t, p.ReservedSheets(), 0)
		require.LessOrEqual(t, p.ReservedSheets(), p.TotalSheets())
	}

	require.NotEmpty(t, accepted)
	replayed, err := stock.Replay(p.ID(), accepted)
	require.NoError(t, err)
	assert.Equal(t, p.Counters(), replayed)
}

func TestReplay(t *testing.T) {
	t.Run("should detect a sequence gap", func(t *testing.T) {
		p := newPaper(t, 0)
		tx1, err := p.Record(stock.Entry{Type: stock.TxIn, Quantity: 5, ActorID: "u"}, 0, kernel.NewUUID(), now)
		require.NoError(t, err)
		_, err = p.Record(stock.Entry{Type: stock.TxIn, Quantity: 5, ActorID: "u"}, 0, kernel.NewUUID(), now)
		require.NoError(t, err)
		tx3, err := p.Record(stock.Entry{Type: stock.TxIn, Quantity: 5, ActorID: "u"}, 0, kernel.NewUUID(), now)
		require.NoError(t, err)

		_, err = stock.Replay(p.ID(), []*stock.Transaction{tx1, tx3})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject entries that break the invariant", func(t *testing.T) {
		paperID := kernel.NewUUID()
		jobID := kernel.NewUUID()
		tx, err := stock.RestoreTransaction(stock.TransactionSnapshot{
			ID: kernel.NewUUID(), PaperID: paperID, Type: stock.TxReserve, Quantity: 5,
			JobID: &jobID, ActorID: "u", Sequence: 1, CreatedAt: now,
		})
		require.NoError(t, err)

		_, err = stock.Replay(paperID, []*stock.Transaction{tx})
		require.ErrorIs(t, err, errs.ErrInsufficientStock)
	})
}
