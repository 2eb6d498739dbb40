// Package handle is the opaque handle-based entry API the core engine
// treats as an external collaborator (spec.md §1, §6). It wraps
// internal/stm behind small integer handles rather than raw pointers — the
// idiomatic Go shape for "this value identifies state the host must not
// touch directly" — and layers structured logging and Prometheus metrics
// around the protocol's lifecycle events without altering any of its
// outcomes.
package handle

import (
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/lbustamante/tl2stm/internal/config"
	"github.com/lbustamante/tl2stm/internal/logging"
	"github.com/lbustamante/tl2stm/internal/metrics"
	"github.com/lbustamante/tl2stm/internal/stm"
)

// RegionHandle identifies a region. The zero value is InvalidRegion.
type RegionHandle uint64

// TxHandle identifies a transaction. The zero value is InvalidTx.
type TxHandle uint64

const (
	InvalidRegion RegionHandle = 0
	InvalidTx     TxHandle     = 0
)

// AllocOutcome mirrors stm.AllocResult at the handle boundary.
type AllocOutcome = stm.AllocResult

const (
	AllocSuccess = stm.AllocSuccess
	AllocNoMem   = stm.AllocNoMem
	AllocAbort   = stm.AllocAbort
)

type regionEntry struct {
	region *stm.Region
	logger *zap.Logger

	mu   sync.RWMutex
	txs  map[TxHandle]*stm.Transaction
	next atomic.Uint64
}

var (
	registryMu sync.RWMutex
	regions    = map[RegionHandle]*regionEntry{}
	nextRegion atomic.Uint64
)

// Create allocates a new region per cfg and returns a handle to it, or
// InvalidRegion if the initial segment could not be allocated (§7,
// "Creation failure ... surfaced as an invalid handle").
func Create(cfg config.Config) RegionHandle {
	region, err := stm.NewRegion(cfg.RegionSize, cfg.Align, cfg.StripeSize, cfg.MaxSimulTxs)
	logger, logErr := logging.New(cfg.LogLevel)
	if logErr != nil {
		logger = logging.Nop()
	}
	if err != nil {
		logger.Warn("region creation failed", zap.Error(err))
		return InvalidRegion
	}

	entry := &regionEntry{
		region: region,
		logger: logger,
		txs:    map[TxHandle]*stm.Transaction{},
	}

	h := RegionHandle(nextRegion.Add(1))
	registryMu.Lock()
	regions[h] = entry
	registryMu.Unlock()

	metrics.RegionsCreated.Inc()
	logger.Info("region created",
		zap.Int("size", cfg.RegionSize), zap.Int("align", cfg.Align),
		zap.Int("stripe_size", cfg.StripeSize), zap.Int64("max_simul_txs", cfg.MaxSimulTxs))

	return h
}

// Destroy releases a region. The region must have no live transactions.
func Destroy(rh RegionHandle) {
	registryMu.Lock()
	entry, ok := regions[rh]
	delete(regions, rh)
	registryMu.Unlock()
	if !ok {
		return
	}
	entry.region.Destroy()
	entry.logger.Debug("region destroyed")
	entry.logger.Sync()
}

// Start returns the base address of rh's initial segment, as a uintptr
// value opaque to the host.
func Start(rh RegionHandle) uintptr {
	entry := lookupRegion(rh)
	if entry == nil {
		return 0
	}
	return uintptr(entry.region.Start())
}

// Size returns rh's initial segment size.
func Size(rh RegionHandle) int {
	entry := lookupRegion(rh)
	if entry == nil {
		return 0
	}
	return entry.region.Size
}

// Align returns rh's word alignment.
func Align(rh RegionHandle) int {
	entry := lookupRegion(rh)
	if entry == nil {
		return 0
	}
	return entry.region.Align
}

// Begin starts a new transaction on rh and returns a handle to it, or
// InvalidTx if rh is unknown.
func Begin(rh RegionHandle, isReadOnly bool) TxHandle {
	entry := lookupRegion(rh)
	if entry == nil {
		return InvalidTx
	}
	tx := stm.Begin(entry.region, isReadOnly)

	th := TxHandle(entry.next.Add(1))
	entry.mu.Lock()
	entry.txs[th] = tx
	entry.mu.Unlock()

	entry.logger.Debug("transaction begin", zap.Uint64("tx", uint64(th)),
		zap.Uint64("rv", tx.RV()), zap.Bool("read_only", isReadOnly))
	return th
}

// End commits or aborts the transaction identified by (rh, th) and reports
// whether it committed. The handle is consumed regardless of outcome.
func End(rh RegionHandle, th TxHandle) bool {
	entry := lookupRegion(rh)
	if entry == nil {
		return false
	}
	tx := entry.takeTx(th)
	if tx == nil {
		return false
	}

	writeSetSize := tx.WriteSetLen()
	committed := stm.End(tx)
	if committed {
		metrics.CommitsTotal.Inc()
		if writeSetSize > 0 {
			metrics.WriteSetSize.Observe(float64(writeSetSize))
		}
	} else {
		metrics.AbortsTotal.WithLabelValues(string(tx.AbortCause())).Inc()
		entry.logger.Warn("transaction aborted", zap.Uint64("tx", uint64(th)),
			zap.String("cause", string(tx.AbortCause())))
	}
	return committed
}

// Read performs a transactional read of size bytes from src into dst and
// reports whether the transaction may continue.
func Read(rh RegionHandle, th TxHandle, src uintptr, size int, dst []byte) bool {
	entry := lookupRegion(rh)
	if entry == nil {
		return false
	}
	tx := entry.peekTx(th)
	if tx == nil {
		return false
	}
	ok := stm.Read(tx, stm.Address(src), size, dst)
	if !ok {
		entry.dropTx(th)
		metrics.AbortsTotal.WithLabelValues(string(tx.AbortCause())).Inc()
	}
	return ok
}

// Write performs a transactional write of size bytes from src into target.
func Write(rh RegionHandle, th TxHandle, src []byte, size int, target uintptr) bool {
	entry := lookupRegion(rh)
	if entry == nil {
		return false
	}
	tx := entry.peekTx(th)
	if tx == nil {
		return false
	}
	return stm.Write(tx, src, size, stm.Address(target))
}

// Alloc allocates a dynamic segment of size bytes within rh.
func Alloc(rh RegionHandle, th TxHandle, size int) (uintptr, AllocOutcome) {
	entry := lookupRegion(rh)
	if entry == nil {
		return 0, stm.AllocNoMem
	}
	tx := entry.peekTx(th)
	addr, res := stm.Alloc(entry.region, tx, size)
	return uintptr(addr), res
}

// Free is a no-op (§4.6); it reports success for any known region and
// false for an unknown one.
func Free(rh RegionHandle, th TxHandle, target uintptr) bool {
	entry := lookupRegion(rh)
	if entry == nil {
		return false
	}
	tx := entry.peekTx(th)
	return stm.Free(entry.region, tx, stm.Address(target))
}

func lookupRegion(rh RegionHandle) *regionEntry {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return regions[rh]
}

func (e *regionEntry) peekTx(th TxHandle) *stm.Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.txs[th]
}

func (e *regionEntry) takeTx(th TxHandle) *stm.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	tx := e.txs[th]
	delete(e.txs, th)
	return tx
}

func (e *regionEntry) dropTx(th TxHandle) {
	e.mu.Lock()
	delete(e.txs, th)
	e.mu.Unlock()
}
