package stm

// noWriteVersion is the sentinel WV value before a write version has been
// assigned at commit.
const noWriteVersion = ^uint64(0)

// Transaction is the state machine driving one begin -> (reads, writes)* ->
// commit/abort life cycle. A Transaction is bound to exactly one goroutine
// for its lifetime and is never shared; its read/write sets need no
// synchronization.
type Transaction struct {
	region     *Region
	isReadOnly bool
	rv         uint64
	wv         uint64
	readSet    ReadSet
	writeSet   WriteSet
	aborted    bool
	abortCause AbortReason
}

// RV returns the transaction's read-version snapshot taken at begin.
func (t *Transaction) RV() uint64 { return t.rv }

// WV returns the transaction's write version, or noWriteVersion if commit
// has not reached write-version assignment. A transaction that aborts in
// read-set validation keeps the write version it was assigned.
func (t *Transaction) WV() uint64 { return t.wv }

// IsReadOnly reports the flag the transaction was begun with.
func (t *Transaction) IsReadOnly() bool { return t.isReadOnly }

// Aborted reports whether the transaction has already been aborted; an
// aborted transaction's handle must not be reused.
func (t *Transaction) Aborted() bool { return t.aborted }

// AbortCause reports why the transaction aborted. It is meaningless if
// Aborted is false and exists only for logging/metrics (SPEC_FULL.md §7).
func (t *Transaction) AbortCause() AbortReason { return t.abortCause }

// WriteSetLen reports the number of distinct addresses buffered for write,
// for observability only.
func (t *Transaction) WriteSetLen() int { return t.writeSet.Len() }

// ReadSetLen reports the number of read-set entries recorded, for
// observability and tests only.
func (t *Transaction) ReadSetLen() int { return t.readSet.Len() }

func (t *Transaction) abort(reason AbortReason) {
	t.aborted = true
	t.abortCause = reason
}
