package stm

// End runs the commit protocol and reports whether the transaction
// committed. The transaction is consumed either way; its handle must not be
// reused afterward.
func End(t *Transaction) bool {
	if t.isReadOnly || t.writeSet.Len() == 0 {
		return true
	}

	region := t.region

	// Step 0 — admission control: a best-effort ceiling on concurrent
	// committing writers. The check-then-increment below is intentionally
	// not a CAS loop (see DESIGN.md, "admission counter timing"): transient
	// overshoot by 1-2 is accepted. The ceiling is inclusive (reject once
	// already at maxTxs, not only once past it) so that maxTxs==0 rejects
	// every writer, per the admission-ceiling scenario in DESIGN.md.
	if region.currentTxs.Load() >= region.maxTxs {
		t.abort(AbortAdmissionExceeded)
		return false
	}
	region.currentTxs.Inc()
	defer region.currentTxs.Dec()

	// Step 1 — lock acquisition, in write-set insertion order.
	acquired := 0
	ok := true
	t.writeSet.Each(func(addr Address, _ []byte) {
		if !ok {
			return
		}
		if region.stripe.at(addr).TryAcquire() {
			acquired++
			return
		}
		ok = false
	})
	if !ok {
		releaseFirstN(t, acquired)
		t.abort(AbortLockContention)
		return false
	}

	// Step 2 — assign the write version.
	wv := region.clock.Increment()
	t.wv = wv

	// Step 3 — validate the read set, unless no committed writer could have
	// interleaved between this transaction's begin and its lock acquisition.
	if t.rv+1 != wv {
		if !validateReadSet(t) {
			releaseAll(t)
			t.abort(AbortReadValidation)
			return false
		}
	}

	// Step 4 — write back and release, in write-set insertion order.
	t.writeSet.Each(func(addr Address, pending []byte) {
		copy(region.wordAt(addr, len(pending)), pending)
		region.stripe.at(addr).SetAndRelease(wv)
	})

	return true
}

// validateReadSet checks every read-set entry's stripe is unlocked (by
// someone other than t) and its version does not exceed rv.
//
// A read-set entry's address can also be in t's own write set: Read only
// skips the read-set when the address is ALREADY in the write set at the
// time of the read (read-own-write, engine.go), so a read followed by a
// later write of the same address leaves an entry in both sets. By Step 3,
// t itself holds that stripe's lock (Step 1 acquired it), so the raw
// Locked bit is set regardless of any other transaction's activity. The
// version bits are untouched by lock acquisition, so they still reflect
// the last committed write and remain safe to compare against rv.
func validateReadSet(t *Transaction) bool {
	for _, e := range t.readSet.entries {
		state := t.region.stripe.at(e.addr).ReadState()
		if _, selfLocked := t.writeSet.Lookup(e.addr); !selfLocked && Locked(state) {
			return false
		}
		if Version(state) > t.rv {
			return false
		}
	}
	return true
}

// releaseFirstN releases the first n stripes acquired during this commit's
// Step 1, in the same order they were acquired, rolling back a failed
// partial acquisition.
func releaseFirstN(t *Transaction, n int) {
	i := 0
	t.writeSet.Each(func(addr Address, _ []byte) {
		if i >= n {
			return
		}
		t.region.stripe.at(addr).ReleaseUntouched()
		i++
	})
}

// releaseAll releases every stripe in the write set; used when a fully
// acquired write set must be rolled back after read-set validation fails.
func releaseAll(t *Transaction) {
	t.writeSet.Each(func(addr Address, _ []byte) {
		t.region.stripe.at(addr).ReleaseUntouched()
	})
}
