package stm

// Begin allocates a fresh transaction against region, snapshotting the
// global version clock into its read version.
func Begin(region *Region, isReadOnly bool) *Transaction {
	return &Transaction{
		region:     region,
		isReadOnly: isReadOnly,
		rv:         region.clock.Load(),
		wv:         noWriteVersion,
	}
}

// Read copies size bytes from src (in the shared region) to dst (private
// memory), size/align words at a time, and reports whether the transaction
// may continue. On false the transaction is aborted and the handle must not
// be reused.
func Read(t *Transaction, src Address, size int, dst []byte) bool {
	align := t.region.Align
	for i := 0; i < size; i += align {
		source := src.offset(i)
		target := dst[i : i+align]

		if !t.isReadOnly {
			if pending, ok := t.writeSet.Lookup(source); ok {
				copy(target, pending)
				continue
			}
		}

		if !speculativeRead(t, source, target) {
			t.abort(AbortSpeculativeRead)
			return false
		}

		if !t.isReadOnly {
			t.readSet.Append(source)
		}
	}
	return true
}

// speculativeRead performs the double-sample read described in §4.4: sample
// the stripe, copy the word, sample the stripe again, and accept only if the
// state did not change, is unlocked, and its version does not exceed rv.
func speculativeRead(t *Transaction, source Address, target []byte) bool {
	lock := t.region.stripe.at(source)

	pre := lock.ReadState()
	copy(target, t.region.wordAt(source, len(target)))
	post := lock.ReadState()

	if pre != post {
		return false
	}
	if Locked(post) {
		return false
	}
	if Version(post) > t.rv {
		return false
	}
	return true
}

// Write buffers size bytes from src (private memory) to target (in the
// shared region), size/align words at a time. Writes never inspect a lock
// and always succeed.
func Write(t *Transaction, src []byte, size int, target Address) bool {
	align := t.region.Align
	for i := 0; i < size; i += align {
		t.writeSet.Put(target.offset(i), src[i:i+align])
	}
	return true
}
