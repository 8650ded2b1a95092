package ledger

import "sync"

// tableLocks hands out one mutex per table number. Holding it around the
// find-or-create sequence in AddItem keeps two concurrent requests from each
// opening an order for the same table.
type tableLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func newTableLocks() *tableLocks {
	return &tableLocks{locks: make(map[int]*sync.Mutex)}
}

func (t *tableLocks) forTable(number int) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.locks[number]
	if !ok {
		l = &sync.Mutex{}
		t.locks[number] = l
	}
	return l
}
