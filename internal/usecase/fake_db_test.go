package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"hr-recruitment/internal/database"
)

var errInjected = errors.New("injected failure")

// fakeStore records committed INSERT statements per table. It fails the
// failOnExec-th Exec of a transaction when set.
type fakeStore struct {
	mu         sync.Mutex
	committed  map[string][][]any
	failOnExec int
	failBegin  bool
	begins     int
	rollbacks  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{committed: map[string][][]any{}}
}

func (s *fakeStore) Begin(context.Context) (database.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failBegin {
		return nil, errInjected
	}
	s.begins++
	return &fakeTx{store: s, staged: map[string][][]any{}}, nil
}

func (s *fakeStore) rows(table string) [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed[table]
}

func (s *fakeStore) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.committed {
		n += len(r)
	}
	return n
}

type fakeTx struct {
	store  *fakeStore
	staged map[string][][]any
	execs  int
	done   bool
}

func (t *fakeTx) Exec(_ context.Context, query string, args ...any) (int64, error) {
	t.execs++
	if t.store.failOnExec > 0 && t.execs == t.store.failOnExec {
		return 0, errInjected
	}
	fields := strings.Fields(query)
	if len(fields) < 4 || fields[0] != "INSERT" {
		return 0, errors.New("unexpected statement: " + query)
	}
	table := fields[2]
	cols := strings.Count(query[:strings.Index(query, "VALUES")], ",") + 1
	var n int64
	for i := 0; i+cols <= len(args); i += cols {
		t.staged[table] = append(t.staged[table], args[i:i+cols])
		n++
	}
	return n, nil
}

func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row {
	return nil
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return errors.New("tx closed")
	}
	t.done = true
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for table, rows := range t.staged {
		t.store.committed[table] = append(t.store.committed[table], rows...)
	}
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Lock()
	t.store.rollbacks++
	t.store.mu.Unlock()
	t.staged = nil
	return nil
}
