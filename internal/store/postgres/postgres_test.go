package postgres

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/alfredjeanlab/maintgraph/internal/model"
	"github.com/alfredjeanlab/maintgraph/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func TestDecodeRecords(t *testing.T) {
	for _, tc := range []struct {
		name    string
		raw     string
		want    []model.Record
		wantErr bool
	}{
		{"empty column", "", []model.Record{}, false},
		{"null json", "null", []model.Record{}, false},
		{"empty array", "[]", []model.Record{}, false},
		{"records", `[{"id":"e1","nom":"Pompe"},{"id":2}]`, []model.Record{{"id": "e1", "nom": "Pompe"}, {"id": 2.0}}, false},
		{"not an array", `{"id":"e1"}`, nil, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeRecords([]byte(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("decodeRecords = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestQueryLoad(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT records FROM collections WHERE key = \\$1").WithArgs("equipment").
		WillReturnRows(sqlmock.NewRows([]string{"records"}).AddRow([]byte(`[{"id":"e1","nom":"Pompe P-01"}]`)))

	records, err := queryLoad(context.Background(), db, "equipment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0]["nom"] != "Pompe P-01" {
		t.Errorf("records = %#v", records)
	}
}

func TestQueryLoad_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT records FROM collections WHERE key = \\$1").WithArgs("meeting").
		WillReturnRows(sqlmock.NewRows([]string{"records"}))

	_, err := queryLoad(context.Background(), db, "meeting")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want store.ErrNotFound", err)
	}
}

func TestQueryLoad_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT records FROM collections").WithArgs("team").
		WillReturnError(errors.New("connection reset"))

	_, err := queryLoad(context.Background(), db, "team")
	if err == nil || errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want a non-NotFound error", err)
	}
}

func TestQuerySave(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO collections").
		WithArgs("piece", []byte(`[{"id":"p1"}]`), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := querySave(context.Background(), db, "piece", []model.Record{{"id": "p1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuerySave_NilStoresEmptyArray(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO collections").
		WithArgs("piece", []byte(`[]`), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := querySave(context.Background(), db, "piece", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryKeys(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT key FROM collections ORDER BY key").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("equipment").AddRow("task"))

	keys, err := queryKeys(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"equipment", "task"}) {
		t.Errorf("keys = %v", keys)
	}
}

func TestGetAllTasks(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}
	mock.ExpectQuery("SELECT records FROM collections WHERE key = \\$1").WithArgs("task").
		WillReturnRows(sqlmock.NewRows([]string{"records"}).AddRow([]byte(`[{"id":"t1"},{"id":"t2"}]`)))

	tasks, err := s.GetAllTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("len(tasks) = %d, want 2", len(tasks))
	}
}

func TestRunInTransaction_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO collections").WithArgs("task", sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO collections").WithArgs("team", sqlmock.AnyArg(), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		if err := tx.Save(context.Background(), "task", []model.Record{{"id": "t1"}}); err != nil {
			return err
		}
		return tx.Save(context.Background(), "team", []model.Record{{"id": "a"}, {"id": "b"}})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunInTransaction_Rollback(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO collections").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		return tx.Save(context.Background(), "task", []model.Record{{"id": "t1"}})
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestTxStore_NestedReusesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		return tx.RunInTransaction(context.Background(), func(inner store.Store) error {
			called = inner == tx
			return nil
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("nested transaction should reuse the outer txStore")
	}
}
