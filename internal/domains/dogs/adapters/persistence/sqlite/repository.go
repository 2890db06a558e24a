package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // registers the sqlite3 dialect
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
)

const (
	dialectSQLite = "sqlite3"
	memoryPath    = ":memory:"

	tableDogs   = "dogs"
	tableBreeds = "breeds"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Seeder     = (*Repository)(nil)
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS breeds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS dogs (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		breed_id INTEGER NOT NULL REFERENCES breeds(id),
		status TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dogs_breed_id ON dogs(breed_id)`,
}

// Repository reads dogs from an embedded SQLite database.
type Repository struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

type dogRow struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Breed  string `db:"breed"`
	Status string `db:"status"`
}

// Open creates or opens the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Repository, error) {
	if path == "" {
		path = "dogshelter.db"
	}
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == memoryPath {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Repository{db: db, dialect: goqu.Dialect(dialectSQLite)}, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// List returns every dog ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Dog, error) {
	query, args, err := r.joined().Order(goqu.I("d.id").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	return r.query(ctx, query, args...)
}

// GetByID fetches a dog by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Dog, error) {
	query, args, err := r.joined().Where(goqu.I("d.id").Eq(id)).Limit(1).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}
	dogs, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(dogs) == 0 {
		return nil, ports.ErrNotFound
	}
	return dogs[0], nil
}

// Insert stores dogs in one transaction, creating breed rows on demand.
func (r *Repository) Insert(ctx context.Context, dogs ...*domain.Dog) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	breedIDs := map[string]int64{}
	for _, dog := range dogs {
		if dog == nil {
			return errors.New("cannot insert nil dog")
		}
		if !dog.Status.Valid() {
			return fmt.Errorf("dog %d: %w", dog.ID, domain.ErrUnknownStatus)
		}
		exists, err := r.dogExists(ctx, tx, dog.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %d", ports.ErrDuplicateID, dog.ID)
		}
		breedID, ok := breedIDs[dog.Breed]
		if !ok {
			if breedID, err = r.ensureBreed(ctx, tx, dog.Breed); err != nil {
				return err
			}
			breedIDs[dog.Breed] = breedID
		}
		insert, args, err := r.dialect.Insert(tableDogs).Rows(goqu.Record{
			"id":       dog.ID,
			"name":     dog.Name,
			"breed_id": breedID,
			"status":   dog.Status.String(),
		}).Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("build dog insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("insert dog %d: %w", dog.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *Repository) joined() *goqu.SelectDataset {
	return r.dialect.
		From(goqu.T(tableDogs).As("d")).
		Join(goqu.T(tableBreeds).As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("d.breed_id")))).
		Select(
			goqu.I("d.id").As("id"),
			goqu.I("d.name").As("name"),
			goqu.I("b.name").As("breed"),
			goqu.I("d.status").As("status"),
		)
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]*domain.Dog, error) {
	var rows []dogRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select dogs: %w", err)
	}
	list := make([]*domain.Dog, 0, len(rows))
	for _, row := range rows {
		status, err := domain.ParseStatus(row.Status)
		if err != nil {
			return nil, fmt.Errorf("dog %d: %w", row.ID, err)
		}
		list = append(list, &domain.Dog{ID: row.ID, Name: row.Name, Breed: row.Breed, Status: status})
	}
	return list, nil
}

func (r *Repository) dogExists(ctx context.Context, tx *sqlx.Tx, id int64) (bool, error) {
	query, args, err := r.dialect.From(tableDogs).Select(goqu.COUNT("*")).Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}
	var n int64
	if err := tx.GetContext(ctx, &n, query, args...); err != nil {
		return false, fmt.Errorf("check dog %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *Repository) ensureBreed(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	insert, args, err := r.dialect.Insert(tableBreeds).
		Rows(goqu.Record{"name": name}).
		OnConflict(goqu.DoNothing()).
		Prepared(true).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build breed insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		return 0, fmt.Errorf("insert breed %q: %w", name, err)
	}
	query, args, err := r.dialect.From(tableBreeds).Select("id").Where(goqu.C("name").Eq(name)).Prepared(true).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build breed query: %w", err)
	}
	var id int64
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("load breed %q: %w", name, err)
	}
	return id, nil
}
