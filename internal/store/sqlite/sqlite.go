package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/toyboard/internal/model"
	"github.com/idilsaglam/toyboard/internal/store"
)

type SQLite struct {
	Db *sql.DB
}

func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS toys (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT    NOT NULL,
			image TEXT    NOT NULL,
			likes INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) List(ctx context.Context) ([]model.Toy, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT id, name, image, likes FROM toys ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("List: query: %w", err)
	}
	defer rows.Close()

	toys := make([]model.Toy, 0)
	for rows.Next() {
		toy, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("List: scan row: %w", err)
		}
		toys = append(toys, toy)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows iteration: %w", err)
	}
	return toys, nil
}

func (s *SQLite) Get(ctx context.Context, id model.ID) (model.Toy, error) {
	n, err := rowID(id)
	if err != nil {
		return model.Toy{}, err
	}
	row := s.Db.QueryRowContext(ctx, "SELECT id, name, image, likes FROM toys WHERE id = ? LIMIT 1", n)
	toy, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Toy{}, store.ErrNotFound
		}
		return model.Toy{}, fmt.Errorf("Get: scan: %w", err)
	}
	return toy, nil
}

func (s *SQLite) Create(ctx context.Context, nt model.NewToy) (model.Toy, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO toys (name, image, likes) VALUES (?, ?, ?)",
		nt.Name, nt.Image, nt.Likes,
	)
	if err != nil {
		return model.Toy{}, fmt.Errorf("Create: exec: %w", err)
	}
	lastID, err := result.LastInsertId()
	if err != nil {
		return model.Toy{}, fmt.Errorf("Create: last insert id: %w", err)
	}
	return model.Toy{
		ID:    model.ID(strconv.FormatInt(lastID, 10)),
		Name:  nt.Name,
		Image: nt.Image,
		Likes: nt.Likes,
	}, nil
}

// Update reads, patches and writes the row in one transaction.
func (s *SQLite) Update(ctx context.Context, id model.ID, p model.ToyPatch) (model.Toy, error) {
	n, err := rowID(id)
	if err != nil {
		return model.Toy{}, err
	}
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return model.Toy{}, fmt.Errorf("Update: begin: %w", err)
	}
	defer tx.Rollback()

	toy, err := scan(tx.QueryRowContext(ctx, "SELECT id, name, image, likes FROM toys WHERE id = ?", n))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Toy{}, store.ErrNotFound
		}
		return model.Toy{}, fmt.Errorf("Update: scan: %w", err)
	}
	toy = p.Apply(toy)
	if _, err := tx.ExecContext(ctx,
		"UPDATE toys SET name = ?, image = ?, likes = ? WHERE id = ?",
		toy.Name, toy.Image, toy.Likes, n,
	); err != nil {
		return model.Toy{}, fmt.Errorf("Update: exec: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Toy{}, fmt.Errorf("Update: commit: %w", err)
	}
	return toy, nil
}

func (s *SQLite) Close() error { return s.Db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (model.Toy, error) {
	var (
		toy model.Toy
		id  int64
	)
	if err := r.Scan(&id, &toy.Name, &toy.Image, &toy.Likes); err != nil {
		return model.Toy{}, err
	}
	toy.ID = model.ID(strconv.FormatInt(id, 10))
	return toy, nil
}

// rowID maps a toy id onto the integer key. Anything else cannot exist here.
func rowID(id model.ID) (int64, error) {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return 0, store.ErrNotFound
	}
	return n, nil
}
