package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/idilsaglam/toyboard/internal/model"
	"github.com/idilsaglam/toyboard/internal/store"
)

// JSON-backed storage in the json-server layout: {"toys": [...]}.
// Single file, human-readable, rewritten whole on every change.

type document struct {
	Toys []model.Toy `json:"toys"`

	// ids the file spells as JSON strings, kept that way on save
	quoted map[model.ID]bool
}

// record is one toy as it sits in the file.
type record struct {
	ID    json.RawMessage `json:"id"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Likes int             `json:"likes"`
}

type file struct {
	Toys []record `json:"toys"`
}

type Store struct {
	mu   sync.Mutex
	path string
}

// Open uses path, creating an empty document if the file does not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir: %w", err)
			}
		}
		if err := s.save(document{Toys: []model.Toy{}}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) List(ctx context.Context) ([]model.Toy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Toys, nil
}

func (s *Store) Get(ctx context.Context, id model.ID) (model.Toy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return model.Toy{}, err
	}
	for _, t := range doc.Toys {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Toy{}, store.ErrNotFound
}

func (s *Store) Create(ctx context.Context, nt model.NewToy) (model.Toy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return model.Toy{}, err
	}
	toy := model.Toy{ID: nextID(doc.Toys), Name: nt.Name, Image: nt.Image, Likes: nt.Likes}
	if len(doc.quoted) > 0 {
		// json-server 1.x documents use string ids throughout
		doc.quoted[toy.ID] = true
	}
	doc.Toys = append(doc.Toys, toy)
	if err := s.save(doc); err != nil {
		return model.Toy{}, err
	}
	return toy, nil
}

func (s *Store) Update(ctx context.Context, id model.ID, p model.ToyPatch) (model.Toy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return model.Toy{}, err
	}
	for i := range doc.Toys {
		if doc.Toys[i].ID == id {
			doc.Toys[i] = p.Apply(doc.Toys[i])
			if err := s.save(doc); err != nil {
				return model.Toy{}, err
			}
			return doc.Toys[i], nil
		}
	}
	return model.Toy{}, store.ErrNotFound
}

func (s *Store) Close() error { return nil }

// nextID continues after the largest numeric id. Non-numeric ids written
// by other tools are skipped.
func nextID(toys []model.Toy) model.ID {
	var top uint64
	for _, t := range toys {
		if n, err := strconv.ParseUint(t.ID.String(), 10, 64); err == nil && n > top {
			top = n
		}
	}
	return model.ID(strconv.FormatUint(top+1, 10))
}

func (s *Store) load() (document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return document{}, fmt.Errorf("read file: %w", err)
	}
	var f file
	if err := json.Unmarshal(b, &f); err != nil {
		return document{}, fmt.Errorf("json unmarshal: %w", err)
	}
	doc := document{Toys: make([]model.Toy, 0, len(f.Toys)), quoted: map[model.ID]bool{}}
	for i, r := range f.Toys {
		toy := model.Toy{Name: r.Name, Image: r.Image, Likes: r.Likes}
		if err := json.Unmarshal(r.ID, &toy.ID); err != nil {
			return document{}, fmt.Errorf("toy %d: %w", i, err)
		}
		if len(r.ID) > 0 && r.ID[0] == '"' {
			doc.quoted[toy.ID] = true
		}
		doc.Toys = append(doc.Toys, toy)
	}
	return doc, nil
}

func (s *Store) save(doc document) error {
	f := file{Toys: make([]record, 0, len(doc.Toys))}
	for _, t := range doc.Toys {
		var id []byte
		var err error
		if doc.quoted[t.ID] {
			id, err = json.Marshal(t.ID.String())
		} else {
			id, err = json.Marshal(t.ID)
		}
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		f.Toys = append(f.Toys, record{ID: id, Name: t.Name, Image: t.Image, Likes: t.Likes})
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
