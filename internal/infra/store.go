package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tripplanner/internal/config"
)

var ErrDocumentNotFound = errors.New("document not found")

// Filter is an equality match on a top-level document field.
type Filter struct {
	Field string
	Value string
}

func Where(field, value string) Filter { return Filter{Field: field, Value: value} }

type Snapshot interface {
	ID() string
	DataTo(v any) error
}

// DocumentStore is a schemaless store of named collections. Documents are
// written whole; there are no partial updates.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string, dest any) error
	Set(ctx context.Context, collection, id string, doc any) error
	List(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error)
	Close() error
}

// ListAs decodes every matching document into T.
func ListAs[T any](ctx context.Context, s DocumentStore, collection string, filters ...Filter) ([]T, error) {
	snaps, err := s.List(ctx, collection, filters...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		var v T
		if err := snap.DataTo(&v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, snap.ID(), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// NewDocumentStore opens the backend named in cfg.
func NewDocumentStore(ctx context.Context, cfg *config.StoreConfig) (DocumentStore, error) {
	switch cfg.Backend {
	case "firestore":
		return NewFirestoreStore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentials)
	case "postgres":
		db, err := OpenPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db)
	case "sqlite":
		return OpenSQLiteStore(ctx, cfg.SQLitePath)
	case "memory", "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// jsonSnapshot backs every backend that stores documents as JSON text.
type jsonSnapshot struct {
	id   string
	data []byte
}

func (s jsonSnapshot) ID() string         { return s.id }
func (s jsonSnapshot) DataTo(v any) error { return json.Unmarshal(s.data, v) }
