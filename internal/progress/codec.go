package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// StorageKey is the key of the persisted completed-puzzle record.
const StorageKey = "dyadikos-completed-puzzles-v1"

// ErrMalformedRecord indicates a persisted value that is not a JSON array of ids.
var ErrMalformedRecord = errors.New("progress: malformed record")

// EncodeIDs serializes ids as a sorted JSON array.
func EncodeIDs(ids []string) (string, error) {
	sorted := append([]string{}, ids...)
	sort.Strings(sorted)
	raw, err := json.Marshal(sorted)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeIDs parses a JSON array of ids. The second result is false when raw is
// not an array of strings.
func DecodeIDs(raw string) ([]string, bool) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal(trimmed, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// KV is a string key/value store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// KVPersister stores the completed set as one JSON record in a KV store.
type KVPersister struct {
	Store KV
	Key   string
}

// NewKVPersister uses StorageKey on the given store.
func NewKVPersister(store KV) KVPersister {
	return KVPersister{Store: store, Key: StorageKey}
}

// Load implements Persister. A missing record is an empty set.
func (p KVPersister) Load(ctx context.Context) ([]string, error) {
	raw, ok, err := p.Store.Get(ctx, p.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.Key, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	ids, ok := DecodeIDs(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMalformedRecord, p.Key)
	}
	return ids, nil
}

// Save implements Persister.
func (p KVPersister) Save(ctx context.Context, ids []string) error {
	raw, err := EncodeIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	if err := p.Store.Set(ctx, p.Key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.Key, err)
	}
	return nil
}

// Delete implements Persister.
func (p KVPersister) Delete(ctx context.Context) error {
	if err := p.Store.Delete(ctx, p.Key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", p.Key, err)
	}
	return nil
}
