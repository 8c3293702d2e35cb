package processors

import (
	"context"
	"sort"
	"strconv"

	"github.com/openmohaa/match-pipeline/internal/store"
)

// fakeStore is a minimal in-memory stand-in for store.Store, sized for
// processor tests: hashes and sorted sets keyed by store key.
type fakeStore struct {
	hashes map[string]map[string]string
	zsets  map[string]map[string]float64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hashes: make(map[string]map[string]string),
		zsets:  make(map[string]map[string]float64),
	}
}

func (f *fakeStore) HSet(ctx context.Context, key string, values map[string]any) error {
	h, ok := f.hashes[key]
	if !ok {
		h = make(map[string]string)
		f.hashes[key] = h
	}
	for field, v := range values {
		switch x := v.(type) {
		case string:
			h[field] = x
		case int:
			h[field] = strconv.Itoa(x)
		case int64:
			h[field] = strconv.FormatInt(x, 10)
		}
	}
	return nil
}

func (f *fakeStore) HGet(ctx context.Context, key, field string) (string, error) {
	h, ok := f.hashes[key]
	if !ok {
		return "", store.ErrNotFound
	}
	v, ok := h[field]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (f *fakeStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	out := make(map[string]string)
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	h, ok := f.hashes[key]
	if !ok {
		h = make(map[string]string)
		f.hashes[key] = h
	}
	cur := int64(0)
	if v, ok := h[field]; ok {
		cur, _ = strconv.ParseInt(v, 10, 64)
	}
	cur += delta
	h[field] = strconv.FormatInt(cur, 10)
	return cur, nil
}

func (f *fakeStore) ZAdd(ctx context.Context, key, member string, score float64) error {
	z, ok := f.zsets[key]
	if !ok {
		z = make(map[string]float64)
		f.zsets[key] = z
	}
	z[member] = score
	return nil
}

func (f *fakeStore) ZRange(ctx context.Context, key string) ([]string, error) {
	z := f.zsets[key]
	members := make([]string, 0, len(z))
	for m := range z {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return z[members[i]] < z[members[j]] })
	return members, nil
}
