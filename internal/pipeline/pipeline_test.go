package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"crackcrawl/internal/model"
	"crackcrawl/pkg/crack"

	"github.com/go-playground/assert/v2"
)

type fakeFetcher struct {
	characters []crack.RawCharacter
	err        error
	calls      int
	gotCode    string
	gotLimit   int
}

func (f *fakeFetcher) Fetch(genreCode string, limit int) ([]crack.RawCharacter, error) {
	f.calls++
	f.gotCode = genreCode
	f.gotLimit = limit
	return f.characters, f.err
}

// fakeStore applies the same first-write-wins conflict rule as the real
// table: a (name, category_id) pair is only ever inserted once.
type fakeStore struct {
	categories  map[string]model.Category
	categoryErr error
	upsertErr   error
	rows        map[string]model.Character
	upsertCalls int
}

func newFakeStore(categories map[string]model.Category) *fakeStore {
	return &fakeStore{
		categories: categories,
		rows:       make(map[string]model.Character),
	}
}

func (f *fakeStore) CategoryMap() (map[string]model.Category, error) {
	return f.categories, f.categoryErr
}

func (f *fakeStore) UpsertBatch(characters []model.Character) (int, error) {
	f.upsertCalls++
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	inserted := 0
	for _, c := range characters {
		key := fmt.Sprintf("%s/%d", c.Name, c.CategoryID)
		if _, exists := f.rows[key]; exists {
			continue
		}
		f.rows[key] = c
		inserted++
	}
	return inserted, nil
}

func sciFiStore() *fakeStore {
	return newFakeStore(map[string]model.Category{
		"SciFi": {ID: 3, Code: "SF01", Name: "SciFi"},
	})
}

func ariaRecord(t *testing.T) crack.RawCharacter {
	t.Helper()
	var raw crack.RawCharacter
	err := json.Unmarshal([]byte(`{"name": "Aria", "description": "", "tags": ["hero"]}`), &raw)
	assert.Equal(t, nil, err)
	return raw
}

func TestFetchGenreCharacters_EndToEnd(t *testing.T) {
	fetcher := &fakeFetcher{characters: []crack.RawCharacter{ariaRecord(t)}}
	store := sciFiStore()
	p := New(fetcher, store)

	result, err := p.FetchGenreCharacters("SciFi", 20)

	assert.Equal(t, nil, err)
	assert.Equal(t, StatusOK, result.Status)
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, "SF01", fetcher.gotCode)
	assert.Equal(t, 20, fetcher.gotLimit)

	saved := store.rows["Aria/3"]
	assert.Equal(t, "Aria", saved.Name)
	assert.Equal(t, int64(3), saved.CategoryID)
	assert.Equal(t, []string{"hero"}, saved.Tags)

	// A second identical run finds every pair already present.
	result, err = p.FetchGenreCharacters("SciFi", 20)
	assert.Equal(t, nil, err)
	assert.Equal(t, StatusOK, result.Status)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 1, len(store.rows))
}

func TestFetchGenreCharacters_FetchFailureSkipsWrite(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("crack fetch: unexpected status 500")}
	store := sciFiStore()
	p := New(fetcher, store)

	result, err := p.FetchGenreCharacters("SciFi", 20)

	assert.Equal(t, nil, err)
	assert.Equal(t, StatusFetchFailed, result.Status)
	assert.Equal(t, 0, store.upsertCalls)
}

func TestFetchGenreCharacters_NoRecords(t *testing.T) {
	fetcher := &fakeFetcher{characters: []crack.RawCharacter{}}
	store := sciFiStore()
	p := New(fetcher, store)

	result, err := p.FetchGenreCharacters("SciFi", 20)

	assert.Equal(t, nil, err)
	assert.Equal(t, StatusNoRecords, result.Status)
	assert.Equal(t, 0, store.upsertCalls)
}

func TestFetchGenreCharacters_UnknownGenre(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := sciFiStore()
	p := New(fetcher, store)

	result, err := p.FetchGenreCharacters("Horror", 20)

	assert.Equal(t, nil, err)
	assert.Equal(t, StatusUnknownGenre, result.Status)
	assert.Equal(t, 0, fetcher.calls)
}

func TestFetchGenreCharacters_WriteFailureContained(t *testing.T) {
	fetcher := &fakeFetcher{characters: []crack.RawCharacter{ariaRecord(t)}}
	store := sciFiStore()
	store.upsertErr = errors.New("upsert characters: connection reset")
	p := New(fetcher, store)

	result, err := p.FetchGenreCharacters("SciFi", 20)

	assert.Equal(t, nil, err)
	assert.Equal(t, StatusWriteFailed, result.Status)
	assert.Equal(t, 0, result.Inserted)
}

func TestFetchGenreCharacters_ResolverFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := sciFiStore()
	store.categoryErr = errors.New("load categories: connection refused")
	p := New(fetcher, store)

	_, err := p.FetchGenreCharacters("SciFi", 20)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, fetcher.calls)
}
