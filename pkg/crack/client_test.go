package crack

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestFetch_ReturnsCharacters(t *testing.T) {
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"characters": []map[string]interface{}{
				{
					"name":        "Aria",
					"description": "A wandering knight.",
					"tags":        []string{"hero"},
				},
			},
		},
	}

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"sort":    r.URL.Query().Get("sort"),
			"genreId": r.URL.Query().Get("genreId"),
			"limit":   r.URL.Query().Get("limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	characters, err := client.Fetch("sf-fantasy", 20)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(characters))
	assert.Equal(t, "Aria", characters[0].Name)
	assert.Equal(t, "likeCount.desc", gotQuery["sort"])
	assert.Equal(t, "sf-fantasy", gotQuery["genreId"])
	assert.Equal(t, "20", gotQuery["limit"])
}

func TestFetch_EmptyListIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"characters": []}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	characters, err := client.Fetch("gl", 20)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(characters))
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Fetch("romance", 20)

	assert.NotEqual(t, nil, err)
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Fetch("romance", 20)

	assert.NotEqual(t, nil, err)
}
