package provider

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediamux/mediamux/model"
)

func newBooksTestServer(t *testing.T, handler http.HandlerFunc) *GoogleBooksClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGoogleBooksClient(Config{BaseURL: server.URL})
}

func TestGoogleBooksSearch(t *testing.T) {
	client := newBooksTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/", r.URL.Path)
		require.Equal(t, "neuromancer", r.URL.Query().Get("q"))
		// No key configured, none sent.
		require.Empty(t, r.URL.Query().Get("key"))
		w.Write([]byte(`{
			"items": [
				{"id": "IDFfMPW32hQC", "volumeInfo": {
					"title": "Neuromancer", "publishedDate": "1984-07-01",
					"description": "The sky above the port.",
					"imageLinks": {"smallThumbnail": "https://example.com/small.jpg"}
				}}
			]
		}`))
	})

	summaries, err := client.SearchBooks("neuromancer")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "IDFfMPW32hQC", summaries[0].ExternalId)
	require.Equal(t, 1984, *summaries[0].Year)
	// Missing full-size thumbnail falls back to the small one.
	require.Equal(t, "https://example.com/small.jpg", summaries[0].PosterUrl)
}

func TestGoogleBooksFetchDetails(t *testing.T) {
	client := newBooksTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/IDFfMPW32hQC", r.URL.Path)
		w.Write([]byte(`{
			"id": "IDFfMPW32hQC", "volumeInfo": {
				"title": "Neuromancer", "publishedDate": "1984",
				"pageCount": 271,
				"authors": ["William Gibson"],
				"categories": ["Fiction"],
				"imageLinks": {"thumbnail": "https://example.com/thumb.jpg",
				               "smallThumbnail": "https://example.com/small.jpg"}
			}
		}`))
	})

	details, err := client.FetchBookDetails("IDFfMPW32hQC")
	require.NoError(t, err)
	require.Equal(t, model.ContentTypeBook, details.Type)
	require.Equal(t, model.SourceGoogleBooks, details.Source)
	require.Equal(t, "Neuromancer", details.Title)
	require.Equal(t, 1984, *details.Year)
	require.Equal(t, 271, *details.PageCount)
	require.Equal(t, []string{"William Gibson"}, details.Authors)
	require.Equal(t, []string{"Fiction"}, details.Genres)
	require.Equal(t, "https://example.com/thumb.jpg", details.PosterUrl)
}

func TestGoogleBooksSendsConfiguredKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.URL.Query().Get("key"))
		w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(server.Close)

	client := NewGoogleBooksClient(Config{APIKey: "secret", BaseURL: server.URL})
	summaries, err := client.SearchBooks("anything")
	require.NoError(t, err)
	require.Empty(t, summaries)
}

func TestGoogleBooksErrorsSurfaceAsGateway(t *testing.T) {
	client := newBooksTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.SearchBooks("anything")
	require.ErrorIs(t, err, model.ErrGateway)
	_, err = client.FetchBookDetails("abc")
	require.ErrorIs(t, err, model.ErrGateway)
}
