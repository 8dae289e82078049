package provider

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/mediamux/mediamux/model"
)

func newTMDBTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *TMDBClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewTMDBClient(Config{APIKey: "test-key", BaseURL: server.URL})
	return server, client
}

func TestTMDBSearchMovies(t *testing.T) {
	_, client := newTMDBTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/movie", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		require.Equal(t, "matrix", r.URL.Query().Get("query"))
		w.Write([]byte(`{
			"results": [
				{"id": 603, "title": "The Matrix", "original_title": "The Matrix",
				 "release_date": "1999-03-30", "poster_path": "/matrix.jpg",
				 "overview": "A hacker learns the truth."},
				{"id": 604, "title": "", "original_title": "The Matrix Reloaded",
				 "release_date": ""}
			]
		}`))
	})

	summaries, err := client.SearchMovies("matrix")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	require.Equal(t, "603", summaries[0].ExternalId)
	require.Equal(t, "The Matrix", summaries[0].Title)
	require.Equal(t, 1999, *summaries[0].Year)
	require.Equal(t, "https://image.tmdb.org/t/p/w500/matrix.jpg", summaries[0].PosterUrl)

	// Missing title falls back to the original title, missing date to nil.
	require.Equal(t, "The Matrix Reloaded", summaries[1].Title)
	require.Nil(t, summaries[1].Year)
	require.Empty(t, summaries[1].PosterUrl)
}

func TestTMDBFetchMovieDetails(t *testing.T) {
	_, client := newTMDBTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/603", r.URL.Path)
		require.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		w.Write([]byte(`{
			"id": 603, "title": "The Matrix", "original_title": "The Matrix",
			"release_date": "1999-03-30", "runtime": 136,
			"genres": [{"name": "Action"}, {"name": "Science Fiction"}],
			"credits": {
				"crew": [
					{"name": "Lana Wachowski", "job": "Director"},
					{"name": "Lilly Wachowski", "job": "Director"},
					{"name": "Lana Wachowski", "job": "Screenplay"},
					{"name": "Bill Pope", "job": "Director of Photography"}
				],
				"cast": [
					{"name": "Keanu Reeves"}, {"name": "Laurence Fishburne"},
					{"name": "Carrie-Anne Moss"}, {"name": "Hugo Weaving"},
					{"name": "Gloria Foster"}, {"name": "Joe Pantoliano"}
				]
			}
		}`))
	})

	details, err := client.FetchMovieDetails("603")
	require.NoError(t, err)

	year := 1999
	runtime := 136
	want := &Details{
		Type:           model.ContentTypeMovie,
		Source:         model.SourceTMDB,
		ExternalId:     "603",
		Title:          "The Matrix",
		OriginalTitle:  "The Matrix",
		Year:           &year,
		RuntimeMinutes: &runtime,
		Directors:      []string{"Lana Wachowski", "Lilly Wachowski"},
		// Screenplay credit counts as writing; photography does not.
		Writers: []string{"Lana Wachowski"},
		Genres:  []string{"Action", "Science Fiction"},
		// Cast is capped at the top five billed.
		Cast: []string{
			"Keanu Reeves", "Laurence Fishburne", "Carrie-Anne Moss",
			"Hugo Weaving", "Gloria Foster",
		},
	}
	if diff := cmp.Diff(want, details); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
}

func TestTMDBErrorsSurfaceAsGateway(t *testing.T) {
	_, client := newTMDBTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchMovieDetails("999999")
	require.ErrorIs(t, err, model.ErrGateway)

	_, err = client.SearchMovies("anything")
	require.ErrorIs(t, err, model.ErrGateway)
}

func TestTMDBMalformedResponseIsGateway(t *testing.T) {
	_, client := newTMDBTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.SearchMovies("matrix")
	require.ErrorIs(t, err, model.ErrGateway)
}

func TestTMDBRequiresAPIKey(t *testing.T) {
	client := NewTMDBClient(Config{})
	_, err := client.SearchMovies("matrix")
	require.ErrorIs(t, err, model.ErrGateway)
}
