package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
)

const (
	DefaultTMDBBaseURL = "https://api.themoviedb.org/3"
	tmdbImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	tmdbTopCastCount   = 5
)

// TMDBClient talks to The Movie Database v3 API.
type TMDBClient struct {
	config Config
	client *http.Client
}

func NewTMDBClient(config Config) *TMDBClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultTMDBBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &TMDBClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type tmdbPerson struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type tmdbMovie struct {
	Id            int64  `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
	PosterPath    string `json:"poster_path"`
	Overview      string `json:"overview"`
	Runtime       *int   `json:"runtime"`
	Genres        []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Crew []tmdbPerson `json:"crew"`
		Cast []tmdbPerson `json:"cast"`
	} `json:"credits"`
}

type tmdbSearchResponse struct {
	Results []tmdbMovie `json:"results"`
}

func (c *TMDBClient) get(path string, params url.Values, out interface{}) error {
	if c.config.APIKey == "" {
		return errors.Wrap(model.ErrGateway, "TMDB API key is not configured")
	}
	params.Set("api_key", c.config.APIKey)

	resp, err := c.client.Get(c.config.BaseURL + path + "?" + params.Encode())
	if err != nil {
		utils.EmitCounter(utils.MetricProviderError, []string{"source:tmdb"})
		return errors.Wrap(model.ErrGateway, "TMDB request failed: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.EmitCounter(utils.MetricProviderError, []string{"source:tmdb"})
		return errors.Wrap(model.ErrGateway, fmt.Sprintf("TMDB returned status %d for %s", resp.StatusCode, path))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(model.ErrGateway, "TMDB returned malformed response: "+err.Error())
	}
	return nil
}

// SearchMovies returns shallow summaries for the query.
func (c *TMDBClient) SearchMovies(query string) ([]Summary, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp tmdbSearchResponse
	if err := c.get("/search/movie", params, &resp); err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(resp.Results))
	for _, item := range resp.Results {
		title := item.Title
		if title == "" {
			title = item.OriginalTitle
		}
		summaries = append(summaries, Summary{
			ExternalId:  strconv.FormatInt(item.Id, 10),
			Title:       title,
			Year:        yearOf(item.ReleaseDate),
			PosterUrl:   tmdbPosterUrl(item.PosterPath),
			Description: item.Overview,
		})
	}
	return summaries, nil
}

// FetchMovieDetails pulls the full record including credits.
func (c *TMDBClient) FetchMovieDetails(externalId string) (*Details, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var detail tmdbMovie
	if err := c.get("/movie/"+url.PathEscape(externalId), params, &detail); err != nil {
		return nil, err
	}

	var directors, writers []string
	for _, person := range detail.Credits.Crew {
		switch person.Job {
		case "Director":
			directors = append(directors, person.Name)
		case "Writer", "Screenplay":
			writers = append(writers, person.Name)
		}
	}
	var genres []string
	for _, genre := range detail.Genres {
		genres = append(genres, genre.Name)
	}
	var cast []string
	for _, person := range detail.Credits.Cast[:utils.Min(tmdbTopCastCount, len(detail.Credits.Cast))] {
		cast = append(cast, person.Name)
	}

	title := detail.Title
	if title == "" {
		title = detail.OriginalTitle
	}
	return &Details{
		Type:           model.ContentTypeMovie,
		Source:         model.SourceTMDB,
		ExternalId:     strconv.FormatInt(detail.Id, 10),
		Title:          title,
		OriginalTitle:  detail.OriginalTitle,
		Year:           yearOf(detail.ReleaseDate),
		Description:    detail.Overview,
		PosterUrl:      tmdbPosterUrl(detail.PosterPath),
		RuntimeMinutes: detail.Runtime,
		Directors:      directors,
		Writers:        writers,
		Genres:         genres,
		Cast:           cast,
	}, nil
}

func tmdbPosterUrl(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return tmdbImageBaseURL + posterPath
}
