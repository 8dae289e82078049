package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
)

const DefaultGoogleBooksBaseURL = "https://www.googleapis.com/books/v1/volumes"

// GoogleBooksClient talks to the Google Books volumes API. The API key is
// optional, keyless access works with lower quota.
type GoogleBooksClient struct {
	config Config
	client *http.Client
}

func NewGoogleBooksClient(config Config) *GoogleBooksClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultGoogleBooksBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &GoogleBooksClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type googleBooksVolume struct {
	Id         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		PublishedDate string   `json:"publishedDate"`
		Description   string   `json:"description"`
		PageCount     *int     `json:"pageCount"`
		Authors       []string `json:"authors"`
		Categories    []string `json:"categories"`
		ImageLinks    struct {
			Thumbnail      string `json:"thumbnail"`
			SmallThumbnail string `json:"smallThumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type googleBooksSearchResponse struct {
	Items []googleBooksVolume `json:"items"`
}

func (c *GoogleBooksClient) get(path string, params url.Values, out interface{}) error {
	if c.config.APIKey != "" {
		params.Set("key", c.config.APIKey)
	}

	uri := c.config.BaseURL + path
	if encoded := params.Encode(); encoded != "" {
		uri += "?" + encoded
	}
	resp, err := c.client.Get(uri)
	if err != nil {
		utils.EmitCounter(utils.MetricProviderError, []string{"source:google_books"})
		return errors.Wrap(model.ErrGateway, "Google Books request failed: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.EmitCounter(utils.MetricProviderError, []string{"source:google_books"})
		return errors.Wrap(model.ErrGateway, fmt.Sprintf("Google Books returned status %d for %s", resp.StatusCode, path))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(model.ErrGateway, "Google Books returned malformed response: "+err.Error())
	}
	return nil
}

// SearchBooks returns shallow summaries for the query.
func (c *GoogleBooksClient) SearchBooks(query string) ([]Summary, error) {
	params := url.Values{}
	params.Set("q", query)

	var resp googleBooksSearchResponse
	if err := c.get("", params, &resp); err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(resp.Items))
	for _, item := range resp.Items {
		info := item.VolumeInfo
		summaries = append(summaries, Summary{
			ExternalId:  item.Id,
			Title:       info.Title,
			Year:        yearOf(info.PublishedDate),
			PosterUrl:   bookPosterUrl(info.ImageLinks.Thumbnail, info.ImageLinks.SmallThumbnail),
			Description: info.Description,
		})
	}
	return summaries, nil
}

// FetchBookDetails pulls the full volume record.
func (c *GoogleBooksClient) FetchBookDetails(externalId string) (*Details, error) {
	var volume googleBooksVolume
	if err := c.get("/"+url.PathEscape(externalId), url.Values{}, &volume); err != nil {
		return nil, err
	}

	info := volume.VolumeInfo
	return &Details{
		Type:          model.ContentTypeBook,
		Source:        model.SourceGoogleBooks,
		ExternalId:    volume.Id,
		Title:         info.Title,
		OriginalTitle: info.Title,
		Year:          yearOf(info.PublishedDate),
		Description:   info.Description,
		PosterUrl:     bookPosterUrl(info.ImageLinks.Thumbnail, info.ImageLinks.SmallThumbnail),
		PageCount:     info.PageCount,
		Authors:       info.Authors,
		Genres:        info.Categories,
	}, nil
}

func bookPosterUrl(thumbnail string, smallThumbnail string) string {
	if thumbnail != "" {
		return thumbnail
	}
	return smallThumbnail
}
