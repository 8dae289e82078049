package catalog

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/provider"
	"github.com/mediamux/mediamux/utils"
	"github.com/mediamux/mediamux/utils/dotenv"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

// fakeProvider serves canned details keyed by external id and counts fetches
// so tests can assert the provider is only consulted on first import. The
// optional onFetch hook runs before returning, letting a test interleave
// writes between the import's pre-read and its insert.
type fakeProvider struct {
	details map[string]*provider.Details
	fetches int
	onFetch func()
}

func (f *fakeProvider) SearchMovies(query string) ([]provider.Summary, error) { return nil, nil }
func (f *fakeProvider) SearchBooks(query string) ([]provider.Summary, error)  { return nil, nil }

func (f *fakeProvider) FetchMovieDetails(externalId string) (*provider.Details, error) {
	return f.fetch(externalId)
}

func (f *fakeProvider) FetchBookDetails(externalId string) (*provider.Details, error) {
	return f.fetch(externalId)
}

func (f *fakeProvider) fetch(externalId string) (*provider.Details, error) {
	f.fetches++
	details, ok := f.details[externalId]
	if !ok {
		return nil, errors.Wrap(model.ErrGateway, "provider has no record "+externalId)
	}
	if f.onFetch != nil {
		f.onFetch()
	}
	return details, nil
}

func movieDetails(externalId string, title string) *provider.Details {
	year := 1999
	runtime := 136
	return &provider.Details{
		Type:           model.ContentTypeMovie,
		Source:         model.SourceTMDB,
		ExternalId:     externalId,
		Title:          title,
		OriginalTitle:  title,
		Year:           &year,
		RuntimeMinutes: &runtime,
		Directors:      []string{"Lana Wachowski", "Lilly Wachowski"},
		Genres:         []string{"Action", "Science Fiction"},
		Cast:           []string{"Keanu Reeves"},
	}
}

func TestImportCreatesOnceThenReuses(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	fake := &fakeProvider{details: map[string]*provider.Details{
		"603": movieDetails("603", "The Matrix"),
	}}
	store := NewStore(db, fake, fake)

	first, err := store.Import(model.SourceTMDB, "603")
	require.NoError(t, err)
	require.Equal(t, "The Matrix", first.Title)
	require.Equal(t, 1, fake.fetches)

	// Re-import resolves from the catalog without touching the provider.
	second, err := store.Import(model.SourceTMDB, "603")
	require.NoError(t, err)
	require.Equal(t, first.Id, second.Id)
	require.Equal(t, 1, fake.fetches)

	var rows int64
	require.NoError(t, db.Model(&model.Content{}).Count(&rows).Error)
	require.Equal(t, int64(1), rows)
}

func TestImportLosingInsertRaceReturnsWinner(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	fake := &fakeProvider{details: map[string]*provider.Details{
		"603": movieDetails("603", "The Matrix"),
	}}
	store := NewStore(db, fake, fake)

	// Simulate the concurrent-import race: a row for the key lands between
	// this import's pre-read and its insert. The hook fires after the
	// pre-read missed, so the insert collides and re-reads the winner.
	fake.details["604"] = movieDetails("604", "The Matrix Reloaded")
	var winner *model.Content
	fake.onFetch = func() {
		winner = utils.TestCreateMovie(t, db, "604", "The Matrix Reloaded")
	}

	got, err := store.Import(model.SourceTMDB, "604")
	require.NoError(t, err)
	require.NotNil(t, winner)
	require.Equal(t, winner.Id, got.Id)

	var rows int64
	require.NoError(t, db.Model(&model.Content{}).Count(&rows).Error)
	require.Equal(t, int64(1), rows)
}

func TestImportValidatesSourceAndPropagatesGateway(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	fake := &fakeProvider{details: map[string]*provider.Details{}}
	store := NewStore(db, fake, fake)

	_, err := store.Import("imdb", "tt0133093")
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = store.Import(model.SourceTMDB, "999999")
	require.ErrorIs(t, err, model.ErrGateway)

	var rows int64
	require.NoError(t, db.Model(&model.Content{}).Count(&rows).Error)
	require.Equal(t, int64(0), rows)
}

func TestSearchMatchesTitleAndType(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	store := NewStore(db, nil, nil)

	utils.TestCreateMovie(t, db, "603", "The Matrix")
	utils.TestCreateContent(t, db, model.ContentTypeBook, model.SourceGoogleBooks, "abc", "Neuromancer")

	// Case-insensitive substring match on the title.
	results, err := store.Search("matrix", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "The Matrix", results[0].Title)

	books, err := store.Search("", model.ContentTypeBook)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "Neuromancer", books[0].Title)

	_, err = store.Search("", "podcast")
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestAggregatesComputedAtReadTime(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	store := NewStore(db, nil, nil)

	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")
	content := utils.TestCreateMovie(t, db, "603", "The Matrix")

	// Unrated content reads as null average, zero count.
	got, err := store.Get(content.Id)
	require.NoError(t, err)
	require.Nil(t, got.AverageRating)
	require.Equal(t, int64(0), got.RatingCount)

	for i, user := range []string{alice.Id, bob.Id} {
		require.NoError(t, db.Create(&model.Rating{
			Id:        user + "-rating",
			UserID:    user,
			ContentID: content.Id,
			Score:     7 + i*2,
		}).Error)
	}

	got, err = store.Get(content.Id)
	require.NoError(t, err)
	require.NotNil(t, got.AverageRating)
	require.InDelta(t, 8.0, *got.AverageRating, 0.001)
	require.Equal(t, int64(2), got.RatingCount)

	_, err = store.Get("no-such-content")
	require.ErrorIs(t, err, model.ErrNotFound)
}
