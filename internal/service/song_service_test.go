package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songboard/internal/apperrors"
	"songboard/internal/config"
	"songboard/internal/songcatalog"
)

type fakeCatalog struct {
	response *songcatalog.SearchResponse
	err      error

	gotQuery  string
	gotOffset int
}

func (f *fakeCatalog) Search(_ context.Context, q string, offset int) (*songcatalog.SearchResponse, error) {
	f.gotQuery = q
	f.gotOffset = offset
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func songTestConfig() *config.Config {
	return &config.Config{
		Spotify: config.Spotify{PageBaseURL: "http://localhost:8080/songs"},
	}
}

func catalogResponse(limit int, next string, items ...songcatalog.Track) *songcatalog.SearchResponse {
	return &songcatalog.SearchResponse{
		Tracks: songcatalog.Tracks{
			Items: items,
			Limit: limit,
			Next:  next,
		},
	}
}

func TestSearchSongsValidation(t *testing.T) {
	svc := NewSongService(&fakeCatalog{}, songTestConfig())
	ctx := context.Background()

	_, err := svc.SearchSongs(ctx, SongSearchParams{}, 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Equal(t, "A track, artist, year, album, or genre must be provided through query params", apperrors.MessageOf(err))

	_, err = svc.SearchSongs(ctx, SongSearchParams{Track: "Help"}, -1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestSearchSongsBuildsQuery(t *testing.T) {
	catalog := &fakeCatalog{response: catalogResponse(20, "")}
	svc := NewSongService(catalog, songTestConfig())

	params := SongSearchParams{Track: "Help", Artist: "The Beatles", Year: "1965"}
	_, err := svc.SearchSongs(context.Background(), params, 40)
	require.NoError(t, err)

	assert.Equal(t, "track:Help artist:The Beatles year:1965", catalog.gotQuery)
	assert.Equal(t, 40, catalog.gotOffset)
}

func TestSearchSongsPagination(t *testing.T) {
	tests := []struct {
		name         string
		offset       int
		limit        int
		next         string
		wantPrevious string
		wantMore     string
	}{
		{
			name:     "first page with more results",
			offset:   0,
			limit:    20,
			next:     "https://api.spotify.com/v1/search?offset=20",
			wantMore: "http://localhost:8080/songs?type=track&track=Help&offset=20",
		},
		{
			name:         "middle page",
			offset:       40,
			limit:        20,
			next:         "https://api.spotify.com/v1/search?offset=60",
			wantPrevious: "http://localhost:8080/songs?type=track&track=Help&offset=20",
			wantMore:     "http://localhost:8080/songs?type=track&track=Help&offset=60",
		},
		{
			name:         "last page",
			offset:       40,
			limit:        20,
			wantPrevious: "http://localhost:8080/songs?type=track&track=Help&offset=20",
		},
		{
			name:         "previous offset clamps at zero",
			offset:       10,
			limit:        20,
			wantPrevious: "http://localhost:8080/songs?type=track&track=Help&offset=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{response: catalogResponse(tt.limit, tt.next)}
			svc := NewSongService(catalog, songTestConfig())

			result, err := svc.SearchSongs(context.Background(), SongSearchParams{Track: "Help"}, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrevious, result.ShowPrevious)
			assert.Equal(t, tt.wantMore, result.ShowMore)
		})
	}
}

func TestSearchSongsCleansTracks(t *testing.T) {
	track := songcatalog.Track{
		ID:           "track-1",
		Name:         "Help!",
		Popularity:   83,
		ExternalURLs: songcatalog.ExternalURLs{Spotify: "https://open.spotify.com/track/track-1"},
		Album: songcatalog.Album{Images: []songcatalog.Image{
			{URL: "https://images/large"},
			{URL: "https://images/medium"},
			{URL: "https://images/small"},
		}},
		Artists: []songcatalog.Artist{{
			ID:           "artist-1",
			Name:         "The Beatles",
			ExternalURLs: songcatalog.ExternalURLs{Spotify: "https://open.spotify.com/artist/artist-1"},
		}},
	}
	single := songcatalog.Track{
		ID:    "track-2",
		Name:  "Obscure",
		Album: songcatalog.Album{Images: []songcatalog.Image{{URL: "https://images/only"}}},
	}
	bare := songcatalog.Track{ID: "track-3", Name: "No art"}

	catalog := &fakeCatalog{response: catalogResponse(20, "", track, single, bare)}
	svc := NewSongService(catalog, songTestConfig())

	result, err := svc.SearchSongs(context.Background(), SongSearchParams{Track: "Help"}, 0)
	require.NoError(t, err)
	require.Len(t, result.Songs, 3)

	first := result.Songs[0]
	assert.Equal(t, "track-1", first.SpotifyID)
	assert.Equal(t, "https://open.spotify.com/track/track-1", first.Link)
	assert.Equal(t, "https://images/medium", first.Image)
	require.Len(t, first.Artists, 1)
	assert.Equal(t, "The Beatles", first.Artists[0].Name)
	assert.Equal(t, "https://open.spotify.com/artist/artist-1", first.Artists[0].URL)

	assert.Equal(t, "https://images/only", result.Songs[1].Image)
	assert.Empty(t, result.Songs[2].Image)
}

func TestSearchSongsUpstreamFailure(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("catalog unreachable")}
	svc := NewSongService(catalog, songTestConfig())

	_, err := svc.SearchSongs(context.Background(), SongSearchParams{Track: "Help"}, 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
	assert.Equal(t, 502, apperrors.StatusOf(err))
}
