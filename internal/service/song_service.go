package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"songboard/internal/apperrors"
	"songboard/internal/config"
	"songboard/internal/songcatalog"
)

type SongService interface {
	SearchSongs(ctx context.Context, params SongSearchParams, offset int) (*SongSearchResult, error)
}

type SongSearchParams struct {
	Track  string
	Artist string
	Year   string
	Genre  string
	Album  string
}

type SongArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Song is the trimmed catalog record returned to clients; the raw upstream
// payload carries far more than the frontend needs.
type Song struct {
	SpotifyID  string       `json:"spotifyId"`
	Name       string       `json:"name"`
	Link       string       `json:"link"`
	Popularity int          `json:"popularity"`
	Image      string       `json:"image"`
	Artists    []SongArtist `json:"artists"`
}

type SongSearchResult struct {
	ShowPrevious string `json:"showPrevious"`
	ShowMore     string `json:"showMore"`
	Songs        []Song `json:"songs"`
}

type songService struct {
	catalog songcatalog.Catalog
	cfg     *config.Config
}

func NewSongService(catalog songcatalog.Catalog, cfg *config.Config) SongService {
	return &songService{
		catalog: catalog,
		cfg:     cfg,
	}
}

func (s *songService) SearchSongs(ctx context.Context, params SongSearchParams, offset int) (*SongSearchResult, error) {
	if params.Track == "" && params.Artist == "" && params.Year == "" && params.Genre == "" && params.Album == "" {
		return nil, apperrors.Validation("A track, artist, year, album, or genre must be provided through query params")
	}
	if offset < 0 {
		return nil, apperrors.Validation("Offset must be a non-negative number")
	}

	response, err := s.catalog.Search(ctx, buildQuery(params), offset)
	if err != nil {
		return nil, apperrors.Upstream(http.StatusBadGateway, err)
	}

	tracks := response.Tracks
	result := &SongSearchResult{
		Songs: cleanTracks(tracks.Items),
	}

	if offset > 0 {
		previousOffset := offset - tracks.Limit
		if previousOffset < 0 {
			previousOffset = 0
		}
		result.ShowPrevious = s.pageURL(params, previousOffset)
	}
	if tracks.Next != "" {
		result.ShowMore = s.pageURL(params, offset+tracks.Limit)
	}

	return result, nil
}

// buildQuery assembles the catalog filter string, e.g. "track:Help artist:Beatles".
func buildQuery(params SongSearchParams) string {
	var parts []string
	for _, field := range queryFields(params) {
		if field.value != "" {
			parts = append(parts, field.key+":"+field.value)
		}
	}
	return strings.Join(parts, " ")
}

// pageURL builds a jump link to the same search at a different offset.
func (s *songService) pageURL(params SongSearchParams, offset int) string {
	page := s.cfg.Spotify.PageBaseURL + "?type=track"
	for _, field := range queryFields(params) {
		if field.value != "" {
			page += "&" + field.key + "=" + url.QueryEscape(field.value)
		}
	}
	return page + fmt.Sprintf("&offset=%d", offset)
}

type queryField struct {
	key   string
	value string
}

func queryFields(params SongSearchParams) []queryField {
	return []queryField{
		{"track", params.Track},
		{"artist", params.Artist},
		{"year", params.Year},
		{"genre", params.Genre},
		{"album", params.Album},
	}
}

func cleanTracks(items []songcatalog.Track) []Song {
	songs := make([]Song, 0, len(items))
	for _, item := range items {
		artists := make([]SongArtist, 0, len(item.Artists))
		for _, artist := range item.Artists {
			artists = append(artists, SongArtist{
				ID:   artist.ID,
				Name: artist.Name,
				URL:  artist.ExternalURLs.Spotify,
			})
		}

		// The catalog usually returns three album art sizes; the middle one
		// fits the feed, smaller albums fall back to whatever is there.
		image := ""
		if len(item.Album.Images) > 1 {
			image = item.Album.Images[1].URL
		} else if len(item.Album.Images) == 1 {
			image = item.Album.Images[0].URL
		}

		songs = append(songs, Song{
			SpotifyID:  item.ID,
			Name:       item.Name,
			Link:       item.ExternalURLs.Spotify,
			Popularity: item.Popularity,
			Image:      image,
			Artists:    artists,
		})
	}
	return songs
}
