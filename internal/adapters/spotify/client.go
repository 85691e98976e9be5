// Package spotify implements the catalog port against the Spotify Web
// API using the client-credentials token flow.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
	"github.com/ewilliams-labs/resonate/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	tokenURL       = "https://accounts.spotify.com/api/token"

	pageLimit    = 100 // max playlist items per request
	featureChunk = 100 // max audio-features IDs per request
	artistChunk  = 50  // max artist IDs per request
)

// Client is the HTTP client for the Spotify catalog adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.CatalogProvider = (*Client)(nil)

// NewClient builds a catalog client authenticating via the standard
// client-credentials token exchange; the oauth2 transport refreshes the
// token transparently.
func NewClient(clientID, clientSecret string) *Client {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := cfg.Client(context.Background())
	httpClient.Timeout = 20 * time.Second
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithHTTP is for tests and callers that manage auth on the
// transport themselves.
func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// GetPlaylist resolves a playlist into its metadata and full track
// list. Tracks are fetched page by page, then enriched with audio
// features and artist genre tags in batched secondary calls. Any
// failure is reported as *domain.ExternalServiceError; the caller
// decides whether to degrade.
func (c *Client) GetPlaylist(ctx context.Context, playlistID string) (domain.Playlist, error) {
	meta, err := c.fetchPlaylistMeta(ctx, playlistID)
	if err != nil {
		return domain.Playlist{}, &domain.ExternalServiceError{Service: "spotify", Err: err}
	}

	items, err := c.fetchPlaylistItems(ctx, playlistID)
	if err != nil {
		return domain.Playlist{}, &domain.ExternalServiceError{Service: "spotify", Err: err}
	}

	trackIDs := make([]string, 0, len(items))
	artistIDs := make([]string, 0, len(items))
	seenArtists := make(map[string]struct{})
	for _, item := range items {
		trackIDs = append(trackIDs, item.ID)
		for _, a := range item.Artists {
			if a.ID == "" {
				continue
			}
			if _, ok := seenArtists[a.ID]; !ok {
				seenArtists[a.ID] = struct{}{}
				artistIDs = append(artistIDs, a.ID)
			}
		}
	}

	features, err := c.fetchAudioFeatures(ctx, trackIDs)
	if err != nil {
		return domain.Playlist{}, &domain.ExternalServiceError{Service: "spotify", Err: err}
	}

	genres, err := c.fetchArtistGenres(ctx, artistIDs)
	if err != nil {
		return domain.Playlist{}, &domain.ExternalServiceError{Service: "spotify", Err: err}
	}

	tracks := make([]domain.Track, 0, len(items))
	for _, item := range items {
		f := features[item.ID]
		tracks = append(tracks, mapTrackToDomain(item, f, genres))
	}

	return domain.Playlist{
		ID:          meta.ID,
		Name:        meta.Name,
		Description: meta.Description,
		Owner:       meta.Owner.DisplayName,
		Tracks:      tracks,
	}, nil
}

func (c *Client) fetchPlaylistMeta(ctx context.Context, playlistID string) (playlistResponse, error) {
	query := url.Values{}
	query.Set("fields", "id,name,description,owner(display_name)")

	var meta playlistResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/playlists/%s", playlistID), query, &meta); err != nil {
		return playlistResponse{}, fmt.Errorf("playlist meta: %w", err)
	}
	return meta, nil
}

// fetchPlaylistItems walks the paginated track listing. Entries without
// a track ID (local files, removed episodes) are skipped.
func (c *Client) fetchPlaylistItems(ctx context.Context, playlistID string) ([]trackObject, error) {
	var items []trackObject
	offset := 0
	for {
		query := url.Values{}
		query.Set("limit", fmt.Sprint(pageLimit))
		query.Set("offset", fmt.Sprint(offset))
		query.Set("additional_types", "track")
		query.Set("fields", "items(track(id,name,artists(id,name),album(name,release_date),duration_ms,popularity)),next")

		var page pageResponse
		if err := c.getJSON(ctx, fmt.Sprintf("/playlists/%s/tracks", playlistID), query, &page); err != nil {
			return nil, fmt.Errorf("playlist tracks offset %d: %w", offset, err)
		}

		for _, entry := range page.Items {
			if entry.Track == nil || entry.Track.ID == "" {
				continue
			}
			items = append(items, *entry.Track)
		}

		if page.Next == "" || len(page.Items) == 0 {
			return items, nil
		}
		offset += pageLimit
	}
}

func (c *Client) fetchAudioFeatures(ctx context.Context, trackIDs []string) (map[string]*audioFeaturesObject, error) {
	result := make(map[string]*audioFeaturesObject, len(trackIDs))
	for start := 0; start < len(trackIDs); start += featureChunk {
		end := start + featureChunk
		if end > len(trackIDs) {
			end = len(trackIDs)
		}

		query := url.Values{}
		query.Set("ids", strings.Join(trackIDs[start:end], ","))

		var body struct {
			AudioFeatures []*audioFeaturesObject `json:"audio_features"`
		}
		if err := c.getJSON(ctx, "/audio-features", query, &body); err != nil {
			return nil, fmt.Errorf("audio features: %w", err)
		}

		// The API returns null entries for tracks it has no analysis for.
		for _, f := range body.AudioFeatures {
			if f != nil && f.ID != "" {
				result[f.ID] = f
			}
		}
	}
	return result, nil
}

// fetchArtistGenres resolves genre tags, which the API attaches to
// artists rather than tracks.
func (c *Client) fetchArtistGenres(ctx context.Context, artistIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(artistIDs))
	for start := 0; start < len(artistIDs); start += artistChunk {
		end := start + artistChunk
		if end > len(artistIDs) {
			end = len(artistIDs)
		}

		query := url.Values{}
		query.Set("ids", strings.Join(artistIDs[start:end], ","))

		var body struct {
			Artists []struct {
				ID     string   `json:"id"`
				Genres []string `json:"genres"`
			} `json:"artists"`
		}
		if err := c.getJSON(ctx, "/artists", query, &body); err != nil {
			return nil, fmt.Errorf("artist genres: %w", err)
		}

		for _, a := range body.Artists {
			if a.ID != "" {
				result[a.ID] = a.Genres
			}
		}
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
