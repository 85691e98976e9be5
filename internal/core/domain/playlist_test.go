package domain

import (
	"errors"
	"testing"
)

func TestParsePlaylistID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "full URL",
			input: "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
			want:  "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:  "URL with query string",
			input: "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc123",
			want:  "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:  "bare ID",
			input: "37i9dQZF1DXcBWIGoYBM5M",
			want:  "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:  "surrounding whitespace",
			input: "  37i9dQZF1DXcBWIGoYBM5M\n",
			want:  "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "plain text",
			input:   "my favourite songs",
			wantErr: true,
		},
		{
			name:    "album URL",
			input:   "https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy",
			wantErr: true,
		},
		{
			name:    "ID too short",
			input:   "https://open.spotify.com/playlist/tooShort",
			wantErr: true,
		},
		{
			name:    "ID with illegal characters",
			input:   "37i9dQZF1DXcBWIGoYBM5_",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlaylistID(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPlaylistID) {
					t.Fatalf("expected ErrInvalidPlaylistID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
