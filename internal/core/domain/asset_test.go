package domain_test

import (
	"testing"

	"assetvault/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		fileName string
		want     string
	}{
		{"explicit title wins", "Summer Campaign", "IMG_0001.jpg", "Summer Campaign"},
		{"title is trimmed", "  Summer Campaign  ", "IMG_0001.jpg", "Summer Campaign"},
		{"empty title falls back to file name", "", "IMG_0001.jpg", "IMG_0001"},
		{"placeholder title falls back", "untitled", "banner.final.png", "banner.final"},
		{"placeholder is case insensitive", "N/A", "clip.mp4", "clip"},
		{"path segments are stripped", "", "exports/2024/clip.mp4", "clip"},
		{"dotfile keeps its name", "", ".gitignore", ".gitignore"},
		{"placeholder file name yields empty", "null", "undefined.jpg", ""},
		{"nothing usable", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeTitle(tt.title, tt.fileName))
		})
	}
}

func TestResolveKind(t *testing.T) {
	tests := []struct {
		contentType string
		want        domain.AssetKind
	}{
		{"image/jpeg", domain.AssetKindImage},
		{"image/svg+xml", domain.AssetKindImage},
		{"video/mp4", domain.AssetKindVideo},
		{"audio/mpeg", domain.AssetKindAudio},
		{"application/pdf", domain.AssetKindDocument},
		{"text/csv", domain.AssetKindDocument},
		{"application/zip", domain.AssetKindArchive},
		{"application/octet-stream", domain.AssetKindOther},
		{"IMAGE/PNG", domain.AssetKindImage},
		{"text/plain; charset=utf-8", domain.AssetKindDocument},
		{"", domain.AssetKindOther},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ResolveKind(tt.contentType))
		})
	}
}
