package media_test

import (
	"testing"

	"fitstudio/internal/domain/media"
)

// TestResolveVideoID covers the URL shapes episodes and testimonials use.
func TestResolveVideoID(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantID string
		wantOK bool
	}{
		{"empty", "", "", false},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch link", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"mobile watch link", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed link", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"shorts link", "https://youtube.com/shorts/abcdefghijk", "abcdefghijk", true},
		{"scheme-less falls back to pattern", "youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"channel page", "https://www.youtube.com/@dennisonfitness", "", false},
		{"other host", "https://vimeo.com/123456", "", false},
		{"garbage", "not a url", "", false},
		{"bad characters", "https://youtu.be/<script>", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := media.ResolveVideoID(tt.raw)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ResolveVideoID(%q) = (%q, %v), want (%q, %v)", tt.raw, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

// TestEmbedAndThumbnailURL tests URL construction.
func TestEmbedAndThumbnailURL(t *testing.T) {
	if got := media.EmbedURL("abc", false); got != "https://www.youtube.com/embed/abc" {
		t.Errorf("EmbedURL = %q", got)
	}
	if got := media.EmbedURL("abc", true); got != "https://www.youtube.com/embed/abc?autoplay=1" {
		t.Errorf("EmbedURL autoplay = %q", got)
	}
	if got := media.ThumbnailURL("abc"); got != "https://img.youtube.com/vi/abc/hqdefault.jpg" {
		t.Errorf("ThumbnailURL = %q", got)
	}
}
