package media

import (
	"net/url"
	"regexp"
	"strings"
)

// videoIDPattern matches the 11-character id at the end of the common YouTube URL shapes.
var videoIDPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

var idChars = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ResolveVideoID extracts the YouTube video id from a source URL.
// PRE: none
// POST: returns ("", false) when raw is empty or no id can be found
func ResolveVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		host := strings.ToLower(u.Hostname())
		switch {
		case host == "youtu.be":
			return validID(strings.Trim(u.Path, "/"))
		case strings.HasSuffix(host, "youtube.com"):
			if v := u.Query().Get("v"); v != "" {
				return validID(v)
			}
			parts := strings.Split(strings.Trim(u.Path, "/"), "/")
			if len(parts) >= 2 {
				switch parts[0] {
				case "embed", "v", "e", "shorts", "live":
					return validID(parts[1])
				}
			}
			return "", false
		}
	}

	if m := videoIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}

func validID(id string) (string, bool) {
	if id == "" || !idChars.MatchString(id) {
		return "", false
	}
	return id, true
}

// EmbedURL returns the iframe source for a video id.
func EmbedURL(id string, autoplay bool) string {
	u := "https://www.youtube.com/embed/" + id
	if autoplay {
		u += "?autoplay=1"
	}
	return u
}

// ThumbnailURL returns the high-quality still for a video id.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
