package media

import (
	"path"
	"strings"
)

// extTypes maps lowercase file extensions to media types.
var extTypes = map[string]Type{
	// Video
	".mp4":  TypeVideo,
	".m4v":  TypeVideo,
	".webm": TypeVideo,
	".mkv":  TypeVideo,
	".avi":  TypeVideo,
	".mov":  TypeVideo,
	".ogv":  TypeVideo,
	".ts":   TypeVideo,
	// Image
	".jpg":  TypeImage,
	".jpeg": TypeImage,
	".png":  TypeImage,
	".gif":  TypeImage,
	".webp": TypeImage,
	".bmp":  TypeImage,
	".svg":  TypeImage,
	".avif": TypeImage,
	// Audio
	".mp3":  TypeAudio,
	".wav":  TypeAudio,
	".flac": TypeAudio,
	".ogg":  TypeAudio,
	".oga":  TypeAudio,
	".m4a":  TypeAudio,
	".aac":  TypeAudio,
	".opus": TypeAudio,
}

// urlPatterns maps URL substrings to media types, for sources that carry
// no useful extension (streaming sites, share links).
var urlPatterns = []struct {
	substr string
	t      Type
}{
	{"youtube.com/", TypeVideo},
	{"youtu.be/", TypeVideo},
	{"vimeo.com/", TypeVideo},
	{"twitch.tv/", TypeVideo},
	{"soundcloud.com/", TypeAudio},
	{"imgur.com/", TypeImage},
}

// Detect infers the media type of a source from its file extension or from
// known URL patterns. Returns TypeVideo when the type cannot be determined.
func Detect(source string) Type {
	s := strings.ToLower(strings.TrimSpace(source))

	// Strip query string and fragment so extension lookup works on URLs.
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	if t, ok := extTypes[path.Ext(s)]; ok {
		return t
	}

	for _, p := range urlPatterns {
		if strings.Contains(s, p.substr) {
			return p.t
		}
	}

	return TypeVideo
}
