package movies

import (
	"strings"
)

const (
	// DefaultImageBaseURL is the image host of the movie database
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	// DefaultPlaceholder is served locally when a movie has no image
	DefaultPlaceholder = "/placeholder-movie.svg"

	// SizePoster is the default poster width
	SizePoster = "w500"
	// SizeThumbnail is used for posters next to other content
	SizeThumbnail = "w300"
	// SizeBackdrop is used for full-width backdrops
	SizeBackdrop = "w1280"
	// SizeOriginal requests the untouched upload
	SizeOriginal = "original"
)

// ImageResolver builds image URLs from the paths found in movie records
type ImageResolver struct {
	BaseURL     string
	Placeholder string
}

// NewImageResolver creates a resolver, falling back to the defaults for empty values
func NewImageResolver(baseURL, placeholder string) ImageResolver {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultImageBaseURL
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return ImageResolver{BaseURL: baseURL, Placeholder: placeholder}
}

// URL returns the image URL for path at the given size, or the placeholder
// when the path is empty. An empty size means SizePoster.
func (r ImageResolver) URL(path, size string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return r.Placeholder
	}
	if size == "" {
		size = SizePoster
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.BaseURL + "/" + size + path
}

var defaultResolver = NewImageResolver("", "")

// BuildImageURL resolves an image path against the default image host
func BuildImageURL(path, size string) string {
	return defaultResolver.URL(path, size)
}
