// Package gallery derives display-ready image lists and holds the
// rotating index used by the carousels. Index state is purely local to
// a view and never persisted.
package gallery

import "sort"

// Image is the minimal shape the gallery cares about.
type Image struct {
	URL     string `json:"url"`
	IsCover bool   `json:"is_cover"`
}

// Options control per-call-site derivation differences: the detail
// page de-duplicates by URL, the home grid caps the list instead.
type Options struct {
	Dedupe bool
	// Cap limits the derived list length; 0 means no cap.
	Cap int
}

// Derive filters out entries without a URL and stable-sorts cover
// images first, keeping relative order among ties. A nil or empty
// input yields an empty list; callers render their own placeholder.
func Derive(images []Image, opts Options) []Image {
	list := make([]Image, 0, len(images))
	for _, img := range images {
		if img.URL == "" {
			continue
		}
		list = append(list, img)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].IsCover && !list[j].IsCover
	})

	if opts.Dedupe {
		seen := make(map[string]struct{}, len(list))
		deduped := list[:0]
		for _, img := range list {
			if _, ok := seen[img.URL]; ok {
				continue
			}
			seen[img.URL] = struct{}{}
			deduped = append(deduped, img)
		}
		list = deduped
	}

	if opts.Cap > 0 && len(list) > opts.Cap {
		list = list[:opts.Cap]
	}
	return list
}

// Carousel rotates an index over a derived list. It backs client-side
// gallery rendering rather than an HTTP route: handlers ship the
// derived list and the front end steps through it. The zero value is
// an empty carousel.
type Carousel struct {
	images []Image
	idx    int
}

// NewCarousel builds a carousel over an already-derived list, starting
// at index 0.
func NewCarousel(images []Image) *Carousel {
	return &Carousel{images: images}
}

// Len returns the number of images.
func (c *Carousel) Len() int {
	return len(c.images)
}

// Index returns the current position.
func (c *Carousel) Index() int {
	return c.idx
}

// Current returns the image at the current index. The second return is
// false when the carousel is empty, in which case nothing should be
// rendered.
func (c *Carousel) Current() (Image, bool) {
	if len(c.images) == 0 {
		return Image{}, false
	}
	return c.images[c.idx], true
}

// HasMany reports whether navigation controls should be shown.
func (c *Carousel) HasMany() bool {
	return len(c.images) > 1
}

// Next advances one position, wrapping to the start.
func (c *Carousel) Next() {
	if !c.HasMany() {
		return
	}
	c.idx = (c.idx + 1) % len(c.images)
}

// Prev steps back one position, wrapping to the end.
func (c *Carousel) Prev() {
	if !c.HasMany() {
		return
	}
	c.idx = (c.idx - 1 + len(c.images)) % len(c.images)
}

// GoTo jumps straight to i. Indices outside the list are ignored.
func (c *Carousel) GoTo(i int) {
	if i < 0 || i >= len(c.images) {
		return
	}
	c.idx = i
}
