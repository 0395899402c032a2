// Package staging holds admin-selected image files in memory between
// file selection and either removal or a successful upload. Nothing in
// here is ever persisted.
package staging

import (
	"sync"

	"github.com/google/uuid"
)

// File is an image handed to the buffer by the staging endpoints.
// OnRelease, when set, is invoked exactly once when the entry's
// preview resource is let go (removal, clear, or buffer teardown).
type File struct {
	Name        string
	ContentType string
	Data        []byte
	OnRelease   func()
}

// StagedImage is a buffered file wrapped with a local-only identifier.
// The identifier is never persisted.
type StagedImage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

type entry struct {
	img       StagedImage
	onRelease func()
	released  bool
}

func (e *entry) release() {
	if e.released {
		return
	}
	e.released = true
	e.img.Data = nil
	if e.onRelease != nil {
		e.onRelease()
	}
}

// Buffer is an ordered collection of staged images with a single
// designated cover index.
type Buffer struct {
	mu      sync.Mutex
	entries []*entry
	cover   int
}

// NewBuffer returns an empty buffer with cover index 0.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Add appends files in order, with no de-duplication across calls.
// If the buffer was empty before the add, the cover index resets to 0.
// The generated local identifiers are returned in input order.
func (b *Buffer) Add(files ...File) []StagedImage {
	b.mu.Lock()
	defer b.mu.Unlock()

	wasEmpty := len(b.entries) == 0

	added := make([]StagedImage, 0, len(files))
	for _, f := range files {
		e := &entry{
			img: StagedImage{
				ID:          uuid.NewString(),
				Name:        f.Name,
				ContentType: f.ContentType,
				Size:        int64(len(f.Data)),
				Data:        f.Data,
			},
			onRelease: f.OnRelease,
		}
		b.entries = append(b.entries, e)
		added = append(added, e.img)
	}

	if wasEmpty {
		b.cover = 0
	}
	return added
}

// Remove deletes the entry with the given local id, releasing its
// preview resource, and recomputes the cover index: removing the cover
// falls back to the first image rather than re-electing a neighbor.
func (b *Buffer) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i, e := range b.entries {
		if e.img.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	b.entries[idx].release()
	b.entries = append(b.entries[:idx], b.entries[idx+1:]...)

	switch {
	case len(b.entries) == 0:
		b.cover = 0
	case idx == b.cover:
		b.cover = 0
	case idx < b.cover:
		b.cover--
	default:
		if b.cover > len(b.entries)-1 {
			b.cover = len(b.entries) - 1
		}
	}
	return true
}

// Clear releases every preview resource and empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.entries {
		e.release()
	}
	b.entries = nil
	b.cover = 0
}

// SetCover sets the cover index unconditionally. Callers enumerate the
// current buffer to produce the index, so no bounds check happens here.
func (b *Buffer) SetCover(i int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cover = i
}

// Cover returns the current cover index (0 on an empty buffer).
func (b *Buffer) Cover() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cover
}

// Len returns the number of staged images.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Images returns the staged images in buffer order.
func (b *Buffer) Images() []StagedImage {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]StagedImage, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.img
	}
	return out
}

// Get returns the staged image with the given local id.
func (b *Buffer) Get(id string) (StagedImage, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.entries {
		if e.img.ID == id {
			return e.img, true
		}
	}
	return StagedImage{}, false
}
