package core

import "time"

// Note is the central entity of the domain.
// It is agnostic to storage format; the Codec decides how it is laid out.
type Note struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	UpdatedAt int64  `json:"updatedAt" yaml:"updatedAt"` // Unix milliseconds
}

// UpdatedTime returns UpdatedAt as a time.Time.
func (n Note) UpdatedTime() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// Patch describes a partial update of a Note.
// A nil field keeps the current value, a non-nil field replaces it.
type Patch struct {
	Title   *string
	Content *string
}

// SetTitle returns a Patch that replaces only the title.
func SetTitle(title string) Patch {
	return Patch{}.WithTitle(title)
}

// SetContent returns a Patch that replaces only the content.
func SetContent(content string) Patch {
	return Patch{}.WithContent(content)
}

// WithTitle returns a copy of p that also replaces the title.
func (p Patch) WithTitle(title string) Patch {
	p.Title = &title
	return p
}

// WithContent returns a copy of p that also replaces the content.
func (p Patch) WithContent(content string) Patch {
	p.Content = &content
	return p
}

// Empty reports whether the patch replaces no field.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

func (p Patch) apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
}
