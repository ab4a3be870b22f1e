// Package content maintains the in-memory model of a book while it is
// being assembled: metadata, registered resources, reading order and the
// deterministic manifest/spine projection used by rendering.
package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"epb/common"
)

// Defaults applied when the caller leaves metadata unset.
const (
	DefaultLanguage  = "en"
	DefaultGenerator = "epb"
	DefaultTocTitle  = "Table Of Contents"
)

// Metadata accumulates book-level description fields. Use NewMetadata,
// the zero value is missing defaults.
type Metadata struct {
	Title       string
	Authors     []string
	Language    string
	Description []string
	Subjects    []string
	License     string
	Generator   string
	TocTitle    string
	Date        time.Time
	Identifier  string

	// Now provides the generation timestamp when Date is unset.
	// Replaced in tests to pin output.
	Now func() time.Time
}

func NewMetadata() *Metadata {
	return &Metadata{
		Language:  DefaultLanguage,
		Generator: DefaultGenerator,
		TocTitle:  DefaultTocTitle,
		Now:       time.Now,
	}
}

// SetTitle sets the book title. The title is required and cannot be
// blank.
func (m *Metadata) SetTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return common.Validationf("book title cannot be empty")
	}
	m.Title = title
	return nil
}

// AddAuthor appends one author to the creator list.
func (m *Metadata) AddAuthor(name string) error {
	if strings.TrimSpace(name) == "" {
		return common.Validationf("author name cannot be empty")
	}
	m.Authors = append(m.Authors, name)
	return nil
}

// SetLanguage sets the book language after validating it is a
// well-formed BCP 47 tag. Renderers rely on it for hyphenation.
func (m *Metadata) SetLanguage(code string) error {
	if _, err := language.Parse(code); err != nil {
		return common.Validationf("invalid language code %q: %v", code, err)
	}
	m.Language = code
	return nil
}

// AddDescription appends one free-text description block.
func (m *Metadata) AddDescription(text string) {
	if text == "" {
		return
	}
	m.Description = append(m.Description, text)
}

// AddSubject appends one subject keyword.
func (m *Metadata) AddSubject(subject string) {
	if subject == "" {
		return
	}
	m.Subjects = append(m.Subjects, subject)
}

// SetIdentifier sets the unique book identifier, normally a URN-style
// value. Callers wanting reproducible output must supply their own,
// otherwise a fresh one is generated at first use.
func (m *Metadata) SetIdentifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return common.Validationf("book identifier cannot be empty")
	}
	m.Identifier = id
	return nil
}

// EnsureIdentifier returns the book identifier, generating a urn:uuid
// value if none was supplied. The generated value is kept in the store so
// repeated generations of the same book stay consistent.
func (m *Metadata) EnsureIdentifier() (string, error) {
	if m.Identifier != "" {
		return m.Identifier, nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("unable to generate book identifier: %w", err)
	}
	m.Identifier = "urn:uuid:" + id.String()
	return m.Identifier, nil
}

// GenerationDate returns the publication date in the W3C format the
// package document expects, falling back to the current time.
func (m *Metadata) GenerationDate() string {
	d := m.Date
	if d.IsZero() {
		d = m.Now()
	}
	return d.UTC().Format("2006-01-02T15:04:05Z")
}

// Validate checks the fields required at generation time.
func (m *Metadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return common.Validationf("book title is not set")
	}
	if m.Language == "" {
		return common.Validationf("book language is not set")
	}
	return nil
}
