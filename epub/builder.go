// Package epub is the assembly facade: callers describe a book through
// the Builder and generate the packaged archive any number of times.
package epub

import (
	"time"

	"go.uber.org/zap"

	"epb/common"
	"epb/content"
	"epb/pack"
	"epb/render"
	"epb/toc"
)

// Builder accumulates the description of one book. It is not safe for
// concurrent use; one goroutine owns a builder at a time.
type Builder struct {
	version  common.Version
	meta     *content.Metadata
	registry *content.Registry
	entries  []content.Entry
	tocRows  []toc.Entry

	packager pack.Packager
	engine   render.Engine
	log      *zap.Logger

	coverPage bool
	inlineToc bool
	engineErr error
}

// Option configures a Builder at construction time.
type Option func(*Builder)

func WithVersion(v common.Version) Option {
	return func(b *Builder) { b.version = v }
}

func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// WithEngine replaces the default template engine. The engine must know
// the render package's document template names.
func WithEngine(e render.Engine) Option {
	return func(b *Builder) { b.engine = e }
}

// New creates a builder writing through p. The default configuration
// targets EPUB2 with the built-in templates.
func New(p pack.Packager, opts ...Option) *Builder {
	b := &Builder{
		version:  common.V2,
		meta:     content.NewMetadata(),
		registry: content.NewRegistry(),
		packager: p,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(b)
	}
	if b.engine == nil {
		b.engine, b.engineErr = render.NewTemplateSet()
	}
	return b
}

// Content describes one content document before it is added. The
// with-methods return the receiver for chaining.
type Content struct {
	path  string
	data  []byte
	title string
	level int
	skip  bool
	ref   content.ReferenceType
}

// NewContent starts the description of a content document at an
// OEBPS-relative path.
func NewContent(path string, data []byte) *Content {
	return &Content{path: path, data: data}
}

// WithTitle names the document in the table of contents. Untitled
// documents stay out of the rendered tree but keep their nesting level.
func (c *Content) WithTitle(title string) *Content {
	c.title = title
	return c
}

// WithLevel sets the table-of-contents nesting level, 1 by default.
func (c *Content) WithLevel(level int) *Content {
	c.level = level
	return c
}

// NonLinear excludes the document from the linear reading order. It
// stays in the spine, tagged for readers to skip.
func (c *Content) NonLinear() *Content {
	c.skip = true
	return c
}

// WithReference marks the document's structural role for the guide and
// landmarks sections.
func (c *Content) WithReference(ref content.ReferenceType) *Content {
	c.ref = ref
	return c
}

// AddContent registers a content document and appends it to the reading
// order.
func (b *Builder) AddContent(c *Content) error {
	level := c.level
	if level < 1 {
		level = 1
	}
	entry, err := b.registry.Add(c.path, c.data, common.MediaTypeXHTML, content.RoleContent)
	if err != nil {
		return err
	}
	b.entries = append(b.entries, content.Entry{
		Manifest: entry,
		Title:    c.title,
		Level:    level,
		Linear:   !c.skip,
		Ref:      c.ref,
	})
	b.tocRows = append(b.tocRows, toc.Entry{Title: c.title, Target: entry.Path, Level: level})
	b.log.Debug("content added", zap.String("path", entry.Path), zap.String("id", entry.ID))
	return nil
}

// AddResource registers an auxiliary resource (image, font, stylesheet)
// at an OEBPS-relative path. An empty mediaType is detected from the
// payload.
func (b *Builder) AddResource(path string, data []byte, mediaType string) error {
	if mediaType == "" {
		mediaType = common.DetectMediaType(path, data)
	}
	_, err := b.registry.Add(path, data, mediaType, content.RoleForMediaType(mediaType))
	return err
}

// AddStylesheet registers the shared stylesheet the generated pages
// link. The path is fixed; calling it twice is a path collision. When no
// stylesheet is registered, generation carries an empty one without
// touching the builder state.
func (b *Builder) AddStylesheet(data []byte) error {
	_, err := b.registry.Add(content.RelStylesheet, data, common.MediaTypeCSS, content.RoleStylesheet)
	return err
}

// AddCoverImage registers the cover image. A book holds at most one.
func (b *Builder) AddCoverImage(path string, data []byte, mediaType string) error {
	if mediaType == "" {
		mediaType = common.DetectMediaType(path, data)
	}
	_, err := b.registry.Add(path, data, mediaType, content.RoleCover)
	return err
}

// CoverPage requests a generated cover page fronting the spine. It
// requires a registered cover image at generation time.
func (b *Builder) CoverPage() {
	b.coverPage = true
}

// InlineToc appends a generated table-of-contents page to the reading
// order at the position of the call.
func (b *Builder) InlineToc() {
	if b.inlineToc {
		return
	}
	b.inlineToc = true
	entry := content.ManifestEntry{
		ID:        content.IDInlineToc,
		Path:      "toc.xhtml",
		MediaType: common.MediaTypeXHTML,
	}
	b.entries = append(b.entries, content.Entry{
		Manifest: entry,
		Title:    b.meta.TocTitle,
		Level:    1,
		Linear:   true,
		Ref:      content.RefToc,
	})
	b.tocRows = append(b.tocRows, toc.Entry{Title: b.meta.TocTitle, Target: entry.Path, Level: 1})
}

// AddTocEntry appends a table-of-contents row pointing anywhere inside
// the book, typically at a #fragment of a registered document.
func (b *Builder) AddTocEntry(title, target string, level int) error {
	if title == "" {
		return common.Validationf("toc entry title cannot be empty")
	}
	if level < 1 {
		level = 1
	}
	b.tocRows = append(b.tocRows, toc.Entry{Title: title, Target: target, Level: level})
	return nil
}

// Metadata delegations.

func (b *Builder) SetTitle(title string) error   { return b.meta.SetTitle(title) }
func (b *Builder) AddAuthor(name string) error   { return b.meta.AddAuthor(name) }
func (b *Builder) SetLanguage(code string) error { return b.meta.SetLanguage(code) }
func (b *Builder) SetIdentifier(id string) error { return b.meta.SetIdentifier(id) }
func (b *Builder) AddDescription(text string)    { b.meta.AddDescription(text) }
func (b *Builder) AddSubject(subject string)     { b.meta.AddSubject(subject) }
func (b *Builder) SetLicense(license string)     { b.meta.License = license }
func (b *Builder) SetGenerator(generator string) { b.meta.Generator = generator }
func (b *Builder) SetDate(d time.Time)           { b.meta.Date = d }

// SetTocTitle names the table of contents in the generated navigation
// documents.
func (b *Builder) SetTocTitle(title string) {
	b.meta.TocTitle = title
}

// UseMetadata replaces the whole metadata store, typically one loaded
// with content.MetadataFromYAML.
func (b *Builder) UseMetadata(m *content.Metadata) {
	if m != nil {
		b.meta = m
	}
}

// Metadata exposes the underlying store for direct inspection.
func (b *Builder) Metadata() *content.Metadata {
	return b.meta
}
