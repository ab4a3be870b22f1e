package epub

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"epb/common"
	"epb/content"
	"epb/pack"
	"epb/render"
	"epb/toc"
)

// Fallback cover viewport when the image cannot be decoded.
const (
	fallbackCoverWidth  = 600
	fallbackCoverHeight = 800
)

// Generate renders and packages the book into w. It can be called again
// after further mutation; every call produces a complete archive
// reflecting the builder state at that moment. On failure nothing
// observable is written to w.
func (b *Builder) Generate(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.engineErr != nil {
		return common.TemplateError("builtin", b.engineErr)
	}
	if err := b.meta.Validate(); err != nil {
		return err
	}
	if _, err := b.meta.EnsureIdentifier(); err != nil {
		return err
	}

	tree, err := toc.Build(b.tocRows, func(p string) bool {
		return b.registry.HasPath(p) || (b.inlineToc && p == "toc.xhtml")
	})
	if err != nil {
		return err
	}

	opts := content.AssembleOptions{CoverPage: b.coverPage}
	// The generated pages link stylesheet.css unconditionally. When the
	// caller registered none, this generation carries an empty one; the
	// builder state stays untouched.
	defaultCSS := !b.registry.HasPath(content.RelStylesheet)
	if defaultCSS {
		opts.Extra = append(opts.Extra, content.ManifestEntry{
			ID:        content.IDStylesheet,
			Path:      content.RelStylesheet,
			MediaType: common.MediaTypeCSS,
		})
	}

	book, err := content.Assemble(b.registry, b.entries, opts)
	if err != nil {
		return err
	}

	model := &render.Model{Meta: b.meta, Book: book, Toc: tree}
	if b.coverPage {
		model.Cover = b.coverViewport()
	}

	r := render.New(b.engine, b.version)

	type doc struct {
		path   string
		render func() (string, error)
	}
	docs := []doc{
		{content.PathContainer, r.Container},
		{content.PathPackage, func() (string, error) { return r.Package(model) }},
		{content.PathNCX, func() (string, error) { return r.LegacyToc(model) }},
		{content.PathNav, func() (string, error) { return r.Nav(model) }},
	}
	if b.inlineToc {
		docs = append(docs, doc{content.PathInlineToc, func() (string, error) { return r.InlineTocPage(model) }})
	}
	if b.coverPage {
		docs = append(docs, doc{content.PathCoverPage, func() (string, error) { return r.CoverPageDoc(model) }})
	}

	entries := make([]pack.Entry, 0, len(docs)+len(b.registry.Resources()))
	for _, d := range docs {
		text, err := d.render()
		if err != nil {
			return err
		}
		entries = append(entries, pack.Entry{Name: d.path, Data: []byte(text)})
	}
	for _, res := range b.registry.Resources() {
		entries = append(entries, pack.Entry{Name: res.ArchivePath(), Data: res.Data})
	}
	if defaultCSS {
		entries = append(entries, pack.Entry{Name: path.Join(content.RootDir, content.RelStylesheet)})
	}

	first := pack.Entry{Name: content.PathMimetype, Data: []byte(common.MediaTypeEpub)}
	return pack.NewChecked(b.packager, b.log).Package(ctx, first, entries, w)
}

// coverViewport measures the registered cover image for the generated
// cover page. An undecodable image falls back to a portrait viewport.
func (b *Builder) coverViewport() *render.CoverPage {
	cover, ok := b.registry.Cover()
	if !ok {
		return nil
	}
	cp := &render.CoverPage{
		Href:   cover.Entry.Path,
		Width:  fallbackCoverWidth,
		Height: fallbackCoverHeight,
	}
	img, err := imaging.Decode(bytes.NewReader(cover.Data))
	if err != nil {
		b.log.Warn("unable to measure cover image, using fallback viewport",
			zap.String("path", cover.Entry.Path), zap.Error(err))
		return cp
	}
	bounds := img.Bounds()
	cp.Width, cp.Height = bounds.Dx(), bounds.Dy()
	return cp
}
