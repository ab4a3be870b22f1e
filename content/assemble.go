package content

import (
	"epb/common"
)

// ItemRef is one spine position: a manifest identifier plus the linear
// flag. Non-linear items stay reachable by reference only.
type ItemRef struct {
	IDRef  string
	Linear bool
}

// Reference marks one document for the guide (EPUB2) or landmarks
// (EPUB3) section.
type Reference struct {
	Ref   ReferenceType
	Title string
	Href  string
}

// Assembled is the deterministic projection of the registry and the
// content-entry sequence that document rendering consumes. Manifest
// order equals registration order, spine order equals content insertion
// order.
type Assembled struct {
	Manifest   []ManifestEntry
	Spine      []ItemRef
	References []Reference

	// CoverID is the manifest identifier of the registered cover
	// image, empty when the book has none.
	CoverID string
	// CoverPage reports whether a generated cover page fronts the
	// spine.
	CoverPage bool
}

// AssembleOptions carries the caller's generation-time requests.
type AssembleOptions struct {
	// CoverPage requests the generated cover page. It requires a
	// registered cover image.
	CoverPage bool

	// Extra lists generation-local artifacts that never enter the
	// registry (the default stylesheet). They join the manifest after
	// the registered resources.
	Extra []ManifestEntry
}

// Assemble derives the manifest and spine from the registry and the
// ordered content entries. A book with no content documents is rejected:
// its spine would be empty.
func Assemble(reg *Registry, entries []Entry, opts AssembleOptions) (*Assembled, error) {
	if len(entries) == 0 {
		return nil, common.Validationf("book has no content documents")
	}
	cover, hasCover := reg.Cover()
	if opts.CoverPage && !hasCover {
		return nil, common.MissingCover()
	}

	a := &Assembled{CoverPage: opts.CoverPage}
	if hasCover {
		a.CoverID = cover.Entry.ID
	}

	for _, res := range reg.Resources() {
		a.Manifest = append(a.Manifest, res.Entry)
	}
	// Generated documents that participate in the spine but are not
	// registry resources (the inline toc page) still need manifest
	// identities.
	for _, e := range entries {
		if !reg.HasPath(e.Manifest.Path) {
			a.Manifest = append(a.Manifest, e.Manifest)
		}
	}
	a.Manifest = append(a.Manifest, opts.Extra...)
	if opts.CoverPage {
		a.Manifest = append(a.Manifest, ManifestEntry{
			ID:        IDCoverPage,
			Path:      "cover.xhtml",
			MediaType: common.MediaTypeXHTML,
		})
		a.Spine = append(a.Spine, ItemRef{IDRef: IDCoverPage, Linear: true})
		a.References = append(a.References, Reference{Ref: RefCover, Title: "Cover", Href: "cover.xhtml"})
	}

	for _, e := range entries {
		a.Spine = append(a.Spine, ItemRef{IDRef: e.Manifest.ID, Linear: e.Linear})
		if e.Ref != RefNone {
			a.References = append(a.References, Reference{Ref: e.Ref, Title: e.Title, Href: e.Manifest.Path})
		}
	}
	return a, nil
}
