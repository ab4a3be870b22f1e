package render

import (
	"fmt"
	"strings"

	"epb/common"
	"epb/content"
	"epb/toc"
)

// CoverPage describes the generated cover page: the image href relative
// to the OEBPS directory and the viewport dimensions.
type CoverPage struct {
	Href   string
	Width  int
	Height int
}

// Model is everything rendering needs, borrowed from the builder for the
// duration of one generation. Rendering never mutates it.
type Model struct {
	Meta  *content.Metadata
	Book  *content.Assembled
	Toc   []*toc.Node
	Cover *CoverPage
}

// Renderer binds assembled models into the textual artifacts through an
// Engine. The four document operations are independent and
// order-insensitive.
type Renderer struct {
	engine  Engine
	version common.Version
}

func New(engine Engine, version common.Version) *Renderer {
	return &Renderer{engine: engine, version: version}
}

// Container renders the root pointer document identifying the package
// document path.
func (r *Renderer) Container() (string, error) {
	return r.engine.Render(TplContainer, struct{ PackagePath string }{content.PathPackage})
}

type authorBinding struct {
	ID   int
	Name string
}

type manifestBinding struct {
	ID         string
	Href       string
	MediaType  string
	Properties string
}

type refBinding struct {
	Type  string
	Title string
	Href  string
}

type packageBinding struct {
	Title        string
	Identifier   string
	Language     string
	Date         string
	Modified     string
	Generator    string
	Authors      []authorBinding
	Descriptions []string
	Subjects     []string
	License      string
	CoverID      string
	Manifest     []manifestBinding
	Spine        []content.ItemRef
	Guide        []refBinding
}

// Package renders the package document: every manifest entry with
// id/path/media-type, the ordered spine with linear flags, and the
// version-specific metadata and guide sections.
func (r *Renderer) Package(m *Model) (string, error) {
	b := packageBinding{
		Title:      common.EscapeText(m.Meta.Title),
		Identifier: common.EscapeText(m.Meta.Identifier),
		Language:   common.EscapeText(m.Meta.Language),
		Date:       m.Meta.GenerationDate(),
		Modified:   m.Meta.GenerationDate(),
		Generator:  common.EscapeText(m.Meta.Generator),
		License:    common.EscapeText(m.Meta.License),
		CoverID:    m.Book.CoverID,
		Spine:      m.Book.Spine,
	}
	for i, a := range m.Meta.Authors {
		b.Authors = append(b.Authors, authorBinding{ID: i, Name: common.EscapeText(a)})
	}
	for _, d := range m.Meta.Description {
		b.Descriptions = append(b.Descriptions, common.EscapeText(d))
	}
	for _, s := range m.Meta.Subjects {
		b.Subjects = append(b.Subjects, common.EscapeText(s))
	}
	for _, e := range m.Book.Manifest {
		mb := manifestBinding{
			ID:        e.ID,
			Href:      common.EscapeText(e.Path),
			MediaType: e.MediaType,
		}
		if r.version == common.V3 {
			switch e.ID {
			case m.Book.CoverID:
				mb.Properties = "cover-image"
			case content.IDCoverPage:
				mb.Properties = "svg"
			}
		}
		b.Manifest = append(b.Manifest, mb)
	}

	name := TplPackageV2
	if r.version == common.V3 {
		name = TplPackageV3
	} else {
		for _, ref := range m.Book.References {
			b.Guide = append(b.Guide, refBinding{
				Type:  ref.Ref.GuideType(),
				Title: common.EscapeText(ref.Title),
				Href:  common.EscapeText(ref.Href),
			})
		}
	}
	return r.engine.Render(name, &b)
}

// LegacyToc renders the flattened, sequentially numbered navigation
// document (NCX). Nesting survives through navPoint containment,
// numbering through playOrder.
func (r *Renderer) LegacyToc(m *Model) (string, error) {
	depth := toc.Depth(m.Toc)
	if depth == 0 {
		depth = 1
	}
	next := 0
	return r.engine.Render(TplNCX, struct {
		Identifier string
		Title      string
		Depth      int
		NavPoints  string
	}{
		Identifier: common.EscapeText(m.Meta.Identifier),
		Title:      common.EscapeText(m.Meta.Title),
		Depth:      depth,
		NavPoints:  navPoints(m.Toc, 2, &next),
	})
}

type navBinding struct {
	TocTitle  string
	Entries   string
	Landmarks []refBinding
}

// Nav renders the hierarchical navigation document mirroring the toc
// tree. The EPUB3 variant also carries the landmarks section.
func (r *Renderer) Nav(m *Model) (string, error) {
	b := navBinding{
		TocTitle: common.EscapeText(m.Meta.TocTitle),
		Entries:  entryList(m.Toc, 2),
	}
	name := TplNavV2
	if r.version == common.V3 {
		name = TplNavV3
		for _, ref := range m.Book.References {
			if ref.Title == "" {
				continue
			}
			b.Landmarks = append(b.Landmarks, refBinding{
				Type:  ref.Ref.LandmarkType(),
				Title: common.EscapeText(ref.Title),
				Href:  common.EscapeText(ref.Href),
			})
		}
	}
	return r.engine.Render(name, &b)
}

// InlineTocPage renders the in-book table-of-contents page.
func (r *Renderer) InlineTocPage(m *Model) (string, error) {
	return r.engine.Render(TplInlineToc, &navBinding{
		TocTitle: common.EscapeText(m.Meta.TocTitle),
		Entries:  entryList(m.Toc, 2),
	})
}

// CoverPageDoc renders the generated cover page wrapping the cover image
// in an SVG viewport.
func (r *Renderer) CoverPageDoc(m *Model) (string, error) {
	if m.Cover == nil {
		return "", common.MissingCover()
	}
	return r.engine.Render(TplCoverPage, struct {
		Title  string
		Href   string
		Width  int
		Height int
	}{
		Title:  common.EscapeText(m.Meta.Title),
		Href:   common.EscapeText(m.Cover.Href),
		Width:  m.Cover.Width,
		Height: m.Cover.Height,
	})
}

// navPoints builds the nested navPoint sequence for the NCX navMap. next
// numbers nodes depth-first, one playOrder per node.
func navPoints(forest []*toc.Node, indent int, next *int) string {
	var b strings.Builder
	pad := strings.Repeat("  ", indent)
	for _, n := range forest {
		*next++
		id := *next
		fmt.Fprintf(&b, "%s<navPoint id=\"navPoint-%d\" playOrder=\"%d\">\n", pad, id, id)
		fmt.Fprintf(&b, "%s  <navLabel><text>%s</text></navLabel>\n", pad, common.EscapeText(n.Title))
		fmt.Fprintf(&b, "%s  <content src=\"%s\"/>\n", pad, common.EscapeText(n.Target))
		b.WriteString(navPoints(n.Children, indent+1, next))
		fmt.Fprintf(&b, "%s</navPoint>\n", pad)
	}
	return b.String()
}

// entryList builds the nested ordered list for the navigation documents.
func entryList(forest []*toc.Node, indent int) string {
	if len(forest) == 0 {
		return ""
	}
	var b strings.Builder
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(&b, "%s<ol class=\"toc-list\">\n", pad)
	for _, n := range forest {
		fmt.Fprintf(&b, "%s  <li><a href=\"%s\">%s</a>\n", pad, common.EscapeText(n.Target), common.EscapeText(n.Title))
		b.WriteString(entryList(n.Children, indent+2))
		fmt.Fprintf(&b, "%s  </li>\n", pad)
	}
	fmt.Fprintf(&b, "%s</ol>\n", pad)
	return b.String()
}
