package content

// ReferenceType marks a content document's structural role. It feeds the
// EPUB2 guide section and the EPUB3 landmarks navigation.
type ReferenceType int

const (
	RefNone ReferenceType = iota
	RefCover
	RefTitlePage
	RefToc
	RefIndex
	RefGlossary
	RefAcknowledgements
	RefBibliography
	RefColophon
	RefCopyright
	RefDedication
	RefEpigraph
	RefForeword
	RefLoi
	RefLot
	RefNotes
	RefPreface
	RefText
)

// GuideType returns the EPUB2 guide reference name.
func (rt ReferenceType) GuideType() string {
	switch rt {
	case RefCover:
		return "cover"
	case RefTitlePage:
		return "title-page"
	case RefToc:
		return "toc"
	case RefIndex:
		return "index"
	case RefGlossary:
		return "glossary"
	case RefAcknowledgements:
		return "acknowledgements"
	case RefBibliography:
		return "bibliography"
	case RefColophon:
		return "colophon"
	case RefCopyright:
		return "copyright"
	case RefDedication:
		return "dedication"
	case RefEpigraph:
		return "epigraph"
	case RefForeword:
		return "foreword"
	case RefLoi:
		return "loi"
	case RefLot:
		return "lot"
	case RefNotes:
		return "notes"
	case RefPreface:
		return "preface"
	case RefText:
		return "text"
	default:
		return ""
	}
}

// LandmarkType returns the EPUB3 landmarks epub:type value. A few names
// differ from the EPUB2 guide vocabulary.
func (rt ReferenceType) LandmarkType() string {
	switch rt {
	case RefText:
		return "bodymatter"
	case RefNotes:
		return "endnotes"
	case RefCopyright:
		return "copyright-page"
	case RefTitlePage:
		return "titlepage"
	default:
		return rt.GuideType()
	}
}

// Entry ties a content document into the reading order: its manifest
// identity plus display title, table-of-contents nesting level, linear
// flag and optional structural reference.
type Entry struct {
	Manifest ManifestEntry
	Title    string
	Level    int
	Linear   bool
	Ref      ReferenceType
}
