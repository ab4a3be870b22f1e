package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/gosimple/slug"

	"epb/common"
)

// Internal archive layout. Caller resources and generated documents live
// under the OEBPS directory; registry paths are kept OEBPS-relative.
const (
	RootDir       = "OEBPS"
	PathMimetype  = "mimetype"
	PathContainer = "META-INF/container.xml"
	PathPackage   = RootDir + "/content.opf"
	PathNCX       = RootDir + "/toc.ncx"
	PathNav       = RootDir + "/nav.xhtml"
	PathInlineToc = RootDir + "/toc.xhtml"
	PathCoverPage = RootDir + "/cover.xhtml"

	// RelStylesheet is the registry-relative path of the shared
	// stylesheet the generated pages link.
	RelStylesheet = "stylesheet.css"
)

// Manifest identifiers of the generated documents.
const (
	IDNCX        = "ncx"
	IDNav        = "nav"
	IDCoverPage  = "cover-page"
	IDInlineToc  = "inline-toc"
	IDStylesheet = "stylesheet"
)

// OEBPS-relative paths reserved for generated artifacts. Registering a
// resource at one of these is a path collision.
var reservedPaths = map[string]struct{}{
	"content.opf": {},
	"toc.ncx":     {},
	"nav.xhtml":   {},
	"toc.xhtml":   {},
	"cover.xhtml": {},
}

// Role describes what a registered resource is used for. Only the cover
// role carries behavior (the one-cover invariant and package document
// cover metadata); the others classify.
type Role int

const (
	RoleContent Role = iota
	RoleStylesheet
	RoleImage
	RoleFont
	RoleCover
)

func (r Role) String() string {
	switch r {
	case RoleContent:
		return "content-document"
	case RoleStylesheet:
		return "stylesheet"
	case RoleImage:
		return "image"
	case RoleFont:
		return "font"
	case RoleCover:
		return "cover-image"
	default:
		return fmt.Sprintf("unknown role (%d)", int(r))
	}
}

// RoleForMediaType classifies a resource whose role the caller did not
// state. Opaque binaries land in the image bucket, it carries no
// behavior.
func RoleForMediaType(mediaType string) Role {
	switch {
	case mediaType == common.MediaTypeCSS:
		return RoleStylesheet
	case mediaType == common.MediaTypeXHTML:
		return RoleContent
	case strings.HasPrefix(mediaType, "font/"),
		strings.HasPrefix(mediaType, "application/font"),
		strings.HasPrefix(mediaType, "application/x-font"):
		return RoleFont
	default:
		return RoleImage
	}
}

// ManifestEntry identifies one resource in the package document. Entries
// are created exactly once at registration and immutable afterwards.
type ManifestEntry struct {
	ID        string
	Path      string // OEBPS-relative, forward slashes
	MediaType string
}

// Resource is any payload embedded in the final archive.
type Resource struct {
	Entry ManifestEntry
	Data  []byte
	Role  Role
}

// ArchivePath returns the full path of the resource inside the archive.
func (r *Resource) ArchivePath() string {
	return path.Join(RootDir, r.Entry.Path)
}

// Registry tracks every resource added to a book. It performs no I/O;
// path collisions and cover duplication are detected at registration
// time and a failed registration leaves the registry unchanged.
type Registry struct {
	resources []Resource
	byPath    map[string]int
	coverIdx  int
	lastID    int
}

func NewRegistry() *Registry {
	return &Registry{byPath: make(map[string]int), coverIdx: -1}
}

// NextID issues a strictly increasing manifest identifier derived from
// name. Issued identifiers are never reused, even if the originating
// resource is considered removed later.
func (r *Registry) NextID(name string) string {
	r.lastID++
	base := slug.Make(strings.TrimSuffix(path.Base(name), path.Ext(name)))
	if base == "" {
		base = "item"
	}
	return fmt.Sprintf("%s-%03d", base, r.lastID)
}

// Add registers a resource under its OEBPS-relative path. An empty
// mediaType is detected from the payload. The returned entry is the
// immutable manifest identity of the resource.
func (r *Registry) Add(p string, data []byte, mediaType string, role Role) (ManifestEntry, error) {
	clean, err := normalizePath(p)
	if err != nil {
		return ManifestEntry{}, err
	}
	if _, reserved := reservedPaths[clean]; reserved {
		return ManifestEntry{}, common.DuplicatePath(clean)
	}
	if _, exists := r.byPath[clean]; exists {
		return ManifestEntry{}, common.DuplicatePath(clean)
	}
	if role == RoleCover && r.coverIdx >= 0 {
		return ManifestEntry{}, common.MultipleCovers(clean)
	}

	if mediaType == "" {
		mediaType = common.DetectMediaType(clean, data)
	}
	entry := ManifestEntry{ID: r.NextID(clean), Path: clean, MediaType: mediaType}

	r.byPath[clean] = len(r.resources)
	if role == RoleCover {
		r.coverIdx = len(r.resources)
	}
	r.resources = append(r.resources, Resource{Entry: entry, Data: data, Role: role})
	return entry, nil
}

// Resources returns the registered resources in registration order. The
// slice is borrowed, callers must not mutate it.
func (r *Registry) Resources() []Resource {
	return r.resources
}

// Cover returns the registered cover image resource, if any.
func (r *Registry) Cover() (*Resource, bool) {
	if r.coverIdx < 0 {
		return nil, false
	}
	return &r.resources[r.coverIdx], true
}

// HasPath reports whether an OEBPS-relative path is registered.
func (r *Registry) HasPath(p string) bool {
	_, ok := r.byPath[p]
	return ok
}

// Lookup returns the resource registered at an OEBPS-relative path.
func (r *Registry) Lookup(p string) (*Resource, bool) {
	i, ok := r.byPath[p]
	if !ok {
		return nil, false
	}
	return &r.resources[i], true
}

// normalizePath cleans a caller-supplied resource path and rejects
// anything that could escape the OEBPS directory.
func normalizePath(p string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(strings.TrimSpace(p), `\`, "/"))
	if clean == "" || clean == "." {
		return "", common.Validationf("resource path cannot be empty")
	}
	if strings.HasPrefix(clean, "/") || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", common.Validationf("unsafe resource path %q", p)
	}
	return clean, nil
}
