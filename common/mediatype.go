package common

import (
	"path"
	"strings"

	"github.com/h2non/filetype"
)

// Media types of the generated artifacts and common resource payloads.
const (
	MediaTypeEpub    = "application/epub+zip"
	MediaTypePackage = "application/oebps-package+xml"
	MediaTypeXHTML   = "application/xhtml+xml"
	MediaTypeNCX     = "application/x-dtbncx+xml"
	MediaTypeCSS     = "text/css"
	MediaTypeSVG     = "image/svg+xml"
	MediaTypeOctet   = "application/octet-stream"
)

// Extension fallbacks for text formats content sniffing cannot see.
var extMediaTypes = map[string]string{
	".xhtml": MediaTypeXHTML,
	".html":  MediaTypeXHTML,
	".htm":   MediaTypeXHTML,
	".css":   MediaTypeCSS,
	".svg":   MediaTypeSVG,
	".js":    "text/javascript",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".mp3":   "audio/mpeg",
}

// DetectMediaType returns the media type for a resource the caller did
// not classify. Magic-byte sniffing wins for binary payloads, the
// extension map covers the text formats, anything else is an opaque
// binary.
func DetectMediaType(p string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if mt, ok := extMediaTypes[strings.ToLower(path.Ext(p))]; ok {
		return mt
	}
	return MediaTypeOctet
}
