package common

// Version selects the EPUB revision the package and navigation documents
// are rendered for.
type Version int

const (
	// V2 is EPUB 2.0.1, the default.
	V2 Version = iota
	// V3 is EPUB 3.0.1.
	V3
)

func (v Version) String() string {
	if v == V3 {
		return "3.0"
	}
	return "2.0"
}
