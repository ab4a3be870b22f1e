package common

import "golang.org/x/net/html"

// EscapeText escapes free text for inclusion in XML element content or a
// quoted attribute value.
func EscapeText(s string) string {
	return html.EscapeString(s)
}
