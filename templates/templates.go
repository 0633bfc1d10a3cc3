// Package templates embeds the HTML used for printable documents.
package templates

import "embed"

//go:embed *.html
var FS embed.FS

const Invoice = "invoice.html"
