package renderer

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templatesDir embed.FS

// templates exposes the template files at the root of the FS, so that render
// calls and tests address them by bare file name.
var templates, _ = fs.Sub(templatesDir, "templates")
