package studio

import "embed"

//go:embed templates/*.html
var TemplatesFS embed.FS

//go:embed static/css/*.css static/js/*.js
var StaticFS embed.FS
