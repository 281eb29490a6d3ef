// Package static embeds the single-page upload UI.
package static

import "embed"

//go:embed index.html
var Files embed.FS
