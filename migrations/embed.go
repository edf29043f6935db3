// Package migrations şema dosyalarını binary'ye gömer
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
