// Package assets embarque les données statiques servies sous /assets.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed data/*.json
var files embed.FS

// FS expose l'arborescence data/ telle qu'elle est servie sous /assets.
func FS() fs.FS {
	return files
}

// AuthData retourne le contenu brut de data/auth.json.
func AuthData() ([]byte, error) {
	return files.ReadFile("data/auth.json")
}
