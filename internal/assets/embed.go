// Package assets holds the overlay sprites and watermark shipped with the
// editor, described by an embedded catalog.yaml.
package assets

import "embed"

//go:embed data
var embedded embed.FS

// CatalogFile is the catalog name, both embedded and in an override directory.
const CatalogFile = "catalog.yaml"
