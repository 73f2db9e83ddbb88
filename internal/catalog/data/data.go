// Package data bundles the Costa Rica bird catalog.
package data

import "embed"

// FS holds bird-groups.json, bird-details.json, image-meta.json and
// bird-groups-image-meta.json.
//
//go:embed *.json
var FS embed.FS
