// Package gamedata provides the embedded class and enemy catalog.
//
// Templates are immutable: the entity package clones them into live
// instances per run or per encounter, and nothing writes back.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
