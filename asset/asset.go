package asset

import _ "embed"

// Words holds the tiered word sets keyed by set name
//
//go:embed words.yaml
var Words []byte

// Levels holds the building tier table
//
//go:embed levels.yaml
var Levels []byte
