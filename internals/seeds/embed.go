package seeds

import "embed"

// Data: file seed bawaan (data/*.json).
//
//go:embed data/*.json
var Data embed.FS
