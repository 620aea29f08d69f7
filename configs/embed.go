package configs

import "embed"

// FS holds the files the installer seeds into the runtime directory.
//
//go:embed Orders_Info.csv
var FS embed.FS
