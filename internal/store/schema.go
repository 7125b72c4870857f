package store

import _ "embed"

// seedSQL is the bundled seed image: full schema plus the reference rows
// a fresh installation starts from. Applied once, on first run, when the
// backing store holds nothing yet.
//
//go:embed schema.sql
var seedSQL string
