package sweetwater

import _ "embed"

// Version is the release of the arcade, read from the VERSION file.
//
//go:embed VERSION
var Version string
