package constant

import _ "embed"

// AsciiArtLogo is the banner printed atop the root command help.
//
//go:embed ascii.txt
var AsciiArtLogo string
