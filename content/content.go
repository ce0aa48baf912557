// Package content embeds the default ability library, flavour templates and
// output JSON Schemas so the binaries work without a content checkout.
package content

import "embed"

// Paths inside FS.
const (
	AbilitiesFile = "abilities.yaml"
	TemplatesDir  = "templates"
	SchemasDir    = "schemas"
)

// FS holds the embedded default content.
//
//go:embed abilities.yaml templates/*.yaml schemas/*.json
var FS embed.FS
