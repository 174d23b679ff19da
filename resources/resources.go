// Package resources embeds the default prompt library shipped with the binary.
package resources

import "embed"

// FS holds prompts/**.json. A RESOURCES_DIR on disk takes precedence at runtime.
//
//go:embed prompts
var FS embed.FS
