// Package configs embeds the configuration templates written by
// `brainai config init`.
//
// Configuration hierarchy (see internal/config Load):
//  1. Defaults (internal/config NewConfig)
//  2. User config (~/.config/brainai/config.yaml)
//  3. Project config (.brainai.yaml)
//  4. Environment variables (BRAINAI_*)
package configs

import _ "embed"

// UserConfigTemplate is written to ~/.config/brainai/config.yaml.
// It holds machine-wide settings: service URL, credentials, retry policy.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is written to .brainai.yaml with --project.
// It holds per-project tuning: thresholds, vector dimensions.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
