// Package config loads and validates liqmon configuration.
//
// Configuration is YAML with ${VAR} environment variable expansion.
// Missing optional fields receive defaults via LoadWithDefaults; required
// fields are checked by Validate.
package config
