// Package config provides configuration types and loading for the userd
// server and CLI.
//
// Configuration is layered. Values are resolved with the following
// precedence (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (USERD_* prefix)
//  3. Config file (userd.yaml, or the path given explicitly)
//  4. Default values
//
// The config file is YAML or JSON, detected by extension. String values
// in the file may reference environment variables with ${VAR} or
// ${VAR:-default} syntax.
//
// Seed users can be listed inline under "seed" or loaded from separate
// files under "seedFiles", which accepts literal paths and glob patterns
// including ** for recursive matching. A seed file holds either a single
// user record or a list of them.
//
// Each resolved value records where it came from in Sources, keyed by
// the field's YAML name, so the CLI can show the effective configuration
// and its origin.
package config
