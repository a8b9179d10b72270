// Package app wires application dependencies for the CLI.
//
// It loads runtime configuration from defaults and environment variables,
// then builds the concrete stores, the indexer client, and the high-level
// services from Config, exposing them via the Wire struct for commands to
// use.
package app
