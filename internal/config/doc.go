// Package config provides configuration loading, merging, and validation
// facilities for the joyrun client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources fill fields earlier sources left unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetConfig]. The accounts list is JSON-only; run
// mode (-check/-a/-i) is flag-only.
package config
