// Package config provides configuration loading, merging, and validation
// facilities for the sqledu client.
//
// Configuration is assembled from multiple sources. For every field the
// first source that supplies a non-zero value wins:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetClientConfig].
package config
