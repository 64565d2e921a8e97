// Package config manages gitscope user configuration.
//
// It handles:
//   - Locating and parsing the JSON config file
//   - Defaults for every setting
//   - Environment variable overrides
package config
