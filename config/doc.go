// Package config loads the listing service configuration with viper.
//
// Configuration is read from a YAML, JSON or TOML file:
//
//	cfg, err := config.LoadConfig("./config.yaml")
//
// When no path is given the file named "config" is searched in
// /etc/listing, $HOME/.listing, the working directory and the directory of
// the executable. Environment variables prefixed with LISTING_ override file
// values (LISTING_SEARCH_ENDPOINT overrides search.endpoint).
package config
