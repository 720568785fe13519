// Package config handles loading pitview's TOML configuration.
//
// The file lives at ~/.config/pitview/config.toml and every key is
// optional; a missing file yields working defaults pointing at a local
// backend. api_base and fallback_bases together define the probe order
// for every resource, primary first. Paths support ~ expansion.
package config
