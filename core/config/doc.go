// Package config loads typed configuration from environment variables.
// Each configuration type is parsed once and cached; Parse skips the cache.
//
// A .env file in the working directory is loaded on first use, then
// caarlos0/env fills struct fields from their env tags.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/linkrouter/core/config"
//
//	var rc router.Config
//	config.MustLoad(&rc) // LINKROUTER_APP_SCHEME, LINKROUTER_WILDCARD, ...
//	r := router.New(router.WithConfig(rc))
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 router.Config
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 router.Config
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently.
package config
