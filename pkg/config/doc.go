// Package config loads typed configuration structs from environment
// variables using github.com/caarlos0/env, with optional .env bootstrap via
// github.com/joho/godotenv.
//
// Each configuration type is parsed once per process and cached afterwards,
// which keeps configuration stable even when multiple components load the
// same struct.
package config
