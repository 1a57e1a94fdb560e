// Package config provides functionality for loading and managing application configuration.
//
// Settings are grouped per concern (server, database, auth, Paystack, Redis, logging),
// loaded from a YAML file with environment variable overrides, validated with
// go-playground/validator and handed to the rest of the application as plain structs.
package config
