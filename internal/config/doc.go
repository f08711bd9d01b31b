// Package config handles configuration loading for pantry.
//
// # Overview
//
// Configuration is loaded from YAML or TOML files with environment variable
// expansion. The package provides validation and sensible defaults.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from PANTRY_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/pantry/config.yaml
//  3. ~/.config/pantry/config.yaml
//
// Files ending in .toml are decoded as TOML; anything else as YAML. Both
// formats use the same keys.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${PANTRY_JWT_SECRET}"
//
// PANTRY_DB_PATH, when set, overrides database.path.
//
// # Configuration Sections
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//	  base_path: "/api"            # optional prefix for every API route
//	  read_header_timeout: "10s"
//	  shutdown_timeout: "5s"
//	  rate_limit: 20               # requests/second per client, 0 disables
//	  rate_burst: 40
//
//	tailscale:
//	  enabled: false
//	  hostname: "pantry"
//	  auth_key: "${TS_AUTHKEY}"
//	  state_dir: "~/.local/share/pantry/tailscale"
//	  ephemeral: false
//
//	database:
//	  path: "~/.local/share/pantry/pantry.db"
//
//	auth:
//	  jwt_secret: "${PANTRY_JWT_SECRET}"   # at least 32 characters
//	  token_ttl: "720h"
//	  bcrypt_cost: 10
//	  allow_signup: true
//
//	logging:
//	  level: "info"    # debug, info, warn, error
//	  format: "text"   # text, json
//
//	metrics:
//	  enabled: true
//	  path: "/metrics"
package config
