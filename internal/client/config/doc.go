// Package config loads runtime configuration for the clinicadmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed CLINIC_.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the clinic API
//	-r string   base URL of the rosa (chat bot) API, defaults to -a
//	-s string   shared payload secret for encrypted endpoints
//	-t int      request timeout (seconds)
//	-p int      default page size for list output
//	-d string   data directory for the local session database
//
// These flags are removed from the command line (see ConfigFlags) before the
// command tree parses it.
//
// # JSON schema
//
// Durations use timex.Duration, so "15s" and integer nanoseconds both work:
//
//	{
//	  "api_base_url": "https://clinic.example/api",
//	  "rosa_base_url": "https://rosa.example/api",
//	  "payload_secret": "…",
//	  "request_timeout": "15s",
//	  "fetch_limit": 1000,
//	  "page_size": 10,
//	  "data_dir": "~/.clinicadmin",
//	  "log_level": "warn",
//	  "log_backend": "slog"
//	}
//
// # Environment
//
//	CLINIC_API_URL, CLINIC_ROSA_URL, CLINIC_PAYLOAD_SECRET,
//	CLINIC_REQUEST_TIMEOUT (Go duration), CLINIC_FETCH_LIMIT,
//	CLINIC_PAGE_SIZE, CLINIC_DATA_DIR, CLINIC_LOG_LEVEL, CLINIC_LOG_BACKEND
package config
