// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Sources are layered with koanf, lowest precedence first:

 1. Built-in defaults
 2. YAML file named by -c or CONFIG_PATH (optional)
 3. Environment variables, after loading .env with godotenv
 4. CLI flags that were explicitly passed

# CLI Flags

	-p            Server port (default 3001)
	-d            Database URL
	-t            Database type: sqlite (default) or postgres
	-c            YAML config file
	-upload-dir   Local media directory (default "uploads")
	-log-level    debug, info, warn, error

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE
	USE_CLOUD_UPLOADS, UPLOAD_DIR, MAX_UPLOAD_BYTES
	STORAGE_BUCKET, GOOGLE_CREDENTIALS
	REDIS_ADDR, REDIS_PASSWORD, REDIS_CHANNEL
	IP_HASH_SALT, CORS_ORIGINS (comma separated)
	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (Go duration)
	LOG_LEVEL, LOG_FORMAT

# Validation

ParseFlags returns an error when:

  - the port is outside 1..65535
  - DATABASE_TYPE is neither sqlite nor postgres
  - postgres is selected without DATABASE_URL (sqlite defaults to portfolio.db)
  - USE_CLOUD_UPLOADS is set without STORAGE_BUCKET
*/
package cliparse
