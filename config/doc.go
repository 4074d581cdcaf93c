/*
Package config loads server settings from the environment.

Settings are bound through viper so a .env file loaded at startup and
real environment variables are interchangeable:

	cfg, err := config.Load()

Required settings:

  - DATABASE_URL: connection string for the configured driver

Optional settings:

  - PORT: server port (default: 5000)
  - DATABASE_TYPE: "postgres" or "sqlite" (default: "postgres")
  - FRONTEND_URL: allowed CORS origin (default: http://localhost:3000)

Load validates the combination and returns a plain Config struct; the
rest of the codebase never touches viper directly.
*/
package config
