// Package config provides configuration management for cover-sync.
//
// It loads an optional .env file with godotenv and then reads environment
// variables through Viper. Defaults come from the `default` struct tags of
// each section; command-line flags override the loaded values.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Source: catalog URL, image base URL and fetch delay (SOURCE_*)
//   - HTTP: timeout, retries, user agent and TLS verification (HTTP_*)
//   - Storage: S3/MinIO credentials and bucket (STORAGE_*)
//   - Log: logging level, format and output (LOG_*)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Source.CatalogURL)
package config
