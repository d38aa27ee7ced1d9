// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads optional dotenv files,
// with github.com/caarlos0/env/v11, which maps variables onto struct fields
// through `env` and `envDefault` tags. Values are read into a private map,
// so loading never mutates the process environment.
//
// # Usage
//
//	type Settings struct {
//		Format string `env:"FORMAT" envDefault:"png"`
//		Margin int    `env:"MARGIN" envDefault:"4"`
//	}
//
//	var s Settings
//	config.MustLoad(&s, config.WithPrefix("QR_"), config.WithEnvFiles(".env"))
//
// # Error Handling
//
// Parse failures are joined with ErrParsingConfig, unreadable dotenv files
// with ErrReadingEnvFile; use errors.Is to detect them.
package config
