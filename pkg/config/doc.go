// Package config fills configuration structs from the process environment.
//
// Fields are described with caarlos0/env tags. Before parsing, Load reads the
// .env files configured with WithEnvFiles (".env" by default) through
// joho/godotenv; variables already present in the environment win over the
// files, and missing files are ignored.
//
//	type Config struct {
//		Port        int    `env:"PORT" envDefault:"5000"`
//		DatabaseURL string `env:"DATABASE_URL,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Unlike a process-wide cache, every call parses afresh, so tests can vary the
// environment with t.Setenv between calls.
package config
