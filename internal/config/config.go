// Package config provides functionality for managing configuration options
// for the application using command-line flags, a .env file, and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Environment labels accepted for the Env option.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Options holds the configuration values for the application.
type Options struct {
	// APIURL is the base URL of the LawDesk backend, without the /api prefix.
	APIURL string

	// Env is the deployment environment label (development, staging, production).
	Env string

	// StoragePath is the path of the local session storage file.
	StoragePath string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.APIURL, "url", "http://localhost:3000", "backend base URL")
	flag.StringVar(&options.Env, "env", EnvDevelopment, "environment label")
	flag.StringVar(&options.StoragePath, "storage", "lawdesk.json", "path to local session storage file")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional .env file, and
// environment variables to set configuration values. Environment
// variables win over the config file, which wins over flag defaults.
// It returns a pointer to the Options struct containing the parsed
// configuration values.
func Parse() *Options {
	flag.Parse()

	// A missing .env file is not an error; only load what is there.
	_ = godotenv.Load()

	if configPath := os.Getenv("LAWDESK_CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if apiURL := os.Getenv("LAWDESK_API_URL"); apiURL != "" {
		options.APIURL = apiURL
	}

	if env := os.Getenv("LAWDESK_ENV"); env != "" {
		options.Env = env
	}

	if storagePath := os.Getenv("LAWDESK_STORAGE"); storagePath != "" {
		options.StoragePath = storagePath
	}

	return options
}
