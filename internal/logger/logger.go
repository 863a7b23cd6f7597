// Package logger constructs the application's structured logger.
package logger

import (
	"go.uber.org/zap"

	"github.com/lawdesk/lawdesk/internal/config"
)

// New builds a zap logger appropriate for the given environment label.
// Development gets the human-readable console encoder; staging and
// production get the JSON production configuration.
func New(env string) (*zap.Logger, error) {
	if env == config.EnvDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
