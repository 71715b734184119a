package app

import (
	"strings"

	"github.com/stackboard/stackboard/pkg/logger"
)

// ConfigureLogging initialises the process-wide logger from the configured
// level. An empty level means info.
func ConfigureLogging(level string) error {
	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	return logger.Init(level)
}
