package contract

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the shared logger of the command line tools.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// ConfigureLogging sets the log level from the verbose flag.
func ConfigureLogging(verbose bool) {
	if verbose {
		Logger.SetLevel(logrus.DebugLevel)
		return
	}
	Logger.SetLevel(logrus.InfoLevel)
}
