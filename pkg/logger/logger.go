package logger

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	loggingFilePath string
)

// Init configures the global logrus instance. When logFilePath is set, log
// output is mirrored to a size-rotated file in addition to stderr.
func Init(logLevel string, logFilePath string) error {
	logrus.SetFormatter(&prefixed.TextFormatter{
		ForceColors:      true,
		ForceFormatting:  true,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		QuoteEmptyFields: true,
	})

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	if logFilePath != "" {
		loggingFilePath = logFilePath
		logrus.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    25,
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		}))
	}

	return nil
}

// GetLogger returns an entry carrying the component prefix.
func GetLogger(prefix string) *logrus.Entry {
	return logrus.WithField("prefix", prefix)
}

// ShowUsing logs the active log file, if any.
func ShowUsing() {
	if loggingFilePath != "" {
		GetLogger("log").Infof("Using LOG = %q", loggingFilePath)
	}
}
