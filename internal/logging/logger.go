package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. The league package never logs; only the
// store and the command line tool do.
var Log = logrus.New()

// BootstrapLogger configures Log from a level name such as "debug" or "warn".
func BootstrapLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Log.SetLevel(lvl)
	Log.SetOutput(os.Stderr)
	return nil
}
