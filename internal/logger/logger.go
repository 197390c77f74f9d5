package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until Init is called.
var Log *zap.Logger = zap.NewNop()

var initOnce sync.Once

// Init builds the global logger. Setting POWER_OUTAGE_DEBUG switches to the
// development encoder with debug level enabled.
func Init() {
	initOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		if os.Getenv("POWER_OUTAGE_DEBUG") != "" {
			cfg = zap.NewDevelopmentConfig()
		}
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		l, err := cfg.Build()
		if err != nil {
			// Keep the no-op logger; there is nowhere to report this.
			return
		}
		Log = l
	})
}

// SetLogger replaces the global logger, mostly for tests.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Log = l
}

func Sync() {
	_ = Log.Sync()
}
