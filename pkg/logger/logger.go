package logger

import "go.uber.org/zap"

// Log is the package-wide logger. It is a nop until Initialize is called so
// that tests can use the package without configuration.
var Log = zap.NewNop()

func Initialize() error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}

	Log = log

	return nil
}

func String(key, value string) zap.Field {
	return zap.String(key, value)
}

func Int64(key string, value int64) zap.Field {
	return zap.Int64(key, value)
}

func Error(err error) zap.Field {
	return zap.Error(err)
}
