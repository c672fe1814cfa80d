// Package logger builds the process-wide zap logger.
package logger

import "go.uber.org/zap"

const envProduction = "production"

// New returns a JSON production logger for the production environment and a
// human readable development logger otherwise.
func New(env string) (*zap.SugaredLogger, error) {
	var (
		base *zap.Logger
		err  error
	)
	if env == envProduction {
		base, err = zap.NewProduction()
	} else {
		base, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return base.Sugar().With("env", env), nil
}

// Must is New that panics on error.
func Must(env string) *zap.SugaredLogger {
	l, err := New(env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return l
}
