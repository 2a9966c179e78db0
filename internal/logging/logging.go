// Package logging builds the loggers the wikicat tools share.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New gets a sugared logger writing to stderr.
//
// Debug loggers are zap's development config; otherwise it's the
// production config with a console encoder, since these are
// interactive batch tools.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Sampling = nil
	}
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// MustNew is New for main packages, which have nowhere to send the
// error.
func MustNew(debug bool) *zap.SugaredLogger {
	l, err := New(debug)
	if err != nil {
		panic(err)
	}
	return l
}
