package main

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logSink collects formatted log lines for the terminal viewer. Lines are
// dropped when the reader falls behind.
type logSink struct {
	ch chan string
}

func newLogSink(size int) *logSink {
	return &logSink{ch: make(chan string, size)}
}

func (s *logSink) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	select {
	case s.ch <- line:
	default:
	}
	return len(p), nil
}

func (s *logSink) Sync() error { return nil }

func (s *logSink) Lines() <-chan string {
	return s.ch
}

// newLogger builds a development logger when verbose and a production logger
// otherwise. With a sink, entries go to the sink instead of stderr.
func newLogger(verbose bool, sink *logSink) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}

	if sink != nil {
		enc := cfg.EncoderConfig
		enc.TimeKey = zapcore.OmitKey
		enc.CallerKey = zapcore.OmitKey
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), sink, cfg.Level)
		return zap.New(core).Sugar(), nil
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
