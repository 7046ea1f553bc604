package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DefaultOutput = "stderr"

type Options struct {
	JSON  bool
	Debug bool
	// Output is a zap sink: "stderr", "stdout" or a file path.
	Output string
}

// New builds the application logger. Command results are written to stdout,
// so logs default to stderr.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
		OutputPaths:      []string{DefaultOutput},
		ErrorOutputPaths: []string{DefaultOutput},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	if opts.JSON {
		cfg.Encoding = "json"
	}
	if opts.Debug {
		cfg.Level.SetLevel(zapcore.DebugLevel)
		cfg.Development = true
	}
	if opts.Output != "" {
		cfg.OutputPaths = []string{opts.Output}
	}

	return cfg.Build()
}
