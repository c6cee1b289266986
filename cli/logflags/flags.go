// Package logflags configures the zap logger of a command from its flags.
package logflags

import (
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Flags struct {
	Level   string
	File    string
	MaxSize int
}

func (f *Flags) SetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Level, "log-level", "info", "logging level [debug,info,warn,error]")
	fs.StringVar(&f.File, "log-file", "", "write logs to this file instead of stderr (rotated by size)")
	fs.IntVar(&f.MaxSize, "log-max-size", 100, "size in megabytes at which the log file is rotated")
}

// Open returns a logger writing JSON at the configured level.
func (f *Flags) Open() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(f.Level)
	if err != nil {
		return nil, err
	}
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, f.sink(), level)
	return zap.New(core), nil
}

func (f *Flags) sink() zapcore.WriteSyncer {
	if f.File == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename: f.File,
		MaxSize:  f.MaxSize,
	})
}
