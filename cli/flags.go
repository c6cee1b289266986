// Package cli holds the flags and setup shared by the arith commands.
package cli

import (
	"fmt"

	"github.com/brimdata/arith/cli/config"
	"github.com/brimdata/arith/cli/logflags"
	"github.com/brimdata/arith/compiler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type Flags struct {
	ConfigPath string
	Log        logflags.Flags

	Config *config.Config
	Logger *zap.Logger
}

func (f *Flags) SetFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "YAML configuration file")
	f.Log.SetFlags(fs)
}

// Init loads the configuration file, if any, and opens the logger.  Log
// flags set on the command line take precedence over the configuration.
func (f *Flags) Init(fs *pflag.FlagSet) error {
	f.Config = config.Default()
	if f.ConfigPath != "" {
		c, err := config.Load(f.ConfigPath)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		f.Config = c
	}
	if !fs.Changed("log-level") && f.Config.Log.Level != "" {
		f.Log.Level = f.Config.Log.Level
	}
	if !fs.Changed("log-file") && f.Config.Log.File != "" {
		f.Log.File = f.Config.Log.File
	}
	if !fs.Changed("log-max-size") && f.Config.Log.MaxSizeMB > 0 {
		f.Log.MaxSize = f.Config.Log.MaxSizeMB
	}
	logger, err := f.Log.Open()
	if err != nil {
		return err
	}
	f.Logger = logger
	return nil
}

// NewCompiler returns a Compiler using the configured cache size and
// logger.  If reg is non-nil, the Compiler's metrics are registered with
// it.
func (f *Flags) NewCompiler(reg prometheus.Registerer) (*compiler.Compiler, error) {
	opts := []compiler.Option{
		compiler.WithLogger(f.Logger),
		compiler.WithCacheSize(f.Config.CacheSize),
	}
	if reg != nil {
		opts = append(opts, compiler.WithRegisterer(reg))
	}
	return compiler.NewCompiler(opts...)
}

func (f *Flags) Cleanup() {
	if f.Logger != nil {
		_ = f.Logger.Sync()
	}
}
