// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/procmem/xmetrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	applicationName = "procmem"

	PidFlag     = "pid"
	UIDFlag     = "uid"
	FileFlag    = "file"
	NameFlag    = "name"
	MetricsFlag = "metrics"

	LogLevelKey = "log.level"
	MetricsKey  = "metrics"

	DefaultLogLevel = "warn"
)

func newFlagSet(errorOutput io.Writer) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	flagSet.SetOutput(errorOutput)
	flagSet.Int(PidFlag, 0, "the process whose memory accounting is read")
	flagSet.Int(UIDFlag, 0, "the uid owning the process, used to locate its memory cgroup")
	flagSet.StringP(FileFlag, "f", "", "the fully-qualified path of the configuration file")
	flagSet.StringP(NameFlag, "n", "", "the name of the configuration file, searched for in the standard locations")
	flagSet.Bool(MetricsFlag, false, "write the read metrics to stderr in the Prometheus text format")
	return flagSet
}

// newViper produces a Viper instance that searches /etc/procmem, $HOME/procmem, and the
// current directory.  --file takes precedence over --name.  A configuration that cannot
// be found is not an error, since every key has a default.
func newViper(flagSet *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(applicationName)
	v.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	v.AddConfigPath(fmt.Sprintf("$HOME/%s", applicationName))
	v.AddConfigPath(".")
	v.SetDefault(LogLevelKey, DefaultLogLevel)

	if configFile, _ := flagSet.GetString(FileFlag); len(configFile) > 0 {
		v.SetConfigFile(configFile)
	} else if configName, _ := flagSet.GetString(NameFlag); len(configName) > 0 {
		v.SetConfigName(configName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read configuration: %w", err)
		}
	}

	return v, nil
}

// newLogger builds a JSON logger writing to output at the configured level.
func newLogger(v *viper.Viper, output io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(v.GetString(LogLevelKey))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(level)
	c.Sampling = nil

	return c.Build(
		zap.WrapCore(func(zapcore.Core) zapcore.Core {
			return zapcore.NewCore(
				zapcore.NewJSONEncoder(c.EncoderConfig),
				zapcore.AddSync(output),
				c.Level,
			)
		}),
	)
}

// newRegistry creates the metrics registry from the metrics section of the configuration.
func newRegistry(v *viper.Viper, modules ...xmetrics.Module) (xmetrics.Registry, error) {
	o := new(xmetrics.Options)
	if err := v.UnmarshalKey(MetricsKey, o); err != nil {
		return nil, fmt.Errorf("unable to unmarshal metrics options: %w", err)
	}

	return xmetrics.NewRegistry(o, modules...)
}
