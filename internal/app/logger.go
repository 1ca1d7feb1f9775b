package app

import (
	"fmt"
	"path/filepath"

	"github.com/bnema/zerowrap"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// initLogger initializes the zerowrap logger.
func initLogger(cfg Config) (zerowrap.Logger, func(), error) {
	logConfig := zerowrap.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}

	if !cfg.Logging.File.Enabled {
		return zerowrap.New(logConfig), func() {}, nil
	}

	logPath := cfg.Logging.File.Path
	if logPath == "" {
		logPath = filepath.Join(cfg.Staging.Dir, "logs", "ocicomp.log")
	}

	log, cleanup, err := zerowrap.NewWithFile(logConfig, zerowrap.FileConfig{
		Enabled:    true,
		Path:       logPath,
		MaxSize:    cfg.Logging.File.MaxSize,
		MaxBackups: cfg.Logging.File.MaxBackups,
		MaxAge:     cfg.Logging.File.MaxAge,
		Compress:   true,
	})
	if err != nil {
		return zerowrap.Default(), func() {}, fmt.Errorf("failed to create logger with file: %w", err)
	}
	if cleanup == nil {
		cleanup = func() {}
	}
	return log, cleanup, nil
}

// applyLogLevel sets the process-wide level. Unknown levels are rejected.
func applyLogLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// watchLogLevel re-reads logging.level whenever the config file changes.
// Every other setting requires a restart.
func watchLogLevel(v *viper.Viper, log zerowrap.Logger) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		level := v.GetString("logging.level")
		if err := applyLogLevel(level); err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("ignoring config change")
			return
		}

		log.Info().
			Str(zerowrap.FieldEvent, "config_change").
			Str("file", e.Name).
			Str("level", level).
			Msg("log level reloaded")
	})
	v.WatchConfig()
}
