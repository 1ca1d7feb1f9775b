// Package app provides the application initialization and wiring.
package app

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultStagingDir returns the directory used for staged uploads.
func DefaultStagingDir() string {
	return filepath.Join(os.TempDir(), "ocicomp")
}

// DefaultConfigPath returns where `config init` writes by default.
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ocicomp", "ocicomp.toml")
	}
	return "ocicomp.toml"
}

// ConfigureViper sets up viper with standard config file search paths.
// Config file: ocicomp.toml
// Search paths (in order): /etc/ocicomp, ~/.config/ocicomp, current directory
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("ocicomp")
	v.SetConfigType("toml")
	v.AddConfigPath("/etc/ocicomp")
	v.AddConfigPath("$HOME/.config/ocicomp")
	v.AddConfigPath(".")
}
