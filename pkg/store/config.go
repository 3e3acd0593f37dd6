package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config describes where and how agenda state is stored.
type Config interface {
	BasePath() string
	Owner() string
	Locale() string
	RecoverCorrupt() bool
}

const (
	// DefaultPath is the diskv directory used when nothing is configured.
	DefaultPath = "~/.agenda.db"
	// DefaultOwner is the user id stamped on items in a single-user install.
	DefaultOwner = "demo-user"
	// DefaultLocale selects English messages.
	DefaultLocale = "en"
)

// LoadConfig reads .agenda.yaml from $AGENDA_CONFIG_PATH or the working
// directory, then AGENDA_* environment variables. A missing config file is
// not an error.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("owner", DefaultOwner)
	v.SetDefault("locale", DefaultLocale)
	v.SetDefault("recover_corrupt", false)
	v.SetConfigName(".agenda") // .yaml is implicit
	v.SetEnvPrefix("AGENDA")
	v.AutomaticEnv()

	if override := os.Getenv("AGENDA_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &FileConfig{
		Path:    path,
		User:    v.GetString("owner"),
		Lang:    v.GetString("locale"),
		Recover: v.GetBool("recover_corrupt"),
		Source:  v.ConfigFileUsed(),
	}, nil
}

// FileConfig is the Config produced by LoadConfig. Commands may override its
// fields from flags.
type FileConfig struct {
	Path    string `json:"path"`
	User    string `json:"owner"`
	Lang    string `json:"locale"`
	Recover bool   `json:"recover_corrupt"`
	Source  string `json:"-"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

func (f *FileConfig) Owner() string {
	if f.User == "" {
		return DefaultOwner
	}
	return f.User
}

func (f *FileConfig) Locale() string {
	if f.Lang == "" {
		return DefaultLocale
	}
	return f.Lang
}

func (f *FileConfig) RecoverCorrupt() bool {
	return f.Recover
}
