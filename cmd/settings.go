package cmd

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/they4kman/pisweep/game"
	"gopkg.in/yaml.v2"
)

// Settings is everything a run can be configured with, from flags or a YAML file
type Settings struct {
	game.GameConfig `yaml:",inline"`

	// Board snapshot file to load
	SnapshotPath string `yaml:"snapshot"`

	// Glyph overrides, by image id
	Theme map[string]string `yaml:"theme"`

	Director      string        `yaml:"director"`
	AutoPlay      bool          `yaml:"autoplay"`
	AutoPlayDelay time.Duration `yaml:"autoplay_delay"`

	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"log_level"`
}

func NewSettings() Settings {
	return Settings{
		GameConfig: game.NewGameConfig(),
		Director:   "none",
		LogLevel:   "info",
	}
}

// LoadSettings reads a YAML settings file. Keys it leaves out keep their defaults.
func LoadSettings(path string) (Settings, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrap(err, "reading settings")
	}

	settings := NewSettings()
	if err := yaml.UnmarshalStrict(contents, &settings); err != nil {
		return Settings{}, errors.Wrapf(err, "parsing settings from %s", path)
	}
	return settings, nil
}

// applyFlags copies the values of every flag set on the command line from
// 'from' into 'to'
func applyFlags(flags *pflag.FlagSet, from Settings, to *Settings) {
	flags.Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "size":
			to.Size = from.Size
		case "mines":
			to.NumMines = from.NumMines
		case "seed":
			to.Seed = from.Seed
		case "snapshot":
			to.SnapshotPath = from.SnapshotPath
		case "fresh":
			to.LoadSnapshotFresh = from.LoadSnapshotFresh
		case "snapshots-dir":
			to.SavedSnapshotsDir = from.SavedSnapshotsDir
		case "director":
			to.Director = from.Director
		case "autoplay":
			to.AutoPlay = from.AutoPlay
		case "autoplay-delay":
			to.AutoPlayDelay = from.AutoPlayDelay
		case "listen":
			to.Listen = from.Listen
		case "log-level":
			to.LogLevel = from.LogLevel
		}
	})
}
