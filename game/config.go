package game

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type GameConfig struct {
	Size     int   `yaml:"size"`
	NumMines int   `yaml:"mines"`
	Seed     int64 `yaml:"seed"`

	// Snapshot to load the board from, instead of generating one
	Snapshot *BoardSnapshot `yaml:"-"`
	// Whether to set all cells as hidden when loading the Snapshot
	LoadSnapshotFresh bool `yaml:"snapshot_fresh"`

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string `yaml:"snapshots_dir"`

	Director Director `yaml:"-"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Size:              DefaultSize,
		NumMines:          DefaultNumMines,
		LoadSnapshotFresh: true,
	}
}

// CreateEngine builds the board described by the config. Finished boards are
// saved to SavedSnapshotsDir, if one is set.
func (config GameConfig) CreateEngine(renderer Renderer) (*Engine, error) {
	engineConfig := EngineConfig{
		Size:      config.Size,
		NumMines:  config.NumMines,
		Seed:      config.Seed,
		OnGameEnd: config.onGameEnd,
	}

	if config.Snapshot != nil {
		return NewEngineFromSnapshot(renderer, config.Snapshot, engineConfig, config.LoadSnapshotFresh)
	}
	return NewEngine(renderer, engineConfig)
}

func (config GameConfig) onGameEnd(engine *Engine) {
	if config.SavedSnapshotsDir == "" {
		return
	}

	path, err := config.saveSnapshot(engine, time.Now())
	if err != nil {
		log.WithError(err).Warn("Unable to save board snapshot")
		return
	}
	log.WithField("path", path).Debug("Saved board snapshot")
}

func (config GameConfig) saveSnapshot(engine *Engine, t time.Time) (string, error) {
	stat, err := os.Stat(config.SavedSnapshotsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", errors.Wrap(err, "checking snapshots dir")
		}
		if err := os.MkdirAll(config.SavedSnapshotsDir, 0777); err != nil {
			return "", errors.Wrap(err, "creating snapshots dir")
		}
	} else if !stat.Mode().IsDir() {
		return "", errors.Errorf("%s is not a directory; cannot save snapshots to it", config.SavedSnapshotsDir)
	}

	serialized, err := engine.Snapshot().Serialize()
	if err != nil {
		return "", err
	}

	path := filepath.Join(config.SavedSnapshotsDir, generateReplayFilename(engine.State(), t))
	// TODO: prevent duplicate filenames when two games end within the same second
	if err := os.WriteFile(path, []byte(serialized), 0666); err != nil {
		return "", errors.Wrap(err, "writing snapshot")
	}
	return path, nil
}

func generateReplayFilename(state BoardState, t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch state {
	case Won:
		stateStr = "win"
	case Lost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}
