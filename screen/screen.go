// Package screen renders the board on two stacked panels, the way the physical
// build splits an 8x8 board across two 4x8 displays. Tiles are drawn as text
// glyphs.
package screen

import (
	"bufio"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/they4kman/pisweep/game"
	"github.com/they4kman/pisweep/util/collections"
)

const PanelCount = 2

// Theme maps each image to the glyph drawn for it
type Theme map[game.ImageID]string

var DefaultTheme = Theme{
	game.ImageBlank:         "#",
	game.ImageFlag:          "F",
	game.ImageDetonatedMine: "X",
	game.ImageMine:          "*",
	game.ImageWonMine:       "W",
	game.ImageEmpty:         ".",
	game.NumberImage(1):     "1",
	game.NumberImage(2):     "2",
	game.NumberImage(3):     "3",
	game.NumberImage(4):     "4",
	game.NumberImage(5):     "5",
	game.NumberImage(6):     "6",
	game.NumberImage(7):     "7",
	game.NumberImage(8):     "8",
}

// With returns a copy of the theme with the given glyphs replaced
func (theme Theme) With(overrides map[string]string) Theme {
	merged := make(Theme, len(theme)+len(overrides))
	for image, glyph := range theme {
		merged[image] = glyph
	}
	for image, glyph := range overrides {
		merged[game.ImageID(image)] = glyph
	}
	return merged
}

type Manager struct {
	Logger log.FieldLogger

	rows, cols int
	panelRows  int
	tiles      []game.ImageID
	theme      Theme
	missing    collections.Set[game.ImageID]
}

// NewManager builds a rows x cols screen. Non-positive dimensions give an empty
// screen that draws nothing.
func NewManager(rows, cols int, theme Theme) *Manager {
	if theme == nil {
		theme = DefaultTheme
	}
	if rows <= 0 || cols <= 0 {
		rows, cols = 0, 0
	}

	manager := &Manager{
		Logger:    log.StandardLogger(),
		rows:      rows,
		cols:      cols,
		panelRows: (rows + PanelCount - 1) / PanelCount,
		tiles:     make([]game.ImageID, rows*cols),
		theme:     theme,
		missing:   collections.NewSet[game.ImageID](),
	}
	for i := range manager.tiles {
		manager.tiles[i] = game.ImageBlank
	}
	return manager
}

func (manager *Manager) NumTiles() int {
	return len(manager.tiles)
}

// Render records the image for a 1-based tile. Out of range tiles are reported
// and otherwise ignored.
func (manager *Manager) Render(tileIndex int, image game.ImageID) {
	if tileIndex < 1 || tileIndex > len(manager.tiles) {
		manager.Logger.WithFields(log.Fields{
			"tile":  tileIndex,
			"image": image,
		}).Warn("Invalid tile")
		return
	}
	manager.tiles[tileIndex-1] = image
}

// Tile returns the image last rendered to a tile
func (manager *Manager) Tile(tileIndex int) (game.ImageID, bool) {
	if tileIndex < 1 || tileIndex > len(manager.tiles) {
		return "", false
	}
	return manager.tiles[tileIndex-1], true
}

// Locate returns which panel a tile is drawn on, and where within it
func (manager *Manager) Locate(tileIndex int) (panel, row, col int, ok bool) {
	if tileIndex < 1 || tileIndex > len(manager.tiles) {
		return 0, 0, 0, false
	}

	index := tileIndex - 1
	boardRow := index / manager.cols
	return boardRow / manager.panelRows, boardRow % manager.panelRows, index % manager.cols, true
}

func (manager *Manager) glyph(image game.ImageID) string {
	if glyph, found := manager.theme[image]; found {
		return glyph
	}

	if !manager.missing.Contains(image) {
		manager.missing.Add(image)
		manager.Logger.WithField("image", image).Warn("Missing icon")
	}
	return manager.theme[game.ImageBlank]
}

// Draw writes both panels, top first, separated by a rule
func (manager *Manager) Draw(w io.Writer) error {
	if manager.rows == 0 {
		return nil
	}

	out := bufio.NewWriter(w)
	rule := strings.Repeat("-", 2*manager.cols-1)
	glyphs := make([]string, manager.cols)

	for panel := 0; panel < PanelCount; panel++ {
		if panel*manager.panelRows >= manager.rows {
			break
		}
		if panel > 0 {
			out.WriteString(rule)
			out.WriteByte('\n')
		}

		for row := panel * manager.panelRows; row < (panel+1)*manager.panelRows && row < manager.rows; row++ {
			for col := range glyphs {
				glyphs[col] = manager.glyph(manager.tiles[row*manager.cols+col])
			}
			out.WriteString(strings.Join(glyphs, " "))
			out.WriteByte('\n')
		}
	}

	return out.Flush()
}
