package game

import "strconv"

// ImageID names the picture a tile should show. Renderers map these to whatever
// their display understands.
type ImageID string

type BoardState int

const (
	ImageBlank         ImageID = "blank"
	ImageFlag          ImageID = "flag"
	ImageDetonatedMine ImageID = "detonated-mine"
	ImageMine          ImageID = "mine"
	ImageWonMine       ImageID = "won-mine"
	ImageEmpty         ImageID = "empty"
)

// ImageIDs lists every image the engine can ask a renderer for
var ImageIDs = []ImageID{
	ImageBlank,
	ImageFlag,
	ImageDetonatedMine,
	ImageMine,
	ImageWonMine,
	ImageEmpty,
	NumberImage(1),
	NumberImage(2),
	NumberImage(3),
	NumberImage(4),
	NumberImage(5),
	NumberImage(6),
	NumberImage(7),
	NumberImage(8),
}

// NumberImage returns the image for a revealed cell with n adjacent mines.
// Zero maps to the empty image.
func NumberImage(n int) ImageID {
	if n == 0 {
		return ImageEmpty
	}
	return ImageID(strconv.Itoa(n))
}

const (
	DefaultSize     = 8
	DefaultNumMines = 10
)

const (
	Lost BoardState = iota
	Won
	Ongoing
)

func (state BoardState) String() string {
	switch state {
	case Lost:
		return "lost"
	case Won:
		return "won"
	case Ongoing:
		return "ongoing"
	default:
		return "BoardState(" + strconv.Itoa(int(state)) + ")"
	}
}
