// Package input decodes the button presses sent by the controller. Each press is
// a 6-bit string: the high three bits are the row, the low three the column.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const BitWidth = 6

// MaxBoardSize is the largest board every cell of which can be addressed
const MaxBoardSize = 1 << (BitWidth / 2)

var ErrMalformedInput = errors.New("malformed input")

func Decode(bits string) (row, col int, err error) {
	if len(bits) != BitWidth {
		return 0, 0, errors.Wrapf(ErrMalformedInput, "bits string must be exactly %d characters long, got %q", BitWidth, bits)
	}

	value, err := strconv.ParseUint(bits, 2, BitWidth)
	if err != nil {
		return 0, 0, errors.Wrapf(ErrMalformedInput, "%q is not a bit string", bits)
	}

	return int(value >> (BitWidth / 2)), int(value & (MaxBoardSize - 1)), nil
}

// Encode is the inverse of Decode
func Encode(row, col int) string {
	return fmt.Sprintf("%03b%03b", row, col)
}

type CommandType int

const (
	None CommandType = iota
	Press
	Start
	ToggleFlagMode
	DirectorStep
	Print
	Quit
)

var commandNames = map[string]CommandType{
	"s": Start,
	"a": ToggleFlagMode,
	"d": DirectorStep,
	"p": Print,
	"q": Quit,
}

type Command struct {
	Type     CommandType
	Row, Col int
}

// ParseCommand reads one line typed at the console. Blank lines parse as None.
func ParseCommand(line string) (Command, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return Command{Type: None}, nil
	}

	if commandType, found := commandNames[line]; found {
		return Command{Type: commandType}, nil
	}

	row, col, err := Decode(line)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: Press, Row: row, Col: col}, nil
}
