package input

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		bits     string
		row, col int
		wantErr  bool
	}{
		{"000000", 0, 0, false},
		{"000001", 0, 1, false},
		{"001000", 1, 0, false},
		{"011101", 3, 5, false},
		{"111111", 7, 7, false},
		{"00000", 0, 0, true},
		{"0000000", 0, 0, true},
		{"", 0, 0, true},
		{"00a000", 0, 0, true},
		{"222222", 0, 0, true},
		{"+00001", 0, 0, true},
	}

	for _, tt := range tests {
		row, col, err := Decode(tt.bits)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Decode(%q) error = %v, want ErrMalformedInput", tt.bits, err)
			}
			continue
		}
		if err != nil || row != tt.row || col != tt.col {
			t.Errorf("Decode(%q) = %d, %d, %v; want %d, %d", tt.bits, row, col, err, tt.row, tt.col)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for row := 0; row < MaxBoardSize; row++ {
		for col := 0; col < MaxBoardSize; col++ {
			bits := Encode(row, col)
			gotRow, gotCol, err := Decode(bits)
			if err != nil || gotRow != row || gotCol != col {
				t.Errorf("Decode(Encode(%d, %d)) = %d, %d, %v", row, col, gotRow, gotCol, err)
			}
		}
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr bool
	}{
		{"s", Command{Type: Start}, false},
		{" A ", Command{Type: ToggleFlagMode}, false},
		{"q\n", Command{Type: Quit}, false},
		{"d", Command{Type: DirectorStep}, false},
		{"p", Command{Type: Print}, false},
		{"", Command{Type: None}, false},
		{"   ", Command{Type: None}, false},
		{"010011", Command{Type: Press, Row: 2, Col: 3}, false},
		{"x", Command{}, true},
		{"0101", Command{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCommand(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}
