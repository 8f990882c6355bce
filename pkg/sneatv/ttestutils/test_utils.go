// Package ttestutils helps tests read what tview primitives drew on a simulation screen.
package ttestutils

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TestingT is the subset of *testing.T used here.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// ReadLine reads a line from the screen with trailing blanks removed.
func ReadLine(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		mainc, combc, _, w := screen.GetContent(x, y)
		if mainc == 0 {
			// nothing drawn at this cell
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(mainc)
		for _, r := range combc {
			b.WriteRune(r)
		}
		if w > 1 {
			x += w - 1
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// ReadScreen returns every line of the screen.
func ReadScreen(screen tcell.Screen) []string {
	width, height := screen.Size()
	lines := make([]string, height)
	for y := 0; y < height; y++ {
		lines[y] = ReadLine(screen, y, width)
	}
	return lines
}

var newSimulationScreen = tcell.NewSimulationScreen

// NewSimScreen creates an initialized simulation screen of the given size.
func NewSimScreen(t TestingT, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := newSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	s.SetSize(width, height)
	return s
}
