package filechooser

import (
	"fmt"

	"github.com/datatug/filechooser/pkg/chooser"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var _ tview.TableContent = (*panelRows)(nil)

// panelRows renders the status of the top panel: a loading line, a failure line,
// an empty marker or one row per entry in provider order.
type panelRows struct {
	tview.TableContentReadOnly
	panel chooser.PanelView
}

func newPanelRows(panel chooser.PanelView) *panelRows {
	return &panelRows{panel: panel}
}

func (r *panelRows) Path() string {
	return r.panel.Path
}

// HasEntries reports whether the rows can be selected.
func (r *panelRows) HasEntries() bool {
	s := r.panel.Status
	return !s.Loading && !s.Failed && len(s.Contents) > 0
}

func (r *panelRows) Entry(row int) (chooser.DirectoryEntry, bool) {
	if !r.HasEntries() || row < 0 || row >= len(r.panel.Status.Contents) {
		return chooser.DirectoryEntry{}, false
	}
	return r.panel.Status.Contents[row], true
}

func (r *panelRows) GetRowCount() int {
	if r.HasEntries() {
		return len(r.panel.Status.Contents)
	}
	return 1
}

func (r *panelRows) GetColumnCount() int {
	return 1
}

func (r *panelRows) GetCell(row, col int) *tview.TableCell {
	if col != 0 {
		return nil
	}
	s := r.panel.Status
	switch {
	case s.Loading:
		if row != 0 {
			return nil
		}
		return tview.NewTableCell(" Loading...").
			SetTextColor(tcell.ColorGray).
			SetSelectable(false)
	case s.Failed:
		if row != 0 {
			return nil
		}
		return tview.NewTableCell(tview.Escape(failureText(s.Err))).
			SetTextColor(tcell.ColorOrangeRed).
			SetSelectable(false)
	case len(s.Contents) == 0:
		if row != 0 {
			return nil
		}
		return tview.NewTableCell(" (empty)").
			SetTextColor(tcell.ColorDarkGray).
			SetSelectable(false)
	}
	entry, ok := r.Entry(row)
	if !ok {
		return nil
	}
	cell := tview.NewTableCell(entryText(entry)).
		SetExpansion(1).
		SetReference(entry)
	if entry.IsDir() {
		cell.SetTextColor(tcell.ColorLightSkyBlue)
	} else {
		cell.SetTextColor(tcell.ColorWhiteSmoke)
	}
	return cell
}

func entryText(entry chooser.DirectoryEntry) string {
	name := tview.Escape(entry.Name)
	if entry.IsDir() {
		return " " + name + "/"
	}
	return " " + name
}

func failureText(err error) string {
	if err == nil {
		return " Failed to list directory"
	}
	return fmt.Sprintf(" Failed to list directory: %v", err)
}

// footerText summarizes the panel in the bottom line of its frame.
func footerText(s chooser.DirectoryStatus) string {
	switch {
	case s.Loading:
		return "loading"
	case s.Failed:
		return "[orangered]failed[-]"
	}
	var dirs, files int
	for _, e := range s.Contents {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
	}
	return fmt.Sprintf("%d dirs, %d files", dirs, files)
}
