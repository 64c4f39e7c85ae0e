package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/dotstitch/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listOrderStyle    = lipgloss.NewStyle().Foreground(colorGreen)
)

// fragmentExts are the file extensions offered by the picker.
var fragmentExts = map[string]bool{".dot": true, ".gv": true}

// =============================================================================
// fragmentPicker - Interactive fragment selection
// =============================================================================

// fragmentPicker is the bubbletea model for picking fragment files from
// a directory listing. Selection order matters: it becomes the merge
// order, so each toggled file shows its position.
type fragmentPicker struct {
	Files     []string // candidate paths, directory order
	Cursor    int
	Picked    []int // indices into Files, in selection order
	Confirmed bool
	Height    int
	Offset    int
}

// newFragmentPicker creates a picker over the given files.
func newFragmentPicker(files []string) fragmentPicker {
	return fragmentPicker{
		Files:  files,
		Height: 15,
	}
}

func (m fragmentPicker) Init() tea.Cmd {
	return nil
}

func (m fragmentPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			m.Picked = toggle(m.Picked, m.Cursor)
		case "enter":
			if len(m.Picked) > 0 {
				m.Confirmed = true
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m fragmentPicker) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Fragments"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ merge  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Files) {
		end = len(m.Files)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		order := "   "
		if pos := slices.Index(m.Picked, i); pos >= 0 {
			order = listOrderStyle.Render(fmt.Sprintf("%2d", pos+1)) + " "
		}

		line := cursor + order + m.Files[i]
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case slices.Contains(m.Picked, i):
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.Files), len(m.Picked))))

	return b.String()
}

// toggle adds idx to the selection or removes it, preserving the order
// of the remaining picks.
func toggle(picked []int, idx int) []int {
	if pos := slices.Index(picked, idx); pos >= 0 {
		return append(picked[:pos], picked[pos+1:]...)
	}
	return append(picked, idx)
}

// =============================================================================
// Picker entry points
// =============================================================================

// pickFragments scans dir for fragment files and runs the interactive
// picker. It returns the picked paths in selection order, or nil when
// the picker was dismissed without confirming a selection.
func pickFragments(dir string) ([]string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "interactive mode requires a terminal")
	}

	files, err := listFragments(dir)
	if err != nil {
		return nil, err
	}
	printInfo("Found %d fragment files in %s", len(files), dir)

	p := tea.NewProgram(newFragmentPicker(files))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	fm, ok := finalModel.(fragmentPicker)
	if !ok || !fm.Confirmed {
		printDetail("No selection made")
		return nil, nil
	}

	paths := make([]string, len(fm.Picked))
	for i, idx := range fm.Picked {
		paths[i] = files[idx]
	}
	return paths, nil
}

// listFragments returns the fragment files directly inside dir, in
// directory order.
func listFragments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInputUnreadable, err, "scan directory %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if fragmentExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no .dot or .gv files in %s", dir)
	}
	return files, nil
}
