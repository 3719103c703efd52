// Package tui provides the interactive day-by-day task picker used by the
// fill workflow.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/jt/internal/alloc"
	"github.com/xolan/jt/internal/fill"
	"github.com/xolan/jt/internal/task"
	"github.com/xolan/jt/internal/timeutil"
)

// pickerMode represents the current input mode of the picker
type pickerMode int

const (
	modePick pickerMode = iota
	modePin
)

// Model is the picker model: one screen per workday, cycling through the
// candidate tasks.
type Model struct {
	days       []time.Time
	candidates []task.Task
	styles     Styles

	day      int
	cursor   int
	mode     pickerMode
	pinInput textinput.Model

	// selected[day][candidate index] = pinned minutes (0 = unpinned)
	selected []map[int]int

	aborted bool
	done    bool
}

// New creates a picker for the given workdays and candidate tasks.
func New(days []time.Time, candidates []task.Task) Model {
	pinInput := textinput.New()
	pinInput.Placeholder = "minutes (empty = auto)"
	pinInput.CharLimit = 4
	pinInput.Width = 20

	selected := make([]map[int]int, len(days))
	for i := range selected {
		selected[i] = make(map[int]int)
	}

	return Model{
		days:       days,
		candidates: candidates,
		styles:     DefaultStyles(),
		pinInput:   pinInput,
		selected:   selected,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode == modePin {
		return m.updatePin(keyMsg)
	}
	return m.updatePick(keyMsg)
}

func (m Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.aborted = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}

	case " ":
		if _, ok := m.selected[m.day][m.cursor]; ok {
			delete(m.selected[m.day], m.cursor)
		} else {
			m.selected[m.day][m.cursor] = 0
		}

	case "p":
		if _, ok := m.selected[m.day][m.cursor]; ok {
			m.mode = modePin
			m.pinInput.SetValue("")
			m.pinInput.Focus()
			return m, textinput.Blink
		}

	case "s":
		// Skip the day entirely, clearing any selection.
		m.selected[m.day] = make(map[int]int)
		return m.advance()

	case "enter":
		return m.advance()
	}

	return m, nil
}

func (m Model) updatePin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modePick
		m.pinInput.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.pinInput.Value())
		minutes := 0
		if value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil || parsed < 0 {
				// Keep the input open until it parses or is cleared.
				return m, nil
			}
			minutes = parsed
		}
		m.selected[m.day][m.cursor] = minutes
		m.mode = modePick
		m.pinInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.pinInput, cmd = m.pinInput.Update(msg)
	return m, cmd
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if m.day < len(m.days)-1 {
		m.day++
		m.cursor = 0
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

// View implements tea.Model
func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Fill timesheet (%d/%d)", m.day+1, len(m.days))))
	b.WriteString("\n")
	b.WriteString(m.styles.Day.Render(timeutil.FormatDay(m.days[m.day])))
	b.WriteString("\n\n")

	for i, t := range m.candidates {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}

		mark := "[ ]"
		label := m.styles.Normal.Render(t.String())
		if minutes, ok := m.selected[m.day][i]; ok {
			mark = m.styles.Selected.Render("[x]")
			label = m.styles.Selected.Render(t.String())
			if minutes > 0 {
				label += m.styles.Pin.Render(fmt.Sprintf(" (%dm)", minutes))
			}
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, mark, label))
	}

	b.WriteString("\n")
	if m.mode == modePin {
		b.WriteString(fmt.Sprintf("Pin minutes for %s: %s\n", m.candidates[m.cursor].Key, m.pinInput.View()))
		b.WriteString(m.styles.Help.Render("enter confirm • esc cancel"))
	} else {
		b.WriteString(m.styles.Help.Render("space select • p pin minutes • enter next day • s skip day • q abort"))
	}
	b.WriteString("\n")

	return b.String()
}

// Aborted reports whether the user quit the picker.
func (m Model) Aborted() bool {
	return m.aborted
}

// Selections converts the picker state into per-day selections, keeping
// candidate order within each day. Days with nothing selected are omitted.
func (m Model) Selections() []fill.DaySelection {
	var days []fill.DaySelection
	for d, date := range m.days {
		var selections []alloc.Selection
		for i, t := range m.candidates {
			minutes, ok := m.selected[d][i]
			if !ok {
				continue
			}
			selections = append(selections, alloc.Selection{TaskKey: t.Key, PinnedMinutes: minutes})
		}
		if len(selections) > 0 {
			days = append(days, fill.DaySelection{Date: date, Selections: selections})
		}
	}
	return days
}

// Run shows the picker and returns the user's selections. A nil slice
// with ok=false means the user aborted.
func Run(days []time.Time, candidates []task.Task) ([]fill.DaySelection, bool, error) {
	program := tea.NewProgram(New(days, candidates))
	final, err := program.Run()
	if err != nil {
		return nil, false, fmt.Errorf("picker failed: %w", err)
	}

	model, ok := final.(Model)
	if !ok || model.Aborted() {
		return nil, false, nil
	}
	return model.Selections(), true, nil
}
