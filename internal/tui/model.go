package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AlexZhen345/LifeOS/internal/engine"
	"github.com/AlexZhen345/LifeOS/internal/storage"
	"github.com/AlexZhen345/LifeOS/internal/ui"
)

type boardModel struct {
	ctx       context.Context
	svc       *engine.Service
	accountID string
	date      string

	width  int
	height int

	data     *storage.UserData
	rows     []dayRow
	selected int

	lastLog string
	loading bool
	err     error
}

// dayRow is one line on the board: either a schedule entry or a loose task
// scheduled for the day.
type dayRow struct {
	itemID    string
	taskID    string
	time      string
	title     string
	icon      string
	completed bool
}

type loadedMsg struct {
	data *storage.UserData
	rows []dayRow
	err  error
}

type toggledMsg struct {
	title string
	res   *engine.CompleteResult
	done  bool
	err   error
}

func newBoardModel(ctx context.Context, svc *engine.Service, accountID string) boardModel {
	return boardModel{
		ctx:       ctx,
		svc:       svc,
		accountID: accountID,
		date:      engine.Today(),
		loading:   true,
		lastLog:   "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		data, err := m.svc.UserDataRepo().Load(m.ctx, m.accountID)
		if err != nil {
			return loadedMsg{err: err}
		}
		if data == nil {
			return loadedMsg{err: fmt.Errorf("account %s has no data", m.accountID)}
		}
		items, err := m.svc.ScheduleRepo().LoadDay(m.ctx, m.accountID, m.date)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.TasksOn(m.ctx, m.accountID, m.date)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{data: data, rows: buildRows(items, tasks)}
	}
}

func buildRows(items []storage.ScheduleItem, tasks []storage.TaskRecord) []dayRow {
	live := map[string]bool{}
	for _, t := range tasks {
		live[t.ID] = true
	}
	linked := map[string]bool{}
	var rows []dayRow
	for _, it := range items {
		taskID := it.LinkedTaskID
		if !live[taskID] {
			// Stale reference; the row behaves like a plain schedule entry.
			taskID = ""
		}
		rows = append(rows, dayRow{
			itemID:    it.ID,
			taskID:    taskID,
			time:      it.Time,
			title:     it.Title,
			icon:      ui.ScheduleIcon(it.Type),
			completed: it.Completed,
		})
		if taskID != "" {
			linked[taskID] = true
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].time < rows[j].time })

	for _, t := range tasks {
		if linked[t.ID] {
			continue
		}
		rows = append(rows, dayRow{
			taskID:    t.ID,
			title:     t.Title,
			icon:      ui.IconTask,
			completed: t.Completed,
		})
	}
	return rows
}

func (m boardModel) toggleCmd(row dayRow) tea.Cmd {
	return func() tea.Msg {
		switch {
		case row.itemID != "" && row.taskID != "" && !row.completed:
			res, err := m.svc.CheckInScheduleItem(m.ctx, m.accountID, m.date, row.itemID, engine.CompleteInput{})
			if err != nil {
				return toggledMsg{title: row.title, err: err}
			}
			return toggledMsg{title: row.title, res: res.Completed, done: true}
		case row.itemID != "":
			res, err := m.svc.ToggleScheduleItem(m.ctx, m.accountID, m.date, row.itemID)
			if err != nil {
				return toggledMsg{title: row.title, err: err}
			}
			return toggledMsg{title: row.title, res: res.Completed, done: res.Item.Completed}
		case !row.completed:
			res, err := m.svc.CompleteTask(m.ctx, m.accountID, row.taskID, engine.CompleteInput{})
			if err != nil {
				return toggledMsg{title: row.title, err: err}
			}
			return toggledMsg{title: row.title, res: res, done: true}
		default:
			_, err := m.svc.UncompleteTask(m.ctx, m.accountID, row.taskID)
			return toggledMsg{title: row.title, done: false, err: err}
		}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.data = msg.data
		m.rows = msg.rows
		if m.selected >= len(m.rows) {
			m.selected = len(m.rows) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res != nil {
			m.lastLog = fmt.Sprintf("Done: %s (+%d XP)", msg.title, msg.res.XPGained)
			if msg.res.LevelUp.LeveledUp {
				m.lastLog += fmt.Sprintf("  %s → level %d", ui.BadgeLevelUp, msg.res.LevelUp.Level)
			}
		} else if msg.done {
			m.lastLog = "Done: " + msg.title
		} else {
			m.lastLog = "Reopened: " + msg.title
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(m.rows) {
				return m, nil
			}
			row := m.rows[m.selected]
			if row.itemID == "" && row.taskID == "" {
				return m, nil
			}
			m.lastLog = "Working on " + row.title + "…"
			return m, m.toggleCmd(row)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderRows())
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("↑/↓ or j/k: move   c/space: toggle   r: refresh   q: quit"))
	b.WriteString("\n" + m.lastLog + "\n")
	return b.String()
}

func (m boardModel) renderHeader() string {
	if m.data == nil {
		return "LifeOS — loading…"
	}
	a := m.data.Attributes
	name := m.data.Profile.Name
	head := fmt.Sprintf("%s | Level %d | %s | %s %d days",
		ui.Title.Render(name), a.Level, ui.XPBar(a.XP, a.XPForNextLevel), ui.IconStreak, m.data.Stats.StreakDays)
	return head + "\n" + ui.AttrLine(a.Rewards)
}

func (m boardModel) renderRows() string {
	if m.loading {
		return "Loading…"
	}
	if len(m.rows) == 0 {
		return ui.Muted.Render("(nothing planned for " + m.date + ")")
	}
	var out []string
	out = append(out, ui.H2.Render("Today — "+m.date))
	for i, row := range m.rows {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if row.completed {
			mark = "[x]"
		}
		ts := row.time
		if ts == "" {
			ts = "     "
		}
		line := fmt.Sprintf("%s%s %s %s %s", cursor, mark, ts, row.icon, row.title)
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		} else if row.completed {
			line = ui.Dim.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
