package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenMenu screen = iota
	screenList
	screenAdd
	screenDelete
	screenEdit
	screenRaw
)

// Add flow prompt sequence.
const (
	addFieldClone = iota
	addFieldHost
	addFieldKey
	addFieldTimeout
	addFieldIDs
)

// Edit flow prompt sequence.
const (
	editFieldIndex = iota
	editFieldNodeID
	editFieldHost
	editFieldKey
	editFieldTimeout
)

const defaultTimeout = 30

var menuItems = []struct {
	key   string
	label string
}{
	{"1", "List nodes"},
	{"2", "Add node(s)"},
	{"3", "Delete node(s)"},
	{"4", "Edit node"},
	{"5", "Show raw config"},
	{"0", "Exit"},
}

// model is the bubbletea model for the whole menu session.
type model struct {
	store      *Store
	controller ServiceController
	service    string
	noRestart  bool

	screen screen
	cursor int
	field  int
	input  textinput.Model

	cfg     *Config
	draft   Node // scratch record for add/edit flows
	editIdx int  // storage index being edited

	status    string // last operation outcome, shown on the menu
	statusErr bool
	errMsg    string // inline error for the current prompt

	quitting bool
}

func newModel(store *Store, controller ServiceController, service string, noRestart bool) *model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	cfg, err := store.Load()
	if err != nil {
		cfg = defaultConfig()
	}

	return &model{
		store:      store,
		controller: controller,
		service:    service,
		noRestart:  noRestart,
		input:      ti,
		cfg:        cfg,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		switch m.screen {
		case screenAdd, screenDelete, screenEdit:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(keyMsg)
	case screenList, screenRaw:
		m.screen = screenMenu
		return m, nil
	default:
		return m.updatePrompt(keyMsg)
	}
}

func (m *model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		return m.selectMenuItem(m.cursor)
	case "q", "0":
		m.quitting = true
		return m, tea.Quit
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(msg.String())
		m.cursor = n - 1
		return m.selectMenuItem(n - 1)
	default:
		if msg.Type == tea.KeyRunes {
			m.status = fmt.Sprintf("unknown choice %q", msg.String())
			m.statusErr = true
		}
	}
	return m, nil
}

// selectMenuItem dispatches a confirmed top-level choice. Every operation
// re-reads the config file first: the file is the sole source of truth.
func (m *model) selectMenuItem(i int) (tea.Model, tea.Cmd) {
	m.status = ""
	m.statusErr = false
	m.errMsg = ""

	if i == 5 {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.reload() {
		return m, nil
	}

	switch i {
	case 0:
		m.screen = screenList
	case 1:
		m.draft = Node{Timeout: defaultTimeout}
		if len(m.cfg.Nodes) == 0 {
			m.startPrompt(screenAdd, addFieldHost)
		} else {
			m.startPrompt(screenAdd, addFieldClone)
		}
	case 2:
		if len(m.cfg.Nodes) == 0 {
			m.status = "no nodes configured"
			m.statusErr = true
			return m, nil
		}
		m.startPrompt(screenDelete, 0)
	case 3:
		if len(m.cfg.Nodes) == 0 {
			m.status = "no nodes configured"
			m.statusErr = true
			return m, nil
		}
		m.startPrompt(screenEdit, editFieldIndex)
	case 4:
		m.screen = screenRaw
	}
	return m, nil
}

func (m *model) reload() bool {
	cfg, err := m.store.Load()
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return false
	}
	m.cfg = cfg
	return true
}

func (m *model) startPrompt(s screen, field int) {
	m.screen = s
	m.field = field
	m.errMsg = ""
	m.setupField()
}

func (m *model) setupField() {
	m.input.Reset()
	m.input.Focus()
	m.input.Placeholder = ""

	switch m.screen {
	case screenAdd:
		switch m.field {
		case addFieldClone:
			m.input.Placeholder = fmt.Sprintf("1-%d, empty to type settings in", len(m.cfg.Nodes))
		case addFieldHost:
			m.input.Placeholder = "e.g., https://panel.example.com"
		case addFieldKey:
			m.input.Placeholder = "panel API key"
		case addFieldTimeout:
			m.input.Placeholder = fmt.Sprintf("seconds, empty for %d", defaultTimeout)
		case addFieldIDs:
			m.input.Placeholder = "e.g., 7 or 3-5"
		}
	case screenDelete:
		m.input.Placeholder = "e.g., 1,3-5"
	case screenEdit:
		switch m.field {
		case editFieldIndex:
			m.input.Placeholder = fmt.Sprintf("1-%d", len(m.cfg.Nodes))
		case editFieldNodeID:
			m.input.Placeholder = strconv.Itoa(m.draft.NodeID)
		case editFieldHost:
			m.input.Placeholder = m.draft.ApiHost
		case editFieldKey:
			m.input.Placeholder = m.draft.ApiKey
		case editFieldTimeout:
			m.input.Placeholder = strconv.Itoa(m.draft.Timeout)
		}
	}
}

func (m *model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenMenu
		m.errMsg = ""
		return m, nil
	case "enter":
		return m.handleEnter()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenAdd:
		return m.handleAddEnter()
	case screenDelete:
		return m.handleDeleteEnter()
	case screenEdit:
		return m.handleEditEnter()
	}
	return m, nil
}

func (m *model) handleAddEnter() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.field {
	case addFieldClone:
		if value == "" {
			m.field = addFieldHost
			break
		}
		idx, err := strconv.Atoi(value)
		if err != nil || idx < 1 || idx > len(m.cfg.Nodes) {
			m.errMsg = fmt.Sprintf("no node at index %q", value)
			return m, nil
		}
		src := m.cfg.Nodes[idx-1]
		m.draft.ApiHost = src.ApiHost
		m.draft.ApiKey = src.ApiKey
		m.draft.Timeout = src.Timeout
		m.field = addFieldIDs

	case addFieldHost:
		if value == "" {
			m.errMsg = "ApiHost must not be empty"
			return m, nil
		}
		m.draft.ApiHost = value
		m.field = addFieldKey

	case addFieldKey:
		if value == "" {
			m.errMsg = "ApiKey must not be empty"
			return m, nil
		}
		m.draft.ApiKey = value
		m.field = addFieldTimeout

	case addFieldTimeout:
		if value != "" {
			t, err := strconv.Atoi(value)
			if err != nil || t <= 0 {
				m.errMsg = fmt.Sprintf("invalid timeout %q", value)
				return m, nil
			}
			m.draft.Timeout = t
		}
		m.field = addFieldIDs

	case addFieldIDs:
		ids, err := ParseIDRange(value)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		res := AddNodes(m.cfg, ids, m.draft.ApiHost, m.draft.ApiKey, m.draft.Timeout)
		m.screen = screenMenu
		if len(res.Added) == 0 {
			m.status = fmt.Sprintf("nothing added, NodeIDs already present: %s", joinInts(res.Skipped))
			m.statusErr = true
			return m, nil
		}
		summary := fmt.Sprintf("added %d node(s): NodeID %s", len(res.Added), joinInts(res.Added))
		if len(res.Skipped) > 0 {
			summary += fmt.Sprintf("; skipped existing: %s", joinInts(res.Skipped))
		}
		m.commit(summary)
		return m, nil
	}

	m.errMsg = ""
	m.setupField()
	return m, nil
}

func (m *model) handleDeleteEnter() (tea.Model, tea.Cmd) {
	values, err := ParseSelection(m.input.Value())
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	res := DeleteNodes(m.cfg, values)
	m.screen = screenMenu
	if len(res.Deleted) == 0 {
		m.status = fmt.Sprintf("nothing deleted, unmatched values: %s", joinInts(res.Missed))
		m.statusErr = true
		return m, nil
	}

	ids := make([]int, len(res.Deleted))
	for i, n := range res.Deleted {
		ids[i] = n.NodeID
	}
	summary := fmt.Sprintf("deleted %d node(s): NodeID %s", len(res.Deleted), joinInts(ids))
	if len(res.Missed) > 0 {
		summary += fmt.Sprintf("; unmatched: %s", joinInts(res.Missed))
	}
	m.commit(summary)
	return m, nil
}

func (m *model) handleEditEnter() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.field {
	case editFieldIndex:
		idx, err := strconv.Atoi(value)
		if err != nil || idx < 1 || idx > len(m.cfg.Nodes) {
			m.errMsg = fmt.Sprintf("no node at index %q", value)
			return m, nil
		}
		m.editIdx = idx - 1
		m.draft = m.cfg.Nodes[m.editIdx]
		m.field = editFieldNodeID

	case editFieldNodeID:
		if value != "" {
			id, err := strconv.Atoi(value)
			if err != nil || id < 0 {
				m.errMsg = fmt.Sprintf("invalid NodeID %q", value)
				return m, nil
			}
			m.draft.NodeID = id
		}
		m.field = editFieldHost

	case editFieldHost:
		if value != "" {
			m.draft.ApiHost = value
		}
		m.field = editFieldKey

	case editFieldKey:
		if value != "" {
			m.draft.ApiKey = value
		}
		m.field = editFieldTimeout

	case editFieldTimeout:
		if value != "" {
			t, err := strconv.Atoi(value)
			if err != nil || t <= 0 {
				m.errMsg = fmt.Sprintf("invalid timeout %q", value)
				return m, nil
			}
			m.draft.Timeout = t
		}
		m.screen = screenMenu
		if err := EditNode(m.cfg, m.editIdx, m.draft); err != nil {
			m.status = err.Error()
			m.statusErr = true
			return m, nil
		}
		m.commit(fmt.Sprintf("updated node %d (NodeID %d)", m.editIdx+1, m.draft.NodeID))
		return m, nil
	}

	m.errMsg = ""
	m.setupField()
	return m, nil
}

// commit persists the mutated document and triggers the service restart.
func (m *model) commit(summary string) {
	if err := m.store.Save(m.cfg); err != nil {
		m.status = err.Error()
		m.statusErr = true
		return
	}
	m.status = summary + "; " + m.restartMessage()
	m.statusErr = false
}

func (m *model) restartMessage() string {
	if m.noRestart {
		return "service restart skipped"
	}
	if err := m.controller.Restart(m.service); err != nil {
		return fmt.Sprintf("warning: restart failed (%v), restart %s by hand", err, m.service)
	}
	return fmt.Sprintf("service %s restarted", m.service)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
