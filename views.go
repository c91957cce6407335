package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

func renderHeader() string {
	return titleStyle.Render("v2node") + "  " +
		subtitleStyle.Render("proxy node configuration manager")
}

// View renders the current screen.
func (m *model) View() string {
	if m.quitting {
		return "v2node exited\n"
	}

	var s strings.Builder
	s.WriteString(renderHeader())
	s.WriteString("\n\n")

	switch m.screen {
	case screenMenu:
		s.WriteString(m.viewMenu())
	case screenList:
		s.WriteString(m.viewList())
	case screenRaw:
		s.WriteString(m.viewRaw())
	case screenAdd:
		title, desc, showNodes := m.addPrompt()
		s.WriteString(m.viewPrompt(title, desc, showNodes))
	case screenDelete:
		s.WriteString(m.viewPrompt("Delete nodes",
			"Entries to delete, comma-separated values and ranges.\nEach value matches a display index first, a NodeID otherwise:", true))
	case screenEdit:
		title, desc, showNodes := m.editPrompt()
		s.WriteString(m.viewPrompt(title, desc, showNodes))
	}

	s.WriteString("\n")
	return s.String()
}

func (m *model) viewMenu() string {
	var s strings.Builder
	s.WriteString(subtitleStyle.Render(fmt.Sprintf("%d node(s) configured in %s", len(m.cfg.Nodes), m.store.Path)))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		line := item.key + ". " + item.label
		if i == m.cursor {
			s.WriteString(cursorStyle.Render("→ ") + focusedStyle.Render(line) + "\n")
		} else {
			s.WriteString("  " + blurredStyle.Render(line) + "\n")
		}
	}

	if m.status != "" {
		s.WriteString("\n")
		if m.statusErr {
			s.WriteString(errorStyle.Render("✗ " + m.status))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.status))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n" + helpStyle.Render("↑/↓ to select • Enter to confirm • 0-5 to choose directly • q to quit"))
	return s.String()
}

func (m *model) viewList() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Configured Nodes") + "\n\n")

	if len(m.cfg.Nodes) == 0 {
		s.WriteString(blurredStyle.Render("no nodes configured") + "\n")
	} else {
		s.WriteString(subtitleStyle.Render(fmt.Sprintf("  %-4s %-8s %-32s %-24s %s",
			"#", "NodeID", "ApiHost", "ApiKey", "Timeout")) + "\n")
		for i, n := range m.cfg.Nodes {
			s.WriteString(fmt.Sprintf("  %-4d %-8d %-32s %-24s %ds\n",
				i+1, n.NodeID, n.ApiHost, n.ApiKey, n.Timeout))
		}
	}

	s.WriteString("\n" + helpStyle.Render("any key to return"))
	return s.String()
}

func (m *model) viewRaw() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Raw Config") + "\n\n")

	data, err := json.MarshalIndent(m.cfg, "", "    ")
	if err != nil {
		s.WriteString(errorStyle.Render("✗ " + err.Error()))
	} else {
		s.WriteString(boxStyle.Render(string(data)))
	}

	s.WriteString("\n" + helpStyle.Render("any key to return"))
	return s.String()
}

func (m *model) viewPrompt(title, desc string, showNodes bool) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(title) + "\n\n")

	if showNodes && len(m.cfg.Nodes) > 0 {
		for i, n := range m.cfg.Nodes {
			s.WriteString(blurredStyle.Render(fmt.Sprintf("  %2d. NodeID %-6d %s", i+1, n.NodeID, n.ApiHost)) + "\n")
		}
		s.WriteString("\n")
	}

	s.WriteString(desc + "\n\n")
	s.WriteString(m.input.View())

	if m.errMsg != "" {
		s.WriteString("\n\n" + errorStyle.Render("✗ "+m.errMsg))
	}

	s.WriteString("\n\n" + helpStyle.Render("Enter to confirm • Esc to cancel"))
	return s.String()
}

func (m *model) addPrompt() (title, desc string, showNodes bool) {
	title = "Add Nodes"
	switch m.field {
	case addFieldClone:
		return title, "Copy ApiHost/ApiKey/Timeout from an existing node?\nEnter its display index, or press Enter to type them in:", true
	case addFieldHost:
		return title, "ApiHost (panel URL):", false
	case addFieldKey:
		return title, "ApiKey:", false
	case addFieldTimeout:
		return title, "Timeout in seconds:", false
	case addFieldIDs:
		return title, "NodeID to add, a single value or an inclusive range:", false
	}
	return title, "", false
}

func (m *model) editPrompt() (title, desc string, showNodes bool) {
	title = "Edit Node"
	switch m.field {
	case editFieldIndex:
		return title, "Display index of the node to edit:", true
	case editFieldNodeID:
		return title, fmt.Sprintf("New NodeID (Enter keeps %d):", m.draft.NodeID), false
	case editFieldHost:
		return title, fmt.Sprintf("New ApiHost (Enter keeps %s):", m.draft.ApiHost), false
	case editFieldKey:
		return title, fmt.Sprintf("New ApiKey (Enter keeps %s):", m.draft.ApiKey), false
	case editFieldTimeout:
		return title, fmt.Sprintf("New timeout (Enter keeps %d):", m.draft.Timeout), false
	}
	return title, "", false
}
