package ui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// HistoryRow is one XMRT transfer as shown in the history list.
type HistoryRow struct {
	Hash         string // full 0x... hash (for copy)
	ExplorerURL  string // e.g. https://sepolia.etherscan.io/tx/0x...
	Direction    string // "sent" or "received"
	Counterparty string
	Amount       string // already formatted
	Block        uint64
}

// HistoryTable lays the rows out as a table in the order given.
func HistoryTable(rows []HistoryRow) *Table {
	t := NewTable([]Column{
		{Title: "Block", Width: 10, Align: AlignRight},
		{Title: "Type", Width: 9},
		{Title: "Counterparty", Width: 14},
		{Title: "Amount", Width: 16, Align: AlignRight},
		{Title: "Tx", Width: 14},
	})
	for _, r := range rows {
		t.AddRow(Row{
			fmt.Sprintf("%d", r.Block),
			r.Direction,
			TruncateAddr(r.Counterparty),
			r.Amount,
			TruncateAddr(r.Hash),
		})
	}
	return t
}

// TxURL joins an explorer base URL and a transaction hash.
func TxURL(explorer, hash string) string {
	if explorer == "" || hash == "" {
		return ""
	}
	return strings.TrimRight(explorer, "/") + "/tx/" + hash
}

// historyModel is the bubbletea model for the interactive history list.
type historyModel struct {
	title  string
	table  *Table
	rows   []HistoryRow // parallel to table.Rows
	cursor int
	flash  string // brief feedback shown in the control bar

	open func(string) error
	copy func(string) error
}

func newHistoryModel(title string, rows []HistoryRow) historyModel {
	return historyModel{
		title: title,
		table: HistoryTable(rows),
		rows:  rows,
		open:  openBrowser,
		copy:  copyToClipboard,
	}
}

func (m historyModel) Init() tea.Cmd { return nil }

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.flash = ""
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "o":
		if m.cursor >= len(m.rows) {
			break
		}
		url := m.rows[m.cursor].ExplorerURL
		if url == "" {
			m.flash = "No explorer URL available"
			break
		}
		if err := m.open(url); err != nil {
			m.flash = "Open failed: " + err.Error()
		} else {
			m.flash = "Opening in browser…"
		}

	case "c":
		if m.cursor >= len(m.rows) {
			break
		}
		hash := m.rows[m.cursor].Hash
		if hash == "" {
			m.flash = "No hash available"
			break
		}
		if err := m.copy(hash); err != nil {
			m.flash = "Copy failed: " + err.Error()
		} else {
			m.flash = "Copied: " + TruncateAddr(hash)
		}
	}
	return m, nil
}

func (m historyModel) View() string {
	m.table.SelIdx = m.cursor

	var sb strings.Builder
	sb.WriteString(m.title + "\n\n")
	if len(m.rows) == 0 {
		sb.WriteString(StyleMeta.Render("  No transfers in range.") + "\n")
	} else {
		sb.WriteString(m.table.Render())
	}
	sb.WriteString("\n")
	if m.flash != "" {
		sb.WriteString(StyleSuccess.Render("  ✓ " + m.flash))
	} else {
		sb.WriteString(historyControls())
	}
	sb.WriteString("\n")
	return sb.String()
}

func historyControls() string {
	sep := StyleMeta.Render("   ")
	return StyleMeta.Render("[ ↑↓ ] navigate") + sep +
		StyleInfo.Render("[ o ]") + StyleMeta.Render(" open in explorer") + sep +
		StyleWarning.Render("[ c ]") + StyleMeta.Render(" copy hash") + sep +
		StyleMeta.Render("[ q ] quit")
}

// RunHistory starts the interactive history list and blocks until the user
// quits. Uses the alt screen so the terminal is restored on exit.
func RunHistory(title string, rows []HistoryRow) error {
	p := tea.NewProgram(newHistoryModel(title, rows),
		tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// openBrowser hands url to the desktop's URL handler without waiting.
func openBrowser(url string) error {
	argv := map[string][]string{
		"darwin":  {"open", url},
		"windows": {"rundll32", "url.dll,FileProtocolHandler", url},
	}[runtime.GOOS]
	if argv == nil {
		argv = []string{"xdg-open", url}
	}
	return exec.Command(argv[0], argv[1:]...).Start()
}

// clipboardCommand returns the first clipboard writer available here.
func clipboardCommand() ([]string, error) {
	switch runtime.GOOS {
	case "darwin":
		return []string{"pbcopy"}, nil
	case "windows":
		return []string{"clip"}, nil
	}
	for _, argv := range [][]string{{"wl-copy"}, {"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}} {
		if _, err := exec.LookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, errors.New("no clipboard tool found (install wl-copy, xclip or xsel)")
}

// copyToClipboard pipes text into the system clipboard tool.
func copyToClipboard(text string) error {
	argv, err := clipboardCommand()
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
