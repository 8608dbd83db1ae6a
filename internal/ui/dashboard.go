package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DashboardInfo is the static part of the balance card.
type DashboardInfo struct {
	Token   string // token name, e.g. "XMRT Token"
	Symbol  string
	Address string // session wallet
	Network string // chain label, e.g. "Ethereum Sepolia"
}

// BalanceMsg carries one balance refresh into the dashboard. The poller sends
// it through Program.Send; Err replaces the previous error line.
type BalanceMsg struct {
	Block     uint64
	Formatted string
	Err       error
	At        time.Time
}

// DashboardModel is the bubbletea model for the live balance card.
type DashboardModel struct {
	info     DashboardInfo
	balance  string
	block    uint64
	updated  time.Time
	err      string
	quitting bool
}

// NewDashboardModel creates an empty card waiting for its first BalanceMsg.
func NewDashboardModel(info DashboardInfo) DashboardModel {
	return DashboardModel{info: info}
}

// NewDashboard wraps the model in a program. Callers push BalanceMsg values
// with Send from their own poller goroutine.
func NewDashboard(info DashboardInfo, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(NewDashboardModel(info), opts...)
}

func (m DashboardModel) Init() tea.Cmd { return nil }

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case BalanceMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		m.balance = msg.Formatted
		m.block = msg.Block
		m.updated = msg.At
		if m.updated.IsZero() {
			m.updated = time.Now()
		}
	}
	return m, nil
}

// Balance returns the last formatted balance shown, empty before the first refresh.
func (m DashboardModel) Balance() string { return m.balance }

// Block returns the block the current balance was read at.
func (m DashboardModel) Block() uint64 { return m.block }

func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(Banner() + "\n")

	balance := StyleMeta.Render("Loading...")
	if m.balance != "" {
		balance = Val(m.balance) + " " + StyleMeta.Render(m.info.Symbol)
	}

	pairs := [][2]string{
		{"Token", m.info.Token},
		{"Wallet", TruncateAddr(m.info.Address)},
		{"Network", m.info.Network},
		{"Your XMRT Balance", balance},
	}
	if m.block > 0 {
		pairs = append(pairs, [2]string{"Block", fmt.Sprintf("%d", m.block)})
	}
	sb.WriteString(KeyValueBlock("", pairs) + "\n")

	if m.err != "" {
		sb.WriteString(Err(m.err) + "\n")
	}
	if !m.updated.IsZero() {
		sb.WriteString(StyleMeta.Render("Updated "+m.updated.Format("15:04:05")) + "  ")
	}
	sb.WriteString(StyleMeta.Render("q to quit") + "\n")
	return sb.String()
}
