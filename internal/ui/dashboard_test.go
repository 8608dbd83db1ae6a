package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() DashboardInfo {
	return DashboardInfo{
		Token:   "XMRT Token",
		Symbol:  "XMRT",
		Address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Network: "Ethereum Sepolia",
	}
}

func update(t *testing.T, m DashboardModel, msg tea.Msg) DashboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	dm, ok := next.(DashboardModel)
	require.True(t, ok)
	return dm
}

func TestDashboardLoadingBeforeFirstBalance(t *testing.T) {
	view := NewDashboardModel(testInfo()).View()
	assert.Contains(t, view, "Loading...")
	assert.Contains(t, view, "XMRT Token")
	assert.Contains(t, view, "0xf39F…2266")
}

func TestDashboardAppliesBalance(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := update(t, NewDashboardModel(testInfo()), BalanceMsg{Block: 42, Formatted: "50.00", At: at})

	assert.Equal(t, "50.00", m.Balance())
	assert.Equal(t, uint64(42), m.Block())
	view := m.View()
	assert.Contains(t, view, "50.00")
	assert.Contains(t, view, "03:04:05")
	assert.NotContains(t, view, "Loading...")
}

func TestDashboardErrorKeepsLastBalance(t *testing.T) {
	m := update(t, NewDashboardModel(testInfo()), BalanceMsg{Block: 1, Formatted: "7.50"})
	m = update(t, m, BalanceMsg{Err: errors.New("rpc down")})

	assert.Equal(t, "7.50", m.Balance())
	assert.Contains(t, m.View(), "rpc down")

	m = update(t, m, BalanceMsg{Block: 2, Formatted: "7.50"})
	assert.NotContains(t, m.View(), "rpc down")
}

func TestDashboardQuit(t *testing.T) {
	next, cmd := NewDashboardModel(testInfo()).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, "", next.View())
}
