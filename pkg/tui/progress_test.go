package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestModelUpdate(t *testing.T) {
	var m tea.Model = newModel()

	m, _ = m.Update(totalMsg(3))
	m, _ = m.Update(tickMsg{})
	m, _ = m.Update(tickMsg{})

	got := m.(model)
	assert.Equal(t, 3, got.total)
	assert.Equal(t, 2, got.done)
	assert.Contains(t, got.View(), "2/3 pages")
}

func TestModelQuitsOnDone(t *testing.T) {
	var m tea.Model = newModel()
	m, _ = m.Update(totalMsg(1))
	_, cmd := m.Update(doneMsg{})
	assert.NotNil(t, cmd)
}
