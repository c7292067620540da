package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	muted  lipgloss.Style
	pane   lipgloss.Style
	card   lipgloss.Style
	active lipgloss.Style
	modal  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	border := lipgloss.RoundedBorder()
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		ok:     NewBold(s),
		err:    NewBold(e),
		warn:   NewStyle(w),
		help:   NewEm(h),
		muted:  NewStyle(h),
		pane:   lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(h)).Padding(0, 1),
		card:   lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(h)).Padding(1, 2).Width(24).Align(lipgloss.Center),
		active: lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(t)).Padding(1, 2).Width(24).Align(lipgloss.Center),
		modal:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(e)).Padding(1, 3),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
