package main

import "github.com/charmbracelet/lipgloss"

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleErr  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleFile = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
)
