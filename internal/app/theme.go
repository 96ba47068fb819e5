package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle              = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	metaStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dividerStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	noteTitleStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	notePreviewStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	noteDateStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
	activeMarkerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	selectedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	emptyStateStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	menuDropStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	dialogHeaderStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	confirmDialogBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	unsavedStatusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	savedStatusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	busyStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	toastInfoStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("25")).Bold(true)
	toastSuccessStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastErrorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
