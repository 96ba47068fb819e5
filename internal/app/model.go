package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"notepad/internal/logging"
	"notepad/internal/session"
)

const (
	defaultRequestTimeout = 10 * time.Second
	minListWidth          = 24
	maxListWidth          = 40
	minEditorWidth        = 20
	minContentHeight      = 3
	listItemHeight        = 3
	chromeRows            = 2
)

type focusArea int

const (
	focusList focusArea = iota
	focusTitle
	focusContent
)

type confirmAction int

const (
	confirmActionNone confirmAction = iota
	confirmActionDelete
	confirmActionDiscardSelect
	confirmActionDiscardCreate
	confirmActionQuit
)

type Options struct {
	Logger         logging.Logger
	RequestTimeout time.Duration
	ToastDuration  time.Duration
	// Endpoint is shown in the header so users can tell which service they
	// are editing.
	Endpoint string
}

type Model struct {
	api            session.NoteAPI
	session        *session.Manager
	logger         logging.Logger
	requestTimeout time.Duration
	endpoint       string

	titleInput    textinput.Model
	contentInput  textarea.Model
	// Session text the widgets were last loaded with or edited to.
	loadedTitle   string
	loadedContent string
	confirm       *ConfirmController

	confirmAction confirmAction
	pendingSelect int64
	focus         focusArea
	cursor        int
	listOffset    int
	preview       bool
	inFlight      int
	quitting      bool
	width         int
	height        int

	toastText     string
	toastLevel    session.Level
	toastUntil    time.Time
	toastDuration time.Duration

	now func() time.Time
}

func NewModel(api session.NoteAPI, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = defaultToastDuration
	}
	m := &Model{
		api:            api,
		logger:         logger,
		requestTimeout: opts.RequestTimeout,
		endpoint:       strings.TrimSpace(opts.Endpoint),
		titleInput:     newTitleInput(),
		contentInput:   newContentInput(),
		confirm:        NewConfirmController(),
		toastDuration:  opts.ToastDuration,
		now:            time.Now,
	}
	m.session = session.NewManager(api, m, logger)
	m.resize(80, 24)
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(api session.NoteAPI, opts Options) error {
	p := tea.NewProgram(NewModel(api, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Session() *session.Manager {
	return m.session
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), tickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case notesMsg:
		m.requestDone()
		m.session.ApplyLoad(msg.notes, msg.err)
		m.syncEditor()
		return m, nil
	case noteCreatedMsg:
		m.requestDone()
		m.session.ApplyCreate(msg.note, msg.err)
		if msg.err != nil || msg.note == nil {
			return m, nil
		}
		id, _ := m.session.SelectedID()
		m.cursor = m.indexOf(id)
		m.syncEditor()
		if id != msg.note.ID {
			return m, nil
		}
		return m, m.setFocus(focusTitle)
	case noteSavedMsg:
		m.requestDone()
		m.session.ApplySave(msg.req, msg.note, msg.err)
		m.syncEditor()
		return m, nil
	case noteDeletedMsg:
		m.requestDone()
		m.session.ApplyDelete(msg.id, msg.err)
		if m.confirmAction == confirmActionDelete && !m.session.DeleteConfirmOpen() {
			m.closeConfirm()
		}
		m.syncEditor()
		return m, nil
	case tickMsg:
		m.expireToast(time.Time(msg))
		return m, tickCmd()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, m.updateFocusedInput(msg)
}

func (m *Model) reload() tea.Cmd {
	m.inFlight++
	return fetchNotesCmd(m.api, m.requestTimeout)
}

func (m *Model) requestDone() {
	if m.inFlight > 0 {
		m.inFlight--
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	editorWidth := m.editorWidth()
	m.titleInput.Width = max(1, editorWidth-1)
	m.contentInput.SetWidth(editorWidth)
	m.contentInput.SetHeight(m.contentHeight())
	m.ensureCursorVisible()
}

func (m *Model) listWidth() int {
	width := m.width / 3
	if width < minListWidth {
		width = minListWidth
	}
	if width > maxListWidth {
		width = maxListWidth
	}
	return width
}

func (m *Model) editorWidth() int {
	return max(minEditorWidth, m.width-m.listWidth()-1)
}

func (m *Model) bodyHeight() int {
	return max(listItemHeight, m.height-chromeRows)
}

// contentHeight leaves room for the title row, its separator, the metadata
// line and the status line.
func (m *Model) contentHeight() int {
	return max(minContentHeight, m.bodyHeight()-4)
}
