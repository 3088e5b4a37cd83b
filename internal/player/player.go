// Package player is the terminal presentation client: a dashboard of stored
// decks, a prompt view for new topics, and an auto-advancing playback view.
package player

import (
	"context"
	"time"

	"app/internal/apiclient"
	"app/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PromptView ViewState = iota
	DashboardView
	PlayerView
	ConfirmDeleteView
)

// GenState tracks the one generation request a playback session may issue.
// Modelled as an enum rather than a boolean latch so a failed request stays
// retryable.
type GenState int

const (
	GenNotStarted GenState = iota
	GenInFlight
	GenDone
	GenFailed
)

const (
	// tickInterval is the playback timer cadence.
	tickInterval = 100 * time.Millisecond
	// slideDuration is how long each slide stays up during autoplay.
	slideDuration = 8000 * time.Millisecond
)

// progressPerTick is the linear ramp step, as a 0-100 percentage.
const progressPerTick = 100 * float64(tickInterval) / float64(slideDuration)

// Model represents the player application state.
type Model struct {
	ctx    context.Context
	client *apiclient.Client
	view   ViewState
	width  int
	height int
	keys   keyMap
	help   help.Model

	// prompt view
	promptInput textinput.Model
	courseType  model.CourseType
	promptErr   string

	// dashboard view
	courseList    list.Model
	courses       []model.Course
	listReady     bool
	pendingDelete *model.Course
	statusMsg     string

	// player view
	prompt   string
	genState GenState
	genErr   error
	slides   []model.Slide
	current  int
	progress float64
	timerSeq int
	bar      progress.Model
}

// courseItem wraps [model.Course] to implement list.Item.
type courseItem struct {
	course model.Course
}

func (i courseItem) FilterValue() string { return i.course.Prompt }
func (i courseItem) Title() string       { return i.course.Prompt }
func (i courseItem) Description() string {
	suffix := "slides"
	if len(i.course.Content) == 1 {
		suffix = "slide"
	}
	return string(i.course.Type) + " • " + itoa(len(i.course.Content)) + " " + suffix
}

type coursesFetchedMsg struct {
	courses []model.Course
	err     error
}

type courseGeneratedMsg struct {
	course *model.Course
	err    error
}

type courseDeletedMsg struct {
	courseID string
	err      error
}

// tickMsg carries the timer sequence it was scheduled under; ticks from a
// superseded timer are discarded so exactly one timer drives playback.
type tickMsg struct {
	seq int
}

// Options configure the initial view.
type Options struct {
	// Prompt, when set, starts playback for this topic immediately.
	Prompt string
	// Type is the raw course type for a direct playback start.
	Type string
}

// NewModel creates a player model with the provided dependencies.
func NewModel(ctx context.Context, client *apiclient.Client, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Type a topic to learn..."
	input.CharLimit = 200
	input.Focus()

	m := &Model{
		ctx:         ctx,
		client:      client,
		view:        DashboardView,
		keys:        newKeyMap(),
		help:        help.New(),
		promptInput: input,
		courseType:  model.ParseCourseType(opts.Type),
		bar:         progress.New(progress.WithDefaultGradient()),
	}
	if opts.Prompt != "" {
		m.view = PlayerView
		m.prompt = opts.Prompt
	}
	return m
}

// Init triggers the initial request: a generate when a prompt was supplied,
// otherwise the dashboard fetch.
func (m *Model) Init() tea.Cmd {
	if m.view == PlayerView {
		return m.startGeneration()
	}
	if m.view == PromptView {
		return textinput.Blink
	}
	return m.fetchCourses()
}

// startGeneration issues the single generate request for this playback
// session. Re-entry is a no-op unless the previous attempt failed.
func (m *Model) startGeneration() tea.Cmd {
	if m.prompt == "" || m.genState == GenInFlight || m.genState == GenDone {
		return nil
	}
	m.genState = GenInFlight
	m.genErr = nil
	prompt, courseType := m.prompt, string(m.courseType)
	return func() tea.Msg {
		course, err := m.client.GenerateCourse(m.ctx, prompt, courseType)
		return courseGeneratedMsg{course: course, err: err}
	}
}

func (m *Model) fetchCourses() tea.Cmd {
	return func() tea.Msg {
		courses, err := m.client.ListCourses(m.ctx)
		return coursesFetchedMsg{courses: courses, err: err}
	}
}

func (m *Model) deleteCourse(courseID string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.client.DeleteCourse(m.ctx, courseID)
		return courseDeletedMsg{courseID: courseID, err: err}
	}
}

// tick schedules the next playback tick under the given timer sequence.
func (m *Model) tick(seq int) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.courseList.SetSize(msg.Width-4, msg.Height-8)
		}
		m.bar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PromptView:
			return m.handlePromptKeys(msg)
		case DashboardView:
			return m.handleDashboardKeys(msg)
		case PlayerView:
			return m.handlePlayerKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case coursesFetchedMsg:
		return m.handleCoursesFetched(msg)

	case courseGeneratedMsg:
		return m.handleCourseGenerated(msg)

	case courseDeletedMsg:
		return m.handleCourseDeleted(msg)

	case tickMsg:
		return m.handleTick(msg)
	}

	return m.updateChildren(msg)
}

func (m *Model) handleCoursesFetched(msg coursesFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = "Error fetching courses: " + msg.err.Error()
		m.courses = nil
		return m, nil
	}
	m.courses = msg.courses
	items := make([]list.Item, len(msg.courses))
	for i, c := range msg.courses {
		items[i] = courseItem{course: c}
	}
	m.courseList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.courseList.Title = "Your Courses"
	m.courseList.SetSize(m.width-4, m.height-8)
	m.listReady = true
	return m, nil
}

func (m *Model) handleCourseGenerated(msg courseGeneratedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.genState = GenFailed
		m.genErr = msg.err
		return m, nil
	}
	m.genState = GenDone
	m.slides = msg.course.Content
	m.current = 0
	m.progress = 0
	if len(m.slides) == 0 {
		// Empty deck: static message, no timer.
		return m, nil
	}
	m.timerSeq++
	return m, m.tick(m.timerSeq)
}

func (m *Model) handleCourseDeleted(msg courseDeletedMsg) (tea.Model, tea.Cmd) {
	m.pendingDelete = nil
	m.view = DashboardView
	if msg.err != nil {
		m.statusMsg = "Deletion failed. Some error occurred. Please try again."
		return m, nil
	}
	m.statusMsg = ""
	return m, m.fetchCourses()
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.timerSeq || m.view != PlayerView || len(m.slides) == 0 {
		// Stale timer or playback stopped; let it die.
		return m, nil
	}
	m.progress += progressPerTick
	if m.progress >= 100 {
		m.advance(1)
		return m, m.tick(m.timerSeq)
	}
	return m, m.tick(msg.seq)
}

// advance moves currentIndex by delta (wrapping), resets progress and
// supersedes the running timer.
func (m *Model) advance(delta int) {
	n := len(m.slides)
	if n == 0 {
		return
	}
	m.current = ((m.current+delta)%n + n) % n
	m.progress = 0
	m.timerSeq++
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.courseType == model.CourseTypeQuick {
			m.courseType = model.CourseTypeLong
		} else {
			m.courseType = model.CourseTypeQuick
		}
		return m, nil
	case "esc":
		m.view = DashboardView
		return m, m.fetchCourses()
	case "enter":
		topic := m.promptInput.Value()
		if topic == "" {
			m.promptErr = "Please type something"
			return m, nil
		}
		m.promptErr = ""
		m.prompt = topic
		m.genState = GenNotStarted
		m.slides = nil
		m.view = PlayerView
		return m, m.startGeneration()
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "c":
		m.view = PromptView
		m.promptInput.SetValue("")
		m.promptInput.Focus()
		return m, textinput.Blink
	case "enter":
		if course, ok := m.selectedCourse(); ok {
			// Relaunch: the server reuses the stored deck for this prompt.
			m.prompt = course.Prompt
			m.courseType = course.Type
			m.genState = GenNotStarted
			m.slides = nil
			m.view = PlayerView
			return m, m.startGeneration()
		}
	case "d":
		if course, ok := m.selectedCourse(); ok {
			m.pendingDelete = course
			m.view = ConfirmDeleteView
		}
		return m, nil
	}

	return m.updateChildren(msg)
}

func (m *Model) handlePlayerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "q" || msg.String() == "ctrl+c":
		return m, tea.Quit
	case msg.String() == "esc":
		m.view = DashboardView
		m.timerSeq++ // stop playback
		return m, m.fetchCourses()
	case msg.String() == "r":
		if m.genState == GenFailed {
			return m, m.startGeneration()
		}
		return m, nil
	case keyMatches(msg, m.keys.next):
		if len(m.slides) > 0 && m.genState == GenDone {
			m.advance(1)
			return m, m.tick(m.timerSeq)
		}
	case keyMatches(msg, m.keys.prev):
		if len(m.slides) > 0 && m.genState == GenDone {
			m.advance(-1)
			return m, m.tick(m.timerSeq)
		}
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.pendingDelete = nil
		m.view = DashboardView
		return m, nil
	case "y":
		if m.pendingDelete != nil {
			return m, m.deleteCourse(m.pendingDelete.CourseID)
		}
		m.view = DashboardView
		return m, nil
	}
	return m, nil
}

func (m *Model) selectedCourse() (*model.Course, bool) {
	if !m.listReady {
		return nil, false
	}
	selected := m.courseList.SelectedItem()
	if selected == nil {
		return nil, false
	}
	item, ok := selected.(courseItem)
	if !ok {
		return nil, false
	}
	return &item.course, true
}

func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PromptView:
		m.promptInput, cmd = m.promptInput.Update(msg)
	case DashboardView:
		if m.listReady {
			m.courseList, cmd = m.courseList.Update(msg)
		}
	}
	return m, cmd
}
