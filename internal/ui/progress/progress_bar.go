package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/agentkit/internal/ui/styles"
)

// step reports one finished item.
type step struct {
	done int
	url  string
}

// ProgressBar counts fetched search results: "<bar> 2/5 Fetching... <url>".
// It is inert when stderr is not a terminal.
type ProgressBar struct {
	label    string
	total    int
	disabled bool

	mu      sync.Mutex
	program *tea.Program
	steps   chan step
	exited  chan struct{}
	running bool
	last    step
}

type barModel struct {
	bar   progress.Model
	label string
	total int
	last  step
	steps <-chan step
}

func (m barModel) Init() tea.Cmd {
	return m.next()
}

func (m barModel) next() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.steps
		if !ok {
			return tea.Quit()
		}
		return s
	}
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s, ok := msg.(step); ok {
		m.last = s
		return m, m.next()
	}
	var cmd tea.Cmd
	m.bar, cmd = m.bar.Update(msg)
	return m, cmd
}

func (m barModel) View() tea.View {
	return tea.NewView(m.line())
}

func (m barModel) line() string {
	percent := 0.0
	if m.total > 0 {
		percent = min(float64(m.last.done)/float64(m.total), 1)
	}
	line := fmt.Sprintf("%s %d/%d %s", m.bar.ViewAs(percent), m.last.done, m.total, m.label)
	if m.last.url != "" {
		line += " " + m.last.url
	}
	return line
}

func newBar() progress.Model {
	return progress.New(
		progress.WithWidth(30),
		progress.WithoutPercentage(),
		progress.WithColors(styles.Primary, styles.Accent),
	)
}

// NewProgressBar creates a bar for total items labelled label.
func NewProgressBar(total int, label string) *ProgressBar {
	return &ProgressBar{
		label:    label,
		total:    total,
		disabled: !Enabled(),
		steps:    make(chan step, 10),
		exited:   make(chan struct{}),
	}
}

// Start draws the bar.
func (p *ProgressBar) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running || p.disabled {
		return
	}

	p.program = newProgram(barModel{bar: newBar(), label: p.label, total: p.total, last: p.last, steps: p.steps})
	p.running = true
	go func() {
		_, _ = p.program.Run()
		close(p.exited)
	}()
}

// SetProgress records that done items are finished, url being the last.
// Updates are dropped while the bar is busy redrawing.
func (p *ProgressBar) SetProgress(done int, url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		p.last = step{done: done, url: url}
		return
	}
	select {
	case p.steps <- step{done: done, url: url}:
	default:
	}
}

// Stop removes the bar from the screen.
func (p *ProgressBar) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.steps)
	p.mu.Unlock()

	p.program.Quit()
	select {
	case <-p.exited:
	case <-time.After(500 * time.Millisecond):
	}
	fmt.Fprint(os.Stderr, "\r\033[K")
}
