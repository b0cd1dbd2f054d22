package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// FileProcessor handles one file of a batch.
type FileProcessor func(ctx context.Context, path string) slicermeta.FileResult

// fileDoneMsg carries the result of the file at index.
type fileDoneMsg struct {
	index  int
	result slicermeta.FileResult
}

// ProgressModel runs a batch one file at a time while showing a spinner.
// Pressing q stops the batch after the file in flight; the files that were
// not started are reported as cancelled.
type ProgressModel struct {
	ctx     context.Context
	cancel  context.CancelFunc
	paths   []string
	process FileProcessor
	results []slicermeta.FileResult
	spinner spinner.Model
	keys    KeyMap
	stopped bool
	done    bool
}

// NewProgressModel creates a model that will process paths in order.
func NewProgressModel(ctx context.Context, paths []string, process FileProcessor) ProgressModel {
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return ProgressModel{
		ctx:     ctx,
		cancel:  cancel,
		paths:   paths,
		process: process,
		results: make([]slicermeta.FileResult, 0, len(paths)),
		spinner: s,
		keys:    DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	if len(m.paths) == 0 {
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.processNext())
}

func (m ProgressModel) processNext() tea.Cmd {
	index := len(m.results)
	if index >= len(m.paths) {
		return nil
	}
	ctx, path, process := m.ctx, m.paths[index], m.process
	return func() tea.Msg {
		return fileDoneMsg{index: index, result: process(ctx, path)}
	}
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileDoneMsg:
		if msg.index != len(m.results) {
			return m, nil
		}
		m.results = append(m.results, msg.result)
		if m.stopped || m.ctx.Err() != nil {
			m.cancelRemaining()
		}
		if len(m.results) == len(m.paths) {
			m.done = true
			m.cancel()
			return m, tea.Quit
		}
		return m, m.processNext()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.stopped = true
		}
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ProgressModel) cancelRemaining() {
	err := m.ctx.Err()
	if err == nil {
		err = context.Canceled
	}
	for _, path := range m.paths[len(m.results):] {
		m.results = append(m.results, slicermeta.Failed(path, err))
	}
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	var b strings.Builder

	for _, r := range m.results {
		b.WriteString(renderResult(r))
		b.WriteString("\n")
	}

	if !m.done && len(m.results) < len(m.paths) {
		current := m.paths[len(m.results)]
		fmt.Fprintf(&b, "%s Rewriting %s (%d/%d)\n", m.spinner.View(), current, len(m.results)+1, len(m.paths))
		if m.stopped {
			b.WriteString(WarningStyle.Render("Stopping after the current file..."))
		} else {
			b.WriteString(HelpStyle.Render(m.keys.HelpText()))
		}
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString(SummaryLine(m.Batch()))
		b.WriteString("\n")
	}
	return b.String()
}

func renderResult(r slicermeta.FileResult) string {
	switch r.Status {
	case slicermeta.StatusRewritten, slicermeta.StatusPreviewed:
		return SuccessStyle.Render(SymbolCheck+" "+r.Path) +
			DescriptionStyle.Render(fmt.Sprintf(" %d metadata line(s)", len(r.Header)))
	case slicermeta.StatusSkipped:
		return WarningStyle.Render(SymbolSkip + " " + r.Path + " skipped")
	default:
		return ErrorStyle.Render(SymbolCross + " " + r.Path + ": " + r.Error)
	}
}

// SummaryLine renders the per-status counts of a batch.
func SummaryLine(batch slicermeta.BatchResult) string {
	parts := []string{
		SuccessStyle.Render(fmt.Sprintf("%d rewritten", batch.Count(slicermeta.StatusRewritten))),
	}
	if n := batch.Count(slicermeta.StatusPreviewed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d previewed", n))
	}
	if n := batch.Count(slicermeta.StatusSkipped); n > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d skipped", n)))
	}
	if n := batch.Count(slicermeta.StatusFailed); n > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failed", n)))
	}
	return strings.Join(parts, " "+SymbolBullet+" ")
}

// Done reports whether every file has a result.
func (m ProgressModel) Done() bool {
	return m.done
}

// Batch returns the results collected so far, in argument order.
func (m ProgressModel) Batch() slicermeta.BatchResult {
	return slicermeta.BatchResult{Files: append([]slicermeta.FileResult(nil), m.results...)}
}

// RunProgress processes paths through a bubbletea program rendering to out.
func RunProgress(ctx context.Context, paths []string, process FileProcessor, in io.Reader, out io.Writer) (slicermeta.BatchResult, error) {
	model := NewProgressModel(ctx, paths, process)
	defer model.cancel()

	final, err := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out)).Run()
	batch := model.Batch()
	if m, ok := final.(ProgressModel); ok {
		batch = m.Batch()
	}
	if err != nil {
		return batch, fmt.Errorf("progress view failed: %w", err)
	}
	return batch, nil
}
