package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quiltviz/quilt/pkg/pipeline"
	"github.com/quiltviz/quilt/pkg/render"
	"github.com/quiltviz/quilt/pkg/render/sink"
)

// previewCommand creates the preview command showing a live terminal
// rendering of a figure file.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview a figure file in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			model, err := newPreviewModel(cmd.Context(), runner, args[0])
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// PreviewModel is the bubbletea model for the figure preview.
type PreviewModel struct {
	Path   string
	Figure *render.Figure

	runner *pipeline.Runner
	ctx    context.Context

	width  int
	height int
	plain  bool
	err    error
}

// newPreviewModel assembles the figure once so the first frame has
// content before the initial window size arrives.
func newPreviewModel(ctx context.Context, runner *pipeline.Runner, path string) (PreviewModel, error) {
	m := PreviewModel{Path: path, runner: runner, ctx: ctx, width: 80, height: 24}
	if err := m.reload(false); err != nil {
		return m, err
	}
	return m, nil
}

// reload re-runs the pipeline for the figure file. With refresh set the
// cache is bypassed, so edits to the file show up.
func (m *PreviewModel) reload(refresh bool) error {
	result, err := m.runner.Execute(m.ctx, pipeline.Options{
		FigurePath: m.Path,
		Refresh:    refresh,
	})
	if err != nil {
		return err
	}
	m.Figure = result.Figure
	return nil
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			m.plain = !m.plain
		case "r":
			m.err = m.reload(true)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Preview: %s", m.Path)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r reload  p toggle styling  q quit"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(fmt.Sprintf("reload failed: %v", m.err)))
		return b.String()
	}

	// Two header lines plus one spare row for the cursor.
	opts := []sink.TextOption{sink.WithTextSize(m.width, m.height-3)}
	if m.plain {
		opts = append(opts, sink.WithTextPlain())
	}
	b.WriteString(sink.RenderText(m.Figure, opts...))

	return b.String()
}
