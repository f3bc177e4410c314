package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardstack/pkg/config"
	"github.com/matzehuels/cardstack/pkg/stack"
)

const (
	// frameInterval is the animation tick.
	frameInterval = 16 * time.Millisecond
	// animationEase is the fraction of the remaining distance covered per tick.
	animationEase = 0.25
	// settleDistance ends an animation once the offset is this close.
	settleDistance = 0.5
	// dragStep is the fraction of a page moved by one drag key press.
	dragStep = 0.1
	// overscroll is how far past either end a drag may go, in pages.
	overscroll = 0.3
	// snapDelay is how long after the last drag the stack snaps to a page.
	snapDelay = 400 * time.Millisecond
)

// =============================================================================
// Key Bindings
// =============================================================================

type previewKeys struct {
	Next      key.Binding
	Prev      key.Binding
	DragLeft  key.Binding
	DragRight key.Binding
	First     key.Binding
	Last      key.Binding
	More      key.Binding
	Fewer     key.Binding
	Policy    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultPreviewKeys() previewKeys {
	return previewKeys{
		Next:      key.NewBinding(key.WithKeys("n", "pgdown", " "), key.WithHelp("n", "next page")),
		Prev:      key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "previous page")),
		DragLeft:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "drag forward")),
		DragRight: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "drag back")),
		First:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		More:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add card")),
		Fewer:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "remove card")),
		Policy:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle scale policy")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k previewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.DragLeft, k.DragRight, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k previewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.DragLeft, k.DragRight},
		{k.More, k.Fewer, k.Policy},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// Messages
// =============================================================================

type tickMsg struct{}

// snapMsg fires after a drag settles. Stale snaps carry an old seq.
type snapMsg struct{ seq int }

// =============================================================================
// Model
// =============================================================================

// previewModel is the bubbletea model of the terminal preview. It is the
// scroll host of its own pager, so paging goes through the same contract
// a UI toolkit would use.
type previewModel struct {
	layout *stack.Layout
	pager  *stack.Pager
	vp     stack.Viewport
	labels []string

	target      float64
	animating   bool
	tickPending bool
	snapSeq     int

	keys   previewKeys
	help   help.Model
	cols   int
	rows   int
	status string

	watcher    *configWatcher
	configPath string
}

func newPreviewModel(layout *stack.Layout, vp stack.Viewport, labels []string) *previewModel {
	m := &previewModel{
		layout: layout,
		vp:     vp,
		labels: labels,
		target: vp.Offset,
		keys:   defaultPreviewKeys(),
		help:   help.New(),
		cols:   80,
		rows:   24,
	}
	m.pager = stack.NewPager(m)
	layout.Subscribe(func(r stack.Reason) {
		m.status = "relayout: " + r.String()
	})
	return m
}

// Viewport implements stack.ScrollHost.
func (m *previewModel) Viewport() stack.Viewport { return m.vp }

// ScrollTo implements stack.ScrollHost.
func (m *previewModel) ScrollTo(offset float64, animated bool) {
	m.target = offset
	if !animated {
		m.vp.Offset = offset
		m.animating = false
		return
	}
	m.animating = true
}

func (m *previewModel) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.wait()
	}
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.tickPending = false
		m.step()
		return m, m.animate()

	case snapMsg:
		if msg.seq != m.snapSeq {
			return m, nil
		}
		m.pager.SetCurrentPage(stack.NearestPage(m.vp.Offset, m.vp.Width, m.vp.ItemCount), true)
		return m, m.animate()

	case configChangedMsg:
		m.reloadConfig()
		return m, m.watcher.wait()

	case watchErrMsg:
		m.status = "watch: " + msg.err.Error()
		return m, m.watcher.wait()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *previewModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Next):
		m.pageTo(stack.CurrentPage(m.target, m.vp.Width) + 1)
	case key.Matches(msg, m.keys.Prev):
		m.pageTo(stack.CurrentPage(m.target, m.vp.Width) - 1)
	case key.Matches(msg, m.keys.First):
		m.pageTo(0)
	case key.Matches(msg, m.keys.Last):
		m.pageTo(m.vp.ItemCount - 1)
	case key.Matches(msg, m.keys.DragLeft):
		return m.drag(1)
	case key.Matches(msg, m.keys.DragRight):
		return m.drag(-1)
	case key.Matches(msg, m.keys.More):
		m.setItemCount(m.vp.ItemCount + 1)
	case key.Matches(msg, m.keys.Fewer):
		m.setItemCount(m.vp.ItemCount - 1)
	case key.Matches(msg, m.keys.Policy):
		m.togglePolicy()
	}
	return m.animate()
}

// pageTo animates to page. Paging counts from the animation target so
// repeated presses queue up instead of stalling mid-flight.
func (m *previewModel) pageTo(page int) {
	m.snapSeq++
	m.pager.SetCurrentPage(page, true)
}

// drag moves the offset directly like a finger would and schedules a snap.
func (m *previewModel) drag(dir float64) tea.Cmd {
	lo := -overscroll * m.vp.Width
	hi := stack.MaxOffset(m.vp) + overscroll*m.vp.Width
	offset := math.Max(lo, math.Min(hi, m.vp.Offset+dir*dragStep*m.vp.Width))
	m.ScrollTo(offset, false)

	m.snapSeq++
	seq := m.snapSeq
	return tea.Tick(snapDelay, func(time.Time) tea.Msg { return snapMsg{seq: seq} })
}

// step advances the animation by one tick.
func (m *previewModel) step() {
	if !m.animating {
		return
	}
	d := m.target - m.vp.Offset
	if math.Abs(d) < settleDistance {
		m.vp.Offset = m.target
		m.animating = false
		return
	}
	m.vp.Offset += d * animationEase
}

// animate schedules the next tick while an animation is running.
func (m *previewModel) animate() tea.Cmd {
	if !m.animating || m.tickPending {
		return nil
	}
	m.tickPending = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *previewModel) setItemCount(n int) {
	n = max(n, 0)
	old := m.vp
	m.vp.ItemCount = n
	m.layout.BoundsChanged(old, m.vp)
	if last := stack.MaxOffset(m.vp); m.target > last {
		m.ScrollTo(last, true)
	}
}

func (m *previewModel) togglePolicy() {
	cfg := m.layout.Config()
	if cfg.Policy == stack.PolicySymmetric {
		cfg.Policy = stack.PolicyAnchored
	} else {
		cfg.Policy = stack.PolicySymmetric
	}
	if err := m.layout.SetConfig(cfg); err != nil {
		m.status = err.Error()
	}
}

// reloadConfig applies the layout section of a changed config file.
func (m *previewModel) reloadConfig() {
	cfg, err := config.Load(m.configPath)
	if err != nil {
		m.status = "reload: " + err.Error()
		return
	}
	if err := m.layout.SetConfig(cfg.Layout); err != nil {
		m.status = "reload: " + err.Error()
	}
}

func (m *previewModel) View() string {
	frame := m.layout.Frame(m.vp)

	header := StyleTitle.Render("cardstack") + "  " + StyleDim.Render(fmt.Sprintf(
		"page %d/%d  offset %.1f  t=%.2f  %s",
		frame.CurrentPage+1, max(m.vp.ItemCount, 1), m.vp.Offset, frame.Progress, m.layout.Config().Policy))

	footer := StyleDim.Render(m.status)
	helpView := m.help.View(m.keys)

	used := 1 + 1 + strings.Count(helpView, "\n") + 1
	c := newCanvas(frame, m.cols, max(m.rows-used, 3))
	c.drawCards(m.vp, m.layout.AttributesInRect(c.bounds(), m.vp), m.labels)

	return strings.Join([]string{header, c.String(), footer, helpView}, "\n")
}

// =============================================================================
// Command
// =============================================================================

type previewOpts struct {
	offset float64
	labels []string
	watch  bool
	layout *layoutFlags
}

// previewCommand creates the interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Page through the stack interactively in the terminal",
		Long: `Page through the stack interactively in the terminal.

Paging keys animate to the next resting offset. Drag keys move the offset
freely; shortly after the last drag the stack snaps to the nearest page.
With --watch, edits to the config file are applied live.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.offset, "offset", 0, "initial scroll offset")
	cmd.Flags().StringSliceVar(&opts.labels, "labels", nil, "card labels by index, comma-separated")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the layout when the config file changes")
	opts.layout = addLayoutFlags(cmd)

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, opts *previewOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	layoutCfg, vpc, err := opts.layout.apply(cfg)
	if err != nil {
		return err
	}
	layout, err := stack.NewLayout(layoutCfg)
	if err != nil {
		return err
	}

	vp, err := vpc.Viewport(opts.offset)
	if err != nil {
		return err
	}
	m := newPreviewModel(layout, vp, opts.labels)
	if opts.watch {
		path := cfg.Path
		if path == "" {
			path = config.Path()
		}
		w, err := newConfigWatcher(path)
		if err != nil {
			return err
		}
		defer w.Close()
		m.watcher, m.configPath = w, path
		c.Logger.Debug("watching config", "path", path)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}
