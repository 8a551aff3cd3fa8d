// Package eventloop wires the Walker, IncrementalBuilder, navigation,
// mark set, glob engine, and delete engine together behind a Bubble
// Tea Model, multiplexing input events, walker events, and a redraw
// throttle.
package eventloop

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dua-go/dua/internal/builder"
	"github.com/dua-go/dua/internal/byteformat"
	"github.com/dua-go/dua/internal/config"
	"github.com/dua-go/dua/internal/deleteengine"
	"github.com/dua-go/dua/internal/fsprobe"
	"github.com/dua-go/dua/internal/globengine"
	"github.com/dua-go/dua/internal/inodefilter"
	"github.com/dua-go/dua/internal/keys"
	"github.com/dua-go/dua/internal/markset"
	"github.com/dua-go/dua/internal/nav"
	"github.com/dua-go/dua/internal/opener"
	"github.com/dua-go/dua/internal/render"
	"github.com/dua-go/dua/internal/tree"
	"github.com/dua-go/dua/internal/walker"
)

const redrawInterval = 16 * time.Millisecond

// walkerEventMsg wraps one event read off a scan's channel, tagged
// with the root it came from so it's routed to that root's builder
// and not some other concurrently-running scan's.
type walkerEventMsg struct {
	root  string
	entry walker.Entry
}

// walkerDoneMsg signals a scan's channel closed.
type walkerDoneMsg struct{ root string }

// redrawTickMsg fires the render throttle.
type redrawTickMsg struct{}

// scan holds the state of one in-flight or most-recently-finished
// traversal; a new scan (refresh) of the same path replaces the
// previous one and cancels its context, so its walker stops at its
// next send.
type scan struct {
	cancel  context.CancelFunc
	out     chan walker.Entry
	builder *builder.Builder
	root    tree.ID
	started time.Time
	elapsed time.Duration
	active  bool
}

// Model is the Bubble Tea model for the interactive session.
type Model struct {
	probe      fsprobe.Probe
	opener     opener.Opener
	roots      []string
	walkerOpts walker.Options
	format     byteformat.Format
	cfg        config.Config

	tree   *tree.Tree
	filter *inodefilter.Filter
	nav    *nav.State
	marks  *markset.Set

	scans map[string]*scan

	entriesTraversed uint64
	ioErrors         int
	dirty            bool
	lastPaint        time.Time

	width, height int
	message       string
	pendingExit   bool

	globActive        bool
	globInput         textinput.Model
	globCaseSensitive bool

	quit bool
}

// New creates the interactive model for the given root paths.
func New(probe fsprobe.Probe, roots []string, walkerOpts walker.Options, format byteformat.Format, cfg config.Config) *Model {
	t := tree.New()

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 0

	return &Model{
		probe:      probe,
		opener:     opener.New(),
		roots:      roots,
		walkerOpts: walkerOpts,
		format:     format,
		cfg:        cfg,
		tree:       t,
		filter:     inodefilter.New(),
		nav:        nav.New(t),
		marks:      markset.New(),
		scans:      make(map[string]*scan),
		globInput:  input,
	}
}

// Init launches a scan of every root and starts the redraw ticker.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	for _, root := range m.roots {
		cmds = append(cmds, m.startScan(root))
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(redrawInterval, func(time.Time) tea.Msg { return redrawTickMsg{} })
}

// startScan begins (or restarts) a traversal of a user-supplied root,
// attaching it directly under the virtual root with the full path as
// its display name.
func (m *Model) startScan(root string) tea.Cmd {
	return m.startNodeScan(root, tree.RootID, root, true)
}

// startNodeScan begins (or restarts) a traversal of the on-disk path,
// attaching the scanned subtree under parent with the given display
// name. path doubles as the scans map key, so refreshing a nested
// node never collides with a top-level root scan or another nested
// refresh at a different path.
func (m *Model) startNodeScan(path string, parent tree.ID, name string, isDir bool) tea.Cmd {
	if prev, ok := m.scans[path]; ok && prev.active {
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan walker.Entry, 100)

	b, id := builder.New(m.tree, m.filter, parent, name, isDir, m.walkerOpts.CountHardLinks)
	s := &scan{cancel: cancel, out: out, builder: b, root: id, started: time.Now(), active: true}
	m.scans[path] = s

	go walker.Walk(ctx, m.probe, path, m.walkerOpts, out)

	return waitForEvent(path, out)
}

func waitForEvent(root string, ch chan walker.Entry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return walkerDoneMsg{root: root}
		}
		return walkerEventMsg{root: root, entry: entry}
	}
}

// Update dispatches one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case walkerEventMsg:
		return m, m.handleWalkerEvent(msg.root, msg.entry)

	case walkerDoneMsg:
		return m.handleWalkerDone(msg.root)

	case redrawTickMsg:
		m.dirty = false
		m.lastPaint = time.Now()
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) handleWalkerEvent(root string, e walker.Entry) tea.Cmd {
	s, ok := m.scans[root]
	if !ok || !s.active {
		return nil
	}

	if e.Kind == walker.KindEntry && !e.IsDir {
		m.entriesTraversed++
	}
	m.ioErrors += s.builder.Handle(e)
	m.dirty = true

	return waitForEvent(root, s.out)
}

func (m *Model) handleWalkerDone(root string) (tea.Model, tea.Cmd) {
	if s, ok := m.scans[root]; ok && s.active {
		s.active = false
		s.elapsed = time.Since(s.started)
	}
	m.nav.Reset()
	m.dirty = true
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.globActive {
		return m.handleGlobKey(msg)
	}

	chord := msg.String()
	if chord == "esc" && m.cfg.Keys.EscNavigatesBack {
		m.exitNode()
		m.dirty = true
		return m, nil
	}

	action, ok := keys.Lookup(chord)
	if !ok {
		return m, nil
	}

	switch action {
	case keys.ActionMoveDown:
		m.nav.Move(1)
	case keys.ActionMoveUp:
		m.nav.Move(-1)
	case keys.ActionPageDown:
		m.nav.Move(10)
	case keys.ActionPageUp:
		m.nav.Move(-10)
	case keys.ActionEnterNode:
		m.nav.EnterNode()
	case keys.ActionExitNode:
		if m.nav.ViewRoot == m.nav.TreeRoot {
			m.message = "Top level reached"
		} else {
			m.exitNode()
		}
	case keys.ActionOpenExternally:
		m.openSelected()
	case keys.ActionSortSize:
		m.nav.ToggleSortKey(nav.KeySize)
	case keys.ActionSortName:
		m.nav.ToggleSortKey(nav.KeyName)
	case keys.ActionSortMTime:
		m.nav.ToggleSortKey(nav.KeyMTime)
	case keys.ActionSortCount:
		m.nav.ToggleSortKey(nav.KeyCount)
	case keys.ActionToggleCountColumn:
		m.nav.ShowCount = !m.nav.ShowCount
	case keys.ActionToggleMTimeColumn:
		m.nav.ShowMTime = !m.nav.ShowMTime
	case keys.ActionMarkAndAdvance:
		m.markSelected()
		m.nav.Move(1)
	case keys.ActionMarkInPlace:
		m.markSelected()
	case keys.ActionHelp:
		m.cycleFocusTo(nav.PaneHelp)
	case keys.ActionGlob:
		m.globActive = true
		m.globInput.SetValue("")
		m.globInput.Focus()
		m.nav.Focus = nav.PaneGlob
	case keys.ActionCycleFocus:
		m.cycleFocus()
	case keys.ActionQuit:
		return m.handleQuit()
	case keys.ActionRefreshOne:
		if cmd := m.refreshSelected(); cmd != nil {
			m.message = "Refreshing…"
			m.dirty = true
			return m, cmd
		}
	case keys.ActionRefreshAll:
		return m, m.Init()
	case keys.ActionDeleteMarks:
		if m.nav.Focus == nav.PaneMark {
			m.deleteMarked()
		}
	case keys.ActionEscape:
		if m.nav.Focus == nav.PaneHelp || m.nav.Focus == nav.PaneMark {
			m.nav.Focus = nav.PaneEntries
		}
	}

	m.dirty = true
	return m, nil
}

// exitNode ascends one level, tearing down the glob projection node
// once its view root is left so repeated searches don't pile up dead
// synthetic nodes under the virtual root.
func (m *Model) exitNode() {
	if m.nav.GlobRoot != tree.NoID && m.nav.ViewRoot == m.nav.GlobRoot {
		globRoot := m.nav.GlobRoot
		m.nav.ExitGlob()
		m.tree.RemoveVirtualNode(globRoot)
		return
	}
	m.nav.ExitNode()
}

// refreshSelected discards the selected subtree and re-walks it from
// disk, reattaching it under its original parent with its original
// name. The virtual root and glob-projection nodes have no real disk
// path to rescan and are left alone.
func (m *Model) refreshSelected() tea.Cmd {
	id := m.nav.Selected
	if id == tree.NoID || id == tree.RootID {
		return nil
	}
	data, ok := m.tree.Get(id)
	if !ok {
		return nil
	}
	path := joinPath(m.tree.PathOf(id, tree.NoID))
	if path == "" {
		return nil
	}
	parent := m.tree.ParentOf(id)

	m.tree.RemoveSubtree(id)
	m.tree.RecomputeSizesUpFrom(parent)

	return m.startNodeScan(path, parent, data.Name, data.IsDir)
}

func (m *Model) markSelected() {
	if m.nav.Selected == tree.NoID {
		return
	}
	data, ok := m.tree.Get(m.nav.Selected)
	if !ok {
		return
	}
	path := joinPath(m.tree.PathOf(m.nav.Selected, m.nav.GlobRoot))
	m.marks.Toggle(m.nav.Selected, path, data.Size)
}

// openSelected hands the selected entry's on-disk path to the host's
// default application. The virtual root has no real path and is
// ignored.
func (m *Model) openSelected() {
	if m.nav.Selected == tree.NoID || m.nav.Selected == tree.RootID {
		return
	}
	path := joinPath(m.tree.PathOf(m.nav.Selected, tree.NoID))
	if path == "" {
		return
	}
	if err := m.opener.Open(path); err != nil {
		m.message = fmt.Sprintf("Couldn't open %s: %v", path, err)
	}
}

func joinPath(fragments []string) string {
	out := ""
	for i, f := range fragments {
		if i > 0 {
			out += "/"
		}
		out += f
	}
	return out
}

func (m *Model) cycleFocus() {
	switch m.nav.Focus {
	case nav.PaneEntries:
		m.nav.Focus = nav.PaneMark
	case nav.PaneMark:
		m.nav.Focus = nav.PaneEntries
	default:
		m.nav.Focus = nav.PaneEntries
	}
}

func (m *Model) cycleFocusTo(p nav.Pane) {
	if m.nav.Focus == p {
		m.nav.Focus = nav.PaneEntries
		return
	}
	m.nav.Focus = p
}

func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	if m.marks.Len() > 0 && !m.pendingExit {
		m.pendingExit = true
		m.message = "Press q again to quit (marked entries will be kept)"
		return m, nil
	}
	m.quit = true
	return m, tea.Quit
}

func (m *Model) deleteMarked() {
	entries := m.marks.Entries()
	deleted, ioErrs := 0, 0
	for _, e := range entries {
		res := deleteengine.Delete(m.tree, e.ID, e.Path)
		deleted += res.EntriesDeleted
		ioErrs += res.IOErrors
	}
	m.ioErrors += ioErrs
	if uint64(deleted) > m.entriesTraversed {
		m.entriesTraversed = 0
	} else {
		m.entriesTraversed -= uint64(deleted)
	}
	m.marks.Clear()
	m.nav.DetachIfInside()
	m.message = fmt.Sprintf("Deleted %d entries", deleted)
}

func (m *Model) handleGlobKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.globActive = false
		m.globInput.Blur()
		m.nav.Focus = nav.PaneEntries
	case "enter":
		pattern := m.globInput.Value()
		matches := globengine.Match(m.tree, m.nav.TreeRoot, pattern, globengine.Options{CaseSensitive: m.globCaseSensitive})
		globRoot := globengine.InstallSubtree(m.tree, matches)
		m.nav.EnterGlob(globRoot)
		m.globActive = false
		m.globInput.Blur()
		m.nav.Focus = nav.PaneEntries
	case "tab":
		// Ctrl+I and Tab are the same byte in a terminal, so this is
		// the one keystroke the glob pane's "case = ^I" help refers to.
		// Reserved here rather than forwarded to globInput, which would
		// otherwise treat it as ordinary input.
		m.globCaseSensitive = !m.globCaseSensitive
	default:
		var cmd tea.Cmd
		m.globInput, cmd = m.globInput.Update(msg)
		m.dirty = true
		return m, cmd
	}
	m.dirty = true
	return m, nil
}

// View renders the full screen.
func (m *Model) View() string {
	rootData, _ := m.tree.Get(tree.RootID)

	opts := render.Options{
		Width: m.width, Height: m.height, Format: m.format,
		ShowCount: m.nav.ShowCount, ShowMTime: m.nav.ShowMTime,
		Message: m.message, PendingExit: m.pendingExit,
	}

	out := render.Header() + "\n"
	switch m.nav.Focus {
	case nav.PaneHelp:
		out += render.HelpPane(m.nav.HelpScroll, m.height-4)
	case nav.PaneMark:
		out += render.MarkPane(m.marks, m.format, true)
	default:
		if m.globActive {
			out += render.GlobPane(m.globInput.Value(), m.globInput.Position(), m.globCaseSensitive, m.width)
		} else {
			out += render.Entries(m.nav, m.marks, opts)
		}
	}
	out += "\n" + render.Footer(rootData.Size, m.entriesTraversed, m.format, m.message)
	return out
}
