// Package app wires the editing core into an interactive session: a
// cooperative loop that renders a frame, waits briefly for a key, and
// applies it according to the current mode. Everything the loop
// touches is owned by one goroutine; collaborators that need
// synchronization handle it themselves.
package app

import (
	"errors"
	"time"

	"github.com/tern-editor/tern/internal/config"
	"github.com/tern-editor/tern/internal/engine/cursor"
	"github.com/tern-editor/tern/internal/explorer"
	"github.com/tern-editor/tern/internal/log"
	"github.com/tern-editor/tern/internal/plugin"
	"github.com/tern-editor/tern/internal/renderer"
	"github.com/tern-editor/tern/internal/renderer/backend"
	"github.com/tern-editor/tern/internal/renderer/highlight"
	"github.com/tern-editor/tern/internal/renderer/statusline"
	"github.com/tern-editor/tern/internal/renderer/viewport"
	"github.com/tern-editor/tern/internal/syntax"
	"github.com/tern-editor/tern/internal/watch"
)

// Mode is the session's input mode.
type Mode int

const (
	// ModeEdit feeds keys into the buffer.
	ModeEdit Mode = iota

	// ModeCommand collects a colon command on the command line.
	ModeCommand

	// ModeExplorer navigates the directory panel.
	ModeExplorer
)

// Options configures a session. Backend is required; every other
// collaborator has a working zero form.
type Options struct {
	Backend backend.Backend
	Config  config.Config
	Theme   *highlight.Theme
	Syntax  *syntax.Registry
	Plugins *plugin.Registry
	Watcher *watch.Watcher
	Logger  *log.Logger

	// File is opened on startup. Empty starts a scratch buffer.
	File string
}

// Session owns the open documents and runs the event loop.
type Session struct {
	be       backend.Backend
	cfg      config.Config
	theme    *highlight.Theme
	registry *syntax.Registry
	plugins  *plugin.Registry
	watcher  *watch.Watcher
	logger   *log.Logger

	docs    []*Document
	current int

	cur    cursor.Cursor
	view   *viewport.Viewport
	rend   *renderer.Renderer
	status *statusline.StatusLine
	hl     *highlight.Highlighter

	mode     Mode
	prevMode Mode
	cmdBuf   string
	expl     *explorer.Explorer

	running     bool
	pollTimeout time.Duration
}

// New builds a session around the given collaborators and opens the
// startup file.
func New(opts Options) (*Session, error) {
	if opts.Backend == nil {
		return nil, errors.New("session needs a backend")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	plugins := opts.Plugins
	if plugins == nil {
		plugins = plugin.NewRegistry(logger)
	}
	registry := opts.Syntax
	if registry == nil {
		registry = syntax.NewRegistry()
	}

	timeout := time.Duration(opts.Config.Editor.InputTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 100 * time.Millisecond
	}

	s := &Session{
		be:          opts.Backend,
		cfg:         opts.Config,
		theme:       opts.Theme,
		registry:    registry,
		plugins:     plugins,
		watcher:     opts.Watcher,
		logger:      logger.WithComponent("session"),
		view:        viewport.New(1, 1),
		rend:        renderer.New(opts.Backend),
		status:      statusline.New(),
		expl:        explorer.New(),
		pollTimeout: timeout,
	}
	s.openPath(opts.File)
	return s, nil
}

// Run drives the session until a quit command lands, then returns
// ErrQuit.
func (s *Session) Run() error {
	s.running = true
	s.logger.Info("session started")
	for s.running {
		s.render()
		ev, ok := s.be.PollEvent(s.pollTimeout)
		if !ok {
			s.checkDisk()
			continue
		}
		s.handleEvent(ev)
	}
	s.logger.Info("session ended")
	return ErrQuit
}

// doc returns the current document.
func (s *Session) doc() *Document {
	return s.docs[s.current]
}

// Documents returns the open documents in open order.
func (s *Session) Documents() []*Document {
	docs := make([]*Document, len(s.docs))
	copy(docs, s.docs)
	return docs
}

// render publishes the session state through the status line and
// draws one frame.
func (s *Session) render() {
	doc := s.doc()
	s.status.SetPath(doc.Path)
	s.status.SetModified(doc.Buf.IsModified())
	s.status.SetPosition(s.cur.Row()+1, s.cur.Col()+1)
	s.status.SetTotalLines(doc.Buf.LineCount())
	s.status.SetCommand(s.mode == ModeCommand, s.cmdBuf)

	frame := renderer.Frame{
		Lines:         doc.Buf,
		View:          s.view,
		Syntax:        s.hl,
		Status:        s.status,
		CursorRow:     s.cur.Row(),
		CursorCol:     s.cur.Col(),
		CursorVisible: true,
		ExplorerWidth: s.cfg.Editor.ExplorerWidth,
	}
	if s.mode == ModeExplorer || (s.mode == ModeCommand && s.prevMode == ModeExplorer) {
		frame.Explorer = s.expl
	}
	s.rend.Draw(frame)
}

// handleEvent routes one input event by mode.
func (s *Session) handleEvent(ev backend.Event) {
	if ev.Type != backend.EventKey {
		return
	}
	switch s.mode {
	case ModeCommand:
		s.handleCommandKey(ev)
	case ModeExplorer:
		s.handleExplorerKey(ev)
	default:
		s.handleEditKey(ev)
	}
}

// checkDisk runs when the loop is idle. It asks the watcher whether
// the open file saw activity and, only if the fingerprint really
// moved, warns on the status line.
func (s *Session) checkDisk() {
	if s.watcher == nil || !s.watcher.Poll() {
		return
	}
	doc := s.doc()
	if !doc.DiskChanged() {
		return
	}
	doc.RecordDiskState()
	s.status.SetMessage(msgDiskChanged, statusline.MessageWarning)
	s.logger.WithField("doc", doc.ID.String()).Warn("file changed on disk: %s", doc.Path)
}

// openPath makes path the current document. An empty path opens a
// scratch buffer. The cursor, highlighter, and watch target follow
// the new document.
func (s *Session) openPath(path string) {
	doc := NewDocument(path)
	s.docs = append(s.docs, doc)
	s.current = len(s.docs) - 1
	s.cur = cursor.New()
	s.hl = highlight.New(s.theme, s.registry.RulesFor(path)...)

	if s.watcher != nil {
		if err := s.watcher.Watch(path); err != nil && path != "" {
			s.logger.Warn("cannot watch %s: %v", path, err)
		}
	}
	s.logger.WithField("doc", doc.ID.String()).Info("opened %q", path)
}
