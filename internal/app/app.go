package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"

	"github.com/kobzarvs/kilovi/internal/buffer"
	"github.com/kobzarvs/kilovi/internal/clipboard"
	"github.com/kobzarvs/kilovi/internal/config"
	"github.com/kobzarvs/kilovi/internal/editor"
	"github.com/kobzarvs/kilovi/internal/logger"
	"github.com/kobzarvs/kilovi/internal/session"
	"github.com/kobzarvs/kilovi/internal/syntax"
	"github.com/kobzarvs/kilovi/internal/treesitter"
	"github.com/kobzarvs/kilovi/internal/watcher"
)

const (
	tickInterval   = time.Second
	changedMessage  = "File changed on disk"
	reloadedMessage = "File changed on disk, reloaded"
)

// Options come from the command line.
type Options struct {
	ConfigPath string
	Debug      bool
}

// App is the top-level runtime for kilovi.
type App struct {
	args      []string
	opts      Options
	newScreen func() (tcell.Screen, error)
}

func New(args []string, opts Options) *App {
	return &App{args: args, opts: opts, newScreen: tcell.NewScreen}
}

// fileChanged is posted by the watcher goroutine when path changed on disk.
type fileChanged struct {
	path string
}

func (a *App) Run() (err error) {
	if err := logger.Init(a.opts.Debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Invoke(logger.Close))

	cfg, langs, err := a.loadConfig()
	if err != nil {
		return err
	}

	s, err := a.newScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	// the terminal must be restored before a panic reaches the user
	defer func() {
		r := recover()
		s.Fini()
		if r != nil {
			logger.Error("panic", "value", r)
			panic(r)
		}
	}()

	return a.run(s, cfg, langs)
}

func (a *App) loadConfig() (config.Config, config.Languages, error) {
	var (
		cfg config.Config
		err error
	)
	if a.opts.ConfigPath != "" {
		cfg, err = config.LoadFrom(a.opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, config.Languages{}, fmt.Errorf("load config: %w", err)
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return cfg, langs, fmt.Errorf("load languages: %w", err)
	}
	return cfg, langs, nil
}

// run drives an initialized screen until the editor quits.
func (a *App) run(s tcell.Screen, cfg config.Config, langs config.Languages) (err error) {
	ed := editor.New(cfg)
	ed.SetRegistry(syntax.NewRegistry(profiles(langs)...))
	ed.SetClipboard(clipboard.NewSystem())

	ts := treesitter.New(langs)
	defer ts.Close()
	ed.SetNodeStackFunc(func(path string, row, col int) []editor.NodeRange {
		stack := ts.GetNodeStackAt(path, row, col)
		if stack == nil {
			return nil
		}
		result := make([]editor.NodeRange, len(stack))
		for i, nr := range stack {
			result[i] = editor.NodeRange{
				StartRow: nr.StartRow,
				StartCol: nr.StartCol,
				EndRow:   nr.EndRow,
				EndCol:   nr.EndCol,
			}
		}
		return result
	})

	sm, serr := session.NewManager()
	if serr != nil {
		logger.Warn("session disabled", "err", serr)
	} else {
		defer multierr.AppendInvoke(&err, multierr.Invoke(sm.Stop))
	}

	fw := &fileWatch{screen: s}
	defer multierr.AppendInvoke(&err, multierr.Invoke(fw.stop))

	if len(a.args) > 0 {
		path := a.args[0]
		if err := ed.OpenFile(path); err != nil {
			return err
		}
		if sm != nil {
			if st, ok := sm.GetFileState(absPath(path)); ok {
				ed.RestoreCursor(buffer.Pos{Row: st.CursorRow, Byte: st.CursorByte}, st.ScrollRow)
			}
		}
		fw.watch(path)
	}

	ed.SetSaveHook(func(path string) {
		if absPath(path) != fw.path {
			fw.watch(path)
		}
		fw.suppress()
	})

	stopTick := make(chan struct{})
	defer close(stopTick)
	go func() {
		// redraws let expired status messages disappear
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopTick:
				return
			case <-ticker.C:
				_ = s.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	var (
		parsedPath    string
		parsedVersion uint64
	)
	reparse := func() {
		path := ed.Filename()
		if path == "" || ts.Grammar(path) == "" {
			return
		}
		v := ed.Document().Version()
		if path == parsedPath && v == parsedVersion {
			return
		}
		if path != parsedPath && parsedPath != "" {
			ts.Forget(parsedPath)
		}
		ts.ParseSync(path, "", ed.Content())
		parsedPath, parsedVersion = path, v
	}
	remember := func() {
		if sm == nil || ed.Filename() == "" {
			return
		}
		p := ed.CursorPos()
		sm.SetFileState(absPath(ed.Filename()), session.FileState{
			CursorRow:  p.Row,
			CursorByte: p.Byte,
			ScrollRow:  ed.ScrollRow(),
		})
	}

	reparse()
	ed.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				remember()
				logger.Info("quit", "file", ed.Filename())
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			if fc, ok := ev.Data().(fileChanged); ok && fc.path == fw.path {
				logger.Info("file changed on disk", "path", fc.path)
				fileChangedOnDisk(ed)
			}
		}
		reparse()
		remember()
		ed.Render(s)
	}
}

// fileChangedOnDisk reloads a clean document in NORMAL mode. Unsaved work
// is never replaced, the user is only told about the change.
func fileChangedOnDisk(ed *editor.Editor) {
	if ed.Document().Dirty() || ed.Mode() != editor.ModeNormal {
		ed.SetStatusMessage(changedMessage)
		return
	}
	if err := ed.Reload(); err != nil {
		logger.Warn("reload failed", "path", ed.Filename(), "err", err)
		ed.SetStatusMessage(changedMessage)
		return
	}
	ed.SetStatusMessage(reloadedMessage)
}

// fileWatch keeps one watcher on the file being edited and forwards its
// notifications to the event loop.
type fileWatch struct {
	screen tcell.Screen
	path   string
	w      *watcher.Watcher
	done   chan struct{}
}

func (f *fileWatch) watch(path string) {
	if err := f.stop(); err != nil {
		logger.Warn("stop watcher", "path", f.path, "err", err)
	}
	abs := absPath(path)
	w, err := watcher.New(watcher.DefaultConfig(abs))
	if err != nil {
		logger.Warn("watcher unavailable", "path", abs, "err", err)
		return
	}
	changes, err := w.Start()
	if err != nil {
		// the directory may not exist until the first save
		logger.Debug("watch failed", "path", abs, "err", err)
		_ = w.Stop()
		return
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-changes:
				_ = f.screen.PostEvent(tcell.NewEventInterrupt(fileChanged{path: abs}))
			case <-done:
				return
			}
		}
	}()
	f.path, f.w, f.done = abs, w, done
}

func (f *fileWatch) suppress() {
	if f.w != nil {
		f.w.SuppressOwnWrite()
	}
}

func (f *fileWatch) stop() error {
	if f.w == nil {
		return nil
	}
	close(f.done)
	err := f.w.Stop()
	f.w, f.done, f.path = nil, nil, ""
	return err
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// profiles turns languages.toml entries into highlight profiles. Bare
// lower-case file types are extensions, anything else is matched as part
// of the file name.
func profiles(langs config.Languages) []syntax.Profile {
	var out []syntax.Profile
	for _, l := range langs.Languages {
		p := syntax.Profile{
			Name:        l.Name,
			Keywords:    l.Keywords,
			LineComment: l.LineComment,
		}
		p.BlockStart, p.BlockEnd = l.BlockDelimiters()
		for _, ft := range l.FileTypes {
			if ft != "" && !strings.Contains(ft, ".") && ft == strings.ToLower(ft) {
				ft = "." + ft
			}
			p.FileMatch = append(p.FileMatch, ft)
		}
		if l.HighlightNumbers {
			p.Flags |= syntax.HighlightNumbers
		}
		if l.HighlightStrings {
			p.Flags |= syntax.HighlightStrings
		}
		out = append(out, p)
	}
	return out
}
