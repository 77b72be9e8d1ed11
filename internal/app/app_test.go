package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/kobzarvs/kilovi/internal/config"
	"github.com/kobzarvs/kilovi/internal/editor"
	"github.com/kobzarvs/kilovi/internal/session"
	"github.com/kobzarvs/kilovi/internal/syntax"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(80, 24)
	return s
}

func TestProfilesFromLanguages(t *testing.T) {
	got := profiles(config.Languages{Languages: []config.Language{{
		Name:             "python",
		FileTypes:        []string{"py", ".pyw", "Makefile"},
		Keywords:         []string{"def", "int|"},
		LineComment:      "#",
		BlockComment:     []string{`"""`, `"""`},
		HighlightNumbers: true,
	}}})
	require.Len(t, got, 1)
	p := got[0]
	require.Equal(t, []string{".py", ".pyw", "Makefile"}, p.FileMatch)
	require.Equal(t, `"""`, p.BlockStart)
	require.Equal(t, `"""`, p.BlockEnd)
	require.Equal(t, syntax.HighlightNumbers, p.Flags)
	require.True(t, p.Matches("tool.py"))
	require.True(t, p.Matches("src/Makefile"))
}

func TestRunRemembersCursor(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	path := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(path, []byte("int a;\nint b;\n"), 0o644))

	s := simScreen(t)
	s.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'l', tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	a := New([]string{path}, Options{})
	require.NoError(t, a.run(s, config.Default(), config.Languages{}))

	m := session.Open(filepath.Join(dir, "kilovi", "session.json"), 0)
	defer m.Stop()
	st, ok := m.GetFileState(path)
	require.True(t, ok, "no state saved for %s", path)
	require.Equal(t, session.FileState{CursorRow: 1, CursorByte: 1}, st)
}

func TestRunRestoresCursor(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	m := session.Open(filepath.Join(dir, "kilovi", "session.json"), 0)
	m.SetFileState(path, session.FileState{CursorRow: 2, CursorByte: 3})
	require.NoError(t, m.Stop())

	s := simScreen(t)
	// x deletes the byte under the restored cursor
	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	require.NoError(t, New([]string{path}, Options{}).run(s, config.Default(), config.Languages{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\nthre\n", string(data))
}

func TestFileWatchPostsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o644))

	s := simScreen(t)
	fw := &fileWatch{screen: s}
	fw.watch(path)
	defer fw.stop()
	require.Equal(t, absPath(path), fw.path)

	got := make(chan fileChanged, 1)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			if in, ok := ev.(*tcell.EventInterrupt); ok {
				if fc, ok := in.Data().(fileChanged); ok {
					got <- fc
					return
				}
			}
		}
	}()

	require.NoError(t, os.WriteFile(path, []byte("package other\n"), 0o644))
	select {
	case fc := <-got:
		require.Equal(t, fw.path, fc.path)
	case <-time.After(3 * time.Second):
		t.Fatal("no change event posted")
	}
}

func TestFileChangedReloadsCleanDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))
	ed := editor.New(config.Default())
	require.NoError(t, ed.OpenFile(path))

	require.NoError(t, os.WriteFile(path, []byte("new\nrow\n"), 0o644))
	fileChangedOnDisk(ed)
	require.Equal(t, "new\nrow\n", ed.Content())
	require.Equal(t, reloadedMessage, ed.StatusMessage())
}

func TestFileChangedKeepsUnsavedWork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))
	ed := editor.New(config.Default())
	require.NoError(t, ed.OpenFile(path))
	ed.HandleEvent(editor.RuneEvent('i'))
	ed.HandleEvent(editor.RuneEvent('x'))
	ed.HandleEvent(editor.KeyEvent(editor.KeyEscape))

	require.NoError(t, os.WriteFile(path, []byte("new\n"), 0o644))
	fileChangedOnDisk(ed)
	require.Equal(t, "xold\n", ed.Content())
	require.Equal(t, changedMessage, ed.StatusMessage())
}
