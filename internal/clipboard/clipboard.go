package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/kobzarvs/kilovi/internal/logger"
)

// System reads and writes the OS clipboard. When no clipboard utility is
// available it keeps the text in process so yank and paste still work.
type System struct {
	fallback Memory
}

func NewSystem() *System {
	if clipboard.Unsupported {
		logger.Warn("system clipboard unsupported, using in-process clipboard")
	}
	return &System{}
}

func (s *System) ReadText() (string, error) {
	if clipboard.Unsupported {
		return s.fallback.ReadText()
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		logger.Debug("clipboard read failed", "err", err)
		return s.fallback.ReadText()
	}
	return text, nil
}

func (s *System) WriteText(text string) error {
	_ = s.fallback.WriteText(text)
	if clipboard.Unsupported {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		logger.Debug("clipboard write failed", "err", err)
	}
	return nil
}

// Memory is an in-process clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}
