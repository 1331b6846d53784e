package app

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramSender forwards messages to a Bubble Tea program once one is
// attached. Messages sent before Attach are dropped.
//
// Send never blocks: notification observers fire from inside Update, and
// Program.Send waits for the event loop that is running that Update.
type ProgramSender struct {
	program atomic.Pointer[tea.Program]
}

// Attach sets the program that receives messages
func (s *ProgramSender) Attach(p *tea.Program) {
	s.program.Store(p)
}

// Send delivers msg on its own goroutine
func (s *ProgramSender) Send(msg tea.Msg) {
	if p := s.program.Load(); p != nil {
		go p.Send(msg)
	}
}
