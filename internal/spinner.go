package internal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type Spinner struct {
	interval time.Duration
	message  string
	writer   io.Writer
	active   bool
	mu       sync.Mutex
	done     chan struct{}
}

func NewSpinner(message string) *Spinner {
	return &Spinner{
		interval: 100 * time.Millisecond,
		message:  message,
		writer:   os.Stdout,
		done:     make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		frame := 0
		for {
			select {
			case <-s.done:
				fmt.Fprint(s.writer, "\r\033[K")
				return
			default:
				s.mu.Lock()
				fmt.Fprintf(s.writer, "\r%s %s", spinnerFrames[frame%len(spinnerFrames)], s.message)
				s.mu.Unlock()
				frame++
				time.Sleep(s.interval)
			}
		}
	}()
}

func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}

	s.active = false
	close(s.done)
	s.done = make(chan struct{})
}

func (s *Spinner) Success(message string) {
	s.Stop()
	fmt.Fprintf(s.writer, "\r✅ %s\n", message)
}

func (s *Spinner) Error(message string) {
	s.Stop()
	fmt.Fprintf(s.writer, "\r❌ %s\n", message)
}

func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// WithSpinner runs operation behind a spinner unless VerboseMode is set, in
// which case log lines would fight the redraw and the spinner is skipped.
func WithSpinner(message string, operation func() error) error {
	if VerboseMode {
		return operation()
	}

	spinner := NewSpinner(message)
	spinner.Start()

	if err := operation(); err != nil {
		spinner.Error(fmt.Sprintf("Failed: %s", message))
		return err
	}

	spinner.Success(message)
	return nil
}
