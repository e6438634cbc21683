package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Spinner renders a braille spinner on a single terminal line while a slow
// external call (the git diff, typically) is in flight.
type Spinner struct {
	frames []string
	delay  time.Duration
	out    io.Writer

	mu      sync.Mutex
	message string
	active  bool
	done    chan struct{}
}

func New(message string) *Spinner {
	return &Spinner{
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay:   100 * time.Millisecond,
		out:     os.Stdout,
		message: message,
	}
}

// NewWithWriter is New with an explicit output, for tests.
func NewWithWriter(message string, out io.Writer) *Spinner {
	s := New(message)
	s.out = out
	return s
}

func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.done = make(chan struct{})

	go s.run(s.done)
}

func (s *Spinner) run(done chan struct{}) {
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s", s.frames[i%len(s.frames)], s.message)
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.done)
	width := len(s.message) + 10
	s.mu.Unlock()

	// Clear the spinner line so normal output starts clean.
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", width)+"\r")
}

func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}
