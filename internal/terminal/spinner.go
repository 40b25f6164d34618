package terminal

import (
	"fmt"
	"sync"
	"time"
)

var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a single line on the page while a reflection is analyzed.
type spinner struct {
	page    *Page
	message string
	done    chan struct{}
	wg      sync.WaitGroup
	start   time.Time
}

func startSpinner(p *Page, message string) *spinner {
	s := &spinner{
		page:    p,
		message: message,
		done:    make(chan struct{}),
		start:   time.Now(),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *spinner) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for current := 0; ; current++ {
		frame := SpinnerFrames[current%len(SpinnerFrames)]
		elapsed := time.Since(s.start).Round(time.Second)
		s.page.write(fmt.Sprintf("\r%s %s (%s)", s.page.styles.spinner.Render(frame), s.message, elapsed))

		select {
		case <-s.done:
			return
		case <-ticker.C:
		}
	}
}

// stop waits for the animation to exit and clears its line.
func (s *spinner) stop() {
	close(s.done)
	s.wg.Wait()
	s.page.write("\r\033[K")
}
