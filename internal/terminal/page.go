// Package terminal renders the reflection workflow as a single styled page
// on a terminal. It only reads controller state; it never drives it.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/spacesedan/emotion-reflection/internal/reflection"
)

const (
	BAR_WIDTH       = 30
	LOADING_MESSAGE = "Analyzing..."
)

type Page struct {
	out        io.Writer
	styles     styles
	useSpinner bool
	healthy    *atomic.Bool
	mu         sync.Mutex
	spinMu     sync.Mutex
	spin       *spinner
}

type PageOption func(*Page, *lipgloss.Renderer)

// WithColorProfile forces a color profile, e.g. termenv.Ascii for plain output.
func WithColorProfile(profile termenv.Profile) PageOption {
	return func(_ *Page, r *lipgloss.Renderer) {
		r.SetColorProfile(profile)
	}
}

func WithSpinner() PageOption {
	return func(p *Page, _ *lipgloss.Renderer) {
		p.useSpinner = true
	}
}

// WithHealth lets the page hint that the service is down when a submission fails.
func WithHealth(healthy *atomic.Bool) PageOption {
	return func(p *Page, _ *lipgloss.Renderer) {
		p.healthy = healthy
	}
}

func NewPage(out io.Writer, opts ...PageOption) *Page {
	r := lipgloss.NewRenderer(out)
	p := &Page{out: out}
	for _, opt := range opts {
		opt(p, r)
	}
	p.styles = newStyles(r)
	return p
}

func (p *Page) write(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, s)
}

// Observe is a reflection.Observer that redraws the page on every transition.
func (p *Page) Observe(state reflection.State) {
	p.spinMu.Lock()
	defer p.spinMu.Unlock()

	if p.spin != nil {
		p.spin.stop()
		p.spin = nil
	}

	if _, loading := state.(reflection.Loading); loading && p.useSpinner {
		p.spin = startSpinner(p, LOADING_MESSAGE)
		return
	}

	p.write(p.Render(state) + "\n")
}

// Render draws the section of the page for state.
func (p *Page) Render(state reflection.State) string {
	switch s := state.(type) {
	case reflection.Idle:
		return p.styles.label.Render("How are you feeling today?") + "\n" +
			p.styles.dim.Render("Type your reflection and press Enter.")
	case reflection.Loading:
		return p.styles.spinner.Render("…") + " " + LOADING_MESSAGE
	case reflection.Failed:
		out := p.styles.err.Render("✗ " + s.Message)
		if p.healthy != nil && !p.healthy.Load() && s.Message != reflection.EmptyReflectionMessage {
			out += "\n" + p.styles.dim.Render("The emotion API has not answered its last health check.")
		}
		return out
	case reflection.Succeeded:
		return p.renderResult(reflection.NewResultView(s.Result))
	default:
		return ""
	}
}

func (p *Page) renderResult(v reflection.ResultView) string {
	emotion := p.styles.label.Foreground(colorFor(v.Style)).Render(v.Emotion)
	card := p.styles.card.BorderForeground(colorFor(v.Style)).Render(
		fmt.Sprintf("%s  %s", emotion, p.styles.dim.Render(fmt.Sprintf("%d%% confident", v.Percentage))),
	)

	var b strings.Builder
	b.WriteString(p.styles.success.Render("✓ Analysis Complete"))
	b.WriteString("\n")
	b.WriteString(card)
	b.WriteString("\n")
	b.WriteString(p.styles.label.Render("Confidence Level"))
	b.WriteString("\n")
	b.WriteString(p.bar(v.Percentage))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s confidence", v.Tier))
	b.WriteString("\n")
	b.WriteString(p.styles.dim.Render("Type :reset to analyze another reflection."))
	return b.String()
}

func (p *Page) bar(percentage int) string {
	filled := percentage * BAR_WIDTH / 100
	return p.styles.barFill.Render(strings.Repeat("█", filled)) +
		p.styles.barEmpty.Render(strings.Repeat("░", BAR_WIDTH-filled))
}

// Welcome prints the page header and the idle prompt.
func (p *Page) Welcome() {
	p.write(lipgloss.JoinVertical(lipgloss.Left,
		p.styles.title.Render("Emotion Reflection Tool"),
		p.styles.subtitle.Render("Share your thoughts and discover your emotional state"),
		p.styles.dim.Render("Commands: :reset  :emotions  :quit"),
		"",
		p.Render(reflection.Idle{}),
	) + "\n")
}

func (p *Page) Emotions(emotions []string) {
	styled := make([]string, len(emotions))
	for i, e := range emotions {
		styled[i] = p.styles.label.Foreground(colorFor(reflection.EmotionStyleKey(e))).Render(e)
	}
	p.write("Detectable emotions: " + strings.Join(styled, ", ") + "\n")
}

// Busy tells the user a submission is still in flight.
func (p *Page) Busy() {
	p.write("\r\033[K" + p.styles.dim.Render("Still analyzing the previous reflection, please wait or type :reset.") + "\n")
}

func (p *Page) Notice(msg string) {
	p.write(p.styles.dim.Render(msg) + "\n")
}
