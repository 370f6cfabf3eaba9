package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/helix/internal/export"
	"github.com/san-kum/helix/internal/render"
	"github.com/san-kum/helix/internal/stage"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	panelWidth      = 34
	glowCapacity    = 120
	maxFrameSeconds = 0.1
)

type TickMsg time.Time

// Options configure the terminal front-end.
type Options struct {
	Mode    render.Mode
	FPS     int
	Inline  bool
	GIFPath string
}

// Model drives a stage from the bubbletea event loop.
type Model struct {
	stage         *stage.Stage
	opts          Options
	mode          render.Mode
	width, height int
	frame         string
	last          time.Time
	glow          []float64
	recorder      *export.Recorder
	recording     bool
	showHelp      bool
	message       string
	ticks         int
}

func NewModel(st *stage.Stage, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "helix.gif"
	}
	return Model{
		stage:    st,
		opts:     opts,
		mode:     opts.Mode,
		width:    defaultWidth,
		height:   defaultHeight,
		glow:     make([]float64, 0, glowCapacity),
		recorder: export.NewRecorder(opts.FPS),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the animation clock.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	step := m.stage.Config().Scroll.Step
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.stage.Scroll(step)
		case tea.MouseButtonWheelUp:
			m.stage.Scroll(-step)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			return m, tea.Quit
		case " ":
			m.stage.TogglePause()
		case "j", "down":
			m.stage.Scroll(step)
		case "k", "up":
			m.stage.Scroll(-step)
		case "pgdown":
			m.stage.Scroll(step * 10)
		case "pgup":
			m.stage.Scroll(-step * 10)
		case "r", "home":
			m.stage.SetScroll(0)
		case "b":
			if m.stage.ToggleBloom() {
				m.message = "bloom on"
			} else {
				m.message = "bloom off"
			}
		case "m":
			m.mode = m.mode.Next()
			m.message = "mode " + m.mode.String()
		case "t":
			NextTheme()
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.recorder.Reset()
				m.message = "recording"
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.stage.Closed() {
			m.stopRecording()
			return m, tea.Quit
		}
		now := time.Time(msg)
		dt := 1 / float64(m.opts.FPS)
		if !m.last.IsZero() {
			dt = math.Min(now.Sub(m.last).Seconds(), maxFrameSeconds)
		}
		m.last = now
		m.step(dt)
		return m, m.tick()
	}
	return m, nil
}

// step advances the stage and redraws the frame.
func (m *Model) step(dt float64) {
	m.ticks++
	m.stage.Advance(dt)

	m.glow = append(m.glow, meanGlow(m.stage))
	if len(m.glow) > glowCapacity {
		m.glow = m.glow[1:]
	}

	cols, rows := m.canvasSize()
	w, h := render.PixelSize(m.mode, cols, rows)
	fb := m.stage.Render(w, h)
	m.frame = render.Encode(m.mode, fb, m.stage.Scene().Background)
	if m.recording {
		m.recorder.Add(fb)
	}
}

func (m *Model) stopRecording() {
	if !m.recording {
		return
	}
	m.recording = false
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		log.Printf("viz: save gif: %v", err)
		m.message = "gif failed"
		return
	}
	log.Printf("viz: wrote %d frames to %s", m.recorder.Len(), m.opts.GIFPath)
	m.message = "saved " + m.opts.GIFPath
	m.recorder.Reset()
}

func (m Model) canvasSize() (int, int) {
	cols := m.width - panelWidth
	if cols < 10 {
		cols = 10
	}
	rows := m.height
	if rows < 5 {
		rows = 5
	}
	return cols, rows
}

func meanGlow(st *stage.Stage) float64 {
	targets := st.Sequencer().Targets()
	if len(targets) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range targets {
		sum += t.Material.EmissiveIntensity
	}
	return sum / float64(len(targets))
}

// View renders the frame beside the status panel.
func (m Model) View() string {
	theme := CurrentTheme
	label := lipgloss.NewStyle().Foreground(theme.Muted).Width(11)
	value := lipgloss.NewStyle().Foreground(theme.Text)
	row := func(k, v string) string { return label.Render(k) + value.Render(v) + "\n" }

	var s strings.Builder
	s.WriteString(GradientText("DNA HELIX", theme.Primary, theme.Secondary) + "\n\n")

	status := lipgloss.NewStyle().Bold(true).Foreground(theme.Success).Render(AnimatedSpinner(m.ticks) + " RUNNING")
	if m.stage.Paused() {
		status = lipgloss.NewStyle().Bold(true).Foreground(theme.Warning).Render("PAUSED")
	}
	if m.recording {
		status += " " + lipgloss.NewStyle().Bold(true).Foreground(theme.Error).Render(fmt.Sprintf("● REC %d", m.recorder.Len()))
	}
	s.WriteString(status + "\n\n")

	s.WriteString(label.Render("Scroll") + ProgressBar(m.stage.Progress(), 18) + "\n")
	s.WriteString(row("Progress", fmt.Sprintf("%5.1f%%", m.stage.Progress()*100)))
	s.WriteString(row("Rotation", fmt.Sprintf("%6.1f°", m.stage.Rotation()*180/math.Pi)))
	s.WriteString(row("Offset", fmt.Sprintf("%.0f / %.0f", m.stage.ScrollY(), m.stage.Config().MaxScroll())))
	s.WriteString(row("Time", fmt.Sprintf("%.2fs", m.stage.Time())))
	s.WriteString("\n")

	h := m.stage.Helix()
	s.WriteString(row("Points", fmt.Sprintf("%d", h.Count())))
	s.WriteString(row("Strands", fmt.Sprintf("%d × 2", len(h.A))))
	s.WriteString(row("Bridges", fmt.Sprintf("%d × %d", len(h.Bridges), h.Params.SubCount+1)))
	s.WriteString(row("Pulsing", fmt.Sprintf("%d (%s)", len(m.stage.Sequencer().Targets()), m.stage.Config().Pulse.Targets)))
	bloom := "off"
	if m.stage.BloomEnabled() {
		bloom = "on"
	}
	s.WriteString(row("Bloom", bloom))
	s.WriteString(row("Mode", m.mode.String()))
	s.WriteString(row("Theme", theme.Name))

	if len(m.glow) > 1 {
		chart := asciigraph.Plot(m.glow, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("glow"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(chart) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + value.Render(m.message) + "\n")
	}

	s.WriteString("\n" + Separator(panelWidth-4) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).Italic(true).Render("J/K:Scroll SP:Pause Q:Quit\nB:Bloom M:Mode T:Theme\nG:Record R:Reset ?:Help"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Muted).
		Padding(0, 1).
		Width(panelWidth - 1).
		Render(s.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.frame, panel)
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  J/Down   - Scroll down              ║
║  K/Up     - Scroll up                ║
║  Wheel    - Scroll                   ║
║  Space    - Pause/Resume pulses      ║
║  R        - Back to top              ║
║  B        - Toggle bloom             ║
║  M        - Colour / braille         ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
