package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tanema/gween/ease"

	gocube "github.com/SeamusWaldron/gocube_simulator"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube in the terminal",
	Long: `Start an interactive TUI that animates moves as you type them.

Keyboard shortcuts:
  r l u d f b   - Turn a face clockwise (shift for counter-clockwise)
  alt+<face>    - Wide turn (outer layer plus middle)
  m e s         - Middle slice (shift for prime)
  x y z         - Whole cube rotation (shift for prime)
  2             - Make the next turn a half turn
  space         - Scramble (only while idle)
  backspace     - Cancel queued moves
  n             - New solved cube
  q/Esc         - Quit

Moves are queued; each animates in turn.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var (
	playFPS     int
	playLogFile string
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVar(&playFPS, "fps", 60, "Frames per second")
	playCmd.Flags().StringVar(&playLogFile, "log-file", "", "Write logs to this file while the TUI runs")
}

// maxFrame caps a single step so a stalled terminal does not skip whole moves.
const maxFrame = 250 * time.Millisecond

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	armedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	stickerColors = map[gocube.Color]lipgloss.Color{
		gocube.White:   lipgloss.Color("15"),
		gocube.Yellow:  lipgloss.Color("11"),
		gocube.Green:   lipgloss.Color("10"),
		gocube.Blue:    lipgloss.Color("12"),
		gocube.Red:     lipgloss.Color("9"),
		gocube.Orange:  lipgloss.Color("208"),
		gocube.NoColor: lipgloss.Color("236"),
	}
)

// Messages
type tickMsg time.Time

// Model
type playModel struct {
	s *session

	frame    time.Duration
	lastTick time.Time

	half     bool   // next turn is a half turn
	status   string // last status line
	quitting bool
}

func newPlayModel(s *session, fps int) *playModel {
	if fps <= 0 {
		fps = 60
	}
	m := &playModel{
		s:      s,
		frame:  time.Second / time.Duration(fps),
		status: "ready",
	}
	s.sim.OnQueueDrained(func() {
		m.status = "idle"
	})
	return m
}

func (m *playModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			dt := now.Sub(m.lastTick)
			if dt > maxFrame {
				dt = maxFrame
			}
			m.s.sim.Tick(dt)
			m.s.idleFlush()
		}
		m.lastTick = now
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "2":
		m.half = !m.half
		return m, nil

	case " ":
		if m.s.sim.IsAnimating() {
			m.status = "scramble ignored while animating"
			return m, nil
		}
		moves := m.s.scramble()
		m.status = "scramble: " + gocube.FormatMoves(moves)
		return m, nil

	case "backspace":
		m.s.reset()
		m.half = false
		m.status = "reset"
		return m, nil

	case "n":
		m.s.remount()
		m.half = false
		m.status = "new cube"
		return m, nil
	}

	token, reverse, ok := keyToken(key)
	if !ok {
		return m, nil
	}
	if m.half {
		token += "2"
		m.half = false
	}
	if m.s.perform(token, reverse) {
		m.status = "queued " + token
		if reverse {
			m.status += "'"
		}
	}
	return m, nil
}

// keyToken maps a key to a notation token. Lowercase face letters turn the
// outer layer, uppercase reverses, and alt selects the wide variant.
func keyToken(key string) (token string, reverse bool, ok bool) {
	wide := false
	if rest, found := strings.CutPrefix(key, "alt+"); found {
		key = rest
		wide = true
	}
	if len(key) != 1 {
		return "", false, false
	}

	c := key[0]
	if c >= 'A' && c <= 'Z' {
		reverse = true
		c += 'a' - 'A'
	}

	switch c {
	case 'r', 'l', 'u', 'd', 'f', 'b':
		if wide {
			return string(c), reverse, true
		}
		return strings.ToUpper(string(c)), reverse, true
	case 'm', 'e', 's', 'x', 'y', 'z':
		if wide {
			return "", false, false
		}
		return strings.ToUpper(string(c)), reverse, true
	}
	return "", false, false
}

func (m *playModel) View() string {
	if m.quitting {
		msg := "Goodbye!\n"
		if id := m.s.sessionID(); id != "" {
			msg += fmt.Sprintf("Journal session: %s\n", id)
		}
		return msg
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("GoCube Simulator"))
	b.WriteString("\n\n")

	b.WriteString(renderNet(m.s.sim.Facelets()))
	b.WriteString("\n")

	sched := m.s.sim.Scheduler()
	if mv, frac, ok := sched.Current(); ok {
		b.WriteString(fmt.Sprintf("Turning: %s  %s\n",
			moveStyle.Render(fmt.Sprintf("%-4s", mv.Notation())), progressBar(frac, 24)))
	} else {
		b.WriteString(statusStyle.Render("Turning: -") + "\n")
	}
	b.WriteString(fmt.Sprintf("Queued:  %d\n", sched.Pending()))

	recent := make([]string, len(m.s.recent))
	for i, mv := range m.s.recent {
		recent[i] = mv.Notation()
	}
	b.WriteString(fmt.Sprintf("Moves:   %d  %s\n", m.s.started, moveStyle.Render(strings.Join(recent, " "))))

	if m.half {
		b.WriteString(armedStyle.Render("Half turn armed") + "\n")
	}
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("rludfb mes xyz: turn  shift: prime  alt: wide  2: half  space: scramble  bksp: reset  n: new  q: quit"))
	b.WriteString("\n")

	return b.String()
}

// progressBar draws the eased fraction of the current turn.
func progressBar(frac float64, width int) string {
	eased := float64(ease.InOutQuad(float32(frac), 0, 1, 1))
	filled := int(eased*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return barStyle.Render(strings.Repeat("█", filled)) + statusStyle.Render(strings.Repeat("░", width-filled))
}

// renderNet draws the facelet net with coloured stickers.
func renderNet(c *gocube.Cube) string {
	sticker := func(col gocube.Color) string {
		return lipgloss.NewStyle().Background(stickerColors[col]).Render("  ") + " "
	}
	row := func(face gocube.CubeFace, r int) string {
		f := c.Face(face)
		return sticker(f[r*3]) + sticker(f[r*3+1]) + sticker(f[r*3+2])
	}

	pad := strings.Repeat(" ", 9)
	var b strings.Builder
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(gocube.CubeFaceU, r) + "\n")
	}
	for r := 0; r < 3; r++ {
		for _, face := range []gocube.CubeFace{gocube.CubeFaceL, gocube.CubeFaceF, gocube.CubeFaceR, gocube.CubeFaceB} {
			b.WriteString(row(face, r))
		}
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(gocube.CubeFaceD, r) + "\n")
	}
	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	log := newLogger()
	// The TUI owns the terminal; logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if playLogFile != "" {
		f, err := os.OpenFile(playLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	s := newSession(log)
	defer s.close()

	p := tea.NewProgram(newPlayModel(s, playFPS), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
