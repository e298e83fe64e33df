package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/disp4b/internal/config"
	"github.com/san-kum/disp4b/internal/dispersion"
	"github.com/san-kum/disp4b/internal/geom"
	"github.com/san-kum/disp4b/internal/scan"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var shapeInfo = map[string]string{
	"tetrahedron": "regular, all pairs equidistant",
	"square":      "planar, nearest neighbours at side",
	"collinear":   "evenly spaced on a line",
}

const (
	minStep = 1.0 / 64
	maxStep = 2.0
)

type state int

const (
	stateMenu state = iota
	stateExplore
)

// Explorer is the bubbletea model of the interactive energy explorer.
type Explorer struct {
	state  state
	cursor int
	shapes []string
	shape  string

	cfg    *config.Config
	asm    *config.Assembly
	logger logrus.FieldLogger

	side   float64
	step   float64
	perm   int
	perms  [][4]int
	sample scan.Sample
	curve  *scan.Result
	err    error

	width  int
	height int
}

// NewExplorer returns an explorer for the potential cfg describes.
func NewExplorer(cfg *config.Config, logger logrus.FieldLogger) (*Explorer, error) {
	asm, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Explorer{
		state:  stateMenu,
		shapes: geom.ShapeNames(),
		cfg:    cfg,
		asm:    asm,
		logger: logger,
		side:   cfg.Scan.Min + (cfg.Scan.Max-cfg.Scan.Min)/2,
		step:   0.125,
		perms:  geom.Permutations(),
		width:  80,
		height: 24,
	}, nil
}

func (m Explorer) Init() tea.Cmd { return nil }

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Explorer) handleKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateExplore:
		return m.exploreKey(msg)
	}
	return m, nil
}

func (m Explorer) menuKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.shapes)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.shape = m.shapes[m.cursor]
		m.state = stateExplore
		m.perm = 0
		m.refresh()
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m Explorer) exploreKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
		m.curve = nil
		return m, tea.ClearScreen
	case "left", "h":
		if m.side-m.step > 0 {
			m.side -= m.step
		}
		m.evaluate()
	case "right", "l":
		m.side += m.step
		m.evaluate()
	case "+", "=":
		m.step = math.Min(m.step*2, maxStep)
	case "-", "_":
		m.step = math.Max(m.step/2, minStep)
	case "p":
		m.perm = (m.perm + 1) % len(m.perms)
		m.evaluate()
	case "t":
		m.toggleScheme()
	case "r":
		m.side = m.cfg.Scan.Min + (m.cfg.Scan.Max-m.cfg.Scan.Min)/2
		m.perm = 0
		m.evaluate()
	}
	return m, nil
}

// toggleScheme switches the triplet scheme and rebuilds the potential.
func (m *Explorer) toggleScheme() {
	if m.cfg.Dispersion.Kind != "bade" {
		return
	}
	cfg := *m.cfg
	if m.scheme() == dispersion.SymmetricTriplets {
		cfg.Dispersion.Triplets = dispersion.ChainedTriplets.String()
	} else {
		cfg.Dispersion.Triplets = dispersion.SymmetricTriplets.String()
	}

	asm, err := cfg.Build()
	if err != nil {
		m.err = err
		return
	}
	m.cfg = &cfg
	m.asm = asm
	m.logger.WithField("triplets", cfg.Dispersion.Triplets).Debug("triplet scheme changed")
	m.refresh()
}

func (m Explorer) scheme() dispersion.TripletScheme {
	if p, ok := m.asm.Dispersion.(*dispersion.Potential); ok {
		return p.Scheme()
	}
	return dispersion.ChainedTriplets
}

// refresh recomputes the curve for the current shape and the current sample.
func (m *Explorer) refresh() {
	runner := scan.NewRunner(m.asm.Potential, m.cfg.Scan.Workers, m.logger)
	res, err := runner.Run(context.Background(), scan.Request{
		Shape:   m.shape,
		Min:     m.cfg.Scan.Min,
		Max:     m.cfg.Scan.Max,
		Samples: m.cfg.Scan.Samples,
	})
	if err != nil {
		m.err = errors.Wrap(err, "curve")
		m.curve = nil
	} else {
		m.err = nil
		m.curve = res
	}
	m.evaluate()
}

func (m *Explorer) evaluate() {
	m.sample = scan.Measure(m.asm.Potential, m.side, m.quadruplet())
}

func (m Explorer) quadruplet() geom.Quadruplet {
	shape, err := geom.ShapeByName(m.shape)
	if err != nil {
		shape = geom.Tetrahedron
	}
	return shape(m.side).Permute(m.perms[m.perm])
}

func (m Explorer) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateExplore:
		return m.viewExplore()
	}
	return ""
}

func (m Explorer) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("            " + cyan.Render("d i s p 4 b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.shapes {
		desc := shapeInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("      c12 %.6g  %s", m.asm.Dispersion.Coefficient(), m.asm.Provider.Name())) + "\n")
	b.WriteString(dim.Render("      "+m.attenuationLabel()) + "\n")
	b.WriteString(dim.Render("      ↑↓ select   enter explore   q quit") + "\n")

	return b.String()
}

func (m Explorer) attenuationLabel() string {
	att := m.asm.Attenuation
	if att == nil {
		return "attenuation off"
	}
	return fmt.Sprintf("attenuation r_c %g  c %g  %s", att.Cutoff(), att.ExponentCoeff(), m.cfg.Attenuation.Distance)
}

func (m Explorer) viewExplore() string {
	var b strings.Builder

	schemeLabel := m.cfg.Dispersion.Kind
	if m.cfg.Dispersion.Kind == "bade" {
		schemeLabel = m.scheme().String() + " triplets"
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		green.Render("●"), cyan.Render(m.shape), dim.Render(schemeLabel),
		dim.Render(fmt.Sprintf("labels %v", m.perms[m.perm]))))
	b.WriteString(fmt.Sprintf("   side %s  step %s\n\n",
		magenta.Render(fmt.Sprintf("%.4f", m.side)), dim.Render(fmt.Sprintf("%.4f", m.step))))

	cw, ch := m.canvasSize()
	canvas := newCanvas(cw, ch)
	drawQuadruplet(canvas, cw, ch, m.quadruplet())
	for _, row := range canvas {
		b.WriteString("   " + string(row) + "\n")
	}
	b.WriteString("\n")

	s := m.sample
	rows := []struct {
		label string
		value float64
		style lipgloss.Style
	}{
		{"pair", s.Pair, white},
		{"triplet", s.Triplet, white},
		{"quadruplet", s.Quadruplet, white},
		{"dispersion", s.Dispersion, yellow},
		{"attenuation", s.Attenuation, dim},
		{"short range", s.ShortRange, yellow},
		{"total", s.Total, green},
	}
	for _, r := range rows {
		b.WriteString("   " + dim.Render(fmt.Sprintf("%-12s", r.label)) + r.style.Render(fmt.Sprintf("% .8e", r.value)) + "\n")
	}

	if m.curve != nil && len(m.curve.Samples) > 1 {
		caption := fmt.Sprintf("total energy, side %.2f to %.2f", m.cfg.Scan.Min, m.cfg.Scan.Max)
		graph := asciigraph.Plot(m.curve.Totals(),
			asciigraph.Height(8),
			asciigraph.Width(m.graphWidth()),
			asciigraph.Caption(caption),
		)
		b.WriteString("\n" + cyan.Render(graph) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n   " + red.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + dim.Render("   ←→ side  ±step  t triplets  p relabel  r reset  q back") + "\n")

	return b.String()
}

func (m Explorer) canvasSize() (int, int) {
	cw := m.width - 6
	ch := m.height - 30
	if cw < 40 {
		cw = 40
	}
	if ch < 9 {
		ch = 9
	}
	return cw, ch
}

func (m Explorer) graphWidth() int {
	w := m.width - 16
	if w < 30 {
		w = 30
	}
	return w
}

// RunExplorer starts the interactive explorer on the alternate screen.
func RunExplorer(cfg *config.Config, logger logrus.FieldLogger) error {
	m, err := NewExplorer(cfg, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
