// Package viz renders live flight telemetry in the terminal.
package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avosk/flightsim/internal/sim"
)

// Frame is one telemetry update pushed to the live view.
type Frame struct {
	Snap    sim.Snapshot
	Elapsed float64
}

const altHistory = 120

type liveModel struct {
	frames   <-chan Frame
	airframe string
	duration float64

	latest   Frame
	received bool
	alts     []float64
	done     bool
	width    int
}

type frameMsg Frame

type streamClosedMsg struct{}

func newLiveModel(airframe string, duration float64, frames <-chan Frame) liveModel {
	return liveModel{
		frames:   frames,
		airframe: airframe,
		duration: duration,
		width:    80,
	}
}

func (m liveModel) nextFrame() tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-m.frames
		if !ok {
			return streamClosedMsg{}
		}
		return frameMsg(frame)
	}
}

func (m liveModel) Init() tea.Cmd {
	return m.nextFrame()
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case frameMsg:
		m.latest = Frame(msg)
		m.received = true
		m.alts = append(m.alts, msg.Snap.AltitudeM)
		if len(m.alts) > altHistory {
			m.alts = m.alts[len(m.alts)-altHistory:]
		}
		return m, m.nextFrame()

	case streamClosedMsg:
		m.done = true
	}
	return m, nil
}

func (m liveModel) View() string {
	var b strings.Builder

	title := TitleStyle.Render(fmt.Sprintf("flightsim live · %s", m.airframe))
	b.WriteString(title + "\n\n")

	if !m.received {
		b.WriteString(LabelStyle.Render("waiting for telemetry...") + "\n")
		return b.String()
	}

	s := m.latest.Snap

	status := StatusFlying.Render("FLYING")
	if s.RangeM < 0.5 {
		status = StatusGround.Render("GROUND")
	}

	left := fmt.Sprintf(
		"%s %s\n%s %s\n%s %s\n%s %s",
		LabelStyle.Render("alt "), ValueStyle.Render(fmt.Sprintf("%8.1f m", s.AltitudeM)),
		LabelStyle.Render("hdg "), ValueStyle.Render(fmt.Sprintf("%8.1f°", s.HeadingDeg)),
		LabelStyle.Render("ias "), ValueStyle.Render(fmt.Sprintf("%8.1f m/s", s.AirspeedMS)),
		LabelStyle.Render("batt"), ValueStyle.Render(fmt.Sprintf("%8.1f V", s.BatteryVoltage)),
	)

	right := fmt.Sprintf(
		"%s %s\n%s %s\n%s %s\n%s %s",
		LabelStyle.Render("roll "), ValueStyle.Render(fmt.Sprintf("%7.1f°", s.RollDeg)),
		LabelStyle.Render("pitch"), ValueStyle.Render(fmt.Sprintf("%7.1f°", s.PitchDeg)),
		LabelStyle.Render("yaw  "), ValueStyle.Render(fmt.Sprintf("%7.1f°", s.YawDeg)),
		LabelStyle.Render("state"), status,
	)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(left),
		PanelStyle.Render(right),
	)
	b.WriteString(panels + "\n")

	b.WriteString(LabelStyle.Render("attitude ") + Horizon(s.RollDeg, s.PitchDeg, 40) + "\n")

	if m.duration > 0 {
		b.WriteString(LabelStyle.Render("progress ") +
			Gauge(m.latest.Elapsed, 0, m.duration, 40) + "\n")
	}

	if len(m.alts) > 2 {
		graph := asciigraph.Plot(m.alts,
			asciigraph.Height(8),
			asciigraph.Width(min(m.width-12, 70)),
			asciigraph.Caption("altitude (m)"),
		)
		b.WriteString("\n" + graph + "\n")
	}

	if m.done {
		b.WriteString("\n" + StatusGround.Render("run complete") + " ")
	}
	b.WriteString("\n" + KeyHint.Render("q: quit") + "\n")

	return b.String()
}

// RunLive drives the terminal cockpit until the frame stream closes and
// the user quits.
func RunLive(airframe string, duration float64, frames <-chan Frame) error {
	p := tea.NewProgram(newLiveModel(airframe, duration, frames))
	_, err := p.Run()
	return err
}
