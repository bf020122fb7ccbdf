// Package ui renders the control panel overlay: camera sliders and an
// activation field readout.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth  = 260
	panelMargin = 10
)

// CameraState carries camera parameters into the panel; sliders write
// adjusted values back through it.
type CameraState struct {
	Mode     string
	FOV      float32
	Distance float32
	Zoom     float32
}

// FieldState is a read-only activation field summary for display.
type FieldState struct {
	MeanActivation float64
	ActiveNodes    int
	Integration    float64
	Phi            float64
	Coherence      float64
	FocusNode      int
	FocusStability float64
}

// Panel is the right-hand control panel. Hidden by default.
type Panel struct {
	Visible bool

	x float32
}

// NewPanel creates a panel anchored to the right edge of the screen.
func NewPanel(screenW int32) *Panel {
	p := &Panel{}
	p.Resize(screenW)
	return p
}

// Resize re-anchors the panel after a window resize.
func (p *Panel) Resize(screenW int32) {
	p.x = float32(screenW) - panelWidth - panelMargin
}

// Toggle shows or hides the panel.
func (p *Panel) Toggle() {
	p.Visible = !p.Visible
}

// Draw renders the panel and applies slider edits to cam.
// acts is the per-node activation snapshot for the bar strip.
func (p *Panel) Draw(cam *CameraState, fs FieldState, acts []float64) {
	if !p.Visible {
		return
	}

	x := p.x
	y := float32(panelMargin)

	rl.DrawRectangle(int32(x-10), 0, panelWidth+20, 460, rl.NewColor(0, 0, 0, 170))

	rl.DrawText("Camera", int32(x), int32(y), 20, rl.RayWhite)
	y += 28
	rl.DrawText(fmt.Sprintf("Mode: %s  [C]", cam.Mode), int32(x), int32(y), 14, rl.Gray)
	y += 24

	rl.DrawText("FOV", int32(x), int32(y), 14, rl.Gray)
	y += 18
	cam.FOV = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: panelWidth - 70, Height: 20},
		"30", "120",
		cam.FOV, 30, 120,
	)
	rl.DrawText(fmt.Sprintf("%.0f", cam.FOV), int32(x+panelWidth-60), int32(y+2), 16, rl.RayWhite)
	y += 30

	rl.DrawText("Orbit distance", int32(x), int32(y), 14, rl.Gray)
	y += 18
	cam.Distance = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: panelWidth - 70, Height: 20},
		"5", "200",
		cam.Distance, 5, 200,
	)
	rl.DrawText(fmt.Sprintf("%.0f", cam.Distance), int32(x+panelWidth-60), int32(y+2), 16, rl.RayWhite)
	y += 30

	rl.DrawText("Zoom", int32(x), int32(y), 14, rl.Gray)
	y += 18
	cam.Zoom = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: panelWidth - 70, Height: 20},
		"0.25", "4.0",
		cam.Zoom, 0.25, 4.0,
	)
	rl.DrawText(fmt.Sprintf("%.2f", cam.Zoom), int32(x+panelWidth-60), int32(y+2), 16, rl.RayWhite)
	y += 38

	rl.DrawText("Activation Field", int32(x), int32(y), 20, rl.RayWhite)
	y += 28
	rl.DrawText(fmt.Sprintf("Mean: %.3f  Active: %d", fs.MeanActivation, fs.ActiveNodes), int32(x), int32(y), 14, rl.Gray)
	y += 20
	rl.DrawText(fmt.Sprintf("Integration: %.3f", fs.Integration), int32(x), int32(y), 14, rl.Gray)
	y += 20
	rl.DrawText(fmt.Sprintf("Phi: %.3f  Coherence: %.3f", fs.Phi, fs.Coherence), int32(x), int32(y), 14, rl.Gray)
	y += 20
	rl.DrawText(fmt.Sprintf("Focus: %d  Stability: %.2f", fs.FocusNode, fs.FocusStability), int32(x), int32(y), 14, rl.Gray)
	y += 26

	p.drawActivationStrip(x, y, acts, fs.FocusNode)
}

// drawActivationStrip renders one thin bar per node.
func (p *Panel) drawActivationStrip(x, y float32, acts []float64, focus int) {
	if len(acts) == 0 {
		return
	}
	const stripH = 60
	barW := (panelWidth - 10) / float32(len(acts))
	if barW < 1 {
		barW = 1
	}
	for i, a := range acts {
		h := float32(a) * stripH
		color := rl.NewColor(0, 190, 255, 255)
		if i == focus {
			color = rl.NewColor(255, 230, 120, 255)
		}
		rl.DrawRectangle(
			int32(x+float32(i)*barW),
			int32(y+stripH-h),
			int32(barW), int32(h+1),
			color,
		)
	}
	rl.DrawLine(int32(x), int32(y+stripH), int32(x+panelWidth-10), int32(y+stripH), rl.DarkGray)
}
