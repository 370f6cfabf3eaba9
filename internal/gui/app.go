package gui

import (
	"errors"
	"fmt"
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/helix/internal/stage"
)

// ErrWindowUnavailable is returned when no native window could be created,
// for example on a headless machine.
var ErrWindowUnavailable = errors.New("gui: window unavailable")

var (
	ColText    = rl.NewColor(220, 220, 220, 255)
	ColTextDim = rl.NewColor(140, 140, 140, 255)
	ColAccent  = rl.NewColor(255, 174, 0, 255)
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

type App struct {
	Stage  *stage.Stage
	Camera rl.Camera3D
	Glow   bool
	FPS    int32
}

func initWindow(fps int32) error {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(windowWidth, windowHeight, "helix")
	if !rl.IsWindowReady() {
		return ErrWindowUnavailable
	}
	rl.SetTargetFPS(fps)
	rl.SetExitKey(0)
	return nil
}

// NewApp mirrors the stage camera: looking down -Z from CameraZ with a vertical FOV.
func NewApp(st *stage.Stage) *App {
	cfg := st.Config()
	return &App{
		Stage: st,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, float32(cfg.Scene.CameraZ)),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			float32(cfg.Scene.FOV),
			rl.CameraPerspective,
		),
		Glow: cfg.Bloom.Enabled,
		FPS:  int32(cfg.Render.FPS),
	}
}

// Run opens a window and blocks until it is closed.
func Run(st *stage.Stage) error {
	app := NewApp(st)
	if err := initWindow(app.FPS); err != nil {
		return err
	}
	defer rl.CloseWindow()
	log.Printf("gui: window %dx%d", rl.GetScreenWidth(), rl.GetScreenHeight())
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update applies input and advances the stage. It returns false on quit.
func (a *App) Update() bool {
	if a.Stage.Closed() {
		return false
	}
	step := a.Stage.Config().Scroll.Step
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Stage.Scroll(-float64(wheel) * step * 3)
	}
	switch {
	case rl.IsKeyDown(rl.KeyDown), rl.IsKeyDown(rl.KeyJ):
		a.Stage.Scroll(step)
	case rl.IsKeyDown(rl.KeyUp), rl.IsKeyDown(rl.KeyK):
		a.Stage.Scroll(-step)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Stage.SetScroll(0)
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Stage.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.Glow = !a.Glow
	}
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	a.Stage.Advance(float64(rl.GetFrameTime()))
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(toRL(a.Stage.Scene().Background))

	rl.BeginMode3D(a.Camera)
	a.drawHelix()
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	st := a.Stage
	rl.DrawText("helix", 30, 30, 24, ColText)
	rl.DrawText(fmt.Sprintf("scroll %.0f  progress %.0f%%  rotation %.0f°", st.ScrollY(), st.Progress()*100, st.Rotation()*180/math.Pi), 30, 60, 16, ColTextDim)

	bar := int32(float64(300) * st.Progress())
	rl.DrawRectangle(30, 86, 300, 4, ColTextDim)
	rl.DrawRectangle(30, 86, bar, 4, ColAccent)

	status := "RUNNING"
	if st.Paused() {
		status = "PAUSED"
	}
	rl.DrawText(status, int32(rl.GetScreenWidth())-130, 30, 16, ColText)
	rl.DrawText("[WHEEL/J/K] SCROLL  [SPACE] PAUSE  [B] GLOW  [R] TOP  [Q] QUIT", 30, int32(rl.GetScreenHeight())-40, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(rl.GetScreenWidth())-100, int32(rl.GetScreenHeight())-40, 14, ColTextDim)
}
