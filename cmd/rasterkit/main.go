// rasterkit - Terminal 3D Model Viewer
// View GLB files in your terminal, driven entirely by the software
// rasterizer in pkg/raster.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right (Q rolls left, E rolls right)
//	Space       - Apply random impulse
//	R           - Reset rotation
//	T           - Toggle lighting on/off
//	X           - Toggle wireframe mode
//	?           - Toggle HUD overlay (FPS, filename, poly count, mode status)
//	+/-         - Adjust zoom
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/voxelwright/rasterkit/pkg/math3d"
	"github.com/voxelwright/rasterkit/pkg/models"
	"github.com/voxelwright/rasterkit/pkg/raster"
	"github.com/voxelwright/rasterkit/pkg/scene"
)

var (
	texturePath  = flag.String("texture", "", "Path to texture image (PNG/JPG), overrides any embedded texture")
	targetFPS    = flag.Int("fps", 60, "Target FPS")
	bgColor      = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	shadowRes    = flag.Int("shadow-res", 0, "Shadow map resolution in texels (0 disables shadows)")
	flagWireframe = flag.Bool("wireframe", false, "Start in wireframe debug mode")
	flagSolid    = flag.Bool("solid", false, "Dither every filled pixel a fixed debug color")
	flagDepth    = flag.Bool("depth", false, "Visualize the depth buffer instead of shading")
	flagDepthMiss = flag.Bool("depth-miss", false, "Tint pixels that fail the depth test")
	flagScanline = flag.Bool("scanline-fill", false, "Set the ScanlineFill debug flag (the renderer does not read it)")
	lightSpec    = flag.String("light", "0.5,1,0.3", "Light direction as x,y,z")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rasterkit - Terminal 3D Model Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rasterkit [options] <model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle lighting\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// RotationAxis tracks position and velocity for one rotation axis with
// spring decay.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds rotation with harmonica spring physics.
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// ViewState holds UI state: which debug flags and render toggles are live.
type ViewState struct {
	LightingEnabled bool
	Debug           raster.DebugFlags
	LightDir        math3d.Vector4
	ShowHUD         bool
}

func NewViewState(lightDir math3d.Vector4) *ViewState {
	return &ViewState{
		LightingEnabled: true,
		LightDir:        lightDir,
		Debug: raster.DebugFlags{
			Wireframe:    *flagWireframe,
			Solid:        *flagSolid,
			Depth:        *flagDepth,
			DepthMiss:    *flagDepthMiss,
			ScanlineFill: *flagScanline,
		},
	}
}

// HUD renders a status overlay directly to the terminal via ANSI escapes.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{filename: filename, polyCount: polyCount, fpsTime: time.Now()}
}

func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func (h *HUD) Render(width, height int, viewState *ViewState) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !viewState.ShowHUD {
		return
	}

	fmt.Print(fmt.Sprintf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset))

	titleStr := fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, h.filename, reset)
	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + titleStr)

	polyStr := fmt.Sprintf("%s%s%s %d tris %s", bgBlack, fgCyan, bold, h.polyCount, reset)
	fmt.Print(moveTo(1, max(width-12, 1)) + polyStr)

	checkLight := "[ ]"
	if viewState.LightingEnabled && !viewState.Debug.Wireframe {
		checkLight = "[x]"
	}
	checkWire := "[ ]"
	if viewState.Debug.Wireframe {
		checkWire = "[x]"
	}
	modeStr := fmt.Sprintf("%s%s %s Lighting  %s Wireframe %s", bgBlack, fgWhite, checkLight, checkWire, reset)
	fmt.Print(moveTo(height, 1) + modeStr)
}

func parseVec3(spec string, fallback math3d.Vector4) math3d.Vector4 {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return fallback
	}
	var out [3]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return fallback
		}
		out[i] = float32(v)
	}
	return math3d.V4(out[0], out[1], out[2], 0)
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	term := uv.DefaultTerminal()

	termWidth, termHeight, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(termWidth, termHeight)

	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	fbWidth, fbHeight := termWidth, termHeight*2
	sc := scene.NewScene(fbWidth, fbHeight)
	if *shadowRes > 0 {
		sc.EnableShadows(*shadowRes)
	}

	camera := scene.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	camera.SetFOV(math.Pi / 3)
	camera.SetClipPlanes(0.1, 100)
	cameraZ := 5.0
	camera.SetPosition(math3d.V4(0, 0, float32(cameraZ), 1))
	camera.LookAt(math3d.V4(0, 0, 0, 1))

	mesh, embeddedTexture, err := models.LoadWithTexture(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	var texture *raster.Bitmap[raster.Color]
	if *texturePath != "" {
		texture, err = raster.LoadTexture(*texturePath)
		if err != nil {
			fmt.Printf("Warning: could not load texture: %v\n", err)
		}
	}
	if texture == nil {
		texture = embeddedTexture
	}
	if texture == nil {
		texture = raster.NewCheckerTexture(64, 8, raster.Color{R: 200, G: 200, B: 200, A: 255}, raster.Color{R: 100, G: 100, B: 100, A: 255})
	}

	boundsMin, boundsMax := scene.MeshBounds(mesh)
	center := boundsMin.Add(boundsMax).Scale(0.5)
	size := boundsMax.Sub(boundsMin)
	maxDim := float32(math.Max(float64(size.X), math.Max(float64(size.Y), float64(size.Z))))

	inst := scene.NewInstance(mesh, raster.Material{LightEnabled: true, Texture: texture}, float64(*targetFPS))
	inst.CastsShadow = true
	if maxDim > 0 {
		inst.Scale = 2.0 / maxDim
	} else {
		inst.Scale = 1
	}
	inst.Position = center.Scale(-inst.Scale)
	inst.TargetPosition = inst.Position
	sc.AddInstance(inst)

	fmt.Printf("Loaded: %s (%d vertices, %d triangles)\n", filepath.Base(modelPath), len(mesh.Vertices), mesh.TriangleCount())

	hud := NewHUD(filepath.Base(modelPath), mesh.TriangleCount())

	rotation := NewRotationState(*targetFPS)
	viewState := NewViewState(parseVec3(*lightSpec, raster.DefaultLightDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				termWidth, termHeight = ev.Width, ev.Height
				term.Erase()
				term.Resize(termWidth, termHeight)
				fbWidth, fbHeight = termWidth, termHeight*2
				sc.Renderer = raster.NewRenderer(fbWidth, fbHeight)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
					camera.SetPosition(math3d.V4(0, 0, float32(cameraZ), 1))
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					camera.SetPosition(math3d.V4(0, 0, float32(cameraZ), 1))
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					camera.SetPosition(math3d.V4(0, 0, float32(cameraZ), 1))
				case ev.MatchString("t"):
					viewState.LightingEnabled = !viewState.LightingEnabled
				case ev.MatchString("x"):
					viewState.Debug.Wireframe = !viewState.Debug.Wireframe
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					viewState.ShowHUD = !viewState.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
				camera.SetPosition(math3d.V4(0, 0, float32(cameraZ), 1))
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		rotation.ApplyImpulse(inputTorque.pitch*dt, inputTorque.yaw*dt, inputTorque.roll*dt)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9
		rotation.Update()

		pitchQ := math3d.FromAxisAngle(math3d.V4(1, 0, 0, 0), float32(rotation.Pitch.Position))
		yawQ := math3d.FromAxisAngle(math3d.V4(0, 1, 0, 0), float32(rotation.Yaw.Position))
		rollQ := math3d.FromAxisAngle(math3d.V4(0, 0, 1, 0), float32(rotation.Roll.Position))
		inst.TargetOrientation = pitchQ.Mul(yawQ).Mul(rollQ)

		inst.Material.LightEnabled = viewState.LightingEnabled
		sc.Renderer.Debug = viewState.Debug
		background := raster.ColorFromFloats(float32(bgR)/255, float32(bgG)/255, float32(bgB)/255, 1)
		sc.Renderer.ClearColor(background)

		var lightVP *math3d.Matrix4
		if sc.ShadowRenderer != nil {
			lightDir, lerr := viewState.LightDir.Normalize3()
			if lerr != nil {
				lightDir = raster.DefaultLightDir
			}
			eye := lightDir.Scale(10)
			lightView := math3d.LookAt(eye, math3d.Zero4(), math3d.V4(0, 1, 0, 0))
			proj := math3d.Orthographic(-3, 3, -3, 3, 0.1, 30)
			vp := proj.Mul(lightView)
			lightVP = &vp
		}

		sc.DrawFrame(camera.ViewProjectionMatrix(), lightVP, nil)

		area := uv.Rectangle{Min: uv.Position{X: 0, Y: 0}, Max: uv.Position{X: termWidth, Y: termHeight}}
		drawToScreen(sc.Renderer.ColorBuffer, background, term, area)
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(termWidth, termHeight, viewState)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
