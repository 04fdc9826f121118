package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/sitereel/internal/capture"
	"github.com/ivlev/sitereel/internal/config"
	"github.com/ivlev/sitereel/internal/export"
	"github.com/ivlev/sitereel/internal/playback"
	"github.com/ivlev/sitereel/internal/preset"
	"github.com/ivlev/sitereel/internal/project"
	"github.com/ivlev/sitereel/internal/system"
	"github.com/ivlev/sitereel/internal/timeline"
)

func main() {
	system.InitResourceLimits()
	os.MkdirAll("output", 0755)

	inputPtr := flag.String("input", "", "Capture JSON, saved project YAML, or a screenshot image")
	outputPtr := flag.String("output", "", "Output path (generated under output/ when empty)")
	stylePtr := flag.String("style", "showcase", fmt.Sprintf("Animation style: %s", strings.Join(preset.Names(), ", ")))
	formatPtr := flag.String("format", "webm", "Output format: webm, mp4, gif")
	widthPtr := flag.Int("width", 0, "Output width (0 = project setting)")
	heightPtr := flag.Int("height", 0, "Output height (0 = project setting)")
	fpsPtr := flag.Int("fps", 0, "Frames per second (0 = project setting)")
	qualityPtr := flag.String("quality", "medium", "Quality tier: low, medium, high, ultra")
	aspectPtr := flag.String("aspect", "", "Aspect preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	urlPtr := flag.String("url", "", "Source URL stamped as a QR watermark")
	saveProjectPtr := flag.String("save-project", "", "Also write the assembled project YAML here")
	previewPtr := flag.Bool("preview", false, "Play the timeline in real time and print scene changes instead of exporting")

	flag.Parse()

	if *inputPtr == "" {
		log.Fatal("[-] No input. Pass -input with a capture JSON, project YAML, or image")
	}

	width, height := *widthPtr, *heightPtr
	switch *aspectPtr {
	case "16:9":
		width, height = 1920, 1080
	case "9:16":
		width, height = 1080, 1920
	case "4:5":
		width, height = 1080, 1350
	}

	style, err := preset.Lookup(*stylePtr)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	p, err := loadProject(*inputPtr, style, *urlPtr)
	if err != nil {
		log.Fatalf("[-] Failed to load input: %v", err)
	}
	fmt.Printf("[*] Project ready: %d screens, %d scenes, %.1fs timeline\n",
		len(p.Screens), len(p.Scenes), float64(p.TotalDuration())/1000)

	if *saveProjectPtr != "" {
		if err := config.WriteProject(p, *saveProjectPtr); err != nil {
			log.Fatalf("[-] Failed to save project: %v", err)
		}
		fmt.Printf("[*] Project saved: %s\n", *saveProjectPtr)
	}

	if *previewPtr {
		runPreview(p)
		return
	}

	format := export.Format(*formatPtr)
	outputPath := *outputPtr
	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(*inputPtr), filepath.Ext(*inputPtr))
		cleanName := strings.ReplaceAll(base, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		outputPath = filepath.Join("output", fmt.Sprintf("%s_%s.%s", cleanName, timestamp, format))
	}

	lastDecile := -1
	opts := export.Options{
		Width:     width,
		Height:    height,
		FPS:       *fpsPtr,
		Quality:   export.Quality(*qualityPtr),
		Format:    format,
		SourceURL: *urlPtr,
		OnProgress: func(pct int, state export.State) {
			if d := pct / 10; d > lastDecile {
				lastDecile = d
				fmt.Printf("[*] %s %d%%\n", state, pct)
			}
		},
	}

	started := time.Now()
	data, _, err := export.New().Export(context.Background(), p, opts)
	if err != nil {
		log.Fatalf("[-] Export failed: %v", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		log.Fatalf("[-] Failed to write output: %v", err)
	}

	fmt.Printf("[+++] Done in %.1fs: %s (%.2f MB)\n",
		time.Since(started).Seconds(), outputPath, float64(len(data))/1024/1024)
}

// tickScheduler drives the preview player off the process clock.
type tickScheduler struct {
	interval time.Duration
}

func (s tickScheduler) ScheduleNextTick(fn func()) {
	time.AfterFunc(s.interval, fn)
}

// runPreview plays the timeline once in real time, printing each scene as
// the cursor enters it.
func runPreview(p project.Project) {
	scenes := p.RenderableScenes()
	lastScene := -1
	player := playback.NewPlayer(scenes, tickScheduler{interval: 50 * time.Millisecond},
		func(pos timeline.Position, timeMs float64) {
			if pos.SceneIndex != lastScene {
				lastScene = pos.SceneIndex
				fmt.Printf("[*] %6.1fs  scene %d/%d\n", timeMs/1000, pos.SceneIndex+1, len(scenes))
			}
		})

	player.Play()
	for player.Playing() {
		time.Sleep(100 * time.Millisecond)
	}
	fmt.Printf("[+++] Preview finished at %.1fs\n", player.CurrentTime()/1000)
}

// loadProject builds a project from whichever input kind the path holds.
func loadProject(path string, style preset.Style, sourceURL string) (project.Project, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return project.Project{}, err
		}
		page, err := capture.ParseCapturedPage(data)
		if err != nil {
			return project.Project{}, err
		}
		return capture.BuildProject(page, style, project.DefaultSettings())

	case ".yaml", ".yml":
		return config.ReadProject(path)

	default:
		// Treat anything else as a raw screenshot: section detection
		// runs locally on the image.
		img, err := capture.DecodeImageRef(path)
		if err != nil {
			return project.Project{}, err
		}
		b := img.Bounds()
		page := &capture.CapturedPage{
			URL:           sourceURL,
			FullPageImage: path,
			Width:         b.Dx(),
			Height:        b.Dy(),
			PageHeight:    b.Dy(),
		}
		return capture.BuildProject(page, style, project.DefaultSettings())
	}
}
