// Command spread animates card decks loaded from glTF/GLB scenes, driven by the pointer.
// With -headless it runs without a window, sweeping a synthetic pointer and logging panel transforms.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/Carmen-Shannon/oxy-spread/engine"
	"github.com/Carmen-Shannon/oxy-spread/engine/config"
	"github.com/Carmen-Shannon/oxy-spread/engine/input"
	"github.com/Carmen-Shannon/oxy-spread/engine/loader"
	"github.com/Carmen-Shannon/oxy-spread/engine/panel"
	"github.com/Carmen-Shannon/oxy-spread/engine/scene"
	"github.com/Carmen-Shannon/oxy-spread/engine/spread"
	"github.com/Carmen-Shannon/oxy-spread/engine/window"
	"github.com/chewxy/math32"
)

// builtinDeck is the cache key of the procedural deck used when no asset is given.
const builtinDeck = "builtin"

func main() {
	configPath := flag.String("config", "spread.yaml", "path to the YAML config; defaults are used if it does not exist")
	assets := flag.String("asset", "", "comma-separated glTF/GLB files, one deck each; overrides the config asset")
	headless := flag.Bool("headless", false, "run without a window using a synthetic pointer sweep")
	frames := flag.Int("frames", 600, "number of ticks to run in headless mode")
	writeConfig := flag.String("write-config", "", "write the effective config to this path and exit")
	flag.Parse()

	// ── Config ──────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			log.Fatalf("config: %v", err)
		}
		log.Printf("wrote config to %s", *writeConfig)
		return
	}

	paths := splitList(*assets)
	if len(paths) == 0 && cfg.Asset != "" {
		paths = []string{cfg.Asset}
	}

	// ── Decks ───────────────────────────────────────────────────────
	ld := loader.NewLoader(
		loader.BackendTypeGLTF,
		loader.WithNamePrefix(cfg.NamePrefix),
		loader.WithElements(builtinDeck, proceduralDeck(cfg.NamePrefix, 9)),
	)
	defer ld.Close()

	decks := map[string][]*common.Element{}
	if len(paths) == 0 {
		log.Printf("no asset given, using a procedural deck of 9 cards")
		paths = []string{builtinDeck}
		decks[builtinDeck] = ld.Get(builtinDeck)
	} else {
		decks, err = ld.LoadAll(paths)
		if err != nil {
			log.Printf("some decks failed to load: %v", err)
		}
	}

	scenes := make([]scene.Scene, 0, len(paths))
	for _, path := range paths {
		elements, ok := decks[path]
		if !ok {
			continue
		}
		deckCfg, err := cfg.Clone()
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		deckCfg.Asset = path

		s, err := buildScene(deckCfg, elements, len(scenes) == 0)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		scenes = append(scenes, s)
	}
	if len(scenes) == 0 {
		log.Fatalf("no deck could be built")
	}

	// ── Engine ──────────────────────────────────────────────────────
	mapperOpts, err := cfg.MapperOptions()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	opts := append(cfg.EngineOptions(), engine.WithMapper(input.NewMapper(mapperOpts...)))
	for i, s := range scenes {
		opts = append(opts, engine.WithScene(i, s))
	}

	if *headless {
		runHeadless(cfg, opts, scenes, *frames)
		return
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		log.Fatalf("window: %v", err)
	}
	eng := engine.NewEngine(append(opts, engine.WithWindow(win))...)

	// ── Keys ────────────────────────────────────────────────────────
	current := 0
	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyM:
			scenes[current].SetActive(false)
			current = (current + 1) % len(scenes)
			scenes[current].SetActive(true)
			log.Printf("switched to deck %s", scenes[current].Name())
		case common.KeySpace:
			scenes[current].SetActive(!scenes[current].Active())
		case common.KeyP:
			if eng.ProfilerEnabled() {
				eng.DisableProfiler()
			} else {
				eng.EnableProfiler()
			}
		case common.KeyR:
			w, h := eng.Viewport()
			eng.PostPointer(w/2, h/2)
		}
	})

	eng.Run()
}

// buildScene sorts a deck's elements, builds its registry and driver, and wraps them in a scene.
func buildScene(cfg *config.Config, elements []*common.Element, active bool) (scene.Scene, error) {
	sorted, err := panel.SortByNameSuffix(elements)
	if err != nil {
		return nil, err
	}
	center, err := cfg.ResolveCenter(sorted)
	if err != nil {
		return nil, err
	}
	regOpts, err := cfg.RegistryOptions()
	if err != nil {
		return nil, err
	}
	reg, err := panel.Build(sorted, center, regOpts...)
	if err != nil {
		return nil, err
	}
	drvOpts, err := cfg.DriverOptions()
	if err != nil {
		return nil, err
	}
	drv, err := spread.NewDriver(reg, drvOpts...)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s#%s", cfg.Asset, reg.ID()[:8])
	log.Printf("[Spread] built %s: %d panels, %s layout, center %d, axis %s",
		name, reg.Len(), reg.Mode(), reg.CenterIndex(), reg.Axis())
	return scene.NewScene(name, drv, scene.WithActive(active))
}

// runHeadless sweeps the pointer in a figure eight across the viewport and logs the first deck once per second.
func runHeadless(cfg *config.Config, opts []engine.EngineBuilderOption, scenes []scene.Scene, frames int) {
	w, h := float32(cfg.Window.Width), float32(cfg.Window.Height)
	var eng engine.Engine
	tick := 0
	eng = engine.NewEngine(append(opts,
		engine.WithViewport(w, h),
		engine.WithTickCallback(func(float32) {
			tick++
			phase := 2 * math32.Pi * float32(tick) / 240
			eng.PostPointer(w/2+w/2*math32.Sin(phase), h/2+h/2*math32.Sin(2*phase))

			if tick%max(int(cfg.TickRate), 1) == 0 {
				logTransforms(tick, eng.Signal(), scenes[0])
			}
			if tick >= frames {
				eng.Quit()
			}
		}),
	)...)
	eng.Run()
}

func logTransforms(tick int, sig input.Signal, s scene.Scene) {
	var b strings.Builder
	for _, t := range s.Transforms() {
		fmt.Fprintf(&b, " [%d %.3f %.2f° %.2f°]", t.Index, t.Offset, common.Deg(t.Yaw), common.Deg(t.Tilt))
	}
	log.Printf("tick %d sf=%.2f yaw=%.2f° pending=%d:%s",
		tick, sig.SpacingFactor, common.Deg(sig.TargetYaw), s.Stats().PendingCommits, b.String())
}

// proceduralDeck lays out n cards along Y, 0.1 apart and centered on the origin.
func proceduralDeck(prefix string, n int) []*common.Element {
	els := make([]*common.Element, n)
	for i := range els {
		els[i] = &common.Element{
			Name:     fmt.Sprintf("%s_%d", prefix, i+1),
			Position: [3]float32{0, float32(i-n/2) * 0.1, 0},
		}
	}
	return els
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
