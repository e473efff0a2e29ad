// Command bossrush runs the encounter headless: an autoplay bot hits
// weakpoints while events are logged and optionally streamed.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/milk9111/bossrush/ecs/system"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/game"
	"github.com/milk9111/bossrush/prefabs"
	"github.com/milk9111/bossrush/telemetry"
)

func main() {
	config := flag.String("config", "", "encounter yaml (default: packaged encounter.yaml)")
	seed := flag.Int64("seed", 0, "override the encounter seed")
	duration := flag.Float64("duration", 600, "simulated seconds to run before giving up")
	dt := flag.Float64("dt", 1.0/60, "simulation step in seconds")
	hitEvery := flag.Float64("hit", 0.25, "seconds between bot weakpoint hits (0 disables the bot)")
	watch := flag.Bool("watch", false, "restart the encounter when the encounter document or scripts change")
	serve := flag.String("serve", "", "address for the telemetry websocket, e.g. :8080")
	quiet := flag.Bool("quiet", false, "do not log sound requests")
	flag.Parse()

	hub := telemetry.NewHub(256)
	if *serve != "" {
		mux := http.NewServeMux()
		mux.Handle("/events", hub)
		go func() {
			log.Printf("telemetry: listening on %s/events", *serve)
			if err := http.ListenAndServe(*serve, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("telemetry: %v", err)
			}
		}()
	}

	opts := game.Options{
		Seed: *seed,
		Observer: func(e encounter.Event) {
			log.Printf("event: %s %s %s %s", e.Type, e.Phase, e.SubPhase, e.Detail)
			hub.Observe(e)
		},
	}
	if *quiet {
		opts.Sink = discardSink{}
	} else {
		opts.Sink = system.LogSink{}
	}

	g, err := load(*config, opts)
	if err != nil {
		log.Fatal(err)
	}

	var changes <-chan prefabs.Change
	if *watch {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
		if *config != "" {
			dirs = append(dirs, filepath.Dir(*config))
		}
		w, err := prefabs.NewWatcher(existing(dirs)...)
		if err != nil {
			log.Fatalf("watch: %v", err)
		}
		defer w.Close()
		changes = w.Changes
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bot := newBot(*hitEvery)
	g.Begin()
	for g.Time() < *duration && !g.Done() {
		select {
		case <-ctx.Done():
			log.Print("bossrush: interrupted")
			return
		case c := <-changes:
			log.Printf("bossrush: %s %s changed, reloading", c.Kind, c.Path)
			next, err := load(*config, opts)
			if err != nil {
				log.Printf("bossrush: reload: %v", err)
				continue
			}
			g = next
			g.Begin()
			continue
		default:
		}

		bot.step(g, *dt)
		g.Update(*dt)
	}

	phase, sub := g.Current()
	if g.Done() {
		log.Printf("bossrush: cleared every phase in %.1fs (%d frames)", g.Time(), g.Frames())
		return
	}
	log.Printf("bossrush: stopped at %s %s after %.1fs", phase, sub, g.Time())
}

func load(path string, opts game.Options) (*game.Game, error) {
	spec, err := prefabs.LoadEncounterSpec(path)
	if err != nil {
		return nil, err
	}
	return game.New(spec, opts)
}

func existing(dirs []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, d := range dirs {
		if seen[d] {
			continue
		}
		seen[d] = true
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}
