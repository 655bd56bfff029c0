// ABOUTME: Entry point for the Jingle Box soundboard
// ABOUTME: Parses CLI flags, wires the board to the TUI and the meter feed
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shampuan/Jingle-Box/internal/app"
	"github.com/shampuan/Jingle-Box/internal/config"
	"github.com/shampuan/Jingle-Box/internal/discovery"
	"github.com/shampuan/Jingle-Box/internal/feed"
	"github.com/shampuan/Jingle-Box/internal/palette"
	"github.com/shampuan/Jingle-Box/internal/player"
	"github.com/shampuan/Jingle-Box/internal/ui"
	"github.com/shampuan/Jingle-Box/internal/version"
	"github.com/shampuan/Jingle-Box/pkg/audio/output"
	"github.com/shampuan/Jingle-Box/pkg/meter"
)

var (
	configFile = flag.String("config", "", "JSON config file")
	palettePth = flag.String("palette", "", "Palette file to load at startup")
	logFile    = flag.String("log-file", config.DefaultLogFile, "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	lang       = flag.String("lang", config.DefaultLanguage, "Interface language (tr, en)")
	volume     = flag.Int("volume", config.DefaultVolume, "Initial volume (1-100)")
	feedPort   = flag.Int("feed-port", config.DefaultFeedPort, "Meter feed port")
	noFeed     = flag.Bool("no-feed", false, "Disable the meter feed")
	noMDNS     = flag.Bool("no-mdns", false, "Do not advertise the meter feed via mDNS")
	name       = flag.String("name", "", "Feed name (default: hostname-jinglebox)")
	play       = flag.String("play", "", "Slot (e.g. 0,2) or sound file to play without the TUI")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version.String())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	useTUI := !*noTUI && *play == ""

	// Set up logging
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("Starting %s", version.String())

	var feedServer *feed.Server
	if cfg.Feed.Enabled {
		feedServer = feed.NewServer(feed.Config{
			Port: cfg.Feed.Port,
			Name: cfg.Feed.Name,
		})
	}

	board := app.NewBoard(app.BoardConfig{
		Player: player.Config{
			OutputRate:  cfg.OutputRate,
			ChunkFrames: cfg.ChunkFrames,
			Volume:      cfg.Volume,
			Output:      output.NewOto(),
		},
		Meter: meter.Config{
			OnChange: func(s meter.Snapshot) {
				if feedServer != nil {
					feedServer.PublishLevels(s)
				}
			},
		},
		OnCue: func(ev app.CueEvent) {
			if ev.Active {
				log.Printf("Playing %s from slot %s", ev.Cue.Path, ev.Slot)
			} else {
				log.Printf("Stopped %s", ev.Cue.Path)
			}
			if feedServer != nil {
				feedServer.PublishCue(cueMessage(ev))
			}
		},
	})
	defer func() {
		if err := board.Close(); err != nil {
			log.Printf("Error closing board: %v", err)
		}
	}()

	if cfg.Palette != "" {
		if err := board.LoadPalette(cfg.Palette); err != nil {
			log.Printf("Failed to load palette %s: %v", cfg.Palette, err)
		}
	}

	if feedServer != nil {
		if err := feedServer.Start(); err != nil {
			log.Fatalf("Failed to start meter feed: %v", err)
		}
		defer feedServer.Stop()

		if cfg.Feed.MDNS {
			disc := discovery.NewManager(discovery.Config{
				ServiceName: cfg.Feed.Name,
				Port:        feedServer.Port(),
				Path:        feed.Path,
			})
			if err := disc.Advertise(); err != nil {
				log.Printf("mDNS advertisement failed: %v", err)
			}
			defer disc.Stop()
		}
	}

	if *play != "" {
		if err := playHeadless(board, *play); err != nil {
			log.Fatalf("Playback failed: %v", err)
		}
		return
	}

	if useTUI {
		uiLang, _ := ui.ParseLang(cfg.Language)
		err := ui.Run(board, ui.Options{
			Lang:        uiLang,
			Volume:      cfg.Volume,
			PalettePath: cfg.Palette,
		})
		if err != nil {
			log.Printf("TUI error: %v", err)
		}
		return
	}

	// Headless without a cue: keep the feed up until interrupted
	runTicker(board, waitForSignal())
	log.Printf("Jingle Box stopped")
}

// loadConfig reads the config file and applies explicitly set flags over it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "palette":
			cfg.Palette = *palettePth
		case "log-file":
			cfg.LogFile = *logFile
		case "lang":
			cfg.Language = *lang
		case "volume":
			cfg.Volume = *volume
		case "feed-port":
			cfg.Feed.Port = *feedPort
		case "no-feed":
			cfg.Feed.Enabled = !*noFeed
		case "no-mdns":
			cfg.Feed.MDNS = !*noMDNS
		case "name":
			cfg.Feed.Name = *name
		}
	})

	if *name == "" && cfg.Feed.Name == config.DefaultFeedName {
		if hostname, err := os.Hostname(); err == nil {
			cfg.Feed.Name = fmt.Sprintf("%s-jinglebox", hostname)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// cueMessage converts a board event into a feed payload
func cueMessage(ev app.CueEvent) feed.Cue {
	return feed.Cue{
		Active: ev.Active,
		ID:     ev.Cue.ID,
		Name:   palette.DisplayName(ev.Cue.Path),
		Path:   ev.Cue.Path,
		Slot:   ev.Slot.Key(),
	}
}

// playHeadless plays one slot, or a sound file placed in the first slot,
// to the end or until interrupted
func playHeadless(board *app.Board, target string) error {
	slot, err := palette.ParseKey(target)
	if err != nil {
		if !player.Supported(target) {
			return err
		}
		slot = palette.Slot{}
		if err := board.Assign(slot, target); err != nil {
			return err
		}
	}

	cue, err := board.Trigger(slot)
	if err != nil {
		return err
	}
	log.Printf("Playing %s (%s, %d Hz)", cue.Path, cue.Format, cue.SampleRate)

	stop := make(chan struct{})
	sig := waitForSignal()
	go func() {
		defer close(stop)
		ticker := time.NewTicker(ui.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sig:
				log.Printf("Shutdown signal received")
				board.Stop()
				return
			case <-ticker.C:
				if !board.Playing() {
					return
				}
			}
		}
	}()

	runTicker(board, stop)
	return nil
}

// runTicker advances the peak-hold animation until done is closed
func runTicker(board *app.Board, done <-chan struct{}) {
	ticker := time.NewTicker(ui.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			board.Tick(now)
		}
	}
}

// waitForSignal returns a channel closed on SIGINT or SIGTERM
func waitForSignal() <-chan struct{} {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		<-sigChan
		close(done)
	}()
	return done
}
