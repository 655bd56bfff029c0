// ABOUTME: Remote meter viewer for Jingle Box
// ABOUTME: Finds a soundboard feed via mDNS and displays its stereo levels
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

	"github.com/shampuan/Jingle-Box/internal/discovery"
	"github.com/shampuan/Jingle-Box/internal/feed"
	"github.com/shampuan/Jingle-Box/internal/ui"
)

var (
	addr     = flag.String("addr", "", "Feed address host:port (skip mDNS)")
	name     = flag.String("name", "", "Viewer name (default: hostname-meter)")
	wait     = flag.Duration("wait", 10*time.Second, "How long to browse for a feed")
	logFile  = flag.String("log-file", "jinglebox-meter.log", "Log file path")
	noTUI    = flag.Bool("no-tui", false, "Print levels instead of drawing meters")
	interval = flag.Duration("print-interval", 500*time.Millisecond, "Level print interval without TUI")
)

func main() {
	flag.Parse()

	useTUI := !*noTUI

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	viewerName := *name
	if viewerName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		viewerName = fmt.Sprintf("%s-meter", hostname)
	}

	serverAddress := *addr
	if serverAddress == "" {
		log.Printf("Browsing for feeds...")
		disc := discovery.NewManager(discovery.Config{})
		if err := disc.Browse(); err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}

		select {
		case info := <-disc.Feeds():
			serverAddress = info.Addr()
			log.Printf("Discovered %s at %s", info.Name, serverAddress)
		case <-time.After(*wait):
			log.Fatalf("No feed found after %s", *wait)
		}
		disc.Stop()
	}

	client := feed.NewClient(feed.ClientConfig{
		ServerAddr: serverAddress,
		Name:       viewerName,
	})
	if err := client.Connect(); err != nil {
		log.Fatalf("Connection failed: %v", err)
	}
	defer func() { _ = client.Close() }()

	hello := client.Server()
	log.Printf("Connected to %s (%s %s)", hello.Name, hello.DeviceInfo.ProductName, hello.DeviceInfo.SoftwareVersion)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if !useTUI {
		printLevels(client, sigChan)
		return
	}

	tui := ui.NewMeterTUI(hello.Name)
	go func() {
		for {
			select {
			case levels := <-client.Levels:
				tui.Snapshot(levels)
			case cue := <-client.Cues:
				tui.Cue(cue.Name, cue.Active)
			case <-client.Done():
				tui.Status("disconnected")
				return
			case <-sigChan:
				tui.Stop()
				return
			case <-tui.QuitChan():
				return
			}
		}
	}()

	if err := tui.Start(); err != nil {
		log.Printf("TUI error: %v", err)
	}
}

// printLevels logs the latest levels at a fixed rate until the feed ends
func printLevels(client *feed.Client, sigChan <-chan os.Signal) {
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	var last feed.Levels
	for {
		select {
		case last = <-client.Levels:
		case cue := <-client.Cues:
			if cue.Active {
				log.Printf("Cue started: %s (slot %s)", cue.Name, cue.Slot)
			} else {
				log.Printf("Cue stopped: %s", cue.Name)
			}
		case <-ticker.C:
			log.Printf("L %.3f (hold %.3f)  R %.3f (hold %.3f)",
				last.LeftLevel, last.LeftPeakHold, last.RightLevel, last.RightPeakHold)
		case <-client.Done():
			log.Printf("Feed disconnected")
			return
		case <-sigChan:
			log.Printf("Shutdown signal received")
			return
		}
	}
}
