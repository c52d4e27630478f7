// Package main is a load generator for the device server. It opens many
// WebSocket viewers that mash buttons and measures how steadily frames arrive.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MRamiBalles/sdop/internal/network"
)

type options struct {
	url      string
	clients  int
	interval time.Duration
	duration time.Duration
	holdOdds float64
}

// viewer is the tally kept by one connection.
type viewer struct {
	sent     int
	frames   int
	events   int
	songs    int
	rejected int
	maxGap   time.Duration
	dropped  bool
	dialFail bool
}

type report struct {
	viewers []viewer
	elapsed time.Duration
}

var buttons = []string{"LEFT", "MIDDLE", "RIGHT"}

func main() {
	var opts options
	flag.StringVar(&opts.url, "url", "ws://localhost:8080/ws", "WebSocket endpoint of sdop-server")
	flag.IntVar(&opts.clients, "clients", 20, "concurrent viewers")
	flag.DurationVar(&opts.interval, "interval", 250*time.Millisecond, "time between actions per viewer")
	flag.DurationVar(&opts.duration, "duration", 30*time.Second, "length of the run")
	flag.Float64Var(&opts.holdOdds, "hold", 0.1, "chance an action is a hold instead of a press")
	flag.Parse()

	log.Printf("agitating %s with %d viewers for %v", opts.url, opts.clients, opts.duration)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	r := agitate(ctx, opts)
	if !r.print() {
		os.Exit(1)
	}
}

func agitate(ctx context.Context, opts options) report {
	start := time.Now()
	out := make([]viewer, opts.clients)

	var wg sync.WaitGroup
	for i := range out {
		wg.Add(1)
		go func(v *viewer) {
			defer wg.Done()
			v.run(ctx, opts)
		}(&out[i])
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	return report{viewers: out, elapsed: time.Since(start)}
}

func (v *viewer) run(ctx context.Context, opts options) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, opts.url, nil)
	if err != nil {
		v.dialFail = true
		return
	}
	readDone := make(chan error, 1)
	finished := make(chan struct{})
	defer func() {
		conn.Close()
		<-finished
	}()

	var mu sync.Mutex
	go func() {
		defer close(finished)
		last := time.Now()
		for {
			var msg network.Message
			if err := conn.ReadJSON(&msg); err != nil {
				readDone <- err
				return
			}
			now := time.Now()
			mu.Lock()
			switch msg.Type {
			case network.MessageFrame:
				v.frames++
				v.maxGap = max(v.maxGap, now.Sub(last))
				last = now
			case network.MessageEvent:
				v.events++
			case network.MessageSong:
				v.songs++
			case network.MessageError:
				v.rejected++
			}
			mu.Unlock()
		}
	}()

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()
	held := ""

	for {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		case err := <-readDone:
			var ce *websocket.CloseError
			if !errors.As(err, &ce) || ce.Code != websocket.CloseNormalClosure {
				v.dropped = true
			}
			return
		case <-ticker.C:
			action := nextAction(&held, opts.holdOdds)
			if err := conn.WriteJSON(action); err != nil {
				v.dropped = true
				return
			}
			mu.Lock()
			v.sent++
			mu.Unlock()
		}
	}
}

// nextAction releases a held button before doing anything else.
func nextAction(held *string, holdOdds float64) network.PlayerAction {
	if *held != "" {
		a := network.PlayerAction{Type: network.ActionRelease, Button: *held}
		*held = ""
		return a
	}
	b := buttons[rand.IntN(len(buttons))]
	if rand.Float64() < holdOdds {
		*held = b
		return network.PlayerAction{Type: network.ActionHold, Button: b}
	}
	return network.PlayerAction{Type: network.ActionPress, Button: b}
}

// print writes the summary and reports whether every viewer stayed connected.
func (r report) print() bool {
	var sent, frames, evs, songs, rejected, dropped, failed int
	var worst time.Duration
	for _, v := range r.viewers {
		sent += v.sent
		frames += v.frames
		evs += v.events
		songs += v.songs
		rejected += v.rejected
		worst = max(worst, v.maxGap)
		if v.dropped {
			dropped++
		}
		if v.dialFail {
			failed++
		}
	}

	secs := r.elapsed.Seconds()
	summary := map[string]any{
		"viewers":         len(r.viewers),
		"dial_failures":   failed,
		"dropped":         dropped,
		"actions_sent":    sent,
		"frames":          frames,
		"events":          evs,
		"songs":           songs,
		"rejected":        rejected,
		"frames_per_sec":  float64(frames) / secs / float64(max(1, len(r.viewers)-failed)),
		"worst_frame_gap": worst.String(),
		"elapsed":         r.elapsed.Round(time.Millisecond).String(),
		"actions_per_sec": float64(sent) / secs,
	}
	b, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(b))

	return failed == 0 && dropped == 0
}
