// slice-replay re-runs a recorded session headless and prints the outcome
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/replay"
)

func main() {
	in := flag.String("in", "", "Replay file to play back")
	verbose := flag.Bool("v", false, "Print every notification")
	only := flag.String("only", "", "Comma-separated notification names to print with -v")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: slice-replay -in session.bsr [-v] [-only score-changed,round-over]")
		os.Exit(2)
	}
	filter, err := parseFilter(*only)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slice-replay: %v\n", err)
		os.Exit(2)
	}
	log.SetOutput(io.Discard)
	if *verbose {
		log.SetOutput(os.Stderr)
	}

	rp, err := replay.Load(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slice-replay: %v\n", err)
		os.Exit(1)
	}

	var opts replay.Options
	if *verbose {
		opts.Emitter = event.EmitterFunc(func(ev event.GameEvent) {
			if filter != nil && !filter[ev.Type] {
				return
			}
			fmt.Printf("%10v  %s\n", ev.At, ev.Type)
		})
	}

	res, err := replay.Play(rp, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slice-replay: %v\n", err)
		os.Exit(1)
	}

	h := rp.Header
	fmt.Printf("replay   %s (round %s)\n", h.ID, h.RoundID)
	fmt.Printf("recorded %s  seed %d  tuning %s\n", h.CreatedAt.Format("2006-01-02 15:04:05"), h.Seed, h.Digest)
	fmt.Printf("frames   %d  rounds %d  events %d\n", res.Frames, res.Rounds, res.Events)
	fmt.Printf("score    %d  lives %d  slices %d  over %v\n", res.Score, res.Lives, res.Slices, res.Terminal)
}
