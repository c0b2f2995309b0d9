package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bearpark/bear-slice/arcade"
	"github.com/bearpark/bear-slice/audio"
	"github.com/bearpark/bear-slice/config"
	"github.com/bearpark/bear-slice/engine"
	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/feed"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/render"
	"github.com/bearpark/bear-slice/replay"
	"github.com/bearpark/bear-slice/status"
	"github.com/bearpark/bear-slice/store"
)

var (
	configFlag    = flag.String("config", "", "TOML tuning file (defaults when empty)")
	seedFlag      = flag.Uint64("seed", 0, "RNG seed (0 picks one from the clock)")
	storeFlag     = flag.String("store", "file", "Persistence backend: memory, file, postgres")
	storePathFlag = flag.String("store-path", "bear-slice.json", "File store path")
	dsnFlag       = flag.String("dsn", "", "Postgres connection string")
	playerFlag    = flag.String("player", parameter.DefaultPlayerID, "Player key for persisted records")
	feedFlag      = flag.String("feed", "", "Serve the spectator feed on this address")
	recordFlag    = flag.String("record", "", "Write a replay of the session to this file")
	muteFlag      = flag.Bool("mute", false, "Start with audio muted")
	debugFlag     = flag.Bool("debug", false, "Log to logs/ and show metrics in the status line")
)

// session is the engine surface driven by the front-end, optionally through a recorder
type session interface {
	HandleInput(in arcade.InputEvent)
	Advance(dt time.Duration)
	Pause() bool
	Resume() bool
	Restart() error
}

func main() {
	flag.Parse()

	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bear-slice: %v\n", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (store.Store, error) {
	switch *storeFlag {
	case "memory":
		return store.NewMemory(), nil
	case "file":
		return store.NewFile(*storePathFlag, *playerFlag)
	case "postgres":
		if *dsnFlag == "" {
			return nil, errors.New("-dsn is required for the postgres store")
		}
		return store.OpenPostgres(ctx, *dsnFlag, *playerFlag)
	}
	return nil, fmt.Errorf("unknown store %q", *storeFlag)
}

func run() error {
	tuning := config.Default()
	if *configFlag != "" {
		t, err := config.Load(*configFlag)
		if err != nil {
			return err
		}
		tuning = t
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx, cancel := context.WithTimeout(context.Background(), parameter.StoreTimeout)
	st, err := openStore(ctx)
	cancel()
	if err != nil {
		return err
	}

	reg := status.NewRegistry()
	queue := event.NewEventQueue()
	router := event.NewRouter(queue)

	eng, err := arcade.New(tuning, arcade.Options{Seed: seed, Store: st, Emitter: queue, Registry: reg})
	if err != nil {
		st.Close()
		return err
	}
	defer eng.Close()

	var sess session = eng
	var rec *replay.Recorder
	if *recordFlag != "" {
		rec = replay.NewRecorder(eng)
		sess = rec
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mBEAR-SLICE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	renderer := render.NewRenderer(screen, tuning, nil, reg)
	renderer.Debug = *debugFlag
	router.Register(renderer.HUD())

	cfg := audio.DefaultConfig()
	cfg.Muted = *muteFlag
	player := audio.NewCuePlayer(cfg, reg)
	if err := player.Init(); err != nil {
		log.Printf("audio unavailable, continuing without sound: %v", err)
	}
	defer player.Close()
	router.Register(player)
	renderer.Muted = player.Muted

	if *feedFlag != "" {
		hub := feed.NewHub(reg)
		router.Register(hub)
		srv := &http.Server{Addr: *feedFlag, Handler: hub.Router(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("feed: %v", err)
			}
		}()
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	if rec != nil {
		defer func() {
			if err := rec.Save(*recordFlag); err != nil {
				log.Printf("replay: save %s: %v", *recordFlag, err)
			}
		}()
	}

	clock := engine.NewPausableClock()
	loop := engine.NewLoop(clock, parameter.GameUpdateInterval, sess.Advance, router, reg)
	loop.Start()
	defer loop.Stop()

	events := make(chan tcell.Event, 256)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	frames := make(chan arcade.Snapshot, 1)
	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	var ptr pointer
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventMouse:
				vp := renderer.Viewport()
				loop.Submit(func() {
					if in, ok := ptr.translate(ev, vp, eng.Now()); ok {
						sess.HandleInput(in)
					}
				})
			case *tcell.EventKey:
				if !handleKey(ev, loop, sess, player) {
					return nil
				}
			}

		case snap := <-frames:
			renderer.Draw(snap)

		case <-frameTicker.C:
			loop.Submit(func() {
				select {
				case frames <- eng.Snapshot():
				default:
				}
			})
		}
	}
}

// handleKey applies a keyboard command; returns false to quit
func handleKey(ev *tcell.EventKey, loop *engine.Loop, sess session, player *audio.CuePlayer) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		loop.Submit(func() {
			if sess.Pause() {
				loop.Pause()
			} else if sess.Resume() {
				loop.Resume()
			}
		})
		return true
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case 'r', 'R':
		loop.Submit(func() {
			if err := sess.Restart(); err != nil {
				log.Printf("restart: %v", err)
				return
			}
			loop.Resume()
		})
	case 'm', 'M':
		player.ToggleMute()
	}
	return true
}
