package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/they4kman/pisweep/director/constraint"
	"github.com/they4kman/pisweep/director/random"
	"github.com/they4kman/pisweep/driver"
	"github.com/they4kman/pisweep/game"
	"github.com/they4kman/pisweep/input"
	"github.com/they4kman/pisweep/screen"
	"github.com/they4kman/pisweep/transport/websocket"
)

const configEnvVar = "PISWEEP_CONFIG"

var flagSettings = NewSettings()
var configPath string

var rootCmd = &cobra.Command{
	Use:   "pisweep",
	Short: "Play Minesweeper on a pair of button-driven panels",
	Long: `pisweep is a Minesweeper game driven by 6-bit button presses, drawn on
two stacked panels.

Run with no arguments to play from the console
	pisweep

Let the computer play every game through to the end
	pisweep --director constraint --autoplay

Mirror the panels to remote displays over a websocket
	pisweep --listen :8080
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd.Flags())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, settings)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML settings file (default $"+configEnvVar+")")
	bindFlags(rootCmd.Flags(), &flagSettings)
}

func bindFlags(flags *pflag.FlagSet, settings *Settings) {
	flags.IntVarP(&settings.Size, "size", "n", settings.Size, "Width and height of the board, in cells")
	flags.IntVarP(&settings.NumMines, "mines", "m", settings.NumMines, "Number of mine draws; repeated draws collapse")
	flags.Int64Var(&settings.Seed, "seed", settings.Seed, "Seed for mine placement (0 picks one from the clock)")

	flags.StringVar(&settings.SnapshotPath, "snapshot", settings.SnapshotPath, "Board snapshot to load instead of generating a board")
	flags.BoolVar(&settings.LoadSnapshotFresh, "fresh", settings.LoadSnapshotFresh, "Hide every cell of the loaded snapshot")
	flags.StringVar(&settings.SavedSnapshotsDir, "snapshots-dir", settings.SavedSnapshotsDir, "Directory to save a snapshot of every finished board to")

	flags.StringVarP(&settings.Director, "director", "d", settings.Director, "Computer player: none, random or constraint")
	flags.BoolVar(&settings.AutoPlay, "autoplay", settings.AutoPlay, "Let the director play each game to the end")
	flags.DurationVar(&settings.AutoPlayDelay, "autoplay-delay", settings.AutoPlayDelay, "Pause between director moves when autoplaying")

	flags.StringVar(&settings.Listen, "listen", settings.Listen, "Address to serve panel websockets on, at /ws")
	flags.StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "Logging level")
}

// resolveSettings layers the settings file, if any, under the flags that were
// set explicitly
func resolveSettings(flags *pflag.FlagSet) (Settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		log.WithError(err).Warn("Unable to load .env")
	}

	path := configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if path == "" {
		return flagSettings, nil
	}

	settings, err := LoadSettings(path)
	if err != nil {
		return Settings{}, err
	}
	applyFlags(flags, flagSettings, &settings)
	return settings, nil
}

func run(ctx context.Context, settings Settings) error {
	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parsing log level")
	}
	log.SetLevel(level)

	config := settings.GameConfig
	if settings.SnapshotPath != "" {
		snapshot, err := readSnapshot(settings.SnapshotPath)
		if err != nil {
			return err
		}
		config.Snapshot = snapshot
		config.Size = snapshot.Size()
	}
	if err := checkBoard(config); err != nil {
		return err
	}
	if config.Size > input.MaxBoardSize {
		log.WithFields(log.Fields{
			"size": config.Size,
			"max":  input.MaxBoardSize,
		}).Warn("Board is larger than button presses can address")
	}

	config.Director, err = newDirector(settings.Director)
	if err != nil {
		return err
	}

	manager := screen.NewManager(config.Size, config.Size, screen.DefaultTheme.With(settings.Theme))
	renderers := game.MultiRenderer{manager}

	if settings.Listen != "" {
		hub := websocket.NewHub(config.Size * config.Size)
		go hub.Run(ctx)
		renderers = append(renderers, hub)

		go servePanels(ctx, settings.Listen, hub)
	}

	console := driver.New(driver.Config{
		In:  os.Stdin,
		Out: os.Stdout,
		NewEngine: func() (*game.Engine, error) {
			return config.CreateEngine(renderers)
		},
		Screen:        manager,
		Director:      config.Director,
		AutoPlay:      settings.AutoPlay,
		AutoPlayDelay: settings.AutoPlayDelay,
	})
	return console.Run(ctx)
}

// checkBoard rejects a board the engine could never be built from, before
// anything is sized after it
func checkBoard(config game.GameConfig) error {
	if config.Snapshot != nil {
		_, err := game.NewEngineFromSnapshot(nil, config.Snapshot, game.EngineConfig{}, config.LoadSnapshotFresh)
		return err
	}
	return game.EngineConfig{Size: config.Size, NumMines: config.NumMines}.Validate()
}

func readSnapshot(path string) (*game.BoardSnapshot, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading board snapshot")
	}
	return game.LoadSnapshot(string(contents))
}

func newDirector(name string) (game.Director, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "random":
		return &random.Director{}, nil
	case "constraint":
		return &constraint.Director{}, nil
	default:
		return nil, errors.Errorf("unknown director %q", name)
	}
}

func servePanels(ctx context.Context, addr string, hub *websocket.Hub) {
	router := mux.NewRouter()
	router.HandleFunc("/ws", hub.ServeWS).Methods(http.MethodGet)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", addr).Info("Serving panels")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("Panel server stopped")
	}
}
