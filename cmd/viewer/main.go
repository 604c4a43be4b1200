// Package main provides the headless viewer host entry point.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/panebox/panebox/internal/app/pane"
	"github.com/panebox/panebox/internal/app/slideshow"
	"github.com/panebox/panebox/internal/app/viewer"
	"github.com/panebox/panebox/internal/domain/media"
	"github.com/panebox/panebox/internal/infra/config"
	"github.com/panebox/panebox/internal/infra/logger"
	"github.com/panebox/panebox/internal/infra/store"
)

var (
	app        = kingpin.New("panebox", "Multi-pane media viewer playback core")
	configPath = app.Flag("config", "Path to config file").Default("config.yaml").String()
	playlist   = app.Flag("playlist", "Playlist to load at startup (overrides config)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	listCmd = app.Command("list-playlists", "List stored playlists and exit")
)

func init() {
	app.Command("start", "Run the viewer (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Output: "stdout", Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = "file"
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	backend := store.NewFileStore(cfg.Playlists.Dir)

	if command == listCmd.FullCommand() {
		names, err := backend.List()
		if err != nil {
			zlog.Fatal().Msgf("Failed to list playlists: %v", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	if err := run(cfg, backend); err != nil {
		zlog.Error().Msgf("Viewer error: %v", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file, falling back to defaults when the
// file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zlog.Info().Msgf("No config file at %s, using defaults", path)
		return config.Default()
	}
	zlog.Info().Msgf("Loading config from %s", path)
	return config.Load(path)
}

// run executes the viewer. A separate function ensures defers execute
// even when returning with an error.
func run(cfg *config.Config, backend *store.FileStore) error {
	layout, err := pane.ParseLayout(cfg.Layout)
	if err != nil {
		return err
	}
	repeat, err := pane.ParseRepeatMode(cfg.Playback.Repeat)
	if err != nil {
		return err
	}

	mgr := viewer.NewManager(viewer.Options{
		Layout:  layout,
		Volume:  cfg.Playback.Volume,
		Shuffle: cfg.Playback.Shuffle,
		Repeat:  repeat,
		Slideshow: slideshow.Settings{
			Enabled:  cfg.Slideshow.Enabled,
			Interval: cfg.Slideshow.Interval(),
			Mode:     slideshow.ParseMode(cfg.Slideshow.Mode),
		},
		Renderer: &logRenderer{},
	})
	defer mgr.Close()

	mgr.Transport().SetErrorHandler(func(paneIndex int, message string) {
		zlog.Warn().Msgf("Pane %d failed to load source: %s", paneIndex, message)
	})

	name := cfg.Playlists.Startup
	if *playlist != "" {
		name = *playlist
	}
	if name != "" {
		pl, err := backend.Load(name)
		if err != nil {
			return err
		}
		created := mgr.Open(pl.Entries)
		zlog.Info().Msgf("Loaded playlist %q: %d items", pl.Name, len(created))
	}

	mgr.Start()
	zlog.Info().Msgf("Viewer started: layout=%s queue=%d", layout, mgr.Queue().Len())

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	zlog.Info().Msgf("Received signal %v, shutting down", sig)

	return nil
}

// logRenderer is the headless render primitive: it logs what a real
// player/viewer surface would do.
type logRenderer struct{}

func (r *logRenderer) Load(paneIndex int, item media.Item) {
	zlog.Info().Msgf("render: load: pane=%d type=%s title=%s source=%s",
		paneIndex, item.Type, item.Title, item.Source)
}

func (r *logRenderer) Seek(paneIndex int, position float64) {
	zlog.Debug().Msgf("render: seek: pane=%d position=%.1f", paneIndex, position)
}

func (r *logRenderer) SetPlaying(paneIndex int, playing bool) {
	zlog.Debug().Msgf("render: set playing: pane=%d playing=%t", paneIndex, playing)
}
