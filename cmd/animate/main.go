package main

import (
	"os"

	"github.com/woozymasta/geomark/internal/animator"
	"github.com/woozymasta/geomark/internal/config"
	"github.com/woozymasta/geomark/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	SceneFile string `short:"s" long:"scene"      env:"SCENE_FILE" description:"Path to scene file"                 default:"scene.yaml"`
	OutDir    string `short:"o" long:"out"        env:"OUT_DIR"    description:"Output directory (overrides scene)"`
	TrackOnly bool   `short:"t" long:"track-only" description:"Export the track only, skip frame rendering"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	scene, err := config.Load(opts.SceneFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load scene")
	}

	if opts.OutDir != "" {
		scene.Output.Dir = opts.OutDir
	}

	log.Info().
		Str("scene", scene.Name).
		Str("provider", string(scene.Provider)).
		Int("waypoints", len(scene.Waypoints)).
		Int("fps", scene.Output.FPS).
		Bool("track_only", opts.TrackOnly).
		Msg("Starting animator")

	idx, err := animator.Run(scene, !opts.TrackOnly)
	if err != nil {
		log.Fatal().Err(err).Msg("Animation failed")
	}

	log.Info().
		Int("frames", idx.Frames).
		Str("dir", scene.Output.Dir).
		Msg("Animator finished successfully")
}
