package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avfoundry/avkit-sdk-go/pkg/avkit"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	outDir  string
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "avkit",
		Short: "avkit SDK CLI",
		Long:  "A command-line interface for the avkit audio SDK",
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&outDir, "out-dir", "", "Directory for recordings (default: system temp)")

	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(infoCmd())

	if err := rootCmd.Execute(); err != nil {
		avkit.GetGlobalLogger().WithError(err).Fatal("CLI execution failed")
	}
}

func newClient(quality string) *avkit.Client {
	if verbose {
		cfg := avkit.DefaultLogConfig()
		cfg.Level = avkit.DebugLevel
		avkit.SetGlobalLogger(avkit.NewLogger(cfg))
	}
	config := avkit.ConfigForQuality(avkit.Quality(quality))
	return avkit.NewClient(avkit.NewPortAudioModule(outDir), config, avkit.NewPlaybackOptions())
}

func recordCmd() *cobra.Command {
	var duration float64
	var quality string
	var save string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a take from the default input device",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(quality)
			defer client.Cleanup()

			ctx := context.Background()
			if status := client.RequestPermission(ctx); status != avkit.PermissionGranted {
				return avkit.NewPermissionError("recording permission " + string(status))
			}

			fmt.Printf("Recording for %.1fs...\n", duration)
			uri, err := client.RecordClip(ctx, time.Duration(duration*float64(time.Second)))
			if err != nil {
				return err
			}

			session := client.Recorder().Session()
			fmt.Printf("Saved %s (%s)\n", uri, avkit.FormatDuration(session.DurationMillis()))

			if save != "" {
				lib, err := avkit.NewLibrary(save, nil)
				if err != nil {
					return err
				}
				dst, err := lib.SaveRecording(ctx, uri, "")
				if err != nil {
					return err
				}
				fmt.Printf("Copied to %s\n", dst)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&duration, "duration", "d", 5.0, "Recording duration in seconds")
	cmd.Flags().StringVarP(&quality, "quality", "q", string(avkit.QualityStandard), "Quality tier (low, standard, high)")
	cmd.Flags().StringVar(&save, "save", "", "Copy the take into this library directory")
	return cmd
}

func playCmd() *cobra.Command {
	var volume, rate float64
	var loop bool

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Play an audio file (wav, mp3, ogg)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(string(avkit.QualityStandard))
			defer client.Cleanup()

			opts := client.Player().Session().Options()
			opts.Volume = avkit.ClampVolume(volume)
			opts.Rate = avkit.ClampRate(rate)
			opts.IsLooping = loop

			if verbose {
				remove := client.Player().AddStatusHandler(avkit.CreateLoggingStatusHandler(true))
				defer remove()
			}

			fmt.Printf("Playing %s\n", args[0])
			return client.PlayFile(context.Background(), args[0])
		},
	}

	cmd.Flags().Float64Var(&volume, "volume", avkit.DefaultVolume, "Playback volume [0,1]")
	cmd.Flags().Float64Var(&rate, "rate", avkit.DefaultRate, "Playback rate [0.5,2.0]")
	cmd.Flags().BoolVar(&loop, "loop", false, "Loop playback (stop with Ctrl-C)")
	return cmd
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print duration and progress info for an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			native := avkit.NewPortAudioModule(outDir)
			player := avkit.NewPlayer(native, nil)
			defer player.Dispose()

			if err := player.Load(ctx, args[0]); err != nil {
				return err
			}
			defer player.Unload(ctx)

			session := player.Session()
			fmt.Printf("File:     %s\n", session.URI())
			fmt.Printf("Duration: %s (%d ms)\n",
				avkit.FormatDuration(session.DurationMillis()), session.DurationMillis())
			fmt.Printf("Estimated size at %d bps: %d bytes\n",
				avkit.BitRate128K,
				avkit.EstimateFileSize(session.DurationMillis(), avkit.BitRate128K))
			return nil
		},
	}
}
