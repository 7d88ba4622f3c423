package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dooshek/scriptvoice/internal/audio"
	"github.com/dooshek/scriptvoice/internal/config"
	"github.com/dooshek/scriptvoice/internal/fileops"
	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dooshek/scriptvoice/internal/narration"
	"github.com/dooshek/scriptvoice/internal/notification"
	"github.com/dooshek/scriptvoice/internal/pipeline"
	"github.com/dooshek/scriptvoice/internal/stats"
	"github.com/dooshek/scriptvoice/internal/tts"
	"github.com/dooshek/scriptvoice/internal/types"
	"github.com/dustin/go-humanize"
)

func init() {
	// Set custom usage message to show -- prefix
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags] <input-script> <output-file> <character-name>\n\nFlags:\n", os.Args[0])
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(out, "  --%s", f.Name)
			name, usage := flag.UnquoteUsage(f)
			if len(name) > 0 {
				fmt.Fprintf(out, " %s", name)
			}
			fmt.Fprintf(out, "\n    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" {
				fmt.Fprintf(out, " (default %q)", f.DefValue)
			}
			fmt.Fprintf(out, "\n")
		})
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	logLevel := flag.String("log-level", "info", "Set log level (debug|info|warn|error)")
	logFilename := flag.String("log-filename", "", "Log to file instead of stderr")
	runWizard := flag.Bool("wizard", false, "Run the configuration wizard")
	provider := flag.String("provider", "", "Speech provider (espeak|openai|realtime)")
	voice := flag.String("voice", "", "Voice name understood by the provider")
	quality := flag.String("quality", "", "MP3 quality preset (medium|standard|extreme|insane)")
	dryRun := flag.Bool("dry-run", false, "Print the narration as SSML without producing audio")
	listVoices := flag.Bool("list-voices", false, "List voices offered by the provider")
	notify := flag.Bool("notify", false, "Send a desktop notification when narration finishes")
	showStats := flag.Bool("stats", false, "Print narration statistics")
	resetStats := flag.Bool("reset-stats", false, "Clear narration statistics")
	flag.Parse()

	closeLog, err := logger.Setup(*logLevel, *logFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting log file: %v\n", err)
		return 1
	}
	defer closeLog()

	if *runWizard {
		if err := config.RunWizard(); err != nil {
			logger.Error("Error running wizard", err)
			return 1
		}
		return 0
	}

	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		logger.Error("Failed to initialize file operations", err)
		return 1
	}
	statsManager := stats.NewStatsManager(fileOps.GetStatsPath())

	if *showStats || *resetStats {
		return statsCommand(statsManager, *resetStats, os.Stdout)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Error loading config", err)
		return 1
	}
	applyFlags(cfg, *provider, *voice, *quality, *notify)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *listVoices {
		return printVoices(ctx, cfg)
	}

	args := flag.Args()
	if len(args) < 3 {
		flag.Usage()
		return 2
	}
	req := pipeline.Request{
		InputPath:  args[0],
		OutputPath: args[1],
		Character:  args[2],
	}

	if *dryRun {
		plan, err := pipeline.BuildPlan(req)
		if err != nil {
			logger.Error("Could not build narration", err)
			return pipeline.ExitCode(err)
		}
		logger.Infof("📜 %s", plan.Stats())
		style := narration.DefaultStyle
		style.BackgroundVolume = cfg.GetNarrationConfig().BackgroundVolume
		fmt.Println(narration.RenderSSML(plan, style))
		return 0
	}

	if _, err := pipeline.Validate(req); err != nil {
		logger.Error("Invalid arguments", err)
		if pipeline.ExitCode(err) == 2 {
			flag.Usage()
		}
		return pipeline.ExitCode(err)
	}

	if err := audio.CheckFFmpegInstalled(); err != nil {
		logger.Error("Cannot encode audio", err)
		return 1
	}

	manager, err := tts.NewManager(cfg.GetTTSConfig(), cfg.GetNarrationConfig(), cfg.OpenAIKey)
	if err != nil {
		logger.Error("Failed to create speech provider", err)
		return 1
	}
	encoder, err := audio.NewEncoder(cfg.GetEncoderConfig().Quality)
	if err != nil {
		logger.Error("Failed to create encoder", err)
		return 1
	}

	notifier := notification.NewSilent()
	if cfg.Notify {
		notifier = notification.New()
	}

	logger.Infof("🎙️  Narrating %s for %q with %s voice %q",
		req.InputPath, req.Character, manager.GetProviderName(), manager.Voice())

	result, err := pipeline.New(manager, encoder).Run(ctx, req)
	if err != nil {
		logger.Error("Narration failed", err)
		if nerr := notifier.NotifyNarrationFailed(err); nerr != nil {
			logger.Warnf("Could not send notification: %v", nerr)
		}
		return pipeline.ExitCode(err)
	}

	logger.Infof("✅ Wrote %s (%s, %.1f s audio) in %s",
		result.OutputPath, humanize.Bytes(uint64(result.OutputBytes)), result.AudioSeconds, result.Elapsed.Round(time.Millisecond))

	if err := statsManager.AddNarration(stats.Narration{
		Provider:    manager.GetProviderName(),
		Seconds:     result.AudioSeconds,
		Segments:    result.Segments,
		OutputBytes: result.OutputBytes,
	}); err != nil {
		logger.Warnf("Could not save stats: %v", err)
	}

	if err := notifier.NotifyNarrationComplete(result.OutputPath); err != nil {
		logger.Warnf("Could not send notification: %v", err)
	}
	return 0
}

// applyFlags lets command line flags win over the config file and environment.
func applyFlags(cfg *types.Config, provider, voice, quality string, notify bool) {
	if provider != "" {
		cfg.TTS.Provider = provider
	}
	if voice != "" {
		cfg.TTS.Voice = voice
	}
	if quality != "" {
		cfg.Encoder.Quality = quality
	}
	if notify {
		cfg.Notify = true
	}
}

// statsCommand prints the recorded statistics, clearing them first when reset is set.
func statsCommand(sm *stats.StatsManager, reset bool, w io.Writer) int {
	if reset {
		if err := sm.Reset(); err != nil {
			logger.Error("Failed to reset stats", err)
			return 1
		}
		fmt.Fprintln(w, "Statistics cleared.")
		return 0
	}
	sm.Print(w)
	return 0
}

func printVoices(ctx context.Context, cfg *types.Config) int {
	manager, err := tts.NewManager(cfg.GetTTSConfig(), cfg.GetNarrationConfig(), cfg.OpenAIKey)
	if err != nil {
		logger.Error("Failed to create speech provider", err)
		return 1
	}
	voices, err := manager.GetAvailableVoices(ctx)
	if err != nil {
		logger.Error("Failed to list voices", err)
		return 1
	}
	for _, v := range voices {
		fmt.Println(v)
	}
	return 0
}
