package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"interview-coach/config"
	"interview-coach/internal/application"
	"interview-coach/internal/infra/audio"
	"interview-coach/internal/infra/interview"
	"interview-coach/internal/infra/openai"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	role := flag.String("role", "", "interview role (overrides config)")
	level := flag.String("level", "", "interview level (overrides config)")
	questions := flag.Int("questions", 0, "number of questions (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Error("loading config", "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	if *role != "" {
		cfg.Interview.Role = *role
	}
	if *level != "" {
		cfg.Interview.Level = *level
	}
	if *questions > 0 {
		cfg.Interview.NumQuestions = *questions
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	timeout, err := time.ParseDuration(cfg.Server.Timeout)
	if err != nil {
		logger.Warn("invalid server timeout, using default", "error", err, "value", cfg.Server.Timeout)
		timeout = 15 * time.Second
	}
	backend := interview.NewClient(cfg.Server.BaseURL, timeout)

	var stt application.SpeechToText
	if cfg.OpenAI.APIKey != "" {
		stt = openai.NewWhisperClient(cfg.OpenAI.APIKey, cfg.OpenAI.Language)
	}
	capture := application.NewCapture(createRecorder(cfg.Audio, logger), stt, logger)

	announcer := createAnnouncer(cfg.OpenAI, logger)
	iv := application.NewInterviewer(backend, announcer, logger)

	logger.Info("starting interview coach",
		"backend", cfg.Server.BaseURL,
		"audio_source", cfg.Audio.Source,
		"voice_capture", capture.Supported(),
	)

	loop := newCoachLoop(iv, capture, cfg.Interview, logger, os.Stdout)
	if err := loop.run(ctx); err != nil && err != context.Canceled {
		logger.Error("coach error", "error", err)
		os.Exit(1)
	}
}

func createRecorder(cfg config.AudioConfig, logger *slog.Logger) application.Recorder {
	switch cfg.Source {
	case "file":
		return audio.NewFileRecorder(cfg.FileDir, logger)
	case "microphone":
		return audio.NewMicrophoneRecorder(cfg.SampleRate, logger)
	default:
		logger.Warn("unknown audio source, using microphone", "source", cfg.Source)
		return audio.NewMicrophoneRecorder(cfg.SampleRate, logger)
	}
}

func createAnnouncer(cfg config.OpenAIConfig, logger *slog.Logger) application.Announcer {
	if cfg.APIKey == "" {
		return &application.NoopAnnouncer{}
	}

	player := audio.NewPCMPlayer(openai.PCMSampleRate, logger)
	if !player.Available() {
		return &application.NoopAnnouncer{}
	}

	synth := openai.NewSpeechClient(cfg.APIKey, cfg.TTSModel, cfg.TTSVoice)
	return application.NewSpeechAnnouncer(synth, player, logger)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
