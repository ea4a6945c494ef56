// Package main is the Debatable CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/debatable/internal/config"
	"github.com/hyperjump/debatable/internal/docparse"
	"github.com/hyperjump/debatable/internal/llm"
	"github.com/hyperjump/debatable/internal/models"
	"github.com/hyperjump/debatable/internal/pipeline"
	"github.com/hyperjump/debatable/internal/podcast"
	"github.com/hyperjump/debatable/internal/readings"
	"github.com/hyperjump/debatable/internal/requestcache"
	"github.com/hyperjump/debatable/internal/server"
	"github.com/hyperjump/debatable/internal/topics"
	"github.com/hyperjump/debatable/internal/transcribe"
	"github.com/hyperjump/debatable/internal/webpage"
	"github.com/hyperjump/debatable/internal/youtube"
	"github.com/hyperjump/debatable/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/debatable/config.yaml"

// loadConfig loads config from path. When path is the default, a config.yaml
// in the current directory takes precedence so running from the project dir
// picks up the project's config.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "extract":
		runExtract()
	case "readings":
		runReadings()
	case "version", "--version", "-v":
		fmt.Printf("debatable version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// components holds everything a subcommand needs, wired once from config.
type components struct {
	Pipeline    *pipeline.Pipeline
	Recommender *readings.Recommender
	Cache       *requestcache.Cache
}

// buildComponents wires the pipeline from config. With cfg.Mocks set, the
// OpenAI-backed pieces are replaced by deterministic mocks so the whole
// pipeline runs without API keys or network access to providers.
func buildComponents(cfg *config.Config, logger *zap.Logger) *components {
	openaiTimeout := time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second
	fetchTimeout := time.Duration(cfg.Limits.FetchTimeoutSeconds) * time.Second

	var topicClient llm.Client
	var searchClient llm.Client
	var transcriber transcribe.Transcriber
	if cfg.Mocks {
		topicClient = &llm.MockClient{Response: mockTopicsJSON}
		searchClient = &llm.MockClient{Response: mockCitationsJSON}
		transcriber = &transcribe.MockTranscriber{Text: mockTranscript}
	} else {
		topicClient = llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, openaiTimeout)
		searchClient = llm.NewCompatibleClient(cfg.Perplexity.APIKey, cfg.Perplexity.BaseURL,
			cfg.Perplexity.Model, time.Duration(cfg.Perplexity.TimeoutSeconds)*time.Second)
		transcriber = transcribe.NewWhisperTranscriber(cfg.OpenAI.APIKey,
			cfg.OpenAI.TranscriptionModel, openaiTimeout)
	}

	heuristicOpts := topics.Options{
		MinConfidence:        cfg.Extraction.MinConfidence,
		MaxTopics:            cfg.Extraction.MaxTopics,
		ExtractCounterpoints: cfg.Extraction.CounterpointsOrDefault(),
		Language:             cfg.Extraction.Language,
	}
	extractor := llm.NewExtractor(topicClient, logger, cfg.Limits.MaxLLMInputChars, heuristicOpts)

	parser := docparse.NewParser()
	parser.MaxSizeMB = cfg.Limits.MaxUploadMB
	parser.ParseTimeout = time.Duration(cfg.Limits.ParseTimeoutSeconds) * time.Second

	cache := requestcache.New(time.Duration(cfg.Limits.CacheTTLSeconds) * time.Second)

	p := pipeline.New(
		parser,
		youtube.NewAcquirer(fetchTimeout, logger),
		podcast.NewAcquirer(transcriber, fetchTimeout, cfg.Limits.MaxAudioMB, logger),
		webpage.NewExtractor(fetchTimeout, logger),
		extractor,
		cache,
		logger,
	)
	return &components{
		Pipeline:    p,
		Recommender: readings.NewRecommender(searchClient, cfg.Perplexity.Model, logger),
		Cache:       cache,
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.Bool("mocks", cfg.Mocks),
	)

	comps := buildComponents(cfg, logger)

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	comps.Cache.StartSweeping(sweepCtx, time.Minute)

	srv := server.NewServer(comps.Pipeline, comps.Recommender, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	sweepCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// runExtract extracts topics from one source given on the command line and
// prints them as JSON.
func runExtract() {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	file := fs.String("file", "", "path to a PDF, DOCX, or TXT file")
	youtubeURL := fs.String("youtube", "", "YouTube video URL")
	rssURL := fs.String("podcast", "", "podcast RSS feed URL")
	episode := fs.Int("episode", 0, "podcast episode index (0 = most recent)")
	pageURL := fs.String("url", "", "web page URL")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps := buildComponents(cfg, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var extracted []models.ExtractedTopic
	switch {
	case *file != "":
		content, readErr := os.ReadFile(*file)
		if readErr != nil {
			fmt.Printf("Failed to read file: %v\n", readErr)
			os.Exit(1)
		}
		extracted, err = comps.Pipeline.ExtractFromFile(ctx, filepath.Base(*file), content)
	case *youtubeURL != "":
		extracted, err = comps.Pipeline.ExtractFromYouTube(ctx, *youtubeURL)
	case *rssURL != "":
		extracted, err = comps.Pipeline.ExtractFromPodcast(ctx, *rssURL, *episode)
	case *pageURL != "":
		extracted, err = comps.Pipeline.ExtractFromURL(ctx, *pageURL)
	default:
		fmt.Println("One of -file, -youtube, -podcast, or -url is required")
		fs.PrintDefaults()
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Extraction failed: %v\n", err)
		os.Exit(1)
	}
	printJSON(extracted)
}

// runReadings fetches suggested readings for one or more experts on a topic.
func runReadings() {
	fs := flag.NewFlagSet("readings", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	experts := fs.String("experts", "", "comma-separated expert names")
	topic := fs.String("topic", "", "debate topic")
	_ = fs.Parse(os.Args[2:])

	if *experts == "" || *topic == "" {
		fmt.Println("Both -experts and -topic are required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps := buildComponents(cfg, logger)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	names := strings.Split(*experts, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	printJSON(comps.Recommender.RecommendAll(ctx, names, *topic))
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func printUsage() {
	fmt.Println(`Debatable - debate topic extraction from documents, video, audio, and the web

Usage:
  debatable server   [-config path] [-debug]
  debatable extract  [-config path] (-file path | -youtube url | -podcast url [-episode n] | -url url)
  debatable readings [-config path] -experts "a,b" -topic "..."
  debatable version
  debatable help

Set mocks: true in the config (or DEBATABLE_MOCKS=1) to run the full pipeline
against deterministic mock providers, without API keys.`)
}
