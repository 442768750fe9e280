// Insight Press - Research Paper Layout Engine
//
// Insight Press turns structured paper submissions into typeset PDF
// documents: justified body text, Roman-numbered sections, drop caps,
// and hanging-indent references.
//
// Components:
//   - paper:  input normalization and document model
//   - layout: measurement, wrapping, justification, pagination
//   - render: PDF assembly and the generation pass
//   - api:    HTTP/WebSocket service for dashboard integration
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PlanningInsights2025/insightpress/pkg/api"
	"github.com/PlanningInsights2025/insightpress/pkg/config"
	"github.com/PlanningInsights2025/insightpress/pkg/errors"
	"github.com/PlanningInsights2025/insightpress/pkg/paper"
	"github.com/PlanningInsights2025/insightpress/pkg/render"
	"github.com/PlanningInsights2025/insightpress/pkg/spinner"
)

const version = "1.0.0"

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Config file path (default: ./config.yaml)")
	inputPath := flag.String("input", "", "Paper file to typeset (.json or .yaml); additional files as args")
	outDir := flag.String("out", "", "Output directory (default: from config)")
	serve := flag.Bool("serve", false, "Run the HTTP API server")
	initConfig := flag.Bool("init", false, "Initialize default config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Insight Press %s\n", version)
		os.Exit(0)
	}

	// Determine config path
	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}

	// Initialize config if requested
	if *initConfig {
		if err := config.InitConfig(cfgPath); err != nil {
			errors.Display(err)
			os.Exit(1)
		}
		fmt.Printf("Config initialized at: %s\n", cfgPath)
		fmt.Println("Edit this file to configure page geometry and output.")
		os.Exit(0)
	}

	// Load config
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		errors.Display(err)
		os.Exit(1)
	}

	if *serve {
		runServer(cfg)
		return
	}

	inputs := gatherInputs(*inputPath, flag.Args())
	if len(inputs) == 0 {
		fmt.Println("No input files. Use -input paper.json, or -serve to run the API server.")
		flag.Usage()
		os.Exit(1)
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.Output.Dir
	}

	if failures := generateBatch(inputs, dir, cfg.RenderConfig()); failures > 0 {
		os.Exit(1)
	}
}

// gatherInputs merges the -input flag with positional arguments.
func gatherInputs(first string, rest []string) []string {
	var inputs []string
	if first != "" {
		inputs = append(inputs, first)
	}
	return append(inputs, rest...)
}

// generateBatch typesets each input file into dir and returns the number
// of failures. Progress goes to stderr so stdout stays scriptable.
func generateBatch(inputs []string, dir string, rcfg *render.Config) int {
	var bar *spinner.ProgressBar
	if len(inputs) > 1 {
		bar = spinner.NewProgress(len(inputs), "Typesetting papers")
		bar.Start()
	}

	failures := 0
	for _, input := range inputs {
		path, err := generateOne(input, dir, rcfg)
		if bar != nil {
			bar.Increment()
		}
		if err != nil {
			failures++
			errors.Display(err)
			continue
		}
		fmt.Printf("Wrote %s\n", path)
	}

	if bar != nil {
		if failures == 0 {
			bar.Complete(fmt.Sprintf("Typeset %d papers", len(inputs)))
		} else {
			bar.Fail(fmt.Sprintf("%d of %d papers failed", failures, len(inputs)))
		}
	}
	return failures
}

// generateOne loads, typesets, and writes a single paper. Returns the
// output path on success.
func generateOne(input, dir string, rcfg *render.Config) (string, error) {
	p, err := loadPaper(input)
	if err != nil {
		return "", err
	}

	s := spinner.New("Laying out " + filepath.Base(input))
	s.Start()
	result := render.Generate(p, rcfg)
	if !result.Success {
		s.Fail(result.Error)
		return "", errors.New(result.Code, errors.CodeCategory(result.Code), result.Error).
			WithContext("input", input)
	}
	s.Success(fmt.Sprintf("%s (%d pages)", result.FileName, result.PageCount))

	return render.WriteFile(result, dir)
}

// loadPaper reads a paper document from a JSON or YAML file.
func loadPaper(path string) (*paper.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.IOFileNotFound(path)
		}
		return nil, errors.IOWrap(err, errors.ErrIOReadFailed, "failed to read paper file").
			WithContext("path", path)
	}

	var p paper.Paper
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, errors.Document(errors.ErrDocumentParseFailed, "failed to parse paper file").
			WithCause(err).
			WithContext("path", path)
	}
	return &p, nil
}

// runServer starts the HTTP/WebSocket API and blocks until interrupted.
func runServer(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	// Display banner
	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║         Insight Press - Paper Layout Engine               ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	hub := api.NewHub()
	go hub.Run()
	defer hub.Stop()

	server := api.NewServer(&api.ServerConfig{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})

	handler := api.NewPapersHandler(hub, api.NewStatsTracker(), cfg.RenderConfig())
	handler.RegisterRoutes(server.Router())
	server.Router().GET("/ws", api.NewWebSocketHandler(hub).HandleFunc())

	if err := server.Start(); err != nil {
		errors.Display(err)
		os.Exit(1)
	}

	fmt.Printf("API:  http://%s/api/health\n", server.Address())
	fmt.Printf("WS:   ws://%s/ws\n", server.Address())
	fmt.Println()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		errors.Display(err)
	}
	fmt.Println("Goodbye!")
}
