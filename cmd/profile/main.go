package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	anki "github.com/AlexanderGrooff/anki-template-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

var (
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile   = flag.String("memprofile", "", "write memory profile to file")
	blockprofile = flag.String("blockprofile", "", "write goroutine blocking profile to file")
	templateFile = flag.String("template", "", "template file to render")
	fieldsFile   = flag.String("fields", "", "JSON file mapping field names to values")
	iterations   = flag.Int("iterations", 1000, "number of renders per worker")
	workers      = flag.Int("workers", 1, "number of goroutines rendering concurrently")
	template     = flag.String("template-string", "", "template string to render (alternative to template file)")
	answer       = flag.Bool("answer", false, "render the back of the card")
	cold         = flag.Bool("cold", false, "clear the parse cache before every render")
	outputDir    = flag.String("output-dir", "profile", "directory to store profile output")
)

func main() {
	flag.Parse()
	if *workers < 1 {
		*workers = 1
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logger.Fatal("Failed to create output directory", zap.Error(err))
	}

	var templateContent string
	switch {
	case *templateFile != "":
		content, err := os.ReadFile(*templateFile)
		if err != nil {
			logger.Fatal("Failed to read template file", zap.Error(err))
		}
		templateContent = string(content)
	case *template != "":
		templateContent = *template
	default:
		logger.Fatal("Either --template or --template-string must be provided")
	}

	fields := map[string]string{}
	if *fieldsFile != "" {
		content, err := os.ReadFile(*fieldsFile)
		if err != nil {
			logger.Fatal("Failed to read fields file", zap.Error(err))
		}
		if err := json.Unmarshal(content, &fields); err != nil {
			logger.Fatal("Failed to parse fields JSON", zap.Error(err))
		}
	}

	if *blockprofile != "" {
		runtime.SetBlockProfileRate(1)
	}

	if *cpuprofile != "" {
		cpuFile := filepath.Join(*outputDir, *cpuprofile)
		f, err := os.Create(cpuFile)
		if err != nil {
			logger.Fatal("Failed to create CPU profile file", zap.Error(err))
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal("Failed to start CPU profile", zap.Error(err))
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", zap.String("file", cpuFile))
	}

	cache := anki.NewTemplateCache(anki.DefaultCacheCapacity)
	r := anki.NewRenderer(anki.WithCache(cache), anki.WithLogger(logger))
	if _, err := r.Parse(templateContent); err != nil {
		logger.Warn("Template has a problem, profiling the error explanation", zap.Error(err))
	}

	logger.Info("Rendering template",
		zap.Int("iterations", *iterations),
		zap.Int("workers", *workers),
		zap.Bool("cold", *cold),
	)
	start := time.Now()

	var g errgroup.Group
	results := make([]int, *workers)
	for w := 0; w < *workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < *iterations; i++ {
				if *cold {
					cache.Clear()
				}
				result := r.Render(templateContent, fields, !*answer, language.English)
				// Use result to prevent compiler optimization
				results[w] = len(result)
			}
			return nil
		})
	}
	_ = g.Wait()

	duration := time.Since(start)
	total := *iterations * *workers
	fmt.Printf("Result length: %d\n", results[0])
	fmt.Printf("Time taken: %v\n", duration)
	if total > 0 {
		fmt.Printf("Average time per render: %v\n", duration/time.Duration(total))
	}

	if *memprofile != "" {
		memFile := filepath.Join(*outputDir, *memprofile)
		f, err := os.Create(memFile)
		if err != nil {
			logger.Fatal("Failed to create memory profile file", zap.Error(err))
		}
		defer f.Close()

		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Fatal("Failed to write memory profile", zap.Error(err))
		}
		logger.Info("Memory profile written", zap.String("file", memFile))
	}

	if *blockprofile != "" {
		blockFile := filepath.Join(*outputDir, *blockprofile)
		f, err := os.Create(blockFile)
		if err != nil {
			logger.Fatal("Failed to create block profile file", zap.Error(err))
		}
		defer f.Close()

		if err := pprof.Lookup("block").WriteTo(f, 0); err != nil {
			logger.Fatal("Failed to write block profile", zap.Error(err))
		}
		logger.Info("Block profile written", zap.String("file", blockFile))
	}
}
