package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roivaz/docchunk/internal/chunker"
	"github.com/roivaz/docchunk/internal/config"
	"github.com/roivaz/docchunk/internal/logging"
	"github.com/roivaz/docchunk/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "chunkctl",
	Short: "Chunking CLI (files, directories, classification)",
}

var chunkCmd = &cobra.Command{
	Use:   "chunk [files...]",
	Short: "Chunk one or more files and emit JSONL chunk records",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipeline.LoadConfig()
		logger := logging.New(logging.ForLevel(config.LogLevel())).WithName("chunkctl")
		engine, err := chunker.New(cfg.Chunker, logger)
		if err != nil {
			return err
		}

		out, closeOut, err := openOutput(cmd)
		if err != nil {
			return err
		}
		defer closeOut()

		enc := json.NewEncoder(out)
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			chunks, err := engine.ChunkWithHint(string(content), path)
			if err != nil {
				return fmt.Errorf("chunk %s: %w", path, err)
			}
			for _, c := range chunks {
				record := struct {
					Path string `json:"path"`
					chunker.Chunk
				}{Path: path, Chunk: c}
				if err := enc.Encode(record); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

var dirCmd = &cobra.Command{
	Use:   "dir <path>",
	Short: "Chunk a directory tree through the pipeline and emit JSONL documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipeline.LoadConfig()
		logger := logging.New(logging.ForLevel(config.LogLevel())).WithName("pipeline")
		engine, err := chunker.New(cfg.Chunker, logger)
		if err != nil {
			return err
		}

		out, closeOut, err := openOutput(cmd)
		if err != nil {
			return err
		}
		defer closeOut()

		runner := &pipeline.Runner{
			Engine:    engine,
			Sink:      &jsonlSink{enc: json.NewEncoder(out)},
			Include:   cfg.Include,
			Exclude:   cfg.Exclude,
			MaxFiles:  cfg.MaxFiles,
			MaxChunks: cfg.MaxChunks,
			Log:       logger,
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() { <-sigs; cancel() }()

		return runner.Run(ctx, args[0])
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Detect the language and content type of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		lang, ctype := chunker.Classify(string(content))
		fmt.Printf("language=%s content_type=%s\n", lang, ctype)
		return nil
	},
}

type jsonlSink struct {
	enc *json.Encoder
}

func (s *jsonlSink) Write(_ context.Context, doc pipeline.Document) error {
	return s.enc.Encode(doc)
}

func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func main() {
	rootCmd.PersistentFlags().Int("chunk-size", 0, "Chunk size budget in bytes")
	rootCmd.PersistentFlags().Float64("overlap-ratio", 0.1, "Overlap ratio between consecutive chunks")
	rootCmd.PersistentFlags().String("chunk-strategy", "adaptive", "Segmentation strategy")
	rootCmd.PersistentFlags().String("output", "", "Output file (default stdout)")

	config.Init(rootCmd)
	rootCmd.AddCommand(chunkCmd)
	rootCmd.AddCommand(dirCmd)
	rootCmd.AddCommand(classifyCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("chunkctl: %v", err)
	}
}
