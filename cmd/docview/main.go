// Command docview opens a local document and prints its content model as
// JSON. Size, extension and timeout defaults come from the same VIEWER_*
// environment (and .env file) as the API server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	_ "time/tzdata"

	_ "github.com/joho/godotenv/autoload"

	"docview/internal/config"
	"docview/internal/logging"
	"docview/internal/model"
	"docview/internal/pipeline"
	"docview/internal/reader"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()
	limits := cfg.Limits()

	fs := flag.NewFlagSet("docview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	raw := fs.Bool("raw", false, "include encoded_bytes in the output")
	maxSize := fs.Int64("max-size", limits.MaxSizeBytes, "largest accepted file, in bytes")
	logLevel := fs.String("log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	timeout := fs.Duration("timeout", cfg.ReadTimeout(), "give up reading after this long; 0 disables")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: docview [-raw] [-max-size N] [-log-level L] [-timeout D] <file>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	limits.MaxSizeBytes = *maxSize
	logger := logging.New(stderr, *logLevel, cfg.Location())
	assembler := pipeline.NewAssembler(
		pipeline.NewValidator(limits),
		reader.Default(),
		pipeline.WithLogger(logger),
	)

	file, err := localFile(path)
	if err != nil {
		logger.Error("stat_failed", "path", path, "error", err.Error())
		fmt.Fprintln(stderr, pipeline.UserMessage(&pipeline.IOError{Op: "stat", Err: err}))
		return 1
	}

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	cm, err := assembler.Process(ctx, file)
	if err != nil {
		fmt.Fprintln(stderr, pipeline.UserMessage(err))
		return 1
	}
	if !*raw {
		cm = cm.WithoutEncodedBytes()
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cm); err != nil {
		logger.Error("encode_failed", "error", err.Error())
		return 1
	}
	return 0
}

func localFile(path string) (model.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.File{}, err
	}
	if info.IsDir() {
		return model.File{}, fmt.Errorf("%s is a directory", path)
	}
	return model.File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}
