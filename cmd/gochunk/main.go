// Command gochunk splits a file into chunks from the command line, a
// thin driver over the library for quick inspection of how a given
// capacity and flavor chunk a real document. It is not part of the
// module's public API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/MegaGrindStone/gochunk"
	"github.com/MegaGrindStone/gochunk/ladder"
	"github.com/MegaGrindStone/gochunk/sizer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("gochunk failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	flavor := flag.String("flavor", "text", "chunking flavor: text, markdown, or code")
	language := flag.String("language", "go", "source language, only used when flavor=code")
	lo := flag.Int("lo", 0, "minimum chunk size, 0 for no minimum")
	hi := flag.Int("hi", 2000, "maximum chunk size")
	overlap := flag.Int("overlap", 0, "chunk overlap budget")
	trim := flag.Bool("trim", true, "trim leading/trailing whitespace from each chunk")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	args := flag.Args()
	if len(args) != 1 {
		return fmt.Errorf("usage: gochunk [flags] <path>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	capacity, err := gochunk.NewCapacity(*lo, *hi)
	if err != nil {
		return fmt.Errorf("building capacity: %w", err)
	}

	opts := []gochunk.Option{gochunk.WithOverlap(*overlap), gochunk.WithTrim(*trim)}

	var splitter *gochunk.Splitter
	switch *flavor {
	case "text":
		splitter, err = gochunk.NewText(sizer.Character{}, capacity, opts...)
	case "markdown":
		splitter, err = ladder.NewMarkdown(sizer.Character{}, capacity, opts...)
	case "code":
		splitter, err = ladder.NewCode(capacity, sizer.Character{}, *language, opts...)
	default:
		return fmt.Errorf("unknown flavor %q: want text, markdown, or code", *flavor)
	}
	if err != nil {
		return fmt.Errorf("building splitter: %w", err)
	}

	slog.Debug("splitting", "path", args[0], "bytes", len(data), "flavor", *flavor)

	for i, idx := range splitter.ChunkIndices(string(data)) {
		fmt.Printf("--- chunk %d (offset %d, %d bytes) ---\n%s\n", i, idx.Offset, len(idx.Text), idx.Text)
	}

	return nil
}
