// Package main
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27

// isobmff-dump prints the box tree of an ISOBMFF file (MP4, MOV, HEIF, ...)
// or exports it as YAML, JSON or CBOR. Only box headers and the fields shown
// are read; media payloads are skipped unless --digest asks for them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/teocci/go-isobmff/format/isobmff"
	"github.com/teocci/go-isobmff/format/isobmff/bmffio"
	"github.com/teocci/go-isobmff/format/isobmff/remote"
	"github.com/teocci/go-isobmff/utils/bits/bufio"
)

// remoteBlockSize is the granularity of range requests; neighbouring box
// headers usually share a block.
const remoteBlockSize = 32 << 10

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		configPath string
		format     string
		maxDepth   int
		digest     bool
		verbose    bool
	)

	flagSet := pflag.NewFlagSet("isobmff-dump", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "YAML file with default settings")
	flagSet.StringVarP(&format, "format", "f", "", "output format: text, yaml, json or cbor")
	flagSet.IntVarP(&maxDepth, "max-depth", "d", -1, "do not descend below this depth (-1: no limit)")
	flagSet.BoolVar(&digest, "digest", false, "add a BLAKE3 digest of every leaf box payload")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every scanned box to stderr")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: isobmff-dump [flags] <file or http(s) URL>\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return errors.New("expected exactly one input")
	}

	cfg := isobmff.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = isobmff.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if flagSet.Changed("format") {
		cfg.Format = format
	}
	if flagSet.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flagSet.Changed("digest") {
		cfg.Digest = digest
	}
	if flagSet.Changed("verbose") {
		cfg.Verbose = verbose
	}

	outFormat, err := isobmff.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	input := flagSet.Arg(0)
	scanner, closer, err := openInput(input, logger)
	if err != nil {
		return err
	}
	defer closer()

	if outFormat == isobmff.FormatText {
		if err = bmffio.Fprint(stdout, scanner, cfg.MaxDepth); err != nil {
			return fmt.Errorf("scanning %s: %w", input, err)
		}
		return nil
	}

	nodes, err := isobmff.Tree(scanner, isobmff.TreeOptions{MaxDepth: cfg.MaxDepth, Digest: cfg.Digest})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", input, err)
	}
	return isobmff.Encode(stdout, outFormat, nodes)
}

func openInput(input string, logger *slog.Logger) (bmffio.Node, func() error, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		src, err := remote.Open(context.Background(), input, remote.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		size, known := src.Size()
		if !known {
			size = -1
		}
		cached := bmffio.NewReaderAtSource(bufio.NewReaderSize(src, remoteBlockSize), size)
		return bmffio.NewScanner(cached, bmffio.WithLogger(logger)), func() error { return nil }, nil
	}

	f, err := isobmff.Open(input, bmffio.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	head := make([]byte, bmffio.BaseHeaderLen)
	if _, err = f.Source().ReadAt(head, 0); err == nil && !isobmff.Probe(head) {
		logger.Warn("input does not look like ISOBMFF", "path", input)
	}
	return f, f.Close, nil
}
