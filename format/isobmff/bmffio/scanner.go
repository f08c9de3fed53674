// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"log/slog"
)

type env struct {
	reg      *Registry
	log      *slog.Logger
	detector Detector
}

type config struct {
	registry *Registry
	logger   *slog.Logger
	detector Detector
}

type Option func(*config)

// WithRegistry makes the scanner dispatch through r instead of
// DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithLogger sets the logger scan steps report to. Scanning is silent by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDetector adds a charset detector consulted when the built-in
// encodings fail to decode a string property.
func WithDetector(d Detector) Option {
	return func(c *config) { c.detector = d }
}

// Scanner is the root of a box tree: a node with no parent whose content
// range is the whole source. It reads nothing until a child is requested.
//
// A Scanner and the boxes it yields are not safe for concurrent use.
type Scanner struct {
	ChildList
	src ByteSource
}

func NewScanner(src ByteSource, opts ...Option) *Scanner {
	cfg := config{
		registry: DefaultRegistry,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	e := &env{
		reg:      cfg.registry,
		log:      cfg.logger,
		detector: cfg.detector,
	}
	end := int64(-1)
	if n, known := src.Size(); known {
		end = n
	}

	s := &Scanner{src: src}
	s.bind(s, src, e, 0, end)
	return s
}

// Source is the byte source the scanner was built on.
func (s *Scanner) Source() ByteSource {
	return s.src
}
