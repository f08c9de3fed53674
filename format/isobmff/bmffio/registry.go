// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"maps"
)

// Decoder builds the variant for a freshly parsed header. It runs during the
// scan step, so it should read no more than the variant needs to be usable
// (a FullBox reads its version and flags, nothing else). An error aborts the
// scan step.
type Decoder func(base *BaseBox) (Box, error)

// Registry maps type codes to decoders. It is not safe for concurrent
// mutation; register decoders before scanning starts.
type Registry struct {
	decoders map[Tag]Decoder
	fallback Decoder
}

func NewRegistry() *Registry {
	return &Registry{
		decoders: map[Tag]Decoder{},
		fallback: DecodeUnknown,
	}
}

// DefaultRegistry holds the built-in variants. Scanners use it unless
// WithRegistry says otherwise.
var DefaultRegistry = NewRegistry()

// Register installs d for t, replacing any earlier decoder. Boxes scanned
// before the call keep the variant they were built with.
func (r *Registry) Register(t Tag, d Decoder) {
	r.decoders[t] = d
}

// RegisterString is Register with a textual type code.
func (r *Registry) RegisterString(t string, d Decoder) error {
	tag, err := ParseTag(t)
	if err != nil {
		return err
	}
	r.Register(tag, d)
	return nil
}

// Lookup returns the decoder registered for t, if any.
func (r *Registry) Lookup(t Tag) (Decoder, bool) {
	d, ok := r.decoders[t]
	return d, ok
}

// Resolve never fails: unknown codes get the fallback decoder.
func (r *Registry) Resolve(t Tag) Decoder {
	if d, ok := r.decoders[t]; ok {
		return d
	}
	return r.fallback
}

// Clone copies the table so it can be extended without touching r.
func (r *Registry) Clone() *Registry {
	return &Registry{
		decoders: maps.Clone(r.decoders),
		fallback: r.fallback,
	}
}

// Len is the number of registered type codes.
func (r *Registry) Len() int {
	return len(r.decoders)
}

// Register installs d in DefaultRegistry.
func Register(t Tag, d Decoder) {
	DefaultRegistry.Register(t, d)
}
