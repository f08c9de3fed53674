// Package isobmff
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package isobmff

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML, FormatJSON, FormatCBOR:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, yaml, json or cbor)", s)
}

// cborMode uses Core Deterministic Encoding so the same tree always
// produces the same bytes.
var cborMode cbor.EncMode

func init() {
	var err error
	if cborMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic("isobmff: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode writes nodes to w in one of the structured formats. FormatText is
// handled by bmffio.Fprint and is not accepted here.
func Encode(w io.Writer, f Format, nodes []*Node) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nodes); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	case FormatCBOR:
		return cborMode.NewEncoder(w).Encode(nodes)
	}
	return fmt.Errorf("cannot encode tree as %q", f)
}
