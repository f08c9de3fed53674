// Package isobmff
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package isobmff

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/teocci/go-isobmff/format/isobmff/bmffio"
)

// Node is the export form of one box. Field names are shared by the YAML,
// JSON and CBOR encodings.
type Node struct {
	Type       string  `yaml:"type" json:"type" cbor:"type"`
	Offset     int64   `yaml:"offset" json:"offset" cbor:"offset"`
	Size       int64   `yaml:"size" json:"size" cbor:"size"`
	HeaderSize int64   `yaml:"header_size" json:"header_size" cbor:"header_size"`
	Version    *uint8  `yaml:"version,omitempty" json:"version,omitempty" cbor:"version,omitempty"`
	Flags      *uint32 `yaml:"flags,omitempty" json:"flags,omitempty" cbor:"flags,omitempty"`
	UserType   string  `yaml:"usertype,omitempty" json:"usertype,omitempty" cbor:"usertype,omitempty"`
	Summary    string  `yaml:"summary,omitempty" json:"summary,omitempty" cbor:"summary,omitempty"`
	// Digest is the BLAKE3-256 of the payload of a leaf box, hex encoded.
	Digest   string  `yaml:"digest,omitempty" json:"digest,omitempty" cbor:"digest,omitempty"`
	Children []*Node `yaml:"children,omitempty" json:"children,omitempty" cbor:"children,omitempty"`
}

type TreeOptions struct {
	// MaxDepth stops descending below this depth. Negative means no limit.
	MaxDepth int
	// Digest hashes the payload of every box without children.
	Digest bool
}

type fullBox interface {
	Version() uint8
	Flags() uint32
}

type summarizer interface {
	Summary() string
}

// Tree scans everything under n, up to opts.MaxDepth, into export nodes.
func Tree(n bmffio.Node, opts TreeOptions) ([]*Node, error) {
	return tree(n, 0, opts)
}

func tree(n bmffio.Node, depth int, opts TreeOptions) ([]*Node, error) {
	nodes := []*Node{}
	for b, err := range n.Boxes() {
		if err != nil {
			return nil, err
		}
		node, err := exportBox(b, opts)
		if err != nil {
			return nil, err
		}
		if child, ok := b.(bmffio.Node); ok && (opts.MaxDepth < 0 || depth < opts.MaxDepth) {
			if node.Children, err = tree(child, depth+1, opts); err != nil {
				return nil, err
			}
			if len(node.Children) == 0 {
				node.Children = nil
			}
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func exportBox(b bmffio.Box, opts TreeOptions) (*Node, error) {
	node := &Node{
		Type:       b.Tag().String(),
		Offset:     b.Start(),
		Size:       b.Size(),
		HeaderSize: b.HeaderSize(),
	}
	if fb, ok := b.(fullBox); ok {
		v, f := fb.Version(), fb.Flags()
		node.Version, node.Flags = &v, &f
	}
	if h := b.Header(); h.Type == bmffio.UUID {
		node.UserType = h.UserType.String()
	}
	if s, ok := b.(summarizer); ok {
		node.Summary = s.Summary()
	}
	if opts.Digest && !b.HasChildren() {
		digest, err := PayloadDigest(b)
		switch {
		case errors.Is(err, bmffio.ErrTruncatedData):
			// Fields overrun the box; there is no payload to hash.
		case err != nil:
			return nil, err
		default:
			node.Digest = digest
		}
	}
	return node, nil
}

// PayloadDigest streams the payload of b through BLAKE3 and returns the hex
// digest.
func PayloadDigest(b bmffio.Box) (string, error) {
	payload, err := bmffio.Payload(b)
	if err != nil {
		return "", err
	}
	hasher := blake3.New()
	if _, err = io.Copy(hasher, payload.Reader()); err != nil {
		return "", fmt.Errorf("hashing %s at %d: %w", b.Tag(), b.Start(), err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
