// Package isobmff
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package isobmff

import (
	"fmt"
	"os"

	"github.com/teocci/go-isobmff/format/isobmff/bmffio"
)

// File is a box tree over an open file. The scanner borrows the file; Close
// releases it.
type File struct {
	*bmffio.Scanner
	f *os.File
}

// Open opens path and returns a scanner positioned before the first box.
func Open(path string, opts ...bmffio.Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	src := bmffio.NewReaderAtSource(f, fi.Size())
	return &File{Scanner: bmffio.NewScanner(src, opts...), f: f}, nil
}

func (f *File) Name() string {
	return f.f.Name()
}

func (f *File) Close() error {
	return f.f.Close()
}
