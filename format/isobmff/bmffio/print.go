// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type stringintf interface {
	Summary() string
}

func printbox(out io.Writer, b Box, depth, maxDepth int) (err error) {
	line := fmt.Sprintf("%s%s offset=%d size=%d",
		strings.Repeat(" ", depth*2), b.Tag(), b.Start(), b.Size(),
	)
	if ut, ok := b.base().UserType(); ok {
		line += " usertype=" + ut.String()
	}
	if fb, ok := b.(interface{ Version() uint8 }); ok {
		line += fmt.Sprintf(" version=%d", fb.Version())
	}
	if str, ok := b.(stringintf); ok {
		line += " " + str.Summary()
	}
	if _, err = fmt.Fprintln(out, line); err != nil {
		return
	}

	n, ok := b.(Node)
	if !ok || (maxDepth >= 0 && depth >= maxDepth) {
		return
	}
	for child, cerr := range n.Boxes() {
		if cerr != nil {
			return cerr
		}
		if err = printbox(out, child, depth+1, maxDepth); err != nil {
			return
		}
	}
	return
}

// Fprint writes the tree under n, one box per line, indented by depth.
// A negative maxDepth prints everything.
func Fprint(out io.Writer, n Node, maxDepth int) error {
	for b, err := range n.Boxes() {
		if err != nil {
			return err
		}
		if err = printbox(out, b, 0, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

// FprintBox writes b and everything below it.
func FprintBox(out io.Writer, b Box) error {
	return printbox(out, b, 0, -1)
}

func Print(n Node) error {
	return Fprint(os.Stdout, n, -1)
}
