// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
)

// Node is anything that holds an ordered sequence of child boxes: the
// Scanner and every container box. Children are discovered lazily, one
// header read per child, and cached for the life of the node.
type Node interface {
	// Child returns the i-th child, scanning only as far as needed.
	Child(i int) (Box, error)
	// ChildrenByType scans to the end and returns every child of type t in
	// order. The result is empty, never nil, when nothing matches.
	ChildrenByType(t Tag) ([]Box, error)
	// Get is the single polymorphic accessor. An int key behaves like Child.
	// A Tag or string key behaves like ChildrenByType, except that exactly
	// one match is returned as the Box itself rather than a one-element
	// []Box. Callers must type-switch on the result. A string key longer
	// than four bytes is an ErrInvalidTag.
	Get(key any) (any, error)
	// Boxes iterates the children in order. Cached children are replayed
	// before any new header is read; the sequence may be restarted.
	Boxes() iter.Seq2[Box, error]
	// Len scans to the end and returns the number of children.
	Len() (int, error)
	// Cached is the number of children discovered so far.
	Cached() int
	// Exhausted reports whether the content range has been fully scanned.
	Exhausted() bool
}

// Container is a Box with children.
type Container interface {
	Box
	Node
}

// ChildList is the scan state of a node: an append-only cache of children
// and a cursor at the next unread offset of the content range.
type ChildList struct {
	self   Node
	src    ByteSource
	env    *env
	start  int64
	end    int64 // negative when the content runs to an unknown end of source
	cursor int64
	cache  []Box
	done   bool
}

// Bind attaches the child list to owner. The content range starts at
// owner.HeaderSize(), so a variant embedding a container must call Bind
// with itself once its own header fields are known.
func (c *ChildList) Bind(owner Container) {
	b := owner.base()
	c.bind(owner, b.slice.Source(), b.env, owner.Start()+owner.HeaderSize(), owner.End())
}

func (c *ChildList) bind(self Node, src ByteSource, e *env, start, end int64) {
	c.self = self
	c.src = src
	c.env = e
	c.start = start
	c.end = end
	c.cursor = start
	c.cache = nil
	c.done = false
	if end >= 0 && start > end {
		c.done = true
	}
}

// scope makes the children of c decode through r instead of the scanner's
// registry. It must be called before the first step.
func (c *ChildList) scope(r *Registry) {
	e := *c.env
	e.reg = r
	c.env = &e
}

// ContentStart is the absolute offset of the first child.
func (c *ChildList) ContentStart() int64 {
	return c.start
}

// ContentEnd is the absolute end of the content range, or -1 when the range
// runs to an end of source that is not known yet.
func (c *ChildList) ContentEnd() int64 {
	return c.end
}

func (c *ChildList) HasChildren() bool {
	return true
}

func (c *ChildList) Cached() int {
	return len(c.cache)
}

func (c *ChildList) Exhausted() bool {
	return c.done
}

// step discovers the next child. It returns a nil box once the content range
// is exhausted. On error nothing is appended and the cursor does not move.
func (c *ChildList) step() (Box, error) {
	if c.done {
		return nil, nil
	}
	if c.end >= 0 && c.cursor >= c.end {
		c.done = true
		return nil, nil
	}

	off := c.cursor
	h, err := ReadHeader(c.src, off, c.end)
	if errors.Is(err, io.EOF) && !errors.Is(err, ErrMalformedHeader) {
		c.done = true
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if h.Size > math.MaxInt64 {
		return nil, parseErr(fmt.Sprintf("%s: size %d", h.Type, h.Size), off, ErrMalformedHeader)
	}
	size := int64(h.Size)
	if h.ToEnd {
		limit := c.end
		if limit < 0 {
			limit, _ = c.src.Size()
		}
		if limit < off+h.Len {
			limit = off + h.Len
		}
		size = limit - off
		h.Size = uint64(size)
	}
	// Compared as remaining room so that off+size cannot wrap.
	if size > math.MaxInt64-off {
		return nil, parseErr(fmt.Sprintf("%s: size %d past end of address space", h.Type, size), off, ErrMalformedHeader)
	}
	if c.end >= 0 && size > c.end-off {
		return nil, parseErr(fmt.Sprintf("%s: size %d overruns content end %d", h.Type, size, c.end), off, ErrMalformedHeader)
	}

	base := &BaseBox{
		hdr:    h,
		slice:  NewSlice(c.src, off, size),
		parent: c.self,
		env:    c.env,
	}
	decode, known := c.env.reg.Lookup(h.Type)
	if !known {
		decode = c.env.reg.fallback
	}
	box, err := decode(base)
	if err != nil {
		return nil, fmt.Errorf("decoding %s at %d: %w", h.Type, off, err)
	}

	c.cache = append(c.cache, box)
	c.cursor = off + size
	if h.ToEnd {
		c.done = true
	}
	c.env.log.Debug("box scanned",
		"tag", h.Type.String(),
		"offset", off,
		"size", size,
		"depth", box.Depth(),
		"known", known,
	)
	return box, nil
}

func (c *ChildList) drain() error {
	for !c.done {
		if _, err := c.step(); err != nil {
			return err
		}
	}
	return nil
}

func (c *ChildList) Child(i int) (Box, error) {
	if i < 0 {
		return nil, parseErr(fmt.Sprintf("child %d", i), c.start, ErrIndexOutOfRange)
	}
	for len(c.cache) <= i {
		b, err := c.step()
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, parseErr(fmt.Sprintf("child %d of %d", i, len(c.cache)), c.cursor, ErrIndexOutOfRange)
		}
	}
	return c.cache[i], nil
}

func (c *ChildList) ChildrenByType(t Tag) ([]Box, error) {
	if err := c.drain(); err != nil {
		return nil, err
	}
	matches := []Box{}
	for _, b := range c.cache {
		if b.Tag() == t {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

func (c *ChildList) Get(key any) (any, error) {
	var t Tag
	switch k := key.(type) {
	case int:
		return c.Child(k)
	case Tag:
		t = k
	case string:
		var err error
		if t, err = ParseTag(k); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("bmffio: unsupported key type %T", key)
	}
	matches, err := c.ChildrenByType(t)
	if err != nil {
		return nil, err
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return matches, nil
}

func (c *ChildList) Boxes() iter.Seq2[Box, error] {
	return func(yield func(Box, error) bool) {
		for i := 0; ; i++ {
			if i < len(c.cache) {
				if !yield(c.cache[i], nil) {
					return
				}
				continue
			}
			b, err := c.step()
			if err != nil {
				yield(nil, err)
				return
			}
			if b == nil {
				return
			}
			if !yield(b, nil) {
				return
			}
		}
	}
}

func (c *ChildList) Len() (int, error) {
	if err := c.drain(); err != nil {
		return 0, err
	}
	return len(c.cache), nil
}

// ContainerBox is a plain box whose whole body is a child sequence.
type ContainerBox struct {
	BaseBox
	ChildList
}

func NewContainerBox(base *BaseBox) *ContainerBox {
	b := &ContainerBox{BaseBox: *base}
	b.Bind(b)
	return b
}

func DecodeContainer(base *BaseBox) (Box, error) {
	return NewContainerBox(base), nil
}

func (b *ContainerBox) HasChildren() bool {
	return true
}

// FullContainerBox is a FullBox whose body after version and flags is a
// child sequence.
type FullContainerBox struct {
	FullBox
	ChildList
}

func NewFullContainerBox(base *BaseBox) (*FullContainerBox, error) {
	b := &FullContainerBox{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	b.Bind(b)
	return b, nil
}

func DecodeFullContainer(base *BaseBox) (Box, error) {
	return NewFullContainerBox(base)
}

func (b *FullContainerBox) HasChildren() bool {
	return true
}

// Find follows path from n, taking the first child of each type. It scans
// only until each match is found.
func Find(n Node, path ...Tag) (Box, error) {
	var found Box
	for _, t := range path {
		if n == nil {
			return nil, nil
		}
		found = nil
		for b, err := range n.Boxes() {
			if err != nil {
				return nil, err
			}
			if b.Tag() == t {
				found = b
				break
			}
		}
		if found == nil {
			return nil, nil
		}
		n, _ = found.(Node)
	}
	return found, nil
}
