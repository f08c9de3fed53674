// Package remote
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrNoRanges reports a server that answered a range request with the
	// whole resource.
	ErrNoRanges = errors.New("remote: server does not support range requests")
)

// Source reads a remote resource with HTTP range requests, one request per
// ReadAt. It implements bmffio.ByteSource.
//
// io.ReaderAt has no context parameter, so the context given to Open is kept
// and used for every request the Source makes for its whole lifetime. Once
// it is cancelled or past its deadline every later ReadAt fails with its
// error; open a new Source to read again.
type Source struct {
	ctx    context.Context // from Open; bounds every ReadAt
	client *http.Client
	url    string
	log    *slog.Logger
	size   int64
	hwm    int64
}

type Option func(*Source)

func WithClient(c *http.Client) Option {
	return func(s *Source) { s.client = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Source) { s.log = l }
}

// Open issues a HEAD request for url to learn its extent. A server that
// omits Content-Length yields a source of unknown size. ctx is not only for
// the HEAD: it is retained and bounds every later ReadAt as well, so it must
// outlive all use of the Source.
func Open(ctx context.Context, url string, opts ...Option) (*Source, error) {
	s := &Source{
		ctx:    ctx,
		client: http.DefaultClient,
		url:    url,
		size:   -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HEAD %s: %s", url, resp.Status)
	}
	if resp.Header.Get("Accept-Ranges") == "none" {
		return nil, ErrNoRanges
	}
	if resp.ContentLength >= 0 {
		s.size = resp.ContentLength
	}
	s.log.Debug("remote source opened", "url", url, "size", s.size)
	return s, nil
}

func (s *Source) ReadAt(p []byte, off int64) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 {
		return 0, errors.New("remote: negative offset")
	}
	if s.size >= 0 && off >= s.size {
		return 0, io.EOF
	}

	req, err := http.NewRequestWithContext(s.ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, err
	}
	last := off + int64(len(p)) - 1
	req.Header.Set("Range", "bytes="+strconv.FormatInt(off, 10)+"-"+strconv.FormatInt(last, 10))

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusPartialContent:
		if start, ok := rangeStart(resp.Header.Get("Content-Range")); ok && start != off {
			return 0, fmt.Errorf("remote: asked for offset %d, got %d", off, start)
		}
	case http.StatusRequestedRangeNotSatisfiable:
		return 0, io.EOF
	case http.StatusOK:
		return 0, ErrNoRanges
	default:
		return 0, fmt.Errorf("GET %s: %s", s.url, resp.Status)
	}

	n, err = io.ReadFull(resp.Body, p)
	if end := off + int64(n); end > s.hwm {
		s.hwm = end
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	s.log.Debug("range read", "offset", off, "want", len(p), "got", n)
	return n, err
}

// Size reports the Content-Length from Open, or the furthest byte read so
// far when the server did not send one.
func (s *Source) Size() (int64, bool) {
	if s.size >= 0 {
		return s.size, true
	}
	return s.hwm, false
}

// rangeStart parses the first byte position of "bytes 100-199/1000".
func rangeStart(v string) (int64, bool) {
	v, ok := strings.CutPrefix(v, "bytes ")
	if !ok {
		return 0, false
	}
	first, _, ok := strings.Cut(v, "-")
	if !ok {
		return 0, false
	}
	start, err := strconv.ParseInt(first, 10, 64)
	return start, err == nil
}
