// Package main
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/teocci/go-isobmff/utils/bits/pio"
)

func mkbox(typ string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	b := make([]byte, 8, 8+len(body))
	pio.PutU32BE(b, uint32(8+len(body)))
	copy(b[4:], typ)
	return append(b, body...)
}

func writeSample(t *testing.T) string {
	t.Helper()
	data := bytes.Join([][]byte{
		mkbox("ftyp", []byte("isom"), make([]byte, 4), []byte("isom")),
		mkbox("moov", mkbox("udta", mkbox("free"))),
	}, nil)
	path := filepath.Join(t.TempDir(), "in.mp4")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{writeSample(t)}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	if !strings.Contains(out, "ftyp offset=0 size=20") || !strings.Contains(out, "\n    free offset=") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestRunJSONWithConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dump.yaml")
	if err := os.WriteFile(cfgPath, []byte("format: json\nmax_depth: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := run([]string{"--config", cfgPath, "-v", writeSample(t)}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	var nodes []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &nodes); err != nil {
		t.Fatalf("%v\n%s", err, stdout.String())
	}
	if len(nodes) != 2 || nodes[1]["type"] != "moov" {
		t.Fatalf("nodes = %v", nodes)
	}
	udta := nodes[1]["children"].([]any)[0].(map[string]any)
	if _, ok := udta["children"]; ok {
		t.Fatalf("descended past max depth: %v", udta)
	}
	if !strings.Contains(stderr.String(), "box scanned") {
		t.Fatalf("verbose log missing:\n%s", stderr.String())
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); err == nil {
		t.Fatal("no input accepted")
	}
	if err := run([]string{"--format", "xml", writeSample(t)}, &stdout, &stderr); err == nil {
		t.Fatal("format xml accepted")
	}
	if err := run([]string{filepath.Join(t.TempDir(), "nope.mp4")}, &stdout, &stderr); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestRunRemote(t *testing.T) {
	data, err := os.ReadFile(writeSample(t))
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "in.mp4", time.Time{}, bytes.NewReader(data))
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	if err := run([]string{"--format", "yaml", srv.URL + "/in.mp4"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "type: udta") {
		t.Fatalf("output:\n%s", stdout.String())
	}
}
