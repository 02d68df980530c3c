package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/fbkclanna/ocrdws/internal/mets"
)

func TestProgress_FileDownloaded(t *testing.T) {
	m := mets.Empty()
	a, err := m.AddFile("INPUT", mets.FileOpts{ID: "IMG_1", URL: "http://x/a.png", LocalFilename: "/ws/INPUT/a.png"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.AddFile("INPUT", mets.FileOpts{ID: "IMG_2", URL: "http://x/b.png", LocalFilename: "/ws/INPUT/b.png"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	p := NewProgress(&buf, 2)
	p.FileDownloaded(a, false)
	p.FileDownloaded(b, true)

	out := buf.String()
	if !strings.Contains(out, "[1/2] IMG_1 -> /ws/INPUT/a.png\n") {
		t.Errorf("missing progress line for IMG_1: %s", out)
	}
	if !strings.Contains(out, "[2/2] IMG_2 -> /ws/INPUT/b.png (already local)") {
		t.Errorf("missing cached marker for IMG_2: %s", out)
	}
}

func TestProgress_concurrent(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 20)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Done("file")
		}()
	}
	wg.Wait()

	if p.Completed() != 20 {
		t.Errorf("Completed() = %d, want 20", p.Completed())
	}
	if n := strings.Count(buf.String(), "\n"); n != 20 {
		t.Errorf("printed %d lines, want 20", n)
	}
}

func TestProgress_Log(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)

	p.Log("hello %s", "world")

	if !strings.Contains(buf.String(), "hello world") {
		t.Errorf("missing log message: %s", buf.String())
	}
}

func TestProgress_SetTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 0)
	p.SetTotal(4)
	p.Done("a")

	if !strings.Contains(buf.String(), "[1/4] a") {
		t.Errorf("total not applied: %s", buf.String())
	}
}
