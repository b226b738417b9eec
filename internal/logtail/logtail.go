package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-logfmt/logfmt"
)

// Options select which lines Tail returns.
type Options struct {
	// Lines caps the result; zero or negative returns every matching line.
	Lines int
	// Levels keeps only logfmt entries whose level=... is listed. Empty keeps all.
	Levels []string
}

// Tail returns the last matching lines of the speakerctl log at path, oldest
// first. A missing file yields no lines.
func Tail(path string, opts Options) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	keep := levelFilter(opts.Levels)
	var ring []string
	if opts.Lines > 0 {
		ring = make([]string, opts.Lines)
	}
	count := 0
	idx := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !keep(line) {
			continue
		}
		if opts.Lines <= 0 {
			ring = append(ring, line)
			count++
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % opts.Lines
		if count < opts.Lines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if opts.Lines <= 0 || count < opts.Lines {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, count)
	for i := 0; i < count; i++ {
		lines[i] = ring[(idx+i)%opts.Lines]
	}
	return lines, nil
}

// Level extracts the level value of a logfmt line, lowercased, or "".
func Level(line string) string {
	dec := logfmt.NewDecoder(strings.NewReader(line))
	for dec.ScanRecord() {
		for dec.ScanKeyval() {
			if string(dec.Key()) == "level" {
				return strings.ToLower(string(dec.Value()))
			}
		}
	}
	return ""
}

func levelFilter(levels []string) func(string) bool {
	if len(levels) == 0 {
		return func(string) bool { return true }
	}
	want := make(map[string]struct{}, len(levels))
	for _, l := range levels {
		want[strings.ToLower(l)] = struct{}{}
	}
	return func(line string) bool {
		_, ok := want[Level(line)]
		return ok
	}
}
