package replay

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/stagehand/internal/event"
)

const currentVersion = 1

// Save writes the recorder's trace to path. The file is written
// atomically using a temporary file and rename.
func Save(r *Recorder, path string) error {
	entries := r.snapshot()

	var buf bytes.Buffer
	header, err := encodeHeader(len(entries))
	if err != nil {
		return fmt.Errorf("encoding trace header: %w", err)
	}
	buf.Write(header)
	buf.WriteByte('\n')

	for i, e := range entries {
		line, err := encodeEntry(e)
		if err != nil {
			return fmt.Errorf("encoding trace entry %d: %w", i, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating trace directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing temp trace file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming trace file: %w", err)
	}
	return nil
}

// encodeHeader builds the version line.
func encodeHeader(count int) ([]byte, error) {
	line := []byte(`{}`)
	var err error
	if line, err = sjson.SetBytes(line, "version", currentVersion); err != nil {
		return nil, err
	}
	if line, err = sjson.SetBytes(line, "saved_at", time.Now().Format(time.RFC3339)); err != nil {
		return nil, err
	}
	if line, err = sjson.SetBytes(line, "events", count); err != nil {
		return nil, err
	}
	return line, nil
}

// encodeEntry builds one event line.
func encodeEntry(e entry) ([]byte, error) {
	line := []byte(`{}`)
	var err error
	if line, err = sjson.SetBytes(line, "frame", e.frame); err != nil {
		return nil, err
	}
	if line, err = sjson.SetBytes(line, "offset_ms", e.offset.Milliseconds()); err != nil {
		return nil, err
	}
	if line, err = sjson.SetBytes(line, "kind", e.ev.Kind.String()); err != nil {
		return nil, err
	}
	if len(e.ev.Attrs) > 0 {
		if line, err = sjson.SetBytes(line, "attrs", map[string]any(e.ev.Attrs)); err != nil {
			return nil, err
		}
	}
	return line, nil
}

// Load reads a trace from path. Event timestamps are rebuilt from the
// recorded offsets relative to load time; playback pacing is decided
// by the player, not the original recording times.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()

	start := time.Now()
	var entries []Entry
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			return nil, &FormatError{Path: path, Line: lineNo, Message: "invalid JSON"}
		}
		res := gjson.ParseBytes(line)

		if lineNo == 1 {
			version := res.Get("version")
			if !version.Exists() {
				return nil, &FormatError{Path: path, Line: lineNo, Message: "missing version header"}
			}
			if v := version.Int(); v > currentVersion {
				return nil, &VersionError{Path: path, Version: int(v)}
			}
			continue
		}

		e, err := decodeEntry(res, start)
		if err != nil {
			return nil, &FormatError{Path: path, Line: lineNo, Message: err.Error()}
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading trace file: %w", err)
	}
	return entries, nil
}

// decodeEntry converts one trace line back into an Entry.
func decodeEntry(res gjson.Result, start time.Time) (Entry, error) {
	kindName := res.Get("kind")
	if !kindName.Exists() {
		return Entry{}, fmt.Errorf("missing kind")
	}
	kind, ok := event.ParseKind(kindName.String())
	if !ok {
		return Entry{}, fmt.Errorf("unknown kind %q", kindName.String())
	}

	var attrs event.Attrs
	if a := res.Get("attrs"); a.Exists() {
		attrs = make(event.Attrs)
		a.ForEach(func(key, value gjson.Result) bool {
			attrs[key.String()] = value.Value()
			return true
		})
		attrs = event.Canonicalize(attrs)
	}

	ev := event.New(kind, attrs)
	ev.When = start.Add(time.Duration(res.Get("offset_ms").Int()) * time.Millisecond)
	return Entry{
		Frame: int(res.Get("frame").Int()),
		Event: ev,
	}, nil
}
