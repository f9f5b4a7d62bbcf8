package export

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"riftreplay/internal/logger"
	"riftreplay/internal/timeline"
)

// DefaultStep is the frame spacing in minutes
const DefaultStep = 0.5

// Options controls an export
type Options struct {
	Step      float64            // minutes between frames; <= 0 means DefaultStep
	Gzip      bool               // compress; implied by a .gz file name
	Reference timeline.Reference // nil yields placeholder assets
}

// Header is the first line of an export
type Header struct {
	MatchID  string  `json:"matchId"`
	Duration float64 `json:"duration"`
	Step     float64 `json:"step"`
	Frames   int     `json:"frames"`
	Drops    int     `json:"drops"`
}

// FrameTimes returns 0, step, 2*step, ... and always ends at duration
func FrameTimes(duration, step float64) []float64 {
	if step <= 0 {
		step = DefaultStep
	}
	n := int(math.Floor(duration/step + 1e-9))
	times := make([]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		times = append(times, float64(i)*step)
	}
	if last := times[len(times)-1]; duration-last > 1e-9 {
		times = append(times, duration)
	}
	return times
}

// Write streams the header and one JSON line per frame to w
func Write(w io.Writer, eng *timeline.Engine, opts Options) (int, error) {
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	times := FrameTimes(eng.Duration(), opts.Step)

	bw := bufio.NewWriterSize(w, 64*1024)
	enc := json.NewEncoder(bw)

	header := Header{
		MatchID:  eng.ID(),
		Duration: eng.Duration(),
		Step:     opts.Step,
		Frames:   len(times),
		Drops:    len(eng.Report().Drops),
	}
	if err := enc.Encode(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	for i, t := range times {
		if err := enc.Encode(eng.Frame(t, opts.Reference)); err != nil {
			return i, fmt.Errorf("failed to write frame %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return len(times), fmt.Errorf("failed to flush: %w", err)
	}
	return len(times), nil
}

// WriteFile exports to path. The file is written next to its destination
// and renamed into place, so readers never see a partial export.
func WriteFile(path string, eng *timeline.Engine, opts Options) (int, error) {
	if strings.HasSuffix(path, ".gz") {
		opts.Gzip = true
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	var (
		out io.Writer = f
		gz  *gzip.Writer
	)
	if opts.Gzip {
		gz, _ = gzip.NewWriterLevel(f, gzip.BestSpeed)
		out = gz
	}

	n, err := Write(out, eng, opts)
	if err == nil && gz != nil {
		err = gz.Close()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to move export into place: %w", err)
	}

	logger.With("export").Info("match exported", "match", eng.ID(), "path", path, "frames", n, "gzip", opts.Gzip)
	return n, nil
}

// Read parses an export, detecting gzip by its magic bytes
func Read(r io.Reader) (Header, []timeline.Frame, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	if magic, err := br.Peek(2); err == nil && bytes.Equal(magic, []byte{0x1f, 0x8b}) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return Header{}, nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		br = bufio.NewReaderSize(gz, 64*1024)
	}

	dec := json.NewDecoder(br)
	var h Header
	if err := dec.Decode(&h); err != nil {
		return Header{}, nil, fmt.Errorf("failed to read header: %w", err)
	}

	frames := make([]timeline.Frame, 0, h.Frames)
	for {
		var f timeline.Frame
		err := dec.Decode(&f)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return h, frames, fmt.Errorf("failed to read frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
	if len(frames) != h.Frames {
		return h, frames, fmt.Errorf("export truncated: %d of %d frames", len(frames), h.Frames)
	}
	return h, frames, nil
}

// ReadFile parses the export at path
func ReadFile(path string) (Header, []timeline.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()
	return Read(f)
}
