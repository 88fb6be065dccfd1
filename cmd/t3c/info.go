package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Nico59000/Ternary-image-codec/internal/container"
)

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if fs.NArg() != 1 {
		return newUsageError("info: exactly one file is required")
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}

	approveAll := func([]byte) (bool, error) { return true, nil }

	switch string(magic) {
	case "T3P6":
		r, err := container.NewT3PReader(f, approveAll)
		if err != nil {
			return fmt.Errorf("read t3p header: %w", err)
		}
		h := r.Header()
		fmt.Printf("format: t3p\nversion: %d\nsubword: %s\ndimensions: %dx%d\nwords: %d\nmeta: %s\n",
			h.Version, subwordString(h.Subword), h.W, h.H, h.WordsCount, r.Meta())
		return nil

	case "T3V6":
		r, err := container.NewT3VReader(f)
		if err != nil {
			return fmt.Errorf("read t3v header: %w", err)
		}
		h := r.Header()
		fmt.Printf("format: t3v\nversion: %d\nsubword: %s\ndimensions: %dx%d\nframes: %d\nglobal meta: %s\n",
			h.Version, subwordString(h.Subword), h.W, h.H, r.FrameCount(), r.GlobalMeta())
		return nil

	case "T3PT":
		h, meta, balanced, packed, err := container.ReadT3Proto(f)
		if err != nil {
			return fmt.Errorf("read t3proto: %w", err)
		}
		fmt.Printf("format: t3proto\nversion: %d\nprofile: %d\ndimensions: %dx%d\ntrits: %d\nbytes: %d\nhas_balanced: %v\nhas_packed: %v\nmeta: %s\n",
			h.Version, h.Profile, h.W, h.H, h.NTrits, h.NBytes, len(balanced) > 0, len(packed) > 0, meta)
		return nil

	default:
		return fmt.Errorf("info: unrecognized magic %q", magic)
	}
}
