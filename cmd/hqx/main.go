// Command hqx upscales pixel art with the HQx filters.
//
// Usage:
//
//	hqx -in sprite.png -lut resources/hq4x.png -out sprite@4x.png
//	hqx -in sprite.png -luts resources -scale 3
//	hqx -in sprite.png -scale 1 -out copy.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gogpu/hqx"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	var (
		in        = flag.String("in", "", "source image (PNG, JPEG, BMP, TIFF, WebP)")
		out       = flag.String("out", "out.png", "output PNG file")
		lutPath   = flag.String("lut", "", "LUT image (hq2x.png, hq3x.png or hq4x.png)")
		lutDir    = flag.String("luts", "", "directory containing hq{2,3,4}x.png")
		scale     = flag.Int("scale", 0, "scale factor 1-4 (0 = infer from -lut)")
		threshold = flag.String("threshold", "", "YUV thresholds y,u,v on a 0-255 scale (default 48,7,6)")
		workers   = flag.Int("workers", 0, "CPU worker count (0 = GOMAXPROCS)")
		mode      = flag.String("mode", "auto", "execution mode: auto, cpu or gpu")
		forceGPU  = flag.Bool("gpu", false, "shorthand for -mode gpu")
		strict    = flag.Bool("strict", false, "reject LUTs with zero-weight entries")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		hqx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	execMode, ok := hqx.ParseExecMode(*mode)
	if !ok {
		log.Fatalf("unknown mode %q", *mode)
	}
	if *forceGPU {
		execMode = hqx.ModeGPU
	}

	lut, err := selectLUT(*lutPath, *lutDir, *scale)
	if err != nil {
		log.Fatalf("Failed to load LUT: %v", err)
	}

	cfg := hqx.DefaultConfig(lut.Scale())
	if *threshold != "" {
		th, err := parseThresholds(*threshold)
		if err != nil {
			log.Fatalf("Invalid -threshold: %v", err)
		}
		cfg.Thresholds = th
	}

	opts := []hqx.Option{hqx.WithMode(execMode), hqx.WithWorkers(*workers)}
	if *strict {
		opts = append(opts, hqx.WithStrictLUT())
	}
	f, err := hqx.New(lut, cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to create filter: %v", err)
	}
	defer f.Close()

	src, err := hqx.LoadImage(*in)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *in, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	dst, err := f.Upscale(ctx, src)
	if err != nil {
		log.Fatalf("Upscale failed: %v", err)
	}
	elapsed := time.Since(start)

	if err := dst.SavePNG(*out); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	accel := "none"
	if a := hqx.Accelerator(); a != nil {
		accel = a.Name()
	}
	p := message.NewPrinter(language.English)
	p.Printf("hq%dx: %s -> %s, %dx%d -> %dx%d (%d pixels) in %v [mode %s, accelerator %s]\n",
		cfg.Scale, *in, *out, src.Width(), src.Height(), dst.Width(), dst.Height(),
		dst.Width()*dst.Height(), elapsed.Round(time.Microsecond), execMode, accel)
}

// selectLUT resolves the LUT from the -lut, -luts and -scale flags.
func selectLUT(path, dir string, scale int) (*hqx.LUT, error) {
	switch {
	case path != "" && dir != "":
		return nil, errors.New("-lut and -luts are mutually exclusive")
	case path != "":
		return hqx.LoadLUT(path, scale)
	case dir != "":
		set, err := hqx.LoadLUTSet(dir)
		if err != nil {
			return nil, err
		}
		if scale == 0 {
			scales := set.Scales()
			scale = scales[len(scales)-1]
		}
		lut, ok := set[scale]
		if !ok {
			return nil, fmt.Errorf("no %s in %s", hqx.LUTFileName(scale), dir)
		}
		return lut, nil
	case scale == 1:
		return hqx.IdentityLUT(1), nil
	default:
		return nil, errors.New("one of -lut or -luts is required unless -scale 1")
	}
}

// parseThresholds parses "y,u,v" on a 0-255 scale.
func parseThresholds(s string) (hqx.YUV, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return hqx.YUV{}, fmt.Errorf("want 3 comma-separated values, got %d", len(parts))
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return hqx.YUV{}, err
		}
		if f < 0 {
			return hqx.YUV{}, fmt.Errorf("threshold %v is negative", f)
		}
		v[i] = float32(f)
	}
	return hqx.Thresholds255(v[0], v[1], v[2]), nil
}
