package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	errs "github.com/matzehuels/cardstack/pkg/errors"
)

const rsvgConvertBin = "rsvg-convert"

const installHint = "Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin"

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := lookPath(rsvgConvertBin)
	return err == nil
}

// ToPDF converts an SVG document to PDF with rsvg-convert. The process is
// killed when ctx ends.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNG converts an SVG document to PNG, multiplying its size by scale.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

func rsvgConvert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := lookPath(rsvgConvertBin)
	if err != nil {
		return nil, errs.New(errs.ErrCodeUnsupported, "%s export requires librsvg. %s", format, installHint)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "rsvg-convert %s: %s", format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
