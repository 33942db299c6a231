package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/pathdraw/pkg/io"
	"github.com/matzehuels/pathdraw/pkg/render"
	"github.com/matzehuels/pathdraw/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. SVG is
// composed once and reused for PNG and PDF conversion.
func Render(ctx context.Context, result *Result, opts Options) (map[string][]byte, error) {
	if result == nil || result.Diagram == nil {
		return nil, fmt.Errorf("nothing to render")
	}
	compositor := nodelink.Compositor{Options: nodelink.Options{
		Detailed:      opts.Detailed,
		HideCofactors: opts.HideCofactors,
	}}

	var svg []byte
	composeSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = compositor.Compose(ctx, result.Diagram)
		return svg, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = composeSVG()
		case FormatPNG:
			if data, err = composeSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, DefaultPNGScale)
			}
		case FormatPDF:
			if data, err = composeSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatDOT:
			data = []byte(nodelink.ToDOT(result.Diagram, compositor.Options))
		case FormatJSON:
			data, err = encodeDrawing(result)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func encodeDrawing(result *Result) ([]byte, error) {
	var buf bytes.Buffer
	err := io.WriteLayoutJSON(io.Drawing{
		Layout:     result.Layout,
		Order:      result.Order,
		Steps:      result.Steps,
		OrderError: result.OrderErr,
	}, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
