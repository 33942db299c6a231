package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/pathdraw/pkg/pipeline"
)

// defaultConfigFile is read from the working directory when present.
const defaultConfigFile = appName + ".toml"

// Config holds the drawing settings shared by every command. Keys match the
// long flag names.
type Config struct {
	Root              string  `koanf:"root"`
	PlotOnlyCentral   bool    `koanf:"only-central"`
	FilterCofactors   bool    `koanf:"filter-cofactors"`
	FilterSinkSpecies bool    `koanf:"filter-sinks"`
	CofactorFile      string  `koanf:"cofactors"`
	Width             float64 `koanf:"width"`
	YGap              float64 `koanf:"y-gap"`
	XCenter           float64 `koanf:"x-center"`
	Lenient           bool    `koanf:"lenient"`
	Formats           string  `koanf:"format"`
	SubplotWidth      float64 `koanf:"subplot-width"`
	SubplotHeight     float64 `koanf:"subplot-height"`
	Detailed          bool    `koanf:"detailed"`
	HideCofactors     bool    `koanf:"hide-cofactors"`
}

// defaults mirrors pipeline.DefaultOptions.
func defaults() map[string]any {
	d := pipeline.DefaultOptions()
	return map[string]any{
		"only-central":     d.PlotOnlyCentral,
		"filter-cofactors": d.FilterCofactors,
		"filter-sinks":     d.FilterSinkSpecies,
		"width":            d.Width,
		"y-gap":            d.YGap,
		"x-center":         d.XCenter,
		"lenient":          d.LenientOrder,
		"format":           strings.Join(d.Formats, ","),
		"subplot-width":    d.SubplotWidth,
		"subplot-height":   d.SubplotHeight,
	}
}

// Load reads configuration from defaults, the config file, environment
// variables and flags. Priority: Flags > Env > Config File > Defaults.
//
// An empty path reads pathdraw.toml when it exists. An explicit path must
// exist.
func Load(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found", path)
			}
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	// 3. Environment, e.g. PATHDRAW_Y_GAP=0.3
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Options converts the configuration into pipeline options.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Root:              c.Root,
		PlotOnlyCentral:   c.PlotOnlyCentral,
		FilterCofactors:   c.FilterCofactors,
		FilterSinkSpecies: c.FilterSinkSpecies,
		CofactorFile:      c.CofactorFile,
		Width:             c.Width,
		YGap:              c.YGap,
		XCenter:           c.XCenter,
		LenientOrder:      c.Lenient,
		Formats:           parseFormats(c.Formats),
		SubplotWidth:      c.SubplotWidth,
		SubplotHeight:     c.SubplotHeight,
		Detailed:          c.Detailed,
		HideCofactors:     c.HideCofactors,
	}
}

// addFilterFlags registers the species filter flags.
func addFilterFlags(fs *pflag.FlagSet) {
	d := pipeline.DefaultOptions()
	fs.Bool("only-central", d.PlotOnlyCentral, "hide species that are not central to the pathway")
	fs.Bool("filter-cofactors", d.FilterCofactors, "hide species listed in the cofactor table")
	fs.Bool("filter-sinks", d.FilterSinkSpecies, "apply the filters to sink species too")
	fs.String("cofactors", "", "cofactor table file (.json or .toml)")
}

// addDrawFlags registers every flag of the draw command.
func addDrawFlags(fs *pflag.FlagSet) {
	d := pipeline.DefaultOptions()
	fs.StringP("root", "r", "", "species to lay the pathway out from (usually the target)")
	addFilterFlags(fs)
	fs.Float64("width", d.Width, "horizontal extent of each rank before normalization")
	fs.Float64("y-gap", d.YGap, "distance between consecutive ranks before normalization")
	fs.Float64("x-center", d.XCenter, "horizontal center of each rank before normalization")
	fs.Bool("lenient", d.LenientOrder, "accept reaction orders through branching species")
	fs.StringP("format", "f", strings.Join(d.Formats, ","), "output formats: svg, png, pdf, dot, json (comma-separated)")
	fs.Float64("subplot-width", d.SubplotWidth, "pixel width of one node box")
	fs.Float64("subplot-height", d.SubplotHeight, "pixel height of one node box")
	fs.Bool("detailed", false, "print structure identifiers under species labels")
	fs.Bool("hide-cofactors", false, "omit cofactor labels beside reactions")
}

// mapProvider adapts a map to koanf.Provider.
type mapProvider map[string]any

func (p mapProvider) Read() (map[string]any, error) { return p, nil }

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("map provider does not support ReadBytes")
}
