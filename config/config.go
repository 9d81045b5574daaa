// Package config loads report settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/style"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root configuration structure.
type Config struct {
	Page     PageConfig     `yaml:"page"`
	Font     FontConfig     `yaml:"font"`
	Compress bool           `yaml:"compress"`
	Locale   string         `yaml:"locale"`
	Metadata MetadataConfig `yaml:"metadata"`
	Log      LogConfig      `yaml:"log"`
	Chart    ChartConfig    `yaml:"chart"`
	Index    IndexConfig    `yaml:"index"`
}

// PageConfig holds the page geometry. Margins are in Unit.
type PageConfig struct {
	Size        string        `yaml:"size"`
	Orientation string        `yaml:"orientation"`
	Unit        string        `yaml:"unit"`
	Margins     MarginsConfig `yaml:"margins"`
}

type MarginsConfig struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// FontConfig is the body font; size is in points.
type FontConfig struct {
	Family string  `yaml:"family"`
	Size   float64 `yaml:"size"`
}

type MetadataConfig struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Subject  string `yaml:"subject"`
	Creator  string `yaml:"creator"`
	Keywords string `yaml:"keywords"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// ChartConfig holds chart settings. AxisScript is a JavaScript expression
// formatting the variable value into an axis label.
type ChartConfig struct {
	BarHeight  float64 `yaml:"bar_height"`
	AxisScript string  `yaml:"axis_script"`
}

// IndexConfig controls the index page. An empty title keeps the report
// default.
type IndexConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Title     string `yaml:"title"`
	Separator string `yaml:"separator"`
}

// Default returns A4 portrait in millimetres with 10mm margins and
// helvetica 9pt.
func Default() *Config {
	return &Config{
		Page: PageConfig{
			Size:        "A4",
			Orientation: string(document.Portrait),
			Unit:        string(document.UnitMM),
			Margins:     MarginsConfig{Left: 10, Top: 10, Right: 10, Bottom: 10},
		},
		Font:     FontConfig{Family: style.DefaultFamily, Size: style.DefaultSize},
		Compress: true,
		Locale:   "en",
		Metadata: MetadataConfig{Creator: "calcreport"},
		Log:      LogConfig{Level: "info"},
		Chart:    ChartConfig{BarHeight: 80},
		Index:    IndexConfig{Separator: "."},
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var problems []string
	if _, ok := document.LookupPageSize(c.Page.Size); !ok {
		problems = append(problems, fmt.Sprintf("page size %q", c.Page.Size))
	}
	switch document.Orientation(strings.ToUpper(c.Page.Orientation)) {
	case document.Portrait, document.Landscape:
	default:
		problems = append(problems, fmt.Sprintf("orientation %q", c.Page.Orientation))
	}
	if _, err := document.Unit(c.Page.Unit).Scale(); err != nil {
		problems = append(problems, fmt.Sprintf("unit %q", c.Page.Unit))
	}
	m := c.Page.Margins
	if m.Left < 0 || m.Top < 0 || m.Right < 0 || m.Bottom < 0 {
		problems = append(problems, "negative margin")
	}
	if c.Font.Size <= 0 {
		problems = append(problems, fmt.Sprintf("font size %v", c.Font.Size))
	}
	if _, err := language.Parse(c.Locale); err != nil {
		problems = append(problems, fmt.Sprintf("locale %q", c.Locale))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log level %q", c.Log.Level))
	}
	if c.Chart.BarHeight < 0 {
		problems = append(problems, fmt.Sprintf("bar height %v", c.Chart.BarHeight))
	}
	if len([]rune(c.Index.Separator)) > 1 {
		problems = append(problems, fmt.Sprintf("index separator %q", c.Index.Separator))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, ", "))
	}
	return nil
}

// Language returns the parsed locale, English when it does not parse.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// LogLevel returns the zerolog level, info when it does not parse.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// BodyFont returns the configured font as a style font.
func (c *Config) BodyFont() style.Font {
	return style.Font{Family: c.Font.Family, Size: c.Font.Size}
}

// IndexSeparator returns the leader rune, zero when none is configured.
func (c *Config) IndexSeparator() rune {
	for _, r := range c.Index.Separator {
		return r
	}
	return 0
}

// DocumentOptions converts the page, compression and metadata settings.
func (c *Config) DocumentOptions() []document.Option {
	size, _ := document.LookupPageSize(c.Page.Size)
	m := c.Page.Margins
	return []document.Option{
		document.WithPageSize(size),
		document.WithOrientation(document.Orientation(strings.ToUpper(c.Page.Orientation))),
		document.WithUnit(document.Unit(c.Page.Unit)),
		document.WithMargins(document.Margins{Left: m.Left, Top: m.Top, Right: m.Right, Bottom: m.Bottom}),
		document.WithCompression(c.Compress),
		document.WithInfo(document.Info{
			Title:    c.Metadata.Title,
			Author:   c.Metadata.Author,
			Subject:  c.Metadata.Subject,
			Creator:  c.Metadata.Creator,
			Keywords: c.Metadata.Keywords,
		}),
	}
}
