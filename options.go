package ul4

import (
	"fmt"
	"html"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

// Options configures a Context.
type Options struct {
	// MaxSteps limits the number of nodes evaluated. Zero means no limit.
	MaxSteps int `yaml:"max_steps"`
	// LogLevel sets the level of the context's logger, e.g. "debug".
	LogLevel string `yaml:"log_level"`
	// Escape selects the escaping of printx and renderx: "xml", the default,
	// or "none".
	Escape string `yaml:"escape"`
	// Indent is prefixed to every indent node.
	Indent string `yaml:"indent"`
}

// LoadOptions reads options in YAML from r.
func LoadOptions(r io.Reader) (Options, error) {
	var o Options
	b, err := io.ReadAll(r)
	if err != nil {
		return o, fmt.Errorf("couldn't read options: %w", err)
	}
	if err := yaml.UnmarshalStrict(b, &o); err != nil {
		return o, fmt.Errorf("couldn't parse options: %w", err)
	}
	return o, nil
}

// Apply configures c. The context's logger keeps its output and takes the
// configured level.
func (o Options) Apply(c *Context) error {
	c.MaxSteps = o.MaxSteps
	if o.LogLevel != "" {
		lvl, err := zerolog.ParseLevel(o.LogLevel)
		if err != nil {
			return fmt.Errorf("bad log level: %w", err)
		}
		c.Log = c.Log.Level(lvl)
	}
	switch o.Escape {
	case "", "xml":
		c.XEscape = html.EscapeString
	case "none":
		c.XEscape = nil
	default:
		return fmt.Errorf("unknown escape %q", o.Escape)
	}
	if o.Indent != "" {
		c.PushIndent(o.Indent)
	}
	return nil
}
