package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/dnephin/pflag"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/ul4"
	"github.com/zephyrtronium/ul4/astload"
	// import for side effects
	_ "github.com/zephyrtronium/ul4/coreext"
)

func main() {
	var (
		varsFile, config, logLevel string
		cpuprofile, memprofile     string
		maxSteps                   int
		stats, builtins, noColor   bool
	)
	flags := pflag.NewFlagSet("ul4", pflag.ExitOnError)
	flags.StringVar(&varsFile, "vars", "", "JSON object of template variables")
	flags.StringVar(&config, "config", "", "YAML options file")
	flags.StringVar(&logLevel, "log-level", "warn", "log level")
	flags.IntVar(&maxSteps, "max-steps", 0, "maximum number of nodes to evaluate, 0 for no limit")
	flags.BoolVar(&stats, "stats", false, "print output size, steps, and time to stderr")
	flags.BoolVar(&builtins, "builtins", false, "list builtins and exit")
	flags.BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	flags.StringVar(&cpuprofile, "cpuprofile", "", "write a CPU profile to this file")
	flags.StringVar(&memprofile, "memprofile", "", "write a heap profile to this file")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: ul4 [flags] fixture.yaml[.gz]")
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])
	color.NoColor = color.NoColor || noColor

	if builtins {
		for _, name := range ul4.Builtins() {
			fmt.Println(name)
		}
		return
	}
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}

	opts := ul4.Options{LogLevel: logLevel}
	if config != "" {
		f, err := open(config)
		if err != nil {
			fail(err)
		}
		opts, err = ul4.LoadOptions(f)
		f.Close()
		if err != nil {
			fail(err)
		}
	}
	if flags.Changed("log-level") || opts.LogLevel == "" {
		opts.LogLevel = logLevel
	}
	if flags.Changed("max-steps") {
		opts.MaxSteps = maxSteps
	}

	vars, err := loadVars(varsFile)
	if err != nil {
		fail(err)
	}
	name := flags.Arg(0)
	tmpl, err := loadTemplate(name)
	if err != nil {
		fail(err)
	}
	if err := ul4.Validate(tmpl); err != nil {
		fail(err)
	}

	out := bufio.NewWriter(os.Stdout)
	cw := &countWriter{w: out}
	c := ul4.NewContext(cw, nil)
	c.Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: color.NoColor}).With().Timestamp().Logger()
	if err := opts.Apply(c); err != nil {
		fail(err)
	}

	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fail(err)
		}
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	start := time.Now()
	_, err = ul4.Exec(ctx, c, tmpl, vars)
	elapsed := time.Since(start)
	stop()
	if cpuprofile != "" {
		pprof.StopCPUProfile()
	}
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if memprofile != "" {
		if err := writeHeap(memprofile); err != nil {
			fail(err)
		}
	}
	if stats {
		fmt.Fprintf(os.Stderr, "%s output, %s steps, %v\n", humanize.Bytes(uint64(cw.n)), humanize.Comma(int64(c.Steps())), elapsed)
	}
	if err != nil {
		trace(err)
		os.Exit(1)
	}
}

// open opens a file, decompressing it if its name ends in .gz.
func open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, ".gz") {
		return f, nil
	}
	z, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("couldn't read %s: %w", name, err)
	}
	return &gzipFile{Reader: z, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if ferr := g.f.Close(); err == nil {
		err = ferr
	}
	return err
}

func readAll(name string) ([]byte, error) {
	f, err := open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func loadTemplate(name string) (*ul4.Template, error) {
	b, err := readAll(name)
	if err != nil {
		return nil, err
	}
	return astload.Load(strings.TrimSuffix(name, ".gz"), b)
}

// loadVars reads a JSON object of variables. Integers that don't fit in an
// int64 stay exact.
func loadVars(name string) (map[string]interface{}, error) {
	if name == "" {
		return nil, nil
	}
	b, err := readAll(name)
	if err != nil {
		return nil, err
	}
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	var vars map[string]interface{}
	if err := d.Decode(&vars); err != nil {
		return nil, fmt.Errorf("couldn't parse variables from %s: %w", name, err)
	}
	for k, v := range vars {
		vars[k] = numbers(v)
	}
	return vars, nil
}

func numbers(v interface{}) interface{} {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if n, ok := new(big.Int).SetString(x.String(), 10); ok {
			return n
		}
		f, _ := x.Float64()
		return f
	case []interface{}:
		for i, e := range x {
			x[i] = numbers(e)
		}
	case map[string]interface{}:
		for k, e := range x {
			x[k] = numbers(e)
		}
	}
	return v
}

func writeHeap(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

type countWriter struct {
	w io.Writer
	n int
}

func (w *countWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.n += n
	return n, err
}

// trace prints an error with its locations, innermost last.
func trace(err error) {
	red := color.New(color.FgRed, color.Bold)
	loc := color.New(color.FgCyan)
	var le *ul4.LocationError
	if !errors.As(err, &le) {
		red.Fprintln(os.Stderr, "error:", err)
		return
	}
	var chain []*ul4.LocationError
	for e := error(le); ; {
		l, ok := e.(*ul4.LocationError)
		if !ok {
			red.Fprintln(os.Stderr, "error:", e)
			break
		}
		chain = append(chain, l)
		e = l.Err
	}
	for _, l := range chain {
		fmt.Fprint(os.Stderr, "\tat ")
		loc.Fprintln(os.Stderr, l.Location())
	}
}

func fail(err error) {
	color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "ul4:", err)
	os.Exit(1)
}
