package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/midbel/sheetcalc/format"
	"github.com/midbel/sheetcalc/grid"
	"github.com/midbel/sheetcalc/internal/ds"
)

type flagSet interface {
	StringVar(*string, string, string, string)
	BoolVar(*bool, string, bool, string)
	Func(string, string, func(string) error)
}

type settings struct {
	Sheet    string
	Comma    byte
	Eager    bool
	MaxCells int64
	Verbose  bool
	Number   string
}

func (s *settings) attach(set flagSet) {
	set.StringVar(&s.Sheet, "s", "", "default sheet")
	set.BoolVar(&s.Verbose, "v", false, "log the work of the engine")
	set.Func("d", "set a directive ("+strings.Join(directives.Names(""), ", ")+")", s.configure)
}

func (s *settings) configure(str string) error {
	key, val, ok := strings.Cut(str, "=")
	if !ok {
		return fmt.Errorf("%s: directive should be name=value", str)
	}
	fn, ok := directives.Get(key)
	if !ok {
		return fmt.Errorf("%s: unknown directive (try %s)", key, strings.Join(directives.Closest(key), ", "))
	}
	return fn(s, strings.TrimSpace(val))
}

func (s *settings) options() []grid.Option {
	logger := slog.New(slog.DiscardHandler)
	if s.Verbose {
		opts := slog.HandlerOptions{
			Level: slog.LevelDebug,
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &opts))
	}
	slog.SetDefault(logger)

	options := []grid.Option{
		grid.WithLogger(logger),
		grid.WithEager(s.Eager),
	}
	if s.MaxCells > 0 {
		options = append(options, grid.WithMaxCells(s.MaxCells))
	}
	return options
}

func (s *settings) formatter() *format.ValueFormatter {
	vf := format.FormatValue()
	if s.Number != "" {
		vf.Number(s.Number)
	}
	return vf
}

func (s *settings) load(file string) (*grid.Workbook, error) {
	if file == "" {
		return nil, fmt.Errorf("missing file")
	}
	return loadFile(file, *s)
}

type directiveFunc func(*settings, string) error

var directives *ds.Trie[directiveFunc]

func init() {
	directives = ds.NewTrie[directiveFunc]()
	directives.Register("calc.mode", configureMode)
	directives.Register("calc.maxcells", configureMaxCells)
	directives.Register("csv.comma", configureComma)
	directives.Register("sheet.name", configureSheet)
	directives.Register("print.number", configureNumber)
}

func configureMode(s *settings, str string) error {
	switch str {
	case "eager", "auto", "automatic":
		s.Eager = true
	case "lazy", "manual":
		s.Eager = false
	default:
		return fmt.Errorf("%s: unsupported calculation mode", str)
	}
	return nil
}

func configureMaxCells(s *settings, str string) error {
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s: maxcells should be a positive number", str)
	}
	s.MaxCells = n
	return nil
}

func configureComma(s *settings, str string) error {
	comma, err := csvSeparator(str)
	if err == nil {
		s.Comma = comma
	}
	return err
}

func configureSheet(s *settings, str string) error {
	if str == "" {
		return fmt.Errorf("empty sheet name")
	}
	s.Sheet = str
	return nil
}

func configureNumber(s *settings, str string) error {
	if _, err := format.ParseNumberFormatter(str); err != nil {
		return err
	}
	s.Number = str
	return nil
}
