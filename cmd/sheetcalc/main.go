package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/midbel/cli"
	"github.com/midbel/sheetcalc/csv"
	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/grid"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/oxml"
	"github.com/midbel/sheetcalc/value"
)

var errFail = errors.New("fail")

var (
	summary = "sheetcalc"
	help    = "evaluate the formulas of csv and xlsx files"
)

func main() {
	var (
		set  = cli.NewFlagSet("sheetcalc")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"eval"}, &evalCmd)
	root.Register([]string{"set"}, &setCmd)
	root.Register([]string{"deps"}, &depsCmd)
	root.Register([]string{"rpn"}, &rpnCmd)
	root.Register([]string{"export"}, &exportCmd)

	return root
}

var evalCmd = cli.Command{
	Name:    "eval",
	Alias:   []string{"print", "show"},
	Summary: "evaluate the cells of a spreadsheet",
	Usage:   "eval [-s sheet] [-d directive] [-v] <file> [addr...]",
	Handler: &EvalCommand{},
}

var setCmd = cli.Command{
	Name:    "set",
	Summary: "change cells of a spreadsheet and show what is recomputed",
	Usage:   "set [-s sheet] [-d directive] [-v] <file> <addr=value|addr==formula>... [-- addr...]",
	Handler: &SetCommand{},
}

var depsCmd = cli.Command{
	Name:    "deps",
	Alias:   []string{"depends"},
	Summary: "show the precedents and the dependents of a cell",
	Usage:   "deps [-s sheet] [-d directive] <file> <addr>",
	Handler: &DepsCommand{},
}

var rpnCmd = cli.Command{
	Name:    "rpn",
	Alias:   []string{"compile"},
	Summary: "show the tokens and the postfix instructions of a formula",
	Usage:   "rpn [-s sheet] <formula>",
	Handler: &CompileCommand{},
}

var exportCmd = cli.Command{
	Name:    "export",
	Alias:   []string{"extract"},
	Summary: "write the evaluated values of a sheet as csv",
	Usage:   "export [-o file] [-c delimiter] [-s sheet] <file>",
	Handler: &ExportCommand{},
}

type EvalCommand struct {
	settings
}

func (c EvalCommand) Run(args []string) error {
	set := cli.NewFlagSet("eval")
	c.attach(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return fmt.Errorf("missing file")
	}
	wb, err := c.load(set.Arg(0))
	if err != nil {
		return err
	}
	if set.NArg() == 1 {
		sheets := wb.Sheets()
		if c.Sheet != "" {
			sheets = []string{c.Sheet}
		}
		for _, s := range sheets {
			if err := printSheet(os.Stdout, wb, s, c.formatter()); err != nil {
				return err
			}
		}
		reportCirculars(wb)
		return nil
	}
	list, err := parseAddrs(set.Args()[1:], wb.Sheet())
	if err != nil {
		return err
	}
	if err := printCells(os.Stdout, wb, list, c.formatter()); err != nil {
		return err
	}
	reportCirculars(wb)
	return nil
}

type SetCommand struct {
	settings
}

func (c SetCommand) Run(args []string) error {
	set := cli.NewFlagSet("set")
	c.attach(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() < 2 {
		return fmt.Errorf("missing file or mutations")
	}
	wb, err := c.load(set.Arg(0))
	if err != nil {
		return err
	}
	var (
		rest      = set.Args()[1:]
		mutations = rest
		watched   []string
	)
	if ix := indexOf(rest, "--"); ix >= 0 {
		mutations, watched = rest[:ix], rest[ix+1:]
	}
	var dirty []layout.Position
	for _, m := range mutations {
		pos, err := applyMutation(wb, m)
		if err != nil {
			return err
		}
		dirty = append(dirty, wb.DirtyClosure(pos)...)
	}
	if len(dirty) > 0 {
		fmt.Fprintln(os.Stdout, "dirty:", joinPositions(uniquePositions(dirty)))
	}
	list := uniquePositions(dirty)
	if len(watched) > 0 {
		if list, err = parseAddrs(watched, wb.Sheet()); err != nil {
			return err
		}
	}
	if len(list) == 0 {
		return nil
	}
	before := wb.Evaluations()
	if err := printCells(os.Stdout, wb, list, c.formatter()); err != nil {
		return err
	}
	slog.Debug("cells recomputed", "count", wb.Evaluations()-before)
	reportCirculars(wb)
	return nil
}

type DepsCommand struct {
	settings
}

func (c DepsCommand) Run(args []string) error {
	set := cli.NewFlagSet("deps")
	c.attach(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 2 {
		return fmt.Errorf("invalid number of arguments")
	}
	wb, err := c.load(set.Arg(0))
	if err != nil {
		return err
	}
	pos, err := parseAddr(set.Arg(1), wb.Sheet())
	if err != nil {
		return err
	}
	if cell, ok := wb.Cell(pos); ok && cell.Formula() != "" {
		fmt.Fprintf(os.Stdout, "formula:    %s\n", cell.Formula())
	}
	fmt.Fprintf(os.Stdout, "precedents: %s\n", joinPositions(wb.Precedents(pos)))
	fmt.Fprintf(os.Stdout, "dependents: %s\n", joinPositions(wb.Dependents(pos)))
	fmt.Fprintf(os.Stdout, "closure:    %s\n", joinPositions(wb.DirtyClosure(pos)))
	return nil
}

type CompileCommand struct {
	Sheet    string
	MaxCells int
}

func (c CompileCommand) Run(args []string) error {
	set := cli.NewFlagSet("rpn")
	set.StringVar(&c.Sheet, "s", layout.DefaultSheet, "sheet of the formula")
	set.IntVar(&c.MaxCells, "m", formula.DefaultMaxCells, "maximum number of cells in a range")
	if err := set.Parse(args); err != nil {
		return err
	}
	text := strings.Join(set.Args(), " ")
	if !strings.HasPrefix(text, "=") {
		text = "=" + text
	}
	cpl := formula.Compiler{
		MaxCells: int64(c.MaxCells),
	}
	f, err := cpl.Compile(text, c.Sheet)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "tokens:")
	for _, t := range f.Tokens {
		fmt.Fprintf(os.Stdout, "  %s\n", t)
	}
	fmt.Fprintln(os.Stdout, "instructions:")
	fmt.Fprint(os.Stdout, formula.Dump(f.Nodes))
	fmt.Fprintf(os.Stdout, "precedents: %s\n", joinPositions(f.Precedents))
	fmt.Fprintf(os.Stdout, "formula:    %s\n", f)
	return nil
}

type ExportCommand struct {
	settings
	OutFile string
	Sep     string
}

func (c ExportCommand) Run(args []string) error {
	set := cli.NewFlagSet("export")
	c.attach(set)
	set.StringVar(&c.OutFile, "o", "", "write result to output file")
	set.StringVar(&c.Sep, "c", "", "delimiter to use")
	if err := set.Parse(args); err != nil {
		return err
	}
	comma, err := csvSeparator(c.Sep)
	if err != nil {
		return err
	}
	wb, err := c.load(set.Arg(0))
	if err != nil {
		return err
	}
	sheet := c.Sheet
	if sheet == "" {
		sheet = wb.Sheet()
	}
	var w io.Writer = os.Stdout
	if c.OutFile != "" {
		f, err := os.Create(c.OutFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return csv.Export(w, wb, sheet, comma)
}

func applyMutation(wb *grid.Workbook, str string) (layout.Position, error) {
	addr, text, ok := strings.Cut(str, "=")
	if !ok {
		return layout.Position{}, fmt.Errorf("%s: mutation should be addr=value or addr==formula", str)
	}
	pos, err := parseAddr(addr, wb.Sheet())
	if err != nil {
		return pos, err
	}
	if strings.HasPrefix(text, "=") {
		err = wb.SetFormula(pos, text)
	} else {
		err = wb.SetValue(pos, value.Parse(text))
	}
	return pos, err
}

func parseAddr(str, sheet string) (layout.Position, error) {
	pos, err := layout.ParsePosition(strings.TrimSpace(str))
	if err != nil {
		return pos, err
	}
	return pos.Qualify(sheet), nil
}

func parseAddrs(list []string, sheet string) ([]layout.Position, error) {
	var res []layout.Position
	for _, str := range list {
		pos, err := parseAddr(str, sheet)
		if err != nil {
			return nil, err
		}
		res = append(res, pos)
	}
	return res, nil
}

func indexOf(list []string, str string) int {
	for i := range list {
		if list[i] == str {
			return i
		}
	}
	return -1
}

var magicZipBytes = [][]byte{
	{0x50, 0x4b, 0x03, 0x04},
	{0x50, 0x4b, 0x05, 0x06},
	{0x50, 0x4b, 0x07, 0x08},
}

func isZip(file string) (bool, error) {
	r, err := os.Open(file)
	if err != nil {
		return false, err
	}
	defer r.Close()

	magic := make([]byte, 4)
	if n, err := io.ReadFull(r, magic); err != nil || n != len(magic) {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = nil
		}
		return false, err
	}
	for _, mzb := range magicZipBytes {
		if bytes.Equal(magic, mzb) {
			return true, nil
		}
	}
	return false, nil
}

func csvSeparator(str string) (byte, error) {
	var comma byte
	switch str {
	case "semi", "semicolon", ";":
		comma = ';'
	case "comma", ",", "":
		comma = ','
	case "tab", "\t":
		comma = '\t'
	case "colon", ":":
		comma = ':'
	case "pipe", "|":
		comma = '|'
	default:
		return 0, fmt.Errorf("%s: unsupported separator", str)
	}
	return comma, nil
}

func loadFile(file string, s settings) (*grid.Workbook, error) {
	zip, err := isZip(file)
	if err != nil {
		return nil, err
	}
	options := s.options()
	if zip {
		if s.Sheet != "" {
			options = append(options, grid.WithSheet(s.Sheet))
		}
		return oxml.OpenFile(file, options...)
	}
	return csv.Open(file, s.Sheet, s.Comma, options...)
}
