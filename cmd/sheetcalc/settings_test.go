package main

import (
	"strings"
	"testing"
)

func TestConfigure(t *testing.T) {
	tests := []struct {
		Directive string
		Want      settings
		Invalid   bool
	}{
		{Directive: "calc.mode=eager", Want: settings{Eager: true}},
		{Directive: "calc.mode = manual", Want: settings{}},
		{Directive: "calc.maxcells=5000", Want: settings{MaxCells: 5000}},
		{Directive: "csv.comma=;", Want: settings{Comma: ';'}},
		{Directive: "csv.comma=tab", Want: settings{Comma: '\t'}},
		{Directive: "sheet.name=Data", Want: settings{Sheet: "Data"}},
		{Directive: "print.number=#,##0.00", Want: settings{Number: "#,##0.00"}},
		{Directive: "print.number=abc", Invalid: true},
		{Directive: "calc.mode=sometimes", Invalid: true},
		{Directive: "calc.maxcells=-1", Invalid: true},
		{Directive: "calc=eager", Invalid: true},
		{Directive: "print.rows=10", Invalid: true},
		{Directive: "calc.mode", Invalid: true},
	}
	for _, c := range tests {
		var s settings
		err := s.configure(c.Directive)
		if c.Invalid {
			if err == nil {
				t.Errorf("%s: expected error", c.Directive)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Directive, err)
			continue
		}
		if s != c.Want {
			t.Errorf("%s: want %+v, got %+v", c.Directive, c.Want, s)
		}
	}
}

func TestUnknownDirective(t *testing.T) {
	tests := []struct {
		Directive string
		Want      string
	}{
		{Directive: "print.rows=10", Want: "print.number"},
		{Directive: "calc.speed=1", Want: "calc.maxcells, calc.mode"},
		{Directive: "color=red", Want: "calc.maxcells, calc.mode, csv.comma, print.number, sheet.name"},
	}
	for _, c := range tests {
		var s settings
		err := s.configure(c.Directive)
		if err == nil {
			t.Errorf("%s: expected error", c.Directive)
			continue
		}
		if !strings.HasSuffix(err.Error(), "(try "+c.Want+")") {
			t.Errorf("%s: want suggestions %s, got %s", c.Directive, c.Want, err)
		}
	}
}

func TestCsvSeparator(t *testing.T) {
	tests := []struct {
		Input string
		Want  byte
	}{
		{Input: "", Want: ','},
		{Input: "semi", Want: ';'},
		{Input: "|", Want: '|'},
		{Input: "colon", Want: ':'},
	}
	for _, c := range tests {
		got, err := csvSeparator(c.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s: want %q, got %q", c.Input, c.Want, got)
		}
	}
	if _, err := csvSeparator("dot"); err == nil {
		t.Errorf("unsupported separator accepted")
	}
}
