package clibase

import (
	"bytes"
	"flag"
	"io"
	"strings"
	"testing"
)

func TestRegisterAndValidate(t *testing.T) {
	var c Common
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	Register(fs, &c)
	if err := fs.Parse([]string{"-q", "--fai-idx", "x.fai"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !c.Quiet || c.FAIPath != "x.fai" {
		t.Fatalf("flags not bound: %+v", c)
	}
	if err := Validate(&c, "ref.fa"); err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, in := range []string{"", "-", "x.fai"} {
		if err := Validate(&c, in); err == nil {
			t.Errorf("expected error for input %q", in)
		}
	}
}

func TestUsageShowsDefaults(t *testing.T) {
	var c Common
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	Register(fs, &c)
	UsageCommon(fs, "faidx", "random access to FASTA", func(out io.Writer, def func(string) string) {
		_, _ = out.Write([]byte("EXTRA quiet=" + def("quiet") + "\n"))
	})
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	fs.Usage()
	s := buf.String()
	for _, want := range []string{"faidx – random access to FASTA", "EXTRA quiet=false", "--gzi-idx", "--version"} {
		if !strings.Contains(s, want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

func TestPrintExamples(t *testing.T) {
	var buf bytes.Buffer
	PrintExamples(&buf, "faidx", "faidx ref.fa", "faidx ref.fa chr1:1-100")
	s := buf.String()
	if !strings.HasPrefix(s, "faidx — quickstart") || !strings.Contains(s, "  faidx ref.fa chr1:1-100\n") {
		t.Fatalf("unexpected examples output:\n%s", s)
	}
	PrintExamples(nil, "x") // must not panic
}
