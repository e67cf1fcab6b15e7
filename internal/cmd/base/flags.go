package base

import (
	"bytes"
	"flag"
	"io"
	"strings"
)

// FlagSet wraps flag.FlagSet with help text rendering for cli.Command.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned to the caller rather than
// printed, so commands report them through their UI.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help renders the flag defaults for a command's Help text.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	f.SetOutput(&buf)
	f.PrintDefaults()
	f.SetOutput(io.Discard)

	if buf.Len() == 0 {
		return ""
	}
	return "\n\nOptions:\n\n" + strings.TrimRight(buf.String(), "\n")
}

// StringSliceVar defines a comma-separated string list flag.
func (f *FlagSet) StringSliceVar(p *[]string, name string, usage string) {
	f.Var((*stringSlice)(p), name, usage)
}

type stringSlice []string

func (s *stringSlice) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}
