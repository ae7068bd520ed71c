package cmd

import (
	"fmt"
	"strings"

	"github.com/Watch-Later/Biohazrd/library"
	"github.com/Watch-Later/Biohazrd/session"
	"github.com/Watch-Later/Biohazrd/trampoline"
)

// writeReport renders the trampoline graph into the output session,
// one line per entry point. This is a diagnostic surface, not binding
// code; real emitters consume the collections programmatically.
func writeReport(sess *session.Session, lib *library.Library) error {
	f, err := sess.Open("trampolines.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	var sb strings.Builder
	for _, entry := range lib.Functions() {
		col := lib.Collections[entry.ID]
		fmt.Fprintf(&sb, "function %s (%s, %s)\n", entry.Fn.Name, entry.Fn.MangledName, entry.Fn.Convention)
		sb.WriteString(formatTrampoline("native", col.NativeFunction()))
		if !col.Primary().IsNativeFunction {
			sb.WriteString(formatTrampoline("primary", col.Primary()))
		}
		for _, t := range col.Secondaries() {
			sb.WriteString(formatTrampoline("secondary", t))
		}
		sb.WriteString("\n")
	}

	_, err = f.WriteString(sb.String())
	return err
}

func formatTrampoline(tier string, t trampoline.Trampoline) string {
	var attrs []string
	attrs = append(attrs, t.Shape.Dispatch.String())
	if t.Shape.HasThisPointer {
		attrs = append(attrs, "this")
	}
	if t.Shape.HasReturnBuffer {
		attrs = append(attrs, "retbuf")
	}
	return fmt.Sprintf("  %-9s %s  %s  args=%d  (%s)\n",
		tier, t.Name, strings.Join(attrs, "+"), t.Arity, t.Provenance)
}
