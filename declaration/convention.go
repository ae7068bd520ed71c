package declaration

import "strings"

// CallingConvention is a target-representable calling convention.
// Native conventions outside this closed set fail extraction; code
// generation cannot proceed on a guessed convention.
type CallingConvention int

const (
	Cdecl CallingConvention = iota
	StdCall
	ThisCall
	FastCall
	VectorCall
)

func (c CallingConvention) String() string {
	switch c {
	case Cdecl:
		return "cdecl"
	case StdCall:
		return "stdcall"
	case ThisCall:
		return "thiscall"
	case FastCall:
		return "fastcall"
	case VectorCall:
		return "vectorcall"
	default:
		return "unknown"
	}
}

// conventions maps front-end calling convention identifiers to the
// target enumeration. "c" is the identifier clang reports for the
// default C convention.
var conventions = map[string]CallingConvention{
	"c":          Cdecl,
	"cdecl":      Cdecl,
	"stdcall":    StdCall,
	"thiscall":   ThisCall,
	"fastcall":   FastCall,
	"vectorcall": VectorCall,
}

// ResolveConvention maps a native calling convention identifier to the
// target enumeration. Unknown identifiers return false; callers must
// treat that as a construction failure, never as a default.
func ResolveConvention(native string) (CallingConvention, bool) {
	c, ok := conventions[strings.ToLower(native)]
	return c, ok
}
