package declaration

import "fmt"

// ABI extraction: the deterministic mapping from raw front-end records
// to declaration nodes. Each constructor validates the raw kind it was
// handed; callers dispatch on kind (and on field kind) before choosing
// a variant.

// NewFunction builds a Function node from a raw function declaration.
//
// Free functions deliberately ignore the raw access and qualifier
// data: front ends report access specifiers for free functions that
// carry no semantic meaning, and letting them leak through would make
// downstream passes behave differently across front ends. A free
// function is always public, non-instance, non-virtual and non-const.
func NewFunction(raw Raw) (*Function, error) {
	if raw.Kind != RawFunction {
		return nil, &ConstructionError{Kind: raw.Kind, Name: raw.Spelling, Reason: "not a function declaration"}
	}

	conv, ok := ResolveConvention(raw.Convention)
	if !ok {
		return nil, &ConstructionError{
			Kind:   raw.Kind,
			Name:   raw.Spelling,
			Reason: fmt.Sprintf("unsupported calling convention %q", raw.Convention),
		}
	}

	fn := &Function{
		base: base{
			Name:   CanonicalName(raw),
			Access: Public,
			File:   raw.File,
		},
		MangledName:        raw.MangledName,
		Convention:         conv,
		ReturnType:         TypeRef(raw.Type),
		IsOperatorOverload: raw.Operator != OperatorNone,
		ReturnsByBuffer:    raw.ReturnBuffer,
		VTableSlot:         -1,
	}

	if raw.Method {
		access, err := parseAccess(raw)
		if err != nil {
			return nil, err
		}
		fn.Access = access
		fn.IsInstanceMethod = !raw.Static
		fn.IsVirtual = raw.Virtual
		fn.IsConst = raw.Const
		if raw.Virtual {
			fn.VTableSlot = raw.VTableSlot
		}
	}

	for _, p := range raw.Params {
		param, err := NewParameter(p)
		if err != nil {
			return nil, err
		}
		fn.Parameters = append(fn.Parameters, param)
	}

	return fn, nil
}

// NewParameter builds a Parameter node from a raw parameter.
func NewParameter(raw Raw) (*Parameter, error) {
	if raw.Kind != RawParameter {
		return nil, &ConstructionError{Kind: raw.Kind, Name: raw.Spelling, Reason: "not a parameter declaration"}
	}
	return &Parameter{
		base:    base{Name: raw.Spelling, Access: Public, File: raw.File},
		Type:    TypeRef(raw.Type),
		Default: raw.Default,
	}, nil
}

// NewNormalField builds a NormalField node. Handing it a bitfield is a
// construction error; dispatch on the raw field kind first.
func NewNormalField(raw Raw) (*NormalField, error) {
	if raw.Kind != RawField {
		return nil, &ConstructionError{Kind: raw.Kind, Name: raw.Spelling, Reason: "not a field declaration"}
	}
	if raw.FieldKind != FieldNormal {
		return nil, &ConstructionError{
			Kind:   raw.Kind,
			Name:   raw.Spelling,
			Reason: fmt.Sprintf("field kind %q is not a normal field", raw.FieldKind),
		}
	}
	access, err := parseAccess(raw)
	if err != nil {
		return nil, err
	}
	return &NormalField{
		base: base{Name: raw.Spelling, Access: access, File: raw.File},
		Type: TypeRef(raw.Type),
	}, nil
}

// NewBitField builds a BitField node from a raw bitfield member.
func NewBitField(raw Raw) (*BitField, error) {
	if raw.Kind != RawField {
		return nil, &ConstructionError{Kind: raw.Kind, Name: raw.Spelling, Reason: "not a field declaration"}
	}
	if raw.FieldKind != FieldBitfield {
		return nil, &ConstructionError{
			Kind:   raw.Kind,
			Name:   raw.Spelling,
			Reason: fmt.Sprintf("field kind %q is not a bitfield", raw.FieldKind),
		}
	}
	access, err := parseAccess(raw)
	if err != nil {
		return nil, err
	}
	return &BitField{
		base:     base{Name: raw.Spelling, Access: access, File: raw.File},
		Type:     TypeRef(raw.Type),
		BitWidth: raw.BitWidth,
	}, nil
}

// NewRecord builds a Record node, dispatching each member on its
// native kind. A member that cannot be represented aborts the whole
// record.
func NewRecord(raw Raw) (*Record, error) {
	if raw.Kind != RawRecord {
		return nil, &ConstructionError{Kind: raw.Kind, Name: raw.Spelling, Reason: "not a record declaration"}
	}
	access, err := parseAccess(raw)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		base: base{Name: raw.Spelling, Access: access, File: raw.File},
	}
	for _, m := range raw.Members {
		member, err := newMember(m)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", raw.Spelling, err)
		}
		rec.Members = append(rec.Members, member)
	}
	return rec, nil
}

func newMember(raw Raw) (Declaration, error) {
	switch raw.Kind {
	case RawFunction:
		return NewFunction(raw)
	case RawField:
		if raw.FieldKind == FieldBitfield {
			return NewBitField(raw)
		}
		return NewNormalField(raw)
	default:
		return nil, &ConstructionError{Kind: raw.Kind, Name: raw.Spelling, Reason: "unsupported record member kind"}
	}
}

// parseAccess maps a raw access specifier string. An empty specifier
// defaults to public; anything else outside the three C++ levels is a
// construction error.
func parseAccess(raw Raw) (Accessibility, error) {
	switch raw.Access {
	case "", "public":
		return Public, nil
	case "protected":
		return Protected, nil
	case "private":
		return Private, nil
	default:
		return Public, &ConstructionError{
			Kind:   raw.Kind,
			Name:   raw.Spelling,
			Reason: fmt.Sprintf("unknown access specifier %q", raw.Access),
		}
	}
}
