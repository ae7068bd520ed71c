// Package declaration models native C/C++ declarations after ABI
// extraction. Nodes are immutable once constructed: transformation
// passes produce new node values instead of editing in place, and a
// node's identity (its ID) survives every such edit.
package declaration

// ID is the opaque, stable identity of a declaration. It is issued by
// an Arena and is never reused for a different declaration. The zero
// ID is invalid.
type ID struct {
	Index      uint32
	Generation uint32
}

// Valid reports whether the ID was issued by an Arena.
func (id ID) Valid() bool { return id.Generation != 0 }

// Accessibility is a C++ member access level.
type Accessibility int

const (
	Public Accessibility = iota
	Protected
	Private
)

func (a Accessibility) String() string {
	switch a {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// TypeRef is the native spelling of a type. The core does not model
// the native type system beyond its spelling.
type TypeRef string

// Declaration is the interface for all declaration nodes.
type Declaration interface {
	decl()
	// DeclID returns the arena-issued identity, or the zero ID if the
	// node has not been inserted into an arena yet.
	DeclID() ID
	// DeclName returns the canonicalized display name.
	DeclName() string
	// DeclAccess returns the declaration's access level.
	DeclAccess() Accessibility
	// DeclFile returns the originating translation unit path.
	DeclFile() string
	// DeclChildren returns owned child declarations in declaration
	// order. Order is significant.
	DeclChildren() []Declaration

	setID(ID)
}

// base provides the fields shared by all declaration nodes.
type base struct {
	id     ID
	Name   string
	Access Accessibility
	File   string
}

func (b *base) DeclID() ID                  { return b.id }
func (b *base) DeclName() string            { return b.Name }
func (b *base) DeclAccess() Accessibility   { return b.Access }
func (b *base) DeclFile() string            { return b.File }
func (b *base) setID(id ID)                 { b.id = id }
func (b *base) DeclChildren() []Declaration { return nil }

// Function is a free function, member function, constructor,
// destructor, or operator overload.
type Function struct {
	base
	// MangledName is the native link-time symbol, unique within a
	// translation unit.
	MangledName string
	Convention  CallingConvention
	ReturnType  TypeRef
	// Parameters are owned children, in native declaration order.
	Parameters []*Parameter
	// IsInstanceMethod, IsVirtual and IsConst are always false for
	// free functions regardless of what the front end reported.
	IsInstanceMethod bool
	IsVirtual        bool
	IsConst          bool
	// IsOperatorOverload is true for operators, conversion operators,
	// constructors and destructors. Their Name is synthesized.
	IsOperatorOverload bool
	// ReturnsByBuffer is true when the native ABI returns through an
	// implicit caller-allocated buffer parameter.
	ReturnsByBuffer bool
	// VTableSlot is the method's virtual table slot, or -1 when the
	// function is not virtual.
	VTableSlot int
}

func (f *Function) decl() {}

func (f *Function) DeclChildren() []Declaration {
	children := make([]Declaration, len(f.Parameters))
	for i, p := range f.Parameters {
		children[i] = p
	}
	return children
}

// Parameter is a single function parameter.
type Parameter struct {
	base
	Type TypeRef
	// Default is the native spelling of the default value, or empty.
	Default string
}

func (p *Parameter) decl() {}

// NormalField is a non-bitfield data member.
type NormalField struct {
	base
	Type TypeRef
}

func (f *NormalField) decl() {}

// BitField is a data member with an explicit bit width.
type BitField struct {
	base
	Type     TypeRef
	BitWidth int
}

func (f *BitField) decl() {}

// Record is a class, struct or union. Its children are its fields and
// methods in declaration order.
type Record struct {
	base
	Members []Declaration
}

func (r *Record) decl() {}

func (r *Record) DeclChildren() []Declaration { return r.Members }

// Methods returns the record's member functions in declaration order.
func (r *Record) Methods() []*Function {
	var methods []*Function
	for _, m := range r.Members {
		if fn, ok := m.(*Function); ok {
			methods = append(methods, fn)
		}
	}
	return methods
}

// TranslationUnit is the root node for one native source file.
type TranslationUnit struct {
	base
	Decls []Declaration
}

// NewTranslationUnit builds the root node for one native source file.
func NewTranslationUnit(file string) *TranslationUnit {
	return &TranslationUnit{base: base{Name: file, Access: Public, File: file}}
}

func (u *TranslationUnit) decl() {}

func (u *TranslationUnit) DeclChildren() []Declaration { return u.Decls }
