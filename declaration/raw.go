package declaration

// This file defines the raw declaration records produced by the native
// parsing front end. The front end (out of scope here) emits these as
// JSON; the extractor consumes them and never re-inspects native
// details afterwards.

// RawKind is the native kind of a raw declaration.
type RawKind string

const (
	RawFunction  RawKind = "function"
	RawField     RawKind = "field"
	RawParameter RawKind = "parameter"
	RawRecord    RawKind = "record"
)

// FieldKind distinguishes normal data members from bitfields.
type FieldKind string

const (
	FieldNormal   FieldKind = "normal"
	FieldBitfield FieldKind = "bitfield"
)

// OperatorKind classifies operator-like declarations. The empty value
// means the declaration is an ordinary function.
type OperatorKind string

const (
	OperatorNone        OperatorKind = ""
	OperatorBinary      OperatorKind = "binary"
	OperatorUnary       OperatorKind = "unary"
	OperatorConversion  OperatorKind = "conversion"
	OperatorConstructor OperatorKind = "constructor"
	OperatorDestructor  OperatorKind = "destructor"
)

// Raw is one native declaration as reported by the front end.
type Raw struct {
	Kind        RawKind `json:"kind"`
	Spelling    string  `json:"spelling"`
	MangledName string  `json:"mangledName,omitempty"`
	File        string  `json:"file,omitempty"`
	Access      string  `json:"access,omitempty"`
	Type        string  `json:"type,omitempty"`

	// Function facts.
	Convention   string `json:"callingConvention,omitempty"`
	Method       bool   `json:"method,omitempty"`
	Static       bool   `json:"static,omitempty"`
	Virtual      bool   `json:"virtual,omitempty"`
	Const        bool   `json:"const,omitempty"`
	ReturnBuffer bool   `json:"returnBuffer,omitempty"`
	VTableSlot   int    `json:"vtableSlot,omitempty"`

	// Operator classification.
	Operator       OperatorKind `json:"operator,omitempty"`
	OperatorSymbol string       `json:"operatorSymbol,omitempty"`

	// Field facts.
	FieldKind FieldKind `json:"fieldKind,omitempty"`
	BitWidth  int       `json:"bitWidth,omitempty"`

	// Parameter facts.
	Default string `json:"default,omitempty"`

	// Ordered children: parameters for functions, members for records.
	Params  []Raw `json:"params,omitempty"`
	Members []Raw `json:"members,omitempty"`
}
