package declaration

// Synthesized names for operator-like declarations. The rewrite is
// unconditional and happens during extraction, so transformation
// passes never see the original native spelling for these kinds.
const (
	ConstructorName        = "Constructor"
	DestructorName         = "Destructor"
	ConversionOperatorName = "____ConversionOperator"
)

// canonicalNames maps operator classifications with a fixed synthetic
// name. Binary and unary operators are handled separately because
// their name depends on the operator symbol.
var canonicalNames = map[OperatorKind]string{
	OperatorConversion:  ConversionOperatorName,
	OperatorConstructor: ConstructorName,
	OperatorDestructor:  DestructorName,
}

// CanonicalName derives the display name for a raw declaration. It is
// total: every classification maps to exactly one name.
func CanonicalName(raw Raw) string {
	switch raw.Operator {
	case OperatorBinary, OperatorUnary:
		return "operator_" + raw.OperatorSymbol
	default:
		if name, ok := canonicalNames[raw.Operator]; ok {
			return name
		}
		return raw.Spelling
	}
}
