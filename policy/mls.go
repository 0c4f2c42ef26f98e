package policy

// CatSpan is a single category span within a level: a single category when
// Low == High, or an inclusive range otherwise. Values are one-based
// stored category values, as they sit in the decoded database.
type CatSpan struct {
	Low, High int
}

// SemanticMlsLevel is an MLS level expressed as an ordered list of category
// spans rather than a resolved bitmap — the form user/role statements in
// an optional block carry, whose index offset (0 or 1) depends on where it
// was declared.
type SemanticMlsLevel struct {
	Sens int
	Cats []CatSpan
}

// SemanticMlsRange is a low/high pair of SemanticMlsLevel.
type SemanticMlsRange struct {
	Low, High SemanticMlsLevel
}

// MlsLevel is a fully resolved MLS level: a one-based sensitivity value
// plus a zero-based bitmap of category indices.
type MlsLevel struct {
	Sens int
	Cats Bitmap
}

// MlsRange is a low/high pair of MlsLevel, as carried by a SecurityContext.
type MlsRange struct {
	Low, High MlsLevel
}

// SecurityContext is a fully resolved security context: one-based
// user/role/type values plus an MLS range.
type SecurityContext struct {
	User  int
	Role  int
	Type  int
	Range MlsRange
}
