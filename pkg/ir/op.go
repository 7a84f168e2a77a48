package ir

// Op identifies a CQL2 operator. Every value has a canonical spelling
// returned by String(), matching the text encoding.
type Op int

const (
	// Arithmetic
	Plus Op = iota
	Minus
	Mult
	Div
	IntDiv
	Mod
	Exp
	Neg // unary boolean negation ("NOT")

	// Comparison
	Eq
	Neq
	Lt
	Gt
	Lte
	Gte
	And
	Or

	// String modifiers
	CaseI
	AccentI

	// Spatial
	SIntersects
	SEquals
	SDisjoint
	STouches
	SWithin
	SOverlaps
	SCrosses
	SContains

	// Temporal
	TAfter
	TBefore
	TContains
	TDisjoint
	TDuring
	TEquals
	TFinishedBy
	TFinishes
	TIntersects
	TMeets
	TMetBy
	TOverlappedBy
	TOverlaps
	TStartedBy
	TStarts

	// Array
	AEquals
	AContains
	AContainedBy
	AOverlaps

	// Extended comparison
	IsLike
	IsNotLike
	IsBetween
	IsNotBetween
	IsInList
	IsNotInList
	IsNull
	IsNotNull
)

var opNames = map[Op]string{
	Plus: "+", Minus: "-", Mult: "*", Div: "/", IntDiv: "div", Mod: "%", Exp: "^", Neg: "NOT",
	Eq: "=", Neq: "<>", Lt: "<", Gt: ">", Lte: "<=", Gte: ">=", And: "AND", Or: "OR",
	CaseI: "CASEI", AccentI: "ACCENTI",
	SIntersects: "S_INTERSECTS", SEquals: "S_EQUALS", SDisjoint: "S_DISJOINT", STouches: "S_TOUCHES",
	SWithin: "S_WITHIN", SOverlaps: "S_OVERLAPS", SCrosses: "S_CROSSES", SContains: "S_CONTAINS",
	TAfter: "T_AFTER", TBefore: "T_BEFORE", TContains: "T_CONTAINS", TDisjoint: "T_DISJOINT",
	TDuring: "T_DURING", TEquals: "T_EQUALS", TFinishedBy: "T_FINISHEDBY", TFinishes: "T_FINISHES",
	TIntersects: "T_INTERSECTS", TMeets: "T_MEETS", TMetBy: "T_METBY", TOverlappedBy: "T_OVERLAPPEDBY",
	TOverlaps: "T_OVERLAPS", TStartedBy: "T_STARTEDBY", TStarts: "T_STARTS",
	AEquals: "A_EQUALS", AContains: "A_CONTAINS", AContainedBy: "A_CONTAINEDBY", AOverlaps: "A_OVERLAPS",
	IsLike: "LIKE", IsNotLike: "NOT LIKE", IsBetween: "BETWEEN", IsNotBetween: "NOT BETWEEN",
	IsInList: "IN", IsNotInList: "NOT IN", IsNull: "IS NULL", IsNotNull: "IS NOT NULL",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "?"
}

// IsArithmetic reports whether o is one of +, -, *, /, div, %, ^.
func (o Op) IsArithmetic() bool {
	switch o {
	case Plus, Minus, Mult, Div, Mod, IntDiv, Exp:
		return true
	}
	return false
}

// IsArray reports whether o is one of the A_* array predicates.
func (o Op) IsArray() bool {
	switch o {
	case AContainedBy, AContains, AEquals, AOverlaps:
		return true
	}
	return false
}

// IsComparison reports whether o is one of the basic comparison operators.
func (o Op) IsComparison() bool {
	switch o {
	case Eq, Neq, Lt, Lte, Gt, Gte, IsNull, IsNotNull:
		return true
	}
	return false
}

// IsExtendedComparison reports whether o is LIKE/BETWEEN/IN (or their
// negations).
func (o Op) IsExtendedComparison() bool {
	switch o {
	case IsLike, IsNotLike, IsBetween, IsNotBetween, IsInList, IsNotInList:
		return true
	}
	return false
}

// IsSpatial reports whether o is one of the S_* spatial predicates.
func (o Op) IsSpatial() bool {
	switch o {
	case SIntersects, SContains, SCrosses, SDisjoint, SEquals, SOverlaps, STouches, SWithin:
		return true
	}
	return false
}

// IsTemporal reports whether o is one of the T_* temporal predicates.
func (o Op) IsTemporal() bool {
	switch o {
	case TAfter, TBefore, TContains, TDisjoint, TDuring, TEquals, TFinishedBy, TFinishes,
		TIntersects, TMeets, TMetBy, TOverlappedBy, TOverlaps, TStartedBy, TStarts:
		return true
	}
	return false
}

// IsInstantOrInterval reports whether o accepts either an Instant or an
// Interval operand (the other temporal predicates require an Interval).
func (o Op) IsInstantOrInterval() bool {
	switch o {
	case TAfter, TBefore, TDisjoint, TEquals, TIntersects:
		return true
	}
	return false
}

// IsNullable reports whether o is IS [NOT] NULL.
func (o Op) IsNullable() bool {
	return o == IsNull || o == IsNotNull
}
