package column

// numericOrder lists the numeric lattice positions from narrowest to
// widest; index order matters, not the Kind values themselves.
var numericOrder = []Kind{
	KindBool, KindUInt8, KindInt8, KindUInt16, KindInt16,
	KindUInt32, KindInt32, KindUInt64, KindInt64, KindFloat64,
}

func numericRank(k Kind) int {
	for i, o := range numericOrder {
		if o == k {
			return i
		}
	}
	return -1
}

// widenNumeric returns whichever of a and b ranks later in numericOrder,
// where both are numeric lattice positions (or KindUnknown). The order is
// total, so the result need not represent both inputs' ranges: UInt16
// joined with Int8 is UInt16.
func widenNumeric(a, b Kind) Kind {
	if a == KindUnknown {
		return b
	}
	if b == KindUnknown {
		return a
	}
	ra, rb := numericRank(a), numericRank(b)
	if ra < 0 || rb < 0 {
		return KindFloat64
	}
	if ra >= rb {
		return a
	}
	return b
}

// Join computes the lattice join of two Kinds observed for the same
// column (by different workers, or a worker's running type and an
// incoming field's classification). Join is commutative, associative,
// and monotone: the result never ranks below either input.
func Join(a, b Kind) Kind {
	if a == b {
		return a
	}
	if a == KindText || b == KindText {
		return KindText
	}
	if a == KindCategorical || b == KindCategorical {
		return KindCategorical
	}
	if a == KindUnknown {
		return b
	}
	if b == KindUnknown {
		return a
	}
	// Both numeric but distinct: widen.
	return widenNumeric(a, b)
}

// minIntKind returns the narrowest integer Kind that can represent value,
// given whether the literal was parsed as unsigned (no leading '-').
func minIntKind(value int64, unsigned bool) Kind {
	if unsigned {
		u := uint64(value)
		switch {
		case u <= 0xFF:
			return KindUInt8
		case u <= 0xFFFF:
			return KindUInt16
		case u <= 0xFFFFFFFF:
			return KindUInt32
		default:
			return KindUInt64
		}
	}
	switch {
	case value >= -0x80 && value <= 0x7F:
		return KindInt8
	case value >= -0x8000 && value <= 0x7FFF:
		return KindInt16
	case value >= -0x80000000 && value <= 0x7FFFFFFF:
		return KindInt32
	default:
		return KindInt64
	}
}
