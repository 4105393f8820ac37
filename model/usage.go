package model

// Usage is the kind of type a definition emits.
type Usage int

const (
	UsageEnum Usage = iota
	UsageFlags
	// UsageAutoFlags numbers an Enum by position and derives one Bit per enumerator.
	UsageAutoFlags
	UsageConst
)

// ParseUsage maps the schema "usage" text to a Usage. Anything unrecognized,
// including the empty string, is an Enum.
func ParseUsage(s string) Usage {
	switch s {
	case "flags":
		return UsageFlags
	case "autoflags":
		return UsageAutoFlags
	case "const":
		return UsageConst
	default:
		return UsageEnum
	}
}

func (u Usage) String() string {
	switch u {
	case UsageFlags:
		return "flags"
	case UsageAutoFlags:
		return "autoflags"
	case UsageConst:
		return "const"
	default:
		return "enum"
	}
}

// Form selects how an entry is spelled as a member of the generated struct.
type Form int

const (
	FormEnum  Form = iota // eName
	FormFlag              // fName
	FormConst             // kName
)

func (f Form) prefix() string {
	switch f {
	case FormFlag:
		return "f"
	case FormConst:
		return "k"
	default:
		return "e"
	}
}

// TypeName is the nested C++ type holding members of this form.
func (f Form) TypeName() string {
	switch f {
	case FormFlag:
		return "Bit"
	case FormConst:
		return "Const"
	default:
		return "Enum"
	}
}

// Width is the numeric width of a definition's underlying type.
type Width int

const (
	Width32 Width = 32
	Width64 Width = 64
)

// ParseWidth returns Width64 only for "uint64".
func ParseWidth(s string) Width {
	if s == "uint64" {
		return Width64
	}
	return Width32
}

// Underlying is the C++ underlying type.
func (w Width) Underlying() string {
	if w == Width64 {
		return "std::uint64_t"
	}
	return "std::uint32_t"
}

// Sentinel renders the maximal unsigned value, used by synthesized defaults.
func (w Width) Sentinel() string {
	if w == Width64 {
		return "0xFFFFFFFFFFFFFFFF"
	}
	return "0xFFFFFFFF"
}

// One is the literal shifted to build a bit of this width.
func (w Width) One() string {
	if w == Width64 {
		return "1ull"
	}
	return "1u"
}

// Bits is the number of value bits.
func (w Width) Bits() int { return int(w) }
