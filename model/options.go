package model

import (
	"github.com/teranos/enumgen/internal/casing"
)

// Option is one definition option.
type Option uint16

const (
	OptStringTable Option = 1 << iota
	OptStringKey
	OptCustomStrings
	OptSkipLastElement
	OptAutoDefault
	OptSuffixMatch
	OptPrefixMatch
)

// Options is a set of Option flags.
type Options uint16

// DefaultOptions is the set every definition starts from.
const DefaultOptions = Options(OptStringTable) | Options(OptAutoDefault)

// Has reports whether o is set.
func (s Options) Has(o Option) bool { return s&Options(o) != 0 }

func (s Options) with(o Option) Options    { return s | Options(o) }
func (s Options) without(o Option) Options { return s &^ Options(o) }

// ParseOptions applies option tokens to DefaultOptions. Unrecognized tokens
// are returned rather than rejected.
func ParseOptions(tokens []string) (opts Options, unknown []string) {
	opts = DefaultOptions
	for _, tok := range tokens {
		switch tok {
		case "no-strings", "nostrings":
			opts = opts.without(OptStringTable)
		case "string-key":
			opts = opts.with(OptStringKey)
		case "custom-strings":
			opts = opts.with(OptCustomStrings)
		case "skip-last-element":
			opts = opts.with(OptSkipLastElement)
		case "no-auto-default":
			opts = opts.without(OptAutoDefault)
		case "suffix-match":
			opts = opts.with(OptSuffixMatch)
		case "prefix-match":
			opts = opts.with(OptPrefixMatch)
		default:
			unknown = append(unknown, tok)
		}
	}
	// string keys live in the string table; without one they mean nothing
	if !opts.Has(OptStringTable) {
		opts = opts.without(OptStringKey)
	}
	return opts, unknown
}

// Modifier transforms display strings (stringModifier) or lookup probes
// (searchModifier).
type Modifier int

const (
	ModNone Modifier = iota
	ModUpper
	ModLower
	ModUpperCamel
	ModLowerCamel
	ModCamel
	ModSnake
)

// ParseModifier maps schema spellings to a Modifier; unknown text is ModNone.
func ParseModifier(s string) Modifier {
	switch s {
	case "upper", "toupper":
		return ModUpper
	case "lower", "tolower":
		return ModLower
	case "upper-camel-case", "upperCamelCase":
		return ModUpperCamel
	case "lower-camel-case", "lowerCamelCase":
		return ModLowerCamel
	case "camel-case", "camelCase":
		return ModCamel
	case "snake-case", "snake_case":
		return ModSnake
	default:
		return ModNone
	}
}

// IsFold reports whether the modifier is a plain ASCII case fold, the only
// kind usable on lookup probes.
func (m Modifier) IsFold() bool { return m == ModUpper || m == ModLower }

// Apply transforms s.
func (m Modifier) Apply(s string) string {
	switch m {
	case ModUpper:
		return casing.UpperASCII(s)
	case ModLower:
		return casing.LowerASCII(s)
	case ModUpperCamel:
		return casing.ToPascalCase(s)
	case ModLowerCamel:
		return casing.ToCamelCase(s)
	case ModCamel:
		return casing.JoinCamel(s)
	case ModSnake:
		return casing.ToSnakeCase(s)
	default:
		return s
	}
}

func (m Modifier) String() string {
	switch m {
	case ModUpper:
		return "upper"
	case ModLower:
		return "lower"
	case ModUpperCamel:
		return "upper-camel-case"
	case ModLowerCamel:
		return "lower-camel-case"
	case ModCamel:
		return "camel-case"
	case ModSnake:
		return "snake-case"
	default:
		return "none"
	}
}
