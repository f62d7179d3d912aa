package regtext

import (
	"strings"
	"unicode/utf16"
)

// Value is an Entry's payload with its type tag resolved. Exactly one of the
// carrier fields is meaningful for a given Kind: Str for strings (including
// hex-encoded wide strings), Num for dwords, Data for binary hex payloads.
type Value struct {
	Kind    Kind
	HexType int
	Str     string
	Num     uint32
	Data    []byte
}

// Record is a decoded entry: the (path, name) scope plus its typed value.
type Record struct {
	Path  string
	Name  string
	Value Value
}

// Decode interprets an entry's raw payload according to its declared type.
//
// REG_SZ strings are unescaped. DWORDs become uint32. hex(1)/hex(2)
// payloads, the encoding PuTTY's exports use for wide strings, are decoded
// from UTF-16LE and cut at the first NUL code unit. Other hex payloads are
// kept as raw bytes. Malformed hex or dword data is a structural error,
// never a silent truncation.
func Decode(e Entry) (Value, error) {
	switch e.Kind {
	case KindString:
		return Value{Kind: KindString, Str: unescapeRegString(e.Raw)}, nil
	case KindDword:
		n, err := parseDword(e.Raw, e.Line)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindDword, Num: n}, nil
	case KindHex:
		data, err := parseHexBytes(e.Raw, e.Line)
		if err != nil {
			return Value{}, err
		}
		v := Value{Kind: KindHex, HexType: e.HexType, Data: data}
		if e.HexType == HexTypeSZ || e.HexType == HexTypeExpandSZ {
			s, err := decodeUTF16LE(data, e.Line)
			if err != nil {
				return Value{}, err
			}
			v.Str = s
		}
		return v, nil
	default:
		return Value{}, malformedf(e.Line, "unknown value kind %d", e.Kind)
	}
}

// DecodeAll decodes every entry, failing fast on the first structural error.
func DecodeAll(entries []Entry) ([]Record, error) {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		v, err := Decode(e)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{Path: e.Path, Name: e.Name, Value: v})
	}
	return records, nil
}

// Text returns the value as readable text: the string carrier when the type
// has one, empty otherwise.
func (v Value) Text() string {
	return v.Str
}

// Int returns the value as an integer. Strings holding a plain decimal
// number are coerced, matching how tolerant registry consumers read fields
// that some tools store as REG_SZ instead of REG_DWORD.
func (v Value) Int() int {
	if v.Kind == KindDword {
		return int(v.Num)
	}
	s := strings.TrimSpace(v.Str)
	if s == "" {
		return 0
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// Bool reports whether the value is a nonzero integer.
func (v Value) Bool() bool {
	return v.Int() != 0
}

func parseDword(raw string, line int) (uint32, error) {
	s := strings.TrimSpace(raw)
	if s == "" || len(s) > DWORDHexMaxLength {
		return 0, malformedf(line, "invalid dword payload %q", raw)
	}
	var n uint32
	for i := 0; i < len(s); i++ {
		nib := hexNibble(s[i])
		if nib == 0xFF {
			return 0, malformedf(line, "invalid dword payload %q", raw)
		}
		n = n<<4 | uint32(nib)
	}
	return n, nil
}

// parseHexBytes parses a comma-separated hex byte list. Each token must be
// exactly two hex digits; anything else (odd length, stray characters) is a
// structural error.
func parseHexBytes(raw string, line int) ([]byte, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, HexByteSeparator)
	buf := make([]byte, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(p) != 2 {
			return nil, malformedf(line, "invalid hex byte %q", p)
		}
		hi, lo := hexNibble(p[0]), hexNibble(p[1])
		if hi == 0xFF || lo == 0xFF {
			return nil, malformedf(line, "invalid hex byte %q", p)
		}
		buf = append(buf, hi<<4|lo)
	}
	return buf, nil
}

// decodeUTF16LE assembles little-endian byte pairs into text, stopping at
// the first NUL code unit.
func decodeUTF16LE(data []byte, line int) (string, error) {
	if len(data)%2 != 0 {
		return "", malformedf(line, "utf-16 payload has odd byte count %d", len(data))
	}
	words := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		w := uint16(data[i]) | uint16(data[i+1])<<8
		if w == 0 {
			break
		}
		words = append(words, w)
	}
	return string(utf16.Decode(words)), nil
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0xFF
	}
}
