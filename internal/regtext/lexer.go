// Package regtext tokenizes and decodes Windows registry export (.reg) text.
// The lexer resolves the container encoding, joins continuation lines, and
// yields one Entry per logical value line; Decode turns the raw payload of
// an Entry into a typed Value.
package regtext

import (
	"bufio"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Kind is the registry value type declared on a value line.
type Kind uint8

const (
	// KindString is a quoted REG_SZ payload.
	KindString Kind = iota
	// KindDword is a dword:XXXXXXXX payload.
	KindDword
	// KindHex is a hex: or hex(N): payload; Entry.HexType carries N.
	KindHex
)

// Entry is one logical value line scoped to its owning key path. Raw holds
// the payload with the type prefix already stripped: the text between the
// outer quotes for strings (escapes intact), the hex digits after dword:,
// or the comma-separated byte list after hex prefixes.
type Entry struct {
	Path    string
	Name    string
	Kind    Kind
	HexType int
	Raw     string
	Line    int
}

// Lex tokenizes raw .reg file bytes into entries, in file order.
//
// The container encoding is resolved first: a UTF-16 (either endianness) or
// UTF-8 BOM wins, otherwise the bytes are taken as UTF-8. Continuation lines
// (trailing backslash) are joined into a single logical line before
// tokenizing. Comment and blank lines are skipped. The first significant
// line must be a recognized registry export header.
func Lex(data []byte) ([]Entry, error) {
	text, err := decodeContainer(data)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxLineSize)

	lx := &lexer{}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := strings.TrimRight(sc.Text(), CR)
		line := strings.TrimSpace(raw)

		if lx.pending != "" {
			// Continuation content for a value started earlier.
			lx.pending += line
			if strings.HasSuffix(lx.pending, Backslash) {
				lx.pending = strings.TrimSuffix(lx.pending, Backslash)
				continue
			}
			logical := lx.pending
			lx.pending = ""
			if err := lx.processLine(logical, lx.pendingLine); err != nil {
				return nil, err
			}
			continue
		}

		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		if !lx.sawHeader {
			if line != RegFileHeader && line != RegFileHeaderANSI {
				return nil, malformedf(lineNo, "missing registry export header, got %q", line)
			}
			lx.sawHeader = true
			continue
		}
		if strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t") {
			return nil, malformedf(lineNo, "continuation line without a start: %q", line)
		}
		if strings.HasSuffix(line, Backslash) {
			lx.pending = strings.TrimSuffix(line, Backslash)
			lx.pendingLine = lineNo
			continue
		}
		if err := lx.processLine(line, lineNo); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if lx.pending != "" {
		return nil, malformedf(lx.pendingLine, "unterminated line continuation")
	}
	if !lx.sawHeader {
		return nil, malformedf(1, "empty input, missing registry export header")
	}
	return lx.entries, nil
}

type lexer struct {
	entries     []Entry
	current     string
	haveKey     bool
	skipKey     bool
	sawHeader   bool
	pending     string
	pendingLine int
}

func (lx *lexer) processLine(line string, lineNo int) error {
	if strings.HasPrefix(line, KeyOpenBracket) {
		if !strings.HasSuffix(line, KeyCloseBracket) {
			return malformedf(lineNo, "unterminated key path %q", line)
		}
		path := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, KeyOpenBracket), KeyCloseBracket))
		if strings.HasPrefix(path, DeleteKeyPrefix) {
			// Key deletion block; any values under it are meaningless.
			lx.haveKey = true
			lx.skipKey = true
			return nil
		}
		lx.current = path
		lx.haveKey = true
		lx.skipKey = false
		return nil
	}
	if !lx.haveKey {
		return malformedf(lineNo, "value line before any [key] header: %q", line)
	}
	if lx.skipKey {
		return nil
	}
	name, payload, err := splitValueLine(line, lineNo)
	if err != nil {
		return err
	}
	if payload == DeleteValueToken {
		return nil
	}
	entry, err := classifyPayload(payload, lineNo)
	if err != nil {
		return err
	}
	entry.Path = lx.current
	entry.Name = name
	entry.Line = lineNo
	lx.entries = append(lx.entries, entry)
	return nil
}

// splitValueLine separates "Name"=payload (or @=payload) into its parts.
func splitValueLine(line string, lineNo int) (name, payload string, err error) {
	if strings.HasPrefix(line, DefaultValuePrefix) {
		return "", strings.TrimSpace(line[len(DefaultValuePrefix):]), nil
	}
	if !strings.HasPrefix(line, Quote) {
		return "", "", malformedf(lineNo, "unrecognized line %q", line)
	}
	end := findClosingQuote(line)
	if end < 0 {
		return "", "", malformedf(lineNo, "unterminated value name in %q", line)
	}
	rest := line[end+1:]
	if !strings.HasPrefix(rest, ValueAssignment) {
		return "", "", malformedf(lineNo, "missing %q after value name in %q", ValueAssignment, line)
	}
	return unescapeRegString(line[1:end]), strings.TrimSpace(rest[1:]), nil
}

// classifyPayload resolves the declared registry type and strips its prefix.
// The payload meaning is not interpreted here; that is Decode's job.
func classifyPayload(payload string, lineNo int) (Entry, error) {
	switch {
	case strings.HasPrefix(payload, Quote):
		if len(payload) < 2 || !strings.HasSuffix(payload, Quote) {
			return Entry{}, malformedf(lineNo, "unterminated string payload %q", payload)
		}
		return Entry{Kind: KindString, Raw: payload[1 : len(payload)-1]}, nil
	case strings.HasPrefix(payload, DWORDPrefix):
		return Entry{Kind: KindDword, Raw: payload[len(DWORDPrefix):]}, nil
	case strings.HasPrefix(payload, HexPrefix):
		return Entry{Kind: KindHex, HexType: HexTypeBinary, Raw: payload[len(HexPrefix):]}, nil
	case strings.HasPrefix(payload, HexTypedPrefix):
		closeParen := strings.Index(payload, ")")
		if closeParen < 0 || closeParen+1 >= len(payload) || payload[closeParen+1] != ':' {
			return Entry{}, malformedf(lineNo, "malformed hex type prefix in %q", payload)
		}
		typ, err := parseHexTypeNumber(payload[len(HexTypedPrefix):closeParen])
		if err != nil {
			return Entry{}, malformedf(lineNo, "malformed hex type prefix in %q", payload)
		}
		return Entry{Kind: KindHex, HexType: typ, Raw: payload[closeParen+2:]}, nil
	default:
		return Entry{}, malformedf(lineNo, "unsupported value payload %q", payload)
	}
}

// decodeContainer turns raw file bytes into text. A BOM selects UTF-16LE,
// UTF-16BE, or UTF-8; without one the bytes are taken as UTF-8.
func decodeContainer(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// findClosingQuote returns the index of the closing quote in a line whose
// opening quote is at position 0, skipping quotes escaped by an odd number
// of preceding backslashes. Returns -1 if none is found.
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			continue
		}
		return i
	}
	return -1
}

// unescapeRegString unescapes \" and \\ sequences from .reg format.
func unescapeRegString(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	s = strings.ReplaceAll(s, EscapedBackslash, Backslash)
	s = strings.ReplaceAll(s, EscapedQuote, Quote)
	return s
}

func parseHexTypeNumber(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, ErrMalformedRegFile
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, ErrMalformedRegFile
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
