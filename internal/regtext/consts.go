package regtext

const (
	// RegFileHeader is the header line regedit writes for v5 (Unicode) exports.
	RegFileHeader = "Windows Registry Editor Version 5.00"

	// RegFileHeaderANSI is the legacy v4 header, still produced when an
	// export is saved in the Win9x format.
	RegFileHeaderANSI = "REGEDIT4"

	// KeyOpenBracket marks the start of a registry key path line.
	KeyOpenBracket = "["

	// KeyCloseBracket marks the end of a registry key path line.
	KeyCloseBracket = "]"

	// DeleteKeyPrefix marks a key for deletion (e.g., [-HKEY_CURRENT_USER\...]).
	DeleteKeyPrefix = "-"

	// DefaultValuePrefix marks the default (unnamed) value.
	DefaultValuePrefix = "@="

	// CommentPrefix marks a comment line.
	CommentPrefix = ";"

	// Quote is the double-quote character around value names and string data.
	Quote = "\""

	// Backslash doubles as the path separator, the escape character, and the
	// line-continuation marker at end of line.
	Backslash = "\\"

	// EscapedQuote is the escaped double-quote sequence.
	EscapedQuote = "\\\""

	// EscapedBackslash is the escaped backslash sequence.
	EscapedBackslash = "\\\\"

	// ValueAssignment separates value names from their data.
	ValueAssignment = "="

	// DWORDPrefix identifies a DWORD value.
	DWORDPrefix = "dword:"

	// HexPrefix identifies untyped (REG_BINARY) hex data.
	HexPrefix = "hex:"

	// HexTypedPrefix starts a typed hex value such as hex(1): or hex(7):.
	HexTypedPrefix = "hex("

	// DeleteValueToken marks a value for deletion.
	DeleteValueToken = "-"

	// HexByteSeparator separates bytes in hex data.
	HexByteSeparator = ","

	// CR is the carriage return character stripped from line ends.
	CR = "\r"

	// ScannerInitialBufferSize is the initial buffer size for the line scanner.
	ScannerInitialBufferSize = 64 * 1024

	// ScannerMaxLineSize is the maximum physical line size accepted.
	ScannerMaxLineSize = 1024 * 1024

	// DWORDHexMaxLength is the maximum number of hex digits in a dword payload.
	DWORDHexMaxLength = 8
)

// Registry type numbers carried by hex(N) payloads. PuTTY's own registry
// entries use REG_SZ for strings, but hivex-style exports of the same keys
// store wide strings as hex(1); both decode to text.
const (
	HexTypeSZ       = 1
	HexTypeExpandSZ = 2
	HexTypeBinary   = 3
	HexTypeMultiSZ  = 7
)
