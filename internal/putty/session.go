// Package putty assembles typed session records from decoded registry
// entries. PuTTY keeps one sub-key per saved session under
// Software\SimonTatham\PuTTY\Sessions, with the session name URL
// percent-encoded in the key path.
package putty

import (
	"net/url"
	"strings"

	"github.com/radawson/putty-export/internal/regtext"
)

// ProxyMethod enumerates PuTTY's ProxyMethod registry values.
type ProxyMethod int

const (
	ProxyNone ProxyMethod = iota
	ProxySOCKS
	ProxyHTTP
	ProxyTelnet
	ProxyLocal
	ProxySSH
)

// DefaultSettingsName is the template session PuTTY always stores. It is
// excluded from output unless the caller opts in.
const DefaultSettingsName = "Default Settings"

// Default field values applied when the registry entry is absent or zero.
const (
	DefaultPort      = 22
	DefaultProxyPort = 80
)

// Session is one saved PuTTY session, immutable once Build returns it.
// Optional string fields are empty when absent; Port and ProxyPort carry
// their defaults instead of zero.
type Session struct {
	Name               string
	HostName           string
	Port               int
	UserName           string
	PublicKeyFile      string
	Protocol           string
	ProxyMethod        ProxyMethod
	ProxyHost          string
	ProxyPort          int
	ProxyUserName      string
	ProxyTelnetCommand string
	PortForwardings    string
	AgentForward       bool
	Compression        bool
	X11Forward         bool
}

// BuildOptions controls which sessions Build keeps.
type BuildOptions struct {
	// IncludeDefaultSettings keeps the "Default Settings" template session.
	IncludeDefaultSettings bool

	// SSHOnly drops sessions whose Protocol is not ssh or whose HostName is
	// blank, mirroring a migration that only wants connectable SSH hosts.
	SSHOnly bool
}

// Build groups records by key path and assembles one Session per sub-key of
// the PuTTY Sessions tree, in first-appearance order. Key paths outside the
// Sessions tree are ignored. A repeated key path merges into the session
// already built for it (later values win) without changing its position.
func Build(records []regtext.Record, opts BuildOptions) []*Session {
	var order []*Session
	byPath := make(map[string]*Session)

	for _, rec := range records {
		name, ok := sessionName(rec.Path)
		if !ok {
			continue
		}
		pathKey := strings.ToLower(strings.ReplaceAll(rec.Path, "/", `\`))
		s := byPath[pathKey]
		if s == nil {
			s = &Session{Name: name, Port: DefaultPort, ProxyPort: DefaultProxyPort}
			byPath[pathKey] = s
			order = append(order, s)
		}
		s.apply(rec.Name, rec.Value)
	}

	kept := make([]*Session, 0, len(order))
	for _, s := range order {
		if s.Name == DefaultSettingsName && !opts.IncludeDefaultSettings {
			continue
		}
		if opts.SSHOnly && !s.connectable() {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// connectable reports whether the session describes a reachable SSH host.
func (s *Session) connectable() bool {
	if strings.TrimSpace(s.HostName) == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(s.Protocol), "ssh")
}

// apply sets one registry value on the session. Unrecognized names are
// ignored; PuTTY stores dozens of terminal and UI settings with no OpenSSH
// counterpart. ProxyPassword is deliberately dropped: it has no OpenSSH
// equivalent and must never reach the generated config.
func (s *Session) apply(name string, v regtext.Value) {
	switch name {
	case "HostName":
		s.HostName = v.Text()
	case "PortNumber":
		if n := v.Int(); n != 0 {
			s.Port = n
		}
	case "UserName":
		s.UserName = v.Text()
	case "PublicKeyFile":
		s.PublicKeyFile = v.Text()
	case "Protocol":
		s.Protocol = v.Text()
	case "ProxyMethod":
		s.ProxyMethod = ProxyMethod(v.Int())
	case "ProxyHost":
		s.ProxyHost = v.Text()
	case "ProxyPort":
		if n := v.Int(); n != 0 {
			s.ProxyPort = n
		}
	case "ProxyUsername":
		s.ProxyUserName = v.Text()
	case "ProxyTelnetCommand":
		s.ProxyTelnetCommand = v.Text()
	case "PortForwardings":
		s.PortForwardings = v.Text()
	case "AgentFwd":
		s.AgentForward = v.Bool()
	case "Compression":
		s.Compression = v.Bool()
	case "X11Forward":
		s.X11Forward = v.Bool()
	case "ProxyPassword":
		// Dropped on purpose; see above.
	}
}

// sessionName extracts the decoded session name from a key path directly
// under ...\Software\SimonTatham\PuTTY\Sessions. Both slash directions are
// accepted and matching is case-insensitive, the way registry paths compare.
func sessionName(path string) (string, bool) {
	p := strings.Trim(strings.ReplaceAll(path, "/", `\`), `\`)
	segs := strings.Split(p, `\`)
	for i := 3; i+1 < len(segs); i++ {
		if !strings.EqualFold(segs[i], "Sessions") {
			continue
		}
		if !strings.EqualFold(segs[i-1], "PuTTY") ||
			!strings.EqualFold(segs[i-2], "SimonTatham") ||
			!strings.EqualFold(segs[i-3], "Software") {
			continue
		}
		if i+1 != len(segs)-1 {
			// Deeper sub-keys are not sessions.
			return "", false
		}
		return DecodeName(segs[i+1])
	}
	return "", false
}

// DecodeName percent-decodes a session name from its key path segment.
// A name that fails to decode is kept verbatim; an empty result is invalid.
func DecodeName(encoded string) (string, bool) {
	name, err := url.PathUnescape(encoded)
	if err != nil {
		name = encoded
	}
	if name == "" {
		return "", false
	}
	return name, true
}

// EncodeName percent-encodes a session name the way PuTTY stores it in the
// registry, the inverse of DecodeName for printable names.
func EncodeName(name string) string {
	const hexDigits = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '%' || c < 0x21 || c > 0x7E {
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0F])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
