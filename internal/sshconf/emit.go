// Package sshconf translates assembled PuTTY sessions into OpenSSH client
// configuration stanzas and renders the final config document.
package sshconf

import (
	"strconv"
	"strings"

	"github.com/radawson/putty-export/internal/putty"
)

// Indent prefixes every directive line under its Host line.
const Indent = "    "

// Directive is one (keyword, argument) pair of an OpenSSH config stanza.
type Directive struct {
	Key   string
	Value string
}

// Stanza is the rendered block for one session: a Host alias plus its
// directives in emission order. Never mutated after BuildStanza returns it.
type Stanza struct {
	Host       string
	Directives []Directive
}

// Warning is a non-fatal, per-session conversion note: a dropped forwarding
// token or proxy fields inconsistent with their method.
type Warning struct {
	Session string
	Message string
}

// BuildStanza converts one session into its stanza. Directive order is
// fixed so output stays diffable: HostName, Port, User, IdentityFile, the
// proxy directive, forwards in source order, then the boolean flags.
// Fields at their OpenSSH defaults are omitted entirely; booleans are only
// ever emitted as "yes".
func BuildStanza(s *putty.Session) (Stanza, []Warning) {
	var warns []Warning
	ds := make([]Directive, 0, 8)

	ds = appendIf(ds, "HostName", s.HostName, s.HostName != "")
	ds = appendIf(ds, "Port", strconv.Itoa(s.Port), s.Port != putty.DefaultPort)
	ds = appendIf(ds, "User", s.UserName, s.UserName != "")
	ds = appendIf(ds, "IdentityFile", NormalizePath(s.PublicKeyFile), s.PublicKeyFile != "")

	if d, ok, warn := TranslateProxy(s); ok {
		ds = append(ds, d)
	} else if warn != "" {
		warns = append(warns, Warning{Session: s.Name, Message: warn})
	}

	specs, bad := ParseForwards(s.PortForwardings)
	for _, tok := range bad {
		warns = append(warns, Warning{Session: s.Name, Message: "skipping malformed port forwarding entry " + strconv.Quote(tok)})
	}
	for _, spec := range specs {
		ds = append(ds, spec.Directive())
	}

	ds = appendIf(ds, "ForwardAgent", "yes", s.AgentForward)
	ds = appendIf(ds, "Compression", "yes", s.Compression)
	ds = appendIf(ds, "ForwardX11", "yes", s.X11Forward)

	return Stanza{Host: s.Name, Directives: ds}, warns
}

// appendIf is the single omit-when-default gate every optional directive
// goes through.
func appendIf(ds []Directive, key, value string, emit bool) []Directive {
	if !emit {
		return ds
	}
	return append(ds, Directive{Key: key, Value: value})
}

// Render emits the full config document: stanzas in input order, directives
// indented under their Host line, one blank line between stanzas.
func Render(stanzas []Stanza) string {
	var b strings.Builder
	for i, st := range stanzas {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("Host ")
		b.WriteString(st.Host)
		b.WriteByte('\n')
		for _, d := range st.Directives {
			b.WriteString(Indent)
			b.WriteString(d.Key)
			b.WriteByte(' ')
			b.WriteString(d.Value)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// NormalizePath converts Windows path separators to forward slashes, the
// form OpenSSH expects for IdentityFile.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
