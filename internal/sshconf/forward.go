package sshconf

import (
	"strconv"
	"strings"
)

// Direction is a port forwarding mode.
type Direction int

const (
	DirLocal Direction = iota
	DirRemote
	DirDynamic
)

// ForwardSpec is one decoded forwarding rule from PuTTY's packed
// PortForwardings string. Bind is the optional listen address; DestHost and
// DestPort are unset for dynamic (SOCKS) forwards.
type ForwardSpec struct {
	Direction  Direction
	Bind       string
	ListenPort int
	DestHost   string
	DestPort   int
}

// ParseForwards splits a packed PortForwardings value into forwarding specs,
// preserving input order; OpenSSH applies forward directives in the order
// they appear, and duplicate listen ports across directions are legal.
// Tokens that do not match the grammar are returned in bad and skipped, so
// one malformed entry cannot sink the rest of the session.
//
// Token grammar: an optional address-family flag (4 or 6), a direction
// letter (L, R, or D), then [bind:]port, and for L/R an = followed by
// host:port.
func ParseForwards(raw string) (specs []ForwardSpec, bad []string) {
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		spec, ok := parseForwardToken(tok)
		if !ok {
			bad = append(bad, tok)
			continue
		}
		specs = append(specs, spec)
	}
	return specs, bad
}

func parseForwardToken(tok string) (ForwardSpec, bool) {
	rest := tok
	if rest != "" && (rest[0] == '4' || rest[0] == '6') {
		rest = rest[1:]
	}
	if rest == "" {
		return ForwardSpec{}, false
	}

	var spec ForwardSpec
	switch rest[0] {
	case 'L':
		spec.Direction = DirLocal
	case 'R':
		spec.Direction = DirRemote
	case 'D':
		spec.Direction = DirDynamic
	default:
		return ForwardSpec{}, false
	}
	rest = rest[1:]

	if spec.Direction == DirDynamic {
		bind, port, ok := splitListen(rest)
		if !ok {
			return ForwardSpec{}, false
		}
		spec.Bind, spec.ListenPort = bind, port
		return spec, true
	}

	listen, dest, found := strings.Cut(rest, "=")
	if !found {
		return ForwardSpec{}, false
	}
	bind, port, ok := splitListen(listen)
	if !ok {
		return ForwardSpec{}, false
	}
	spec.Bind, spec.ListenPort = bind, port

	host, portStr, ok := cutLast(dest, ':')
	if !ok || host == "" {
		return ForwardSpec{}, false
	}
	destPort, ok := parsePort(portStr)
	if !ok {
		return ForwardSpec{}, false
	}
	spec.DestHost, spec.DestPort = host, destPort
	return spec, true
}

// Directive renders the forward as its OpenSSH config directive.
func (f ForwardSpec) Directive() Directive {
	listen := strconv.Itoa(f.ListenPort)
	if f.Bind != "" {
		listen = f.Bind + ":" + listen
	}
	switch f.Direction {
	case DirRemote:
		return Directive{Key: "RemoteForward", Value: listen + " " + f.DestHost + ":" + strconv.Itoa(f.DestPort)}
	case DirDynamic:
		return Directive{Key: "DynamicForward", Value: listen}
	default:
		return Directive{Key: "LocalForward", Value: listen + " " + f.DestHost + ":" + strconv.Itoa(f.DestPort)}
	}
}

// splitListen parses [bind:]port.
func splitListen(s string) (bind string, port int, ok bool) {
	if addr, portStr, found := cutLast(s, ':'); found {
		p, ok := parsePort(portStr)
		if !ok || addr == "" {
			return "", 0, false
		}
		return addr, p, true
	}
	p, ok := parsePort(s)
	if !ok {
		return "", 0, false
	}
	return "", p, true
}

// cutLast splits around the last occurrence of sep.
func cutLast(s string, sep byte) (before, after string, found bool) {
	i := strings.LastIndexByte(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

func parsePort(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return 0, false
	}
	return n, true
}
