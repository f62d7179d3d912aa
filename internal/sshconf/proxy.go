package sshconf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/radawson/putty-export/internal/putty"
)

// puttyTokens rewrites PuTTY proxy command placeholders into their OpenSSH
// ProxyCommand equivalents. %proxyhost/%proxyport must run before
// %host/%port so the longer tokens are not clipped.
var puttyTokens = []struct{ from, to string }{
	{"%proxyhost", ""}, // substituted with the actual proxy host
	{"%proxyport", ""}, // substituted with the actual proxy port
	{"%host", "%h"},
	{"%port", "%p"},
	{"%user", "%r"},
}

// TranslateProxy maps a session's proxy fields onto at most one OpenSSH
// directive: ProxyCommand for SOCKS/HTTP/Telnet/Local, ProxyJump for an SSH
// jump host, nothing for ProxyNone. A method whose required fields are blank
// produces no directive and a warning instead of emitting a broken line like
// "ProxyJump @". The proxy password never appears in the result.
func TranslateProxy(s *putty.Session) (d Directive, ok bool, warn string) {
	switch s.ProxyMethod {
	case putty.ProxyNone:
		return Directive{}, false, ""

	case putty.ProxySOCKS:
		if s.ProxyHost == "" {
			return Directive{}, false, "SOCKS proxy configured without a proxy host"
		}
		cmd := fmt.Sprintf("nc -x %s:%d %%h %%p", s.ProxyHost, s.ProxyPort)
		return Directive{Key: "ProxyCommand", Value: cmd}, true, ""

	case putty.ProxyHTTP:
		if s.ProxyHost == "" {
			return Directive{}, false, "HTTP proxy configured without a proxy host"
		}
		cmd := fmt.Sprintf("connect -H %s:%d %%h %%p", s.ProxyHost, s.ProxyPort)
		return Directive{Key: "ProxyCommand", Value: cmd}, true, ""

	case putty.ProxyTelnet, putty.ProxyLocal:
		cmd := strings.TrimSpace(s.ProxyTelnetCommand)
		if cmd == "" {
			return Directive{}, false, "proxy command method configured without a command"
		}
		return Directive{Key: "ProxyCommand", Value: rewriteProxyCommand(cmd, s)}, true, ""

	case putty.ProxySSH:
		if s.ProxyHost == "" {
			return Directive{}, false, "SSH jump proxy configured without a proxy host"
		}
		jump := s.ProxyHost
		if s.ProxyUserName != "" {
			jump = s.ProxyUserName + "@" + jump
		}
		return Directive{Key: "ProxyJump", Value: jump}, true, ""

	default:
		return Directive{}, false, fmt.Sprintf("unknown proxy method %d", s.ProxyMethod)
	}
}

func rewriteProxyCommand(cmd string, s *putty.Session) string {
	for _, tok := range puttyTokens {
		to := tok.to
		switch tok.from {
		case "%proxyhost":
			to = s.ProxyHost
		case "%proxyport":
			to = strconv.Itoa(s.ProxyPort)
		}
		cmd = strings.ReplaceAll(cmd, tok.from, to)
	}
	return cmd
}
