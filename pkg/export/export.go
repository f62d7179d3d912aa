package export

import (
	"io"

	"github.com/radawson/putty-export/internal/putty"
	"github.com/radawson/putty-export/internal/regtext"
	"github.com/radawson/putty-export/internal/sshconf"
)

// Options controls the conversion.
type Options struct {
	// IncludeDefaultSettings keeps the "Default Settings" template session
	// instead of filtering it out.
	IncludeDefaultSettings bool

	// SSHOnly drops sessions that are not connectable SSH hosts
	// (Protocol other than ssh, or blank HostName).
	SSHOnly bool
}

// Warning is a non-fatal, per-session conversion note.
type Warning struct {
	Session string
	Message string
}

// Result is a completed conversion.
type Result struct {
	// Config is the rendered OpenSSH client configuration document.
	Config string

	// Sessions is the number of stanzas emitted.
	Sessions int

	// Warnings lists per-session degradations: dropped forwarding tokens
	// and proxy settings inconsistent with their method.
	Warnings []Warning
}

// Convert reads .reg text from r and converts it. See ConvertBytes.
func Convert(r io.Reader, opts Options) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ConvertBytes(data, opts)
}

// ConvertBytes converts an exported PuTTY Sessions .reg file into OpenSSH
// client configuration text. On a structural error (wrapping
// regtext.ErrMalformedRegFile) the result is nil and nothing was rendered.
func ConvertBytes(data []byte, opts Options) (*Result, error) {
	entries, err := regtext.Lex(data)
	if err != nil {
		return nil, err
	}
	records, err := regtext.DecodeAll(entries)
	if err != nil {
		return nil, err
	}

	sessions := putty.Build(records, putty.BuildOptions{
		IncludeDefaultSettings: opts.IncludeDefaultSettings,
		SSHOnly:                opts.SSHOnly,
	})

	stanzas := make([]sshconf.Stanza, 0, len(sessions))
	var warnings []Warning
	for _, s := range sessions {
		stanza, warns := sshconf.BuildStanza(s)
		stanzas = append(stanzas, stanza)
		for _, w := range warns {
			warnings = append(warnings, Warning{Session: w.Session, Message: w.Message})
		}
	}

	return &Result{
		Config:   sshconf.Render(stanzas),
		Sessions: len(stanzas),
		Warnings: warnings,
	}, nil
}
