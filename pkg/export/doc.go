/*
Package export converts Windows PuTTY session definitions, exported from the
registry as a .reg text file, into OpenSSH client configuration text.

# Quick Start

Convert an exported Sessions key:

	data, _ := os.ReadFile("putty-sessions.reg")
	res, err := export.ConvertBytes(data, export.Options{})
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Print(res.Config)

# Behavior

Each session sub-key becomes one Host stanza, in the order the sessions
appear in the file. Fields at their OpenSSH defaults are omitted, proxy
settings map to ProxyCommand or ProxyJump, and PuTTY's packed port
forwarding string expands into LocalForward/RemoteForward/DynamicForward
directives. The "Default Settings" template session is skipped unless
Options.IncludeDefaultSettings is set.

Structural problems in the .reg text (missing header, bad hex data) abort
the conversion with an error wrapping regtext.ErrMalformedRegFile; no
partial output is produced. Per-session issues such as a malformed
forwarding token degrade gracefully and are reported as Warnings.

Private key files are not converted; a .ppk referenced by IdentityFile
still needs puttygen to produce an OpenSSH-format key.
*/
package export
