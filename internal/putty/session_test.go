package putty

import (
	"testing"

	"github.com/radawson/putty-export/internal/regtext"
)

const sessionsRoot = `HKEY_CURRENT_USER\Software\SimonTatham\PuTTY\Sessions`

func strRec(path, name, val string) regtext.Record {
	return regtext.Record{Path: path, Name: name, Value: regtext.Value{Kind: regtext.KindString, Str: val}}
}

func dwordRec(path, name string, val uint32) regtext.Record {
	return regtext.Record{Path: path, Name: name, Value: regtext.Value{Kind: regtext.KindDword, Num: val}}
}

func TestSessionName(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{path: sessionsRoot + `\web`, want: "web", ok: true},
		{path: sessionsRoot + `\My%20Server`, want: "My Server", ok: true},
		{path: `HKEY_CURRENT_USER/Software/SimonTatham/PuTTY/Sessions/fwd`, want: "fwd", ok: true},
		{path: `hkey_current_user\software\simontatham\putty\sessions\CASE`, want: "CASE", ok: true},
		{path: `\Software\SimonTatham\PuTTY\Sessions\bare`, want: "bare", ok: true},
		{path: sessionsRoot, ok: false},
		{path: sessionsRoot + `\web\SubKey`, ok: false},
		{path: `HKEY_CURRENT_USER\Software\SimonTatham\PuTTY\SshHostKeys`, ok: false},
		{path: `HKEY_CURRENT_USER\Software\Other\Sessions\web`, ok: false},
	}
	for _, tt := range tests {
		got, ok := sessionName(tt.path)
		if ok != tt.ok {
			t.Errorf("sessionName(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("sessionName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNameCodecRoundTrip(t *testing.T) {
	names := []string{
		"web",
		"My Server",
		"prod db (replica)",
		"50% done",
		"a+b",
		"semi;colon",
	}
	for _, name := range names {
		decoded, ok := DecodeName(EncodeName(name))
		if !ok {
			t.Errorf("round trip of %q reported invalid", name)
			continue
		}
		if decoded != name {
			t.Errorf("round trip of %q = %q", name, decoded)
		}
	}
}

func TestDecodeName_Invalid(t *testing.T) {
	// An undecodable escape keeps the raw segment rather than dropping the
	// session.
	got, ok := DecodeName("100%")
	if !ok || got != "100%" {
		t.Errorf("DecodeName(100%%) = %q, %v", got, ok)
	}
	if _, ok := DecodeName(""); ok {
		t.Error("empty name must be invalid")
	}
}

func TestBuild_FieldsAndDefaults(t *testing.T) {
	path := sessionsRoot + `\web`
	records := []regtext.Record{
		strRec(path, "HostName", "example.com"),
		dwordRec(path, "PortNumber", 0), // zero means default
		strRec(path, "UserName", "alice"),
		strRec(path, "PublicKeyFile", `C:\Users\alice\id.ppk`),
		strRec(path, "Protocol", "ssh"),
		dwordRec(path, "AgentFwd", 1),
		dwordRec(path, "Compression", 0),
		strRec(path, "TerminalType", "xterm"), // no OpenSSH counterpart
	}
	sessions := Build(records, BuildOptions{})
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.Name != "web" || s.HostName != "example.com" || s.UserName != "alice" {
		t.Errorf("unexpected session: %+v", s)
	}
	if s.Port != 22 {
		t.Errorf("zero PortNumber should default to 22, got %d", s.Port)
	}
	if s.ProxyPort != 80 {
		t.Errorf("absent ProxyPort should default to 80, got %d", s.ProxyPort)
	}
	if !s.AgentForward || s.Compression || s.X11Forward {
		t.Errorf("unexpected flags: %+v", s)
	}
}

func TestBuild_OrderAndMerge(t *testing.T) {
	records := []regtext.Record{
		strRec(sessionsRoot+`\charlie`, "HostName", "c.example.com"),
		strRec(sessionsRoot+`\alpha`, "HostName", "a.example.com"),
		strRec(sessionsRoot+`\bravo`, "HostName", "wrong.example.com"),
		// Same key listed again: merges into the existing session, later
		// value wins, position unchanged.
		strRec(sessionsRoot+`\bravo`, "HostName", "b.example.com"),
		strRec(`HKEY_CURRENT_USER\Software\Unrelated`, "HostName", "ignored"),
	}
	sessions := Build(records, BuildOptions{})
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	wantOrder := []string{"charlie", "alpha", "bravo"}
	for i, want := range wantOrder {
		if sessions[i].Name != want {
			t.Errorf("session %d = %q, want %q", i, sessions[i].Name, want)
		}
	}
	if sessions[2].HostName != "b.example.com" {
		t.Errorf("merged HostName = %q", sessions[2].HostName)
	}
}

func TestBuild_DefaultSettingsFilter(t *testing.T) {
	records := []regtext.Record{
		strRec(sessionsRoot+`\Default%20Settings`, "HostName", ""),
		strRec(sessionsRoot+`\web`, "HostName", "example.com"),
	}

	sessions := Build(records, BuildOptions{})
	if len(sessions) != 1 || sessions[0].Name != "web" {
		t.Fatalf("Default Settings should be filtered, got %+v", sessions)
	}

	sessions = Build(records, BuildOptions{IncludeDefaultSettings: true})
	if len(sessions) != 2 || sessions[0].Name != DefaultSettingsName {
		t.Fatalf("expected Default Settings first, got %+v", sessions)
	}
}

func TestBuild_SSHOnly(t *testing.T) {
	records := []regtext.Record{
		strRec(sessionsRoot+`\ssh-host`, "HostName", "a.example.com"),
		strRec(sessionsRoot+`\ssh-host`, "Protocol", "ssh"),
		strRec(sessionsRoot+`\serial-console`, "HostName", "COM3"),
		strRec(sessionsRoot+`\serial-console`, "Protocol", "serial"),
		strRec(sessionsRoot+`\template`, "Protocol", "ssh"), // no hostname
	}

	all := Build(records, BuildOptions{})
	if len(all) != 3 {
		t.Fatalf("without SSHOnly expected 3 sessions, got %d", len(all))
	}

	ssh := Build(records, BuildOptions{SSHOnly: true})
	if len(ssh) != 1 || ssh[0].Name != "ssh-host" {
		t.Fatalf("with SSHOnly expected just ssh-host, got %+v", ssh)
	}
}

func TestBuild_ProxyFields(t *testing.T) {
	path := sessionsRoot + `\jump`
	records := []regtext.Record{
		strRec(path, "HostName", "inner.example.com"),
		dwordRec(path, "ProxyMethod", 5),
		strRec(path, "ProxyHost", "bastion.example.com"),
		dwordRec(path, "ProxyPort", 2022),
		strRec(path, "ProxyUsername", "jumper"),
		strRec(path, "ProxyPassword", "hunter2"),
	}
	sessions := Build(records, BuildOptions{})
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.ProxyMethod != ProxySSH || s.ProxyHost != "bastion.example.com" ||
		s.ProxyPort != 2022 || s.ProxyUserName != "jumper" {
		t.Errorf("unexpected proxy fields: %+v", s)
	}
}
