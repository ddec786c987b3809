package nirc

import "testing"

func TestParseDCCSend(t *testing.T) {
	msg := "\x01DCC SEND report.txt 3232235777 5000 1024\x01"

	file := parseDCCSend(msg, "alice", "downloads", NewLogger(false))
	if file == nil {
		t.Fatal("parseDCCSend returned nil for a valid payload")
	}

	if file.Filename != "report.txt" {
		t.Errorf("Filename = %q, want report.txt", file.Filename)
	}
	if file.IPAddress != "192.168.1.1" {
		t.Errorf("IPAddress = %q, want 192.168.1.1", file.IPAddress)
	}
	if file.Port != 5000 {
		t.Errorf("Port = %d, want 5000", file.Port)
	}
	if file.Filesize != 1024 {
		t.Errorf("Filesize = %d, want 1024", file.Filesize)
	}
	if file.SenderNick != "alice" {
		t.Errorf("SenderNick = %q, want alice", file.SenderNick)
	}
}

func TestParseDCCSendQuotedFilename(t *testing.T) {
	msg := "\x01DCC SEND \"my report.txt\" 3232235777 5000 1024\x01"

	file := parseDCCSend(msg, "alice", "downloads", NewLogger(false))
	if file == nil {
		t.Fatal("parseDCCSend returned nil for a quoted filename")
	}
	if file.Filename != "my report.txt" {
		t.Errorf("Filename = %q, want %q", file.Filename, "my report.txt")
	}
	if file.SafeFilename != "my_report.txt" {
		t.Errorf("SafeFilename = %q, want my_report.txt", file.SafeFilename)
	}
}

func TestParseDCCSendCaseInsensitivePrefix(t *testing.T) {
	msg := "\x01dcc send report.txt 3232235777 5000 1024\x01"

	if parseDCCSend(msg, "alice", "downloads", NewLogger(false)) == nil {
		t.Fatal("parseDCCSend should match a lowercase DCC SEND prefix")
	}
}

func TestParseDCCSendRejectsNonCTCP(t *testing.T) {
	if parseDCCSend("just some text", "alice", "downloads", NewLogger(false)) != nil {
		t.Fatal("parseDCCSend should return nil for non-CTCP text")
	}
	if parseDCCSend("\x01CLIENTINFO\x01", "alice", "downloads", NewLogger(false)) != nil {
		t.Fatal("parseDCCSend should return nil for a non-SEND CTCP payload")
	}
}

func TestSafeFilenameRejectsPathTraversal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"../../etc/passwd", "passwd"},
		{"a/b/c.txt", "c.txt"},
		{"plain name with spaces.dat", "plain_name_with_spaces.dat"},
		{"noescape.txt", "noescape.txt"},
	}

	for _, tt := range tests {
		if got := safeFilename(tt.in); got != tt.want {
			t.Errorf("safeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIPLongToDottedRoundTrip(t *testing.T) {
	tests := []struct {
		long uint32
		want string
	}{
		{3232235777, "192.168.1.1"},
		{0, "0.0.0.0"},
		{4294967295, "255.255.255.255"},
	}

	for _, tt := range tests {
		if got := ipLongToDotted(tt.long); got != tt.want {
			t.Errorf("ipLongToDotted(%d) = %q, want %q", tt.long, got, tt.want)
		}
	}
}
