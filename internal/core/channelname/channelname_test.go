package channelname

import "testing"

func TestClean_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "plain", in: "general", out: "general"},
		{name: "hash and case", in: "#General", out: "general"},
		{name: "many hashes", in: "##ops", out: "ops"},
		{name: "surrounding space", in: "  #help-desk \t", out: "help-desk"},
		{name: "fullwidth hash and letters", in: "＃ＯＰＳ", out: "ops"},
		{name: "zero width removed", in: "sup\u200Bport", out: "support"},
		{name: "invalid utf8 dropped", in: string([]byte{'a', 0xff, 'b'}), out: "ab"},
		{name: "only hashes", in: "###", out: ""},
		{name: "empty", in: "", out: ""},
		{name: "inner hash kept", in: "#c#sharp", out: "c#sharp"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.out {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	if !Matches("#General", "general") {
		t.Fatalf("expected match")
	}
	if Matches("general", "random") {
		t.Fatalf("unexpected match")
	}
	if Matches("#", "") {
		t.Fatalf("empty names never match")
	}
}

func TestValid(t *testing.T) {
	if Valid("  # ") {
		t.Fatalf("blank name accepted")
	}
	long := make([]byte, MaxLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if Valid(string(long)) {
		t.Fatalf("overlong name accepted")
	}
	if !Valid("#ok") {
		t.Fatalf("short name rejected")
	}
}
