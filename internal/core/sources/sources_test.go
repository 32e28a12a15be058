package sources

import "testing"

func TestDefault_LookupKnown(t *testing.T) {
	md, ok := Default().Lookup("slack")
	if !ok {
		t.Fatalf("expected slack to be registered")
	}
	if md.DisplayName != "Slack" || md.Category != CategoryMessaging {
		t.Fatalf("unexpected metadata: %+v", md)
	}
	if !Valid("github") {
		t.Fatalf("github should be valid")
	}
	if Valid("Slack") {
		t.Fatalf("lookup must be case sensitive")
	}
}

func TestAll_SortedByName(t *testing.T) {
	all := Default().All()
	if len(all) == 0 {
		t.Fatalf("expected entries")
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].InternalName >= all[i].InternalName {
			t.Fatalf("not sorted at %d: %q >= %q", i, all[i-1].InternalName, all[i].InternalName)
		}
	}
}

func TestResolve_FallsBackForUnknown(t *testing.T) {
	md := Resolve(Default(), "homegrown")
	if md.InternalName != "homegrown" || md.DisplayName != "homegrown" || md.Category != CategoryOther {
		t.Fatalf("unexpected fallback: %+v", md)
	}
	if got := Resolve(nil, "web"); got.InternalName != "web" {
		t.Fatalf("nil registry fallback: %+v", got)
	}
}

func TestNewStatic_LaterDuplicateWins(t *testing.T) {
	r := NewStatic(
		Metadata{InternalName: "x", DisplayName: "first"},
		Metadata{InternalName: "x", DisplayName: "second"},
	)
	md, _ := r.Lookup("x")
	if md.DisplayName != "second" {
		t.Fatalf("got %q", md.DisplayName)
	}
	if len(r.All()) != 1 {
		t.Fatalf("expected one entry")
	}
}
