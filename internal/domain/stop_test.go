package domain

import "testing"

func TestBaseLocationName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Eastside Builders (office)", "Eastside Builders"},
		{"Eastside Builders (site)", "Eastside Builders"},
		{"Eastside Builders (office/site)", "Eastside Builders"},
		{"Eastside Builders（office）", "Eastside Builders"},
		{"Eastside Builders", "Eastside Builders"},
		{"  padded (site)  ", "padded"},
		{"", ""},
	}
	for _, c := range cases {
		if got := BaseLocationName(c.name); got != c.want {
			t.Errorf("BaseLocationName(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestSameSite(t *testing.T) {
	if !SameSite("Eastside Builders (office)", "Eastside Builders (site)") {
		t.Error("office/site pair must be the same site")
	}
	if SameSite("Eastside Builders (office)", "Westgate Supply (site)") {
		t.Error("different bases must not match")
	}
	if SameSite("(office)", "(site)") {
		t.Error("empty base names must not match")
	}
}

func TestHasSiteQualifier(t *testing.T) {
	if !HasSiteQualifier("Eastside Builders (office/site)") {
		t.Error("ascii qualifier not recognized")
	}
	if !HasSiteQualifier("Eastside Builders（site）") {
		t.Error("full-width qualifier not recognized")
	}
	if HasSiteQualifier("Eastside Builders") {
		t.Error("bare name must not carry a qualifier")
	}
}
