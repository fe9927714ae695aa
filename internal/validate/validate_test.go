package validate

import "testing"

func TestRequired(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"x", true},
		{"  x  ", true},
	}
	for _, tc := range cases {
		if got := Required(tc.in); got != tc.want {
			t.Errorf("Required(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"not-an-email", false},
		{"a@b.co", true},
		{"user.name+tag@example.org", true},
		{"@example.org", false},
		{"user@", false},
		{"user@domain", false},
	}
	for _, tc := range cases {
		if got := Email(tc.in); got != tc.want {
			t.Errorf("Email(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"short1!", false},       // 7 chars
		{"Valid123!", true},      // 9 chars, upper, digit, symbol
		{"nouppercase1!", false}, // missing uppercase
		{"NoDigits!!", false},    // missing digit
		{"NoSymbol123", false},   // missing symbol
		{"Sh1!", false},          // too short even with all classes
		{"Pässw0r!", false},      // 8 runes; multi-byte padding doesn't count
		{"Pässwör1!", true},      // 9 runes with multi-byte letters
	}
	for _, tc := range cases {
		if got := Password(tc.in); got != tc.want {
			t.Errorf("Password(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFieldErrorsGateSubmit(t *testing.T) {
	fields := FieldErrors{}
	fields.Require("username", "")
	fields.RequireEmail("email", "a@b.co")
	fields.RequirePassword("password", "Valid123!")

	if fields.OK() {
		t.Fatal("expected submit to be blocked by the empty username")
	}
	if _, ok := fields["username"]; !ok {
		t.Error("expected a username field error")
	}
	if _, ok := fields["email"]; ok {
		t.Error("valid email should not produce a field error")
	}
}
