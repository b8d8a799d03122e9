package domain

import "testing"

func codes(errs []IdentityError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestPasswordPolicy_AcceptsStrongPassword(t *testing.T) {
	if errs := DefaultPasswordPolicy().Check("Passw0rd!"); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", codes(errs))
	}
}

func TestPasswordPolicy_ReportsEveryViolation(t *testing.T) {
	errs := DefaultPasswordPolicy().Check("abc")
	got := codes(errs)
	want := []string{
		"PasswordTooShort",
		"PasswordRequiresNonAlphanumeric",
		"PasswordRequiresDigit",
		"PasswordRequiresUpper",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestPasswordPolicy_UniqueChars(t *testing.T) {
	p := PasswordPolicy{RequiredUniqueChars: 3}
	errs := p.Check("aaaaaa")
	if len(errs) != 1 || errs[0].Code != "PasswordRequiresUniqueChars" {
		t.Fatalf("expected unique chars violation, got %v", codes(errs))
	}
}

func TestPasswordPolicy_NonASCIILetterIsNotSymbol(t *testing.T) {
	errs := DefaultPasswordPolicy().Check("Passw0rdé")
	if len(errs) != 1 || errs[0].Code != "PasswordRequiresNonAlphanumeric" {
		t.Fatalf("expected only non-alphanumeric violation, got %v", codes(errs))
	}
}
