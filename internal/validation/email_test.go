package validation

import "testing"

func TestValidateEmail_Valid(t *testing.T) {
	valid := []string{
		"test@gmail.com",
		"a.b@example.co.uk",
		"user+tag@domain.io",
	}

	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("expected %q to be valid, got %v", email, err)
		}
	}
}

func TestValidateEmail_Empty(t *testing.T) {
	err := ValidateEmail("")
	if err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}

func TestValidateEmail_Malformed(t *testing.T) {
	invalid := []string{
		"notanemail",
		"missing@domain",
		"@nodomain.com",
		"spaces in@email.com",
		"double@@at.com",
	}

	for _, email := range invalid {
		if err := ValidateEmail(email); err != ErrEmailInvalid {
			t.Errorf("expected %q to be invalid, got %v", email, err)
		}
	}
}

func TestNormalizeEmail_LowercasesDomain(t *testing.T) {
	got := NormalizeEmail("test@GMail.Com")
	if got != "test@gmail.com" {
		t.Errorf("expected 'test@gmail.com', got '%s'", got)
	}
}

func TestNormalizeEmail_PreservesLocalPart(t *testing.T) {
	got := NormalizeEmail("Test.User@EXAMPLE.COM")
	if got != "Test.User@example.com" {
		t.Errorf("expected 'Test.User@example.com', got '%s'", got)
	}
}

func TestNormalizeEmail_TrimsWhitespace(t *testing.T) {
	got := NormalizeEmail("  test@gmail.com  ")
	if got != "test@gmail.com" {
		t.Errorf("expected trimmed email, got '%s'", got)
	}
}

func TestNormalizeEmail_NoAtSign(t *testing.T) {
	got := NormalizeEmail("notanemail")
	if got != "notanemail" {
		t.Errorf("expected input unchanged, got '%s'", got)
	}
}
