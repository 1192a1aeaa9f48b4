package validation

import "testing"

type contactPayload struct {
	Email  string `validate:"required,email"`
	Mobile string `validate:"required,mobile"`
}

func TestMobileValidation(t *testing.T) {
	v := New()

	cases := []struct {
		mobile string
		ok     bool
	}{
		{"+91-9921695909", true},
		{"9921695909", true},
		{"(022) 4912 3456", true},
		{"123", false},
		{"12345abcde", false},
		{"", false},
		{"+91 99216", false},
	}

	for _, tc := range cases {
		err := v.Struct(contactPayload{Email: "a@b.co", Mobile: tc.mobile})
		if tc.ok && err != nil {
			t.Fatalf("expected mobile %q to validate, got %v", tc.mobile, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("expected mobile %q to be rejected", tc.mobile)
		}
	}
}

func TestEmailValidation(t *testing.T) {
	v := New()

	if err := v.Struct(contactPayload{Email: "a@b.co", Mobile: "9921695909"}); err != nil {
		t.Fatalf("expected a@b.co to validate, got %v", err)
	}
	if err := v.Struct(contactPayload{Email: "not-an-email", Mobile: "9921695909"}); err == nil {
		t.Fatalf("expected not-an-email to be rejected")
	}
}

func TestSlugValidation(t *testing.T) {
	v := New()
	payload := struct {
		Slug string `validate:"required,slug"`
	}{}

	for _, slug := range []string{"tensile-canopy-structures", "x", "a1-b2"} {
		payload.Slug = slug
		if err := v.Struct(payload); err != nil {
			t.Fatalf("expected slug %q to validate, got %v", slug, err)
		}
	}
	for _, slug := range []string{"", "Bad Slug", "UPPER", "trailing-", "-leading", "a--b"} {
		payload.Slug = slug
		if err := v.Struct(payload); err == nil {
			t.Fatalf("expected slug %q to be rejected", slug)
		}
	}
}

func TestValidationErrorsHelper(t *testing.T) {
	v := New()
	err := v.Struct(contactPayload{})
	errs := v.ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(errs))
	}
	if v.ValidationErrors(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
