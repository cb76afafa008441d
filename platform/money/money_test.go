package money

import "testing"

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{"20.77", 2077},
		{"20,77", 2077},
		{"100", 10000},
		{"0.5", 50},
		{".25", 25},
		{"-3.10", -310},
		{" 7.00 ", 700},
	}

	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if err != nil {
			t.Fatalf("ParseCents(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCentsRejectsSubCentPrecision(t *testing.T) {
	if _, err := ParseCents("1.999"); err == nil {
		t.Fatal("expected error for sub-cent precision")
	}
	if _, err := ParseCents(""); err == nil {
		t.Fatal("expected error for empty amount")
	}
	if _, err := ParseCents("abc"); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}

func TestApplyBps(t *testing.T) {
	if got := Cents(10000).ApplyBps(2200); got != 2200 {
		t.Fatalf("22%% of 100.00 = %d cents, want 2200", got)
	}
	if got := Cents(999).ApplyBps(2100); got != 210 {
		t.Fatalf("21%% of 9.99 = %d cents, want 210", got)
	}
	if got := Cents(10000).ApplyBps(0); got != 0 {
		t.Fatalf("0 bps of 100.00 = %d cents, want 0", got)
	}
}

func TestString(t *testing.T) {
	if got := Cents(2077).String(); got != "20.77" {
		t.Fatalf("String() = %q, want %q", got, "20.77")
	}
	if got := Cents(-5).String(); got != "-0.05" {
		t.Fatalf("String() = %q, want %q", got, "-0.05")
	}
}

func TestMulFloat(t *testing.T) {
	// 8 pieces of a 3 m trim priced per piece must ignore the length.
	if got := Cents(2077).MulInt(8); got != 16616 {
		t.Fatalf("8 x 20.77 = %d cents, want 16616", got)
	}
	if got := Cents(250).MulFloat(3.0); got != 750 {
		t.Fatalf("2.50 x 3.0 = %d cents, want 750", got)
	}
}
