package textnorm

import "testing"

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Perfil Ómega", "perfil omega"},
		{"GOTERÓN  lateral", "goteron lateral"},
		{"  Tornillo   Autoperforante ", "tornillo autoperforante"},
		{"panel", "panel"},
	}

	for _, tc := range cases {
		if got := Fold(tc.in); got != tc.want {
			t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContainsFolded(t *testing.T) {
	if !ContainsFolded("Cinta de Sellado Butílica", "butilica") {
		t.Fatal("expected accent-insensitive containment")
	}
	if ContainsFolded("Perfil U", "omega") {
		t.Fatal("unexpected containment")
	}
}
