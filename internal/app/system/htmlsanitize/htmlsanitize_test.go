package htmlsanitize_test

import (
	"testing"

	"github.com/vedamschool/dsahub/internal/app/system/htmlsanitize"
)

func TestPlainText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Riya Sharma", "Riya Sharma"},
		{"  Riya Sharma  ", "Riya Sharma"},
		{"<b>Riya</b> Sharma", "Riya Sharma"},
		{"Riya<script>alert('xss')</script>", "Riya"},
		{"<img src=x onerror=alert(1)>Riya", "Riya"},
		{"O'Brien & Sons", "O'Brien & Sons"},
	}
	for _, c := range cases {
		if got := htmlsanitize.PlainText(c.in); got != c.want {
			t.Errorf("PlainText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
