package cmd

import "testing"

func Test_gzipPath(t *testing.T) {
	cases := map[string]bool{
		"catalog.json.gz": true,
		"CATALOG.JSON.GZ": true,
		"catalog.json":    false,
		"-":               false,
		"":                false,
	}
	for path, want := range cases {
		if got := gzipPath(path); got != want {
			t.Errorf("gzipPath(%q) = %v, want %v", path, got, want)
		}
	}
}
