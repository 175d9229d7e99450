package main

import "testing"

func TestParseFlags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		args    []string
		want    cliFlags
		wantErr bool
	}{
		{"no args", nil, cliFlags{}, false},
		{"output short", []string{"-o", "out.epub"}, cliFlags{output: "out.epub"}, false},
		{"output long", []string{"--output", "out.epub"}, cliFlags{output: "out.epub"}, false},
		{"standalone", []string{"--standalone", "mybook"}, cliFlags{standalone: "mybook"}, false},
		{"standalone short with output", []string{"-s", "mybook", "-o", "b.epub"}, cliFlags{standalone: "mybook", output: "b.epub"}, false},
		{"verbose", []string{"-v"}, cliFlags{verbose: true}, false},
		{"quiet", []string{"--quiet"}, cliFlags{quiet: true}, false},
		{"version", []string{"--version"}, cliFlags{version: true}, false},
		{"unknown flag", []string{"--nope"}, cliFlags{}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseFlags() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFlags() unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("parseFlags() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}
