package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRequire(t *testing.T) {
	tests := []struct {
		constraint string
		code       int
	}{
		{">=1.0.0, <2.0.0", 0},
		{"^1", 0},
		{">=2.0.0", 1},
		{"not a constraint", 2},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if code := run([]string{"-require", tt.constraint, "-prefix", "builtin."}, &out, &errOut); code != tt.code {
				t.Errorf("exit code = %d, want %d (%s)", code, tt.code, errOut.String())
			}
		})
	}
}

func TestJSONListing(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-json", "-prefix", "str.partition", "-target", "python2"}, &out, &errOut); code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut.String())
	}
	var l listing
	if err := json.Unmarshal(out.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if l.Target != "python2" || len(l.Kinds) != 1 {
		t.Fatalf("listing = %+v", l)
	}
	e := l.Kinds[0]
	if e.Kind != "str.partition" || e.Shape != "tuple" || e.IterLen != 3 || len(e.Roles) != 2 {
		t.Errorf("entry = %+v", e)
	}
}

func TestShapesFollowTarget(t *testing.T) {
	for target, want := range map[string]string{"python3": "str", "python2": "str_or_unicode"} {
		var out, errOut bytes.Buffer
		if code := run([]string{"-json", "-prefix", "str.join", "-target", target}, &out, &errOut); code != 0 {
			t.Fatalf("exit code %d: %s", code, errOut.String())
		}
		var l listing
		if err := json.Unmarshal(out.Bytes(), &l); err != nil {
			t.Fatal(err)
		}
		if l.Kinds[0].Shape != want {
			t.Errorf("%s: shape = %s, want %s", target, l.Kinds[0].Shape, want)
		}
	}
}

func TestTable(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-prefix", "dict.get"}, &out, &errOut); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if !strings.HasPrefix(lines[0], "KIND") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "dict.get(key) ") || !strings.HasPrefix(lines[2], "dict.get(key,default) ") {
		t.Errorf("rows:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "2 kinds, catalog 1.0.0, target python3\n") {
		t.Errorf("summary:\n%s", out.String())
	}
}
