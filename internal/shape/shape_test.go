package shape

import "testing"

func TestTagNames(t *testing.T) {
	seen := make(map[string]Tag)
	for _, tag := range All() {
		name := tag.String()
		if prev, dup := seen[name]; dup {
			t.Errorf("tags %d and %d share the name %q", prev, tag, name)
		}
		seen[name] = tag
	}
	if len(seen) != 10 {
		t.Errorf("expected 10 shape tags, got %d", len(seen))
	}
}

func TestDeclare(t *testing.T) {
	tests := []struct {
		name    string
		traits  []Tag
		want    Tag
		wantErr bool
	}{
		{"no traits", nil, Unknown, false},
		{"single exact", []Tag{String}, String, false},
		{"unknown is neutral", []Tag{Unknown, Bool}, Bool, false},
		{"repeated trait", []Tag{Bytes, Bytes}, Bytes, false},
		{"conflict", []Tag{String, Bytes}, Unknown, true},
		{"invalid tag", []Tag{Tag(99)}, Unknown, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Declare(test.traits...)
			if (err != nil) != test.wantErr {
				t.Fatalf("Declare(%v) error = %v, wantErr %v", test.traits, err, test.wantErr)
			}
			if got != test.want {
				t.Errorf("Declare(%v) = %v, want %v", test.traits, got, test.want)
			}
		})
	}
}

func TestMustDeclarePanicsOnConflict(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustDeclare should panic on conflicting traits")
		}
	}()
	MustDeclare(Int, Dict)
}

func TestResolve(t *testing.T) {
	if got := StrOrUnicode.Resolve(Python3); got != String {
		t.Errorf("StrOrUnicode on python3 = %v, want str", got)
	}
	if got := StrOrUnicode.Resolve(Python2); got != StrOrUnicode {
		t.Errorf("StrOrUnicode on python2 = %v, want str_or_unicode", got)
	}
	if got := List.Resolve(Python2); got != List {
		t.Errorf("List should resolve to itself, got %v", got)
	}
}

func TestParseRuntime(t *testing.T) {
	for _, s := range []string{"3", "python3", "py3"} {
		if r, err := ParseRuntime(s); err != nil || r != Python3 {
			t.Errorf("ParseRuntime(%q) = %v, %v", s, r, err)
		}
	}
	if r, err := ParseRuntime("python2"); err != nil || r != Python2 {
		t.Errorf("ParseRuntime(python2) = %v, %v", r, err)
	}
	if _, err := ParseRuntime("ruby"); err == nil {
		t.Error("ParseRuntime should reject unknown runtimes")
	}
}
