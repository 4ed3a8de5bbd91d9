package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/serpent-lang/serpent/internal/config"
)

func runTool(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, nil, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{"fold", []string{"-e", `"  x  ".strip()`}, 0, "\"x\"\n", ""},
		{"nested", []string{"-e", `len("a,b,c".split(","))`}, 0, "3\n", ""},
		{"unknown", []string{"-e", `name`}, 0, "name\n", ""},
		{"exception exit", []string{"-stats", "-e", `name.index("a")`}, 0, "name.index(sub=\"a\")\n", "exits=1"},
		{"no exit", []string{"-stats", "-e", `name.upper()`}, 0, "name.upper()\n", "exits=0"},
		{"shapes", []string{"-shapes", "-e", `"a".upper()`}, 0, "\"A\"  # str\n", ""},
		{"raises", []string{"-e", `b",".join([b"a", 1])`}, 0, "b\",\".join(iterable=[b\"a\", 1])\n", "always raises TypeError"},
		{"werror", []string{"-Werror", "-e", `{"a": 1}.pop("b")`}, 1, "", "always raises KeyError"},
		{"unsupported", []string{"-e", `"a" + "b"`}, 1, "", "unsupported expression"},
		{"bad target", []string{"-target", "python4", "-e", `"a"`}, 1, "", "invalid configuration"},
		{"exclusive", []string{"-e", `"a"`, "file.py"}, 2, "", "exclusive"},
		{"no input", nil, 2, "", "Usage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runTool(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.code, stderr)
			}
			if tt.stdout != "" && stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.stdout)
			}
			if !strings.Contains(stderr, tt.stderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.stderr)
			}
		})
	}
}

func TestFilesAndJSONTrees(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "m.py")
	if err := os.WriteFile(src, []byte("\"a-b\".replace(\"-\", \"+\")\nx.upper()\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runTool(t, src)
	if code != 0 || stdout != "\"a+b\"\nx.upper()\n" {
		t.Fatalf("code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}

	code, tree, _ := runTool(t, "-json", src)
	if code != 0 || !strings.Contains(tree, `"kind": "module"`) {
		t.Fatalf("json output: %s", tree)
	}
	js := filepath.Join(dir, "m.json")
	if err := os.WriteFile(js, []byte(tree), 0o644); err != nil {
		t.Fatal(err)
	}
	code, stdout, _ = runTool(t, js)
	if code != 0 || stdout != "\"a+b\"\nx.upper()\n" {
		t.Errorf("re-reading the tree: code=%d stdout=%q", code, stdout)
	}
}

func TestRaisingDiagnosticPointsAtSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "m.py")
	if err := os.WriteFile(src, []byte("\"ok\"\n\"abc\".index(\"z\")\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr := runTool(t, src)
	if code != 0 {
		t.Fatalf("code = %d: %s", code, stderr)
	}
	if !strings.Contains(stderr, "m.py:2:1") || !strings.Contains(stderr, "   2 | \"abc\".index(\"z\")") {
		t.Errorf("stderr = %s", stderr)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runTool(t, "-version")
	if code != 0 || !strings.HasPrefix(stdout, "serpent-opt v") || !strings.Contains(stdout, "Node catalog: 1.") {
		t.Errorf("version output %q", stdout)
	}
}

func TestSession(t *testing.T) {
	var out, errOut bytes.Buffer
	o := &optimizer{cfg: config.Default(), stdout: &out, stderr: &errOut}
	in := strings.NewReader(":shapes\n\"a\".upper()\n\n:nope\n:quit\n\"never\".upper()\n")
	if code := o.session(context.Background(), &scanReader{s: bufio.NewScanner(in)}); code != 0 {
		t.Fatalf("code = %d", code)
	}
	want := "shape annotations on\n\"A\"  # str\nunknown command :nope, type :help\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
