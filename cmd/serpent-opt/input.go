package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/serpent-lang/serpent/internal/astbridge"
	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/treeio"
)

// input is one module to optimize together with the text it came from.
type input struct {
	module   *nodes.Module
	filename string
	// source is empty for JSON trees, whose spans may point anywhere.
	source string
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func exprInput(expr string) *input {
	return &input{filename: "<expr>", source: expr}
}

// parse fills in the module of an expression input.
func (in *input) parse() error {
	if in.module != nil {
		return nil
	}
	m, err := astbridge.ParseModule(moduleName(in.filename), in.filename, in.source)
	if err != nil {
		return err
	}
	in.module = m
	return nil
}

func loadFile(path string) (*input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".json" {
		m, err := treeio.ReadModule(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &input{module: m, filename: path}, nil
	}
	in := &input{filename: path, source: string(data)}
	if err := in.parse(); err != nil {
		return nil, err
	}
	return in, nil
}

func loadFiles(paths []string) ([]*input, error) {
	inputs := make([]*input, 0, len(paths))
	for _, p := range paths {
		in, err := loadFile(p)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
