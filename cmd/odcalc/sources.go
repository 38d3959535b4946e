package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/odcalc/eval"
	"github.com/hupe1980/odcalc/model"
)

func parseSources(matrices, vectors, scalars []string) ([]eval.Source, error) {
	var sources []eval.Source

	for _, s := range matrices {
		src, err := parseMatrix(s)
		if err != nil {
			return nil, fmt.Errorf("--matrix %q: %w", s, err)
		}
		sources = append(sources, src)
	}

	for _, s := range vectors {
		src, err := parseVector(s)
		if err != nil {
			return nil, fmt.Errorf("--vector %q: %w", s, err)
		}
		sources = append(sources, src)
	}

	for _, s := range scalars {
		name, value, err := splitNamed(s)
		if err != nil {
			return nil, fmt.Errorf("--scalar %q: %w", s, err)
		}
		x, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("--scalar %q: %w", s, err)
		}
		sources = append(sources, eval.Scalar(name, float32(x)))
	}

	return sources, nil
}

// parseMatrix parses NAME=RxC:v1,v2,...
func parseMatrix(s string) (eval.MatrixSource, error) {
	name, rest, err := splitNamed(s)
	if err != nil {
		return nil, err
	}

	dims, values, ok := strings.Cut(rest, ":")
	if !ok {
		return nil, fmt.Errorf("missing RxC: prefix")
	}

	rs, cs, ok := strings.Cut(dims, "x")
	if !ok {
		return nil, fmt.Errorf("dimensions %q are not RxC", dims)
	}
	rows, err := strconv.Atoi(rs)
	if err != nil || rows < 0 {
		return nil, fmt.Errorf("invalid row count %q", rs)
	}
	cols, err := strconv.Atoi(cs)
	if err != nil || cols < 0 {
		return nil, fmt.Errorf("invalid column count %q", cs)
	}

	data, err := parseValues(values)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%d values for a %dx%d matrix", len(data), rows, cols)
	}

	m := model.NewMatrixFrom(model.SequentialCategories(1, rows), model.SequentialCategories(1, cols), data)
	return eval.Matrix(name, m), nil
}

// parseVector parses NAME=v1,v2,...[:h|v]
func parseVector(s string) (eval.VectorSource, error) {
	name, rest, err := splitNamed(s)
	if err != nil {
		return nil, err
	}

	dir := model.Unassigned
	if values, tag, ok := strings.Cut(rest, ":"); ok {
		switch strings.ToLower(tag) {
		case "h", "horizontal":
			dir = model.Horizontal
		case "v", "vertical":
			dir = model.Vertical
		default:
			return nil, fmt.Errorf("unknown direction %q", tag)
		}
		rest = values
	}

	data, err := parseValues(rest)
	if err != nil {
		return nil, err
	}

	v := model.NewVectorFrom(model.SequentialCategories(1, len(data)), data)
	return eval.Vector(name, v, dir), nil
}

func splitNamed(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("expected NAME=VALUE")
	}
	return name, strings.TrimSpace(value), nil
}

func parseValues(s string) ([]float32, error) {
	if strings.TrimSpace(s) == "" {
		return []float32{}, nil
	}

	fields := strings.Split(s, ",")
	data := make([]float32, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		data[i] = float32(x)
	}
	return data, nil
}
