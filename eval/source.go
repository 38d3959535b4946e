package eval

import "github.com/hupe1980/odcalc/model"

// Source provides the value a variable name resolves to.
type Source interface {
	Name() string
}

// MatrixSource produces a matrix.
type MatrixSource interface {
	Source
	Matrix() *model.Matrix
}

// VectorSource produces a vector. Sources that also implement Directed
// give the vector an orientation; otherwise it is Unassigned.
type VectorSource interface {
	Source
	Vector() *model.Vector
}

// ScalarSource produces a scalar.
type ScalarSource interface {
	Source
	Scalar() float32
}

// Directed is implemented by vector sources with a fixed orientation.
type Directed interface {
	Direction() model.Direction
}

// Matrix returns a source named name that produces m.
func Matrix(name string, m *model.Matrix) MatrixSource {
	return &matrixSource{name: name, m: m}
}

// Vector returns a source named name that produces v with orientation dir.
func Vector(name string, v *model.Vector, dir model.Direction) VectorSource {
	return &vectorSource{name: name, v: v, dir: dir}
}

// Scalar returns a source named name that produces x.
func Scalar(name string, x float32) ScalarSource {
	return &scalarSource{name: name, x: x}
}

type matrixSource struct {
	name string
	m    *model.Matrix
}

func (s *matrixSource) Name() string          { return s.name }
func (s *matrixSource) Matrix() *model.Matrix { return s.m }

type vectorSource struct {
	name string
	v    *model.Vector
	dir  model.Direction
}

func (s *vectorSource) Name() string               { return s.name }
func (s *vectorSource) Vector() *model.Vector      { return s.v }
func (s *vectorSource) Direction() model.Direction { return s.dir }

type scalarSource struct {
	name string
	x    float32
}

func (s *scalarSource) Name() string    { return s.name }
func (s *scalarSource) Scalar() float32 { return s.x }

// lookup returns the first source named name.
func lookup(sources []Source, name string) (Source, bool) {
	for _, src := range sources {
		if src != nil && src.Name() == name {
			return src, true
		}
	}
	return nil, false
}
