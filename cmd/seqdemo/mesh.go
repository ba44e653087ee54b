package main

import (
	"context"
	"math"

	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/seq"
)

// Vec3 is a point or direction in 3D space.
type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Triangle is a face with counter-clockwise winding.
type Triangle struct{ A, B, C Vec3 }

// Normal is the unnormalized face normal.
func (t Triangle) Normal() Vec3 { return t.B.Sub(t.A).Cross(t.C.Sub(t.A)) }

func (t Triangle) Area() float64 { return t.Normal().Len() / 2 }

func (t Triangle) Corners() []Vec3 { return []Vec3{t.A, t.B, t.C} }

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vec3
	Indices  []int
}

// gridMesh builds an n by n grid of unit quads on the XY plane, two
// triangles per quad. Every third quad is wound the other way so it
// faces down.
func gridMesh(n int) Mesh {
	m := Mesh{Vertices: make([]Vec3, 0, (n+1)*(n+1))}
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			m.Vertices = append(m.Vertices, Vec3{X: float64(x), Y: float64(y)})
		}
	}
	row := n + 1
	for y := range n {
		for x := range n {
			a, b := y*row+x, y*row+x+1
			c, d := a+row, b+row
			if (y*n+x)%3 == 2 {
				m.Indices = append(m.Indices, a, c, b, b, c, d)
				continue
			}
			m.Indices = append(m.Indices, a, b, c, b, d, c)
		}
	}
	return m
}

// Report summarizes one analysis of a mesh.
type Report struct {
	Triangles      int
	FrontFacing    int
	UniqueVertices int
	Interior       int
	SurfaceArea    float64
	LargestArea    float64
	FirstBackFace  Triangle
	HasBackFace    bool
}

func frontFacing(t Triangle) bool { return t.Normal().Z > 0 }

// Triangles assembles the mesh's faces from its index buffer.
func (m Mesh) Triangles() ([]Triangle, error) {
	faces, err := seq.Chunk(seq.Of(m.Indices), 3)
	if err != nil {
		return nil, err
	}
	return seq.ToSlice(seq.Map(faces, func(ix []int) Triangle {
		return Triangle{m.Vertices[ix[0]], m.Vertices[ix[1]], m.Vertices[ix[2]]}
	})), nil
}

// analyze runs every pipeline over m, each inside its own tracked run.
func analyze(ctx context.Context, m Mesh, metrics *observability.Metrics) (Report, error) {
	var r Report
	var tris []Triangle

	err := observability.Track(ctx, "assemble", metrics, func(ctx context.Context) (int, error) {
		var err error
		tris, err = m.Triangles()
		observability.SetSpanAttribute(ctx, "mesh.vertices", len(m.Vertices))
		return len(tris), err
	})
	if err != nil {
		return r, err
	}
	r.Triangles = len(tris)

	err = observability.Track(ctx, "facing", metrics, func(context.Context) (int, error) {
		r.FrontFacing = seq.Count(seq.Filter(seq.Of(tris), frontFacing))
		back := seq.Filter(seq.Of(tris), func(t Triangle) bool { return !frontFacing(t) })
		r.FirstBackFace, r.HasBackFace = seq.TryFirst(back)
		return r.FrontFacing, nil
	})
	if err != nil {
		return r, err
	}

	err = observability.Track(ctx, "vertices", metrics, func(context.Context) (int, error) {
		r.UniqueVertices = seq.Count(seq.Distinct(seq.FlatMapSlice(seq.Of(tris), Triangle.Corners)))
		return r.UniqueVertices, nil
	})
	if err != nil {
		return r, err
	}

	err = observability.Track(ctx, "area", metrics, func(ctx context.Context) (int, error) {
		r.SurfaceArea = seq.Sum(seq.Map(seq.Of(tris), Triangle.Area))
		largest, err := seq.Max(seq.Map(seq.Of(tris), Triangle.Area))
		if err != nil {
			return 0, err
		}
		r.LargestArea = largest
		observability.SetSpanAttribute(ctx, "mesh.surface_area", r.SurfaceArea)
		return len(tris), nil
	})
	if err != nil {
		return r, err
	}

	err = observability.Track(ctx, "interior", metrics, func(context.Context) (int, error) {
		inner, err := seq.Slice(seq.Of(tris), seq.RangeOf(1, -1))
		if err != nil {
			return 0, err
		}
		r.Interior = seq.Count(inner)
		return r.Interior, nil
	})
	return r, err
}
