// Package models loads triangle meshes from disk into the shapes
// pkg/raster consumes directly: a raster.Mesh plus an optional
// raster.Bitmap[raster.Color] for its base texture.
package models

import (
	"github.com/voxelwright/rasterkit/pkg/math3d"
	"github.com/voxelwright/rasterkit/pkg/raster"
)

// calculateNormals computes flat face normals and assigns them to every
// vertex of that face, overwriting whatever normal was loaded.
func calculateNormals(mesh *raster.Mesh) {
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		ia, ib, ic := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		v0 := mesh.Vertices[ia].Position
		v1 := mesh.Vertices[ib].Position
		v2 := mesh.Vertices[ic].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal, err := edge1.Cross3(edge2).Normalize3()
		if err != nil {
			continue
		}

		mesh.Vertices[ia].Normal = normal
		mesh.Vertices[ib].Normal = normal
		mesh.Vertices[ic].Normal = normal
	}
}

// calculateSmoothNormals accumulates face normals per vertex and
// normalizes the result, for shading that doesn't show facets.
func calculateSmoothNormals(mesh *raster.Mesh) {
	for i := range mesh.Vertices {
		mesh.Vertices[i].Normal = math3d.Zero4()
	}

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		ia, ib, ic := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		v0 := mesh.Vertices[ia].Position
		v1 := mesh.Vertices[ib].Position
		v2 := mesh.Vertices[ic].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross3(edge2)

		mesh.Vertices[ia].Normal = mesh.Vertices[ia].Normal.Add(normal)
		mesh.Vertices[ib].Normal = mesh.Vertices[ib].Normal.Add(normal)
		mesh.Vertices[ic].Normal = mesh.Vertices[ic].Normal.Add(normal)
	}

	for i := range mesh.Vertices {
		if n, err := mesh.Vertices[i].Normal.Normalize3(); err == nil {
			mesh.Vertices[i].Normal = n
		}
	}
}

// hasLoadedNormals reports whether any vertex already carries a non-zero
// normal, so a loader can skip recomputing them.
func hasLoadedNormals(mesh *raster.Mesh) bool {
	for _, v := range mesh.Vertices {
		if v.Normal.Len3() > 0.001 {
			return true
		}
	}
	return false
}
