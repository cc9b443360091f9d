package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/voxelwright/rasterkit/pkg/math3d"
	"github.com/voxelwright/rasterkit/pkg/raster"
)

// GLTFLoader loads GLTF/GLB files into raster.Mesh.
type GLTFLoader struct {
	CalculateNormals bool
	SmoothNormals    bool
}

// NewGLTFLoader creates a loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file with the default loader options.
func LoadGLB(path string) (*raster.Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a raster.Mesh.
func (l *GLTFLoader) Load(path string) (*raster.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := &raster.Mesh{}
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.CalculateNormals && !hasLoadedNormals(mesh) {
		if l.SmoothNormals {
			calculateSmoothNormals(mesh)
		} else {
			calculateNormals(mesh)
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("loaded mesh failed validation: %w", err)
	}

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh into mesh, appending
// vertices and indices from every triangle primitive.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *raster.Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vector4
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs []math3d.Vector4
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		baseVertex := len(mesh.Vertices)
		for i := range positions {
			v := raster.Vertex{Position: positions[i]}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(uvs) {
				// GLTF has V=0 at the top; flip to a bottom-left origin.
				v.TexCoords = math3d.V4(uvs[i].X, 1.0-uvs[i].Y, 0, 0)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		// GLTF winding is CCW front-facing; the rasterizer's screen-space
		// y-flip makes CW front-facing, so swap the last two indices of
		// every triangle.
		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Indices = append(mesh.Indices,
					baseVertex+indices[i],
					baseVertex+indices[i+2],
					baseVertex+indices[i+1],
				)
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Indices = append(mesh.Indices,
					baseVertex+i,
					baseVertex+i+2,
					baseVertex+i+1,
				)
			}
		}
	}

	return nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vector4, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vector4, len(floats))
	for i, f := range floats {
		result[i] = math3d.V4(f[0], f[1], f[2], 1)
	}
	return result, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vector4, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][2]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC2")
	}

	result := make([]math3d.Vector4, len(floats))
	for i, f := range floats {
		result[i] = math3d.V4(f[0], f[1], 0, 0)
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint16:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint32:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

// readAccessorData reads raw interleaved-or-packed data from a GLTF
// accessor's backing buffer view. External (non-GLB-embedded) buffers are
// not supported.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	var bufData []byte
	if buffer.URI == "" {
		bufData = buffer.Data
	} else {
		return nil, fmt.Errorf("external buffers not supported")
	}

	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorVec2:
		if stride == 0 {
			stride = 8
		}
		result := make([][2]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 2 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}

		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

// LoadWithTexture loads a GLTF/GLB file's geometry plus its first embedded
// or sibling-file texture image, decoded into the Bitmap[Color] shape
// raster.Material expects. The returned texture is nil when none is found.
func LoadWithTexture(path string) (*raster.Mesh, *raster.Bitmap[raster.Color], error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	loader := NewGLTFLoader()
	mesh, err := loader.Load(path)
	if err != nil {
		return nil, nil, err
	}

	var textureImg image.Image
	for _, img := range doc.Images {
		data, err := imageBytes(doc, path, img)
		if err != nil || len(data) == 0 {
			continue
		}
		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		textureImg = decoded
		break
	}

	if textureImg == nil {
		return mesh, nil, nil
	}
	return mesh, raster.TextureFromImage(textureImg), nil
}

func imageBytes(doc *gltf.Document, docPath string, img *gltf.Image) ([]byte, error) {
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			return nil, fmt.Errorf("image buffer view has no data")
		}
		start := bv.ByteOffset
		end := start + bv.ByteLength
		return buf.Data[start:end], nil
	}
	if img.URI != "" {
		texPath := filepath.Join(filepath.Dir(docPath), img.URI)
		return os.ReadFile(texPath)
	}
	return nil, fmt.Errorf("image has neither buffer view nor uri")
}
