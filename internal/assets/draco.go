package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/qmuntal/draco-go/draco"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/portfolio-room/internal/engine/scene"
)

// ErrDecoderClosed is returned by a DracoDecoder after Close.
var ErrDecoderClosed = errors.New("draco decoder closed")

// dracoPrimitive is the KHR_draco_mesh_compression object on a primitive.
type dracoPrimitive struct {
	BufferView int               `json:"bufferView"`
	Attributes map[string]uint32 `json:"attributes"`
}

// DracoDecoder decodes KHR_draco_mesh_compression primitives. It is safe for concurrent
// use; decodes are serialized on one native decoder.
type DracoDecoder struct {
	mu  sync.Mutex
	dec *draco.Decoder
}

func NewDracoDecoder() *DracoDecoder {
	return &DracoDecoder{dec: draco.NewDecoder()}
}

// DecodePrimitive decodes the compressed buffer view of prim. Only attributes named in
// the extension are read; the accessors on the primitive are ignored.
func (d *DracoDecoder) DecodePrimitive(doc *gltf.Document, prim *gltf.Primitive) (*scene.Geometry, error) {
	ext, err := dracoExtension(prim)
	if err != nil {
		return nil, err
	}
	data, err := bufferViewData(doc, ext.BufferView)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", DracoExtension, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: buffer view %d is empty", DracoExtension, ext.BufferView)
	}

	mesh := draco.NewMesh()
	d.mu.Lock()
	if d.dec == nil {
		d.mu.Unlock()
		return nil, ErrDecoderClosed
	}
	err = d.dec.DecodeMesh(mesh, data)
	d.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", DracoExtension, err)
	}
	return dracoGeometry(mesh, ext.Attributes)
}

// Close drops the native decoder. Further decodes fail with ErrDecoderClosed.
func (d *DracoDecoder) Close() error {
	d.mu.Lock()
	d.dec = nil
	d.mu.Unlock()
	return nil
}

// dracoExtension reads the extension object, which arrives as raw JSON from a decoded file
// or as a plain value on documents built in memory.
func dracoExtension(prim *gltf.Primitive) (*dracoPrimitive, error) {
	v, ok := prim.Extensions[DracoExtension]
	if !ok {
		return nil, fmt.Errorf("primitive has no %s extension", DracoExtension)
	}
	raw, ok := v.(json.RawMessage)
	if !ok {
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("%s: %w", DracoExtension, err)
		}
	}
	ext := new(dracoPrimitive)
	if err := json.Unmarshal(raw, ext); err != nil {
		return nil, fmt.Errorf("%s: %w", DracoExtension, err)
	}
	return ext, nil
}

func dracoGeometry(m *draco.Mesh, ids map[string]uint32) (*scene.Geometry, error) {
	if m.NumPoints() == 0 {
		return nil, fmt.Errorf("%s: mesh has no points", DracoExtension)
	}
	pos := dracoAttr(m, ids, gltf.POSITION, draco.GAT_POSITION)
	if pos == nil {
		return nil, fmt.Errorf("%s: missing POSITION attribute", DracoExtension)
	}
	flat, err := dracoFloats(m, pos, 3)
	if err != nil {
		return nil, err
	}
	geom := &scene.Geometry{Positions: vec3s(flat)}

	if a := dracoAttr(m, ids, gltf.NORMAL, draco.GAT_NORMAL); a != nil {
		if flat, err = dracoFloats(m, a, 3); err != nil {
			return nil, err
		}
		geom.Normals = vec3s(flat)
	}
	if a := dracoAttr(m, ids, gltf.TEXCOORD_0, draco.GAT_TEX_COORD); a != nil {
		if flat, err = dracoFloats(m, a, 2); err != nil {
			return nil, err
		}
		geom.UVs = vec2s(flat)
	}

	if n := m.NumFaces(); n > 0 {
		// Faces writes three indices per face into the buffer it is given.
		geom.Indices = make([]uint32, 3*n)
		m.Faces(geom.Indices)
	}
	return geom, nil
}

// dracoAttr finds an attribute by the unique id the extension maps it to. Without an
// attribute map it falls back to the first attribute of the matching kind.
func dracoAttr(m *draco.Mesh, ids map[string]uint32, name string, kind draco.GeometryAttrType) *draco.PointAttr {
	if len(ids) > 0 {
		id, ok := ids[name]
		if !ok {
			return nil
		}
		return m.AttrByUniqueID(id)
	}
	if i := m.NamedAttributeID(kind); i >= 0 {
		return m.Attr(i)
	}
	return nil
}

func dracoFloats(m *draco.Mesh, a *draco.PointAttr, comps int) ([]float32, error) {
	if got := int(a.NumComponents()); got != comps {
		return nil, fmt.Errorf("%s: attribute %d has %d components, want %d", DracoExtension, a.UniqueID(), got, comps)
	}
	buf := make([]float32, int(m.NumPoints())*comps)
	out, ok := m.AttrData(a, buf)
	if !ok {
		return nil, fmt.Errorf("%s: reading attribute %d", DracoExtension, a.UniqueID())
	}
	return out.([]float32), nil
}

func vec3s(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[3*i], flat[3*i+1], flat[3*i+2]}
	}
	return out
}

func vec2s(flat []float32) [][2]float32 {
	out := make([][2]float32, len(flat)/2)
	for i := range out {
		out[i] = [2]float32{flat[2*i], flat[2*i+1]}
	}
	return out
}
