package assets

import (
	"bytes"
	"fmt"
	"image"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/engine/texture"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// DracoExtension names the Draco mesh compression extension.
const DracoExtension = "KHR_draco_mesh_compression"

// PrimitiveDecoder decodes primitives stored with a compression extension. Decoders that
// implement io.Closer are closed with the loader.
type PrimitiveDecoder interface {
	DecodePrimitive(doc *gltf.Document, prim *gltf.Primitive) (*scene.Geometry, error)
}

// ParseModel decodes a GLB (or embedded glTF) file into a scene graph. Nodes keep their
// names and transforms. A mesh with one primitive becomes a mesh node; a mesh with
// several primitives becomes a group with one mesh child per primitive named
// "<mesh>_<i>", so multi-material objects arrive as groups.
func ParseModel(data []byte, decoders map[string]PrimitiveDecoder) (*scene.Node, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding glTF: %w", err)
	}
	return buildScene(doc, decoders)
}

func buildScene(doc *gltf.Document, decoders map[string]PrimitiveDecoder) (*scene.Node, error) {
	b := &builder{
		doc:       doc,
		decoders:  decoders,
		materials: make(map[int]scene.Material),
		textures:  make(map[int]*texture.Texture),
	}
	return b.build()
}

type builder struct {
	doc       *gltf.Document
	decoders  map[string]PrimitiveDecoder
	materials map[int]scene.Material
	textures  map[int]*texture.Texture
	fallback  scene.Material
}

func (b *builder) build() (*scene.Node, error) {
	root := scene.NewNode("Scene", scene.KindGroup)

	var nodes []int
	if len(b.doc.Scenes) > 0 {
		idx := 0
		if b.doc.Scene != nil {
			idx = *b.doc.Scene
		}
		if idx < 0 || idx >= len(b.doc.Scenes) {
			return nil, fmt.Errorf("scene index %d out of range", idx)
		}
		nodes = b.doc.Scenes[idx].Nodes
	} else {
		nodes = b.rootNodes()
	}

	for _, idx := range nodes {
		child, err := b.node(idx, 0)
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}
	return root, nil
}

// rootNodes returns nodes that are nobody's child, for files without a scene list.
func (b *builder) rootNodes() []int {
	isChild := make(map[int]bool)
	for _, n := range b.doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range b.doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

const maxNodeDepth = 256

func (b *builder) node(idx, depth int) (*scene.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if depth > maxNodeDepth {
		return nil, fmt.Errorf("node %d: hierarchy deeper than %d", idx, maxNodeDepth)
	}
	gn := b.doc.Nodes[idx]

	var n *scene.Node
	if gn.Mesh != nil {
		var err error
		n, err = b.mesh(gn.Name, *gn.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", gn.Name, err)
		}
	} else {
		n = scene.NewNode(gn.Name, scene.KindObject)
	}
	applyTransform(n, gn)

	for _, c := range gn.Children {
		child, err := b.node(c, depth+1)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func applyTransform(n *scene.Node, gn *gltf.Node) {
	m := gn.MatrixOrDefault()
	if m != gltf.DefaultMatrix {
		var mat math.Mat4
		for i, v := range m {
			mat[i] = float32(v)
		}
		pos, rot, scale := mat.Decompose()
		n.Position, n.Rotation, n.Scale = pos, rot.Euler(), scale
		return
	}

	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	s := gn.ScaleOrDefault()
	n.Position = math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])}
	n.Rotation = math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}.Euler()
	n.Scale = math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])}
}

func (b *builder) mesh(nodeName string, meshIdx int) (*scene.Node, error) {
	if meshIdx < 0 || meshIdx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIdx)
	}
	gm := b.doc.Meshes[meshIdx]
	if len(gm.Primitives) == 0 {
		return scene.NewNode(nodeName, scene.KindObject), nil
	}

	if len(gm.Primitives) == 1 {
		return b.primitive(nodeName, gm.Primitives[0])
	}

	base := gm.Name
	if base == "" {
		base = nodeName
	}
	group := scene.NewNode(nodeName, scene.KindGroup)
	for i, prim := range gm.Primitives {
		child, err := b.primitive(fmt.Sprintf("%s_%d", base, i), prim)
		if err != nil {
			return nil, err
		}
		group.Add(child)
	}
	return group, nil
}

func (b *builder) primitive(name string, prim *gltf.Primitive) (*scene.Node, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("primitive %q: unsupported mode %d", name, prim.Mode)
	}

	geom, err := b.geometry(prim)
	if err != nil {
		return nil, fmt.Errorf("primitive %q: %w", name, err)
	}

	mat, err := b.material(prim.Material)
	if err != nil {
		return nil, fmt.Errorf("primitive %q: %w", name, err)
	}
	return scene.NewMesh(name, geom, mat), nil
}

func (b *builder) geometry(prim *gltf.Primitive) (*scene.Geometry, error) {
	for ext := range prim.Extensions {
		if d, ok := b.decoders[ext]; ok {
			return d.DecodePrimitive(b.doc, prim)
		}
		if ext == DracoExtension {
			return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedCompression)
		}
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("missing POSITION attribute")
	}
	acc, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	geom := &scene.Geometry{}
	if geom.Positions, err = modeler.ReadPosition(b.doc, acc, nil); err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acc, err = b.accessor(idx); err != nil {
			return nil, err
		}
		if geom.Normals, err = modeler.ReadNormal(b.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
	}

	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acc, err = b.accessor(idx); err != nil {
			return nil, err
		}
		if geom.UVs, err = modeler.ReadTextureCoord(b.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("reading uvs: %w", err)
		}
	}

	if prim.Indices != nil {
		if acc, err = b.accessor(*prim.Indices); err != nil {
			return nil, err
		}
		if geom.Indices, err = modeler.ReadIndices(b.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	}
	return geom, nil
}

func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

func (b *builder) material(idx *int) (scene.Material, error) {
	if idx == nil {
		if b.fallback == nil {
			b.fallback = material.NewStandard("")
		}
		return b.fallback, nil
	}
	if m, ok := b.materials[*idx]; ok {
		return m, nil
	}
	if *idx < 0 || *idx >= len(b.doc.Materials) {
		return nil, fmt.Errorf("material index %d out of range", *idx)
	}

	gm := b.doc.Materials[*idx]
	m := material.NewStandard(gm.Name)
	if gm.DoubleSided {
		m.State().Side = scene.DoubleSide
	}
	if gm.AlphaMode == gltf.AlphaBlend {
		m.State().Transparent = true
	}
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		m.Color = [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
		m.Metallic = float32(pbr.MetallicFactorOrDefault())
		m.Roughness = float32(pbr.RoughnessFactorOrDefault())
		if pbr.BaseColorTexture != nil {
			tex, err := b.texture(pbr.BaseColorTexture.Index)
			if err != nil {
				return nil, fmt.Errorf("material %q: %w", gm.Name, err)
			}
			m.Map = tex
		}
	}
	b.materials[*idx] = m
	return m, nil
}

func (b *builder) texture(idx int) (*texture.Texture, error) {
	if t, ok := b.textures[idx]; ok {
		return t, nil
	}
	if idx < 0 || idx >= len(b.doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", idx)
	}
	gt := b.doc.Textures[idx]
	if gt.Source == nil || *gt.Source < 0 || *gt.Source >= len(b.doc.Images) {
		return nil, fmt.Errorf("texture %d has no image", idx)
	}

	img, err := b.image(b.doc.Images[*gt.Source])
	if err != nil {
		return nil, fmt.Errorf("texture %d: %w", idx, err)
	}
	t := texture.FromImage(b.doc.Images[*gt.Source].Name, img, texture.Options{SRGB: true})
	b.textures[idx] = t
	return t, nil
}

func (b *builder) image(gi *gltf.Image) (image.Image, error) {
	var data []byte
	switch {
	case gi.BufferView != nil:
		var err error
		if data, err = bufferViewData(b.doc, *gi.BufferView); err != nil {
			return nil, err
		}
	case gi.IsEmbeddedResource():
		var err error
		if data, err = gi.MarshalData(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("external image %q not supported", gi.URI)
	}
	return texture.Decode(data)
}

// bufferViewData returns the bytes a buffer view covers.
func bufferViewData(doc *gltf.Document, idx int) ([]byte, error) {
	if idx < 0 || idx >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", idx)
	}
	view := doc.BufferViews[idx]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", view.Buffer)
	}
	buf := doc.Buffers[view.Buffer].Data
	end := view.ByteOffset + view.ByteLength
	if view.ByteOffset < 0 || end > len(buf) {
		return nil, fmt.Errorf("buffer view %d exceeds buffer", idx)
	}
	return buf[view.ByteOffset:end], nil
}
