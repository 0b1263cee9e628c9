package scene

import (
	"fmt"

	"github.com/achilleasa/gloom/asset"
	"github.com/achilleasa/gloom/asset/mesh"
	"github.com/achilleasa/gloom/gpu"
	scenegraph "github.com/achilleasa/gloom/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Uploader turns a vertex buffer set into a GPU mesh.
type Uploader func(gpu.VertexBufferSet) (gpu.Mesh, error)

type builder struct {
	desc   *Description
	graph  *scenegraph.Graph
	upload Uploader

	parts    map[string][]mesh.Part
	uploaded map[partKey]gpu.Mesh
}

// OBJ files may repeat object and group names so parts are keyed by their
// position in the mesh.
type partKey struct {
	mesh  string
	index int
}

// Build loads the referenced meshes, uploads every referenced part once and
// adds the node tree to graph. It returns the id of the root node.
//
// A node that references a mesh without selecting a part becomes a
// drawable when the mesh has a single part and a group with one drawable
// child per part otherwise.
func (d *Description) Build(graph *scenegraph.Graph, upload Uploader) (scenegraph.NodeID, error) {
	graph.ComposeTransforms = d.ComposeTransforms

	b := &builder{
		desc:     d,
		graph:    graph,
		upload:   upload,
		parts:    make(map[string][]mesh.Part),
		uploaded: make(map[partKey]gpu.Mesh),
	}
	return b.build(&d.Root)
}

func (b *builder) build(n *NodeDescription) (scenegraph.NodeID, error) {
	var id scenegraph.NodeID
	switch {
	case n.Mesh == "":
		id = b.graph.NewGroup(n.Name)
	default:
		parts, err := b.loadMesh(n.Mesh)
		if err != nil {
			return 0, err
		}

		if n.Part != "" || len(parts) == 1 {
			partIndex, err := selectPart(parts, n.Mesh, n.Part)
			if err != nil {
				return 0, err
			}
			gm, err := b.uploadPart(n.Mesh, parts, partIndex)
			if err != nil {
				return 0, err
			}
			id = b.graph.NewDrawable(n.Name, gm)
			break
		}

		id = b.graph.NewGroup(n.Name)
		for index := range parts {
			gm, err := b.uploadPart(n.Mesh, parts, index)
			if err != nil {
				return 0, err
			}
			b.graph.AddChild(id, b.graph.NewDrawable(parts[index].Name, gm))
		}
	}

	b.graph.SetLocal(id, n.Transform())

	for index := range n.Children {
		child, err := b.build(&n.Children[index])
		if err != nil {
			return 0, err
		}
		b.graph.AddChild(id, child)
	}
	return id, nil
}

func (b *builder) loadMesh(name string) ([]mesh.Part, error) {
	if parts, ok := b.parts[name]; ok {
		return parts, nil
	}

	source := b.desc.Meshes[name]
	var parts []mesh.Part
	if source == BuiltinTriangles {
		parts = mesh.DemoTriangles()
	} else {
		res, err := asset.NewResource(source, b.desc.res)
		if err != nil {
			return nil, err
		}
		parts, err = mesh.ReadWavefront(res, b.desc.attr)
		res.Close()
		if err != nil {
			return nil, err
		}
	}

	b.parts[name] = parts
	return parts, nil
}

func (b *builder) uploadPart(meshName string, parts []mesh.Part, index int) (gpu.Mesh, error) {
	key := partKey{mesh: meshName, index: index}
	if gm, ok := b.uploaded[key]; ok {
		return gm, nil
	}

	gm, err := b.upload(parts[index].Set)
	if err != nil {
		return gpu.Mesh{}, fmt.Errorf("scene: could not upload %q (part %d of %q): %w", parts[index].Name, index, meshName, err)
	}
	b.uploaded[key] = gm
	return gm, nil
}

// Select a part by name. If more than one part shares the name the first
// one is returned.
func selectPart(parts []mesh.Part, meshName, partName string) (int, error) {
	if partName == "" {
		return 0, nil
	}
	for index := range parts {
		if parts[index].Name == partName {
			return index, nil
		}
	}
	return 0, fmt.Errorf("scene: mesh %q has no part named %q", meshName, partName)
}

// Transform returns the local transform of the node: translate × yaw ×
// pitch × roll × scale.
func (n *NodeDescription) Transform() mgl32.Mat4 {
	m := mgl32.Ident4()
	if len(n.Translate) == 3 {
		m = m.Mul4(mgl32.Translate3D(n.Translate[0], n.Translate[1], n.Translate[2]))
	}
	if len(n.Rotate) == 3 {
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(n.Rotate[0])))
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(n.Rotate[1])))
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(n.Rotate[2])))
	}
	switch len(n.Scale) {
	case 1:
		m = m.Mul4(mgl32.Scale3D(n.Scale[0], n.Scale[0], n.Scale[0]))
	case 3:
		m = m.Mul4(mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2]))
	}
	return m
}
