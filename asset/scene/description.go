// Package scene reads scene descriptions and instantiates them into a
// scene graph.
//
// A description is a YAML document:
//
//	attribute: colors
//	compose_transforms: true
//	meshes:
//	  heli: models/heli.obj
//	root:
//	  name: world
//	  children:
//	    - name: body
//	      mesh: heli
//	      part: body
//	      translate: [0, 0, 2]
//	      rotate: [90, 0, 0]   # yaw pitch roll in degrees
//	      scale: [0.5]
//
// Relative mesh paths are resolved against the location of the description.
// The mesh source "builtin:triangles" refers to the built-in demo geometry.
package scene

import (
	"fmt"
	"time"

	"github.com/achilleasa/gloom/asset"
	"github.com/achilleasa/gloom/asset/mesh"
	"github.com/achilleasa/gloom/log"
	"gopkg.in/yaml.v3"
)

// BuiltinTriangles is the mesh source for the built-in demo triangles.
const BuiltinTriangles = "builtin:triangles"

// Description is a parsed scene file.
type Description struct {
	Attribute         string            `yaml:"attribute"`
	ComposeTransforms bool              `yaml:"compose_transforms"`
	Meshes            map[string]string `yaml:"meshes"`
	Root              NodeDescription   `yaml:"root"`

	attr mesh.AttributeKind
	res  *asset.Resource
}

// NodeDescription describes a single graph node and its children. Nodes
// without a mesh become groups.
type NodeDescription struct {
	Name      string            `yaml:"name"`
	Mesh      string            `yaml:"mesh"`
	Part      string            `yaml:"part"`
	Translate []float32         `yaml:"translate"`
	Rotate    []float32         `yaml:"rotate"`
	Scale     []float32         `yaml:"scale"`
	Children  []NodeDescription `yaml:"children"`
}

// AttributeKind returns the per-vertex attribute requested by the scene.
func (d *Description) AttributeKind() mesh.AttributeKind {
	return d.attr
}

// ReadFile reads a scene description from a local path or URL.
func ReadFile(path string) (*Description, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return Read(res)
}

// Read parses and validates a scene description.
func Read(res *asset.Resource) (*Description, error) {
	logger := log.New("scene reader")
	logger.Infof(`parsing scene description from "%s"`, res.Path())
	start := time.Now()

	data, err := res.ReadAll()
	if err != nil {
		return nil, err
	}

	d := &Description{res: res}
	if err = yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("scene: could not parse %q: %w", res.Path(), err)
	}

	if d.attr, err = mesh.ParseAttributeKind(d.Attribute); err != nil {
		return nil, fmt.Errorf("scene: %q: %w", res.Path(), err)
	}
	if err = d.validate(&d.Root, "root"); err != nil {
		return nil, fmt.Errorf("scene: %q: %w", res.Path(), err)
	}

	logger.Infof("parsed scene description in %d ms", time.Since(start).Nanoseconds()/1e6)
	return d, nil
}

func (d *Description) validate(n *NodeDescription, nodePath string) error {
	if n.Name != "" {
		nodePath = n.Name
	}

	if n.Mesh != "" {
		if _, ok := d.Meshes[n.Mesh]; !ok {
			return fmt.Errorf("node %q references undefined mesh %q", nodePath, n.Mesh)
		}
	} else if n.Part != "" {
		return fmt.Errorf("node %q selects part %q without a mesh", nodePath, n.Part)
	}

	if len(n.Translate) != 0 && len(n.Translate) != 3 {
		return fmt.Errorf("node %q: translate expects 3 components; got %d", nodePath, len(n.Translate))
	}
	if len(n.Rotate) != 0 && len(n.Rotate) != 3 {
		return fmt.Errorf("node %q: rotate expects 3 components; got %d", nodePath, len(n.Rotate))
	}
	if len(n.Scale) != 0 && len(n.Scale) != 1 && len(n.Scale) != 3 {
		return fmt.Errorf("node %q: scale expects 1 or 3 components; got %d", nodePath, len(n.Scale))
	}

	for index := range n.Children {
		if err := d.validate(&n.Children[index], fmt.Sprintf("%s/%d", nodePath, index)); err != nil {
			return err
		}
	}
	return nil
}
