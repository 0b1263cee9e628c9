// Package scene implements the scene graph and the free-flying camera used
// to view it.
package scene

import (
	"fmt"

	"github.com/achilleasa/gloom/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeID identifies a node inside a Graph. Ids are indices into the graph's
// node arena and stay valid for the lifetime of the graph.
type NodeID int

// Kind tags what a node contributes to a frame.
type Kind uint8

const (
	// Group nodes only organize their children.
	Group Kind = iota

	// Drawable nodes reference an uploaded mesh.
	Drawable
)

func (k Kind) String() string {
	if k == Drawable {
		return "drawable"
	}
	return "group"
}

// Node is a read-only view of a graph node.
type Node struct {
	Name     string
	Kind     Kind
	Mesh     gpu.Mesh
	Local    mgl32.Mat4
	Children []NodeID
}

// Return the mesh of a drawable node; ok is false for group nodes.
func (n *Node) Drawable() (mesh gpu.Mesh, ok bool) {
	return n.Mesh, n.Kind == Drawable
}

// Graph is a tree of nodes stored in an arena. Nodes are created once,
// linked with AddChild and never removed; parents refer to their children
// by id so traversal never takes ownership of a node.
type Graph struct {
	nodes []Node

	// When set, each node's matrix is its parent's matrix multiplied by its
	// local transform. Otherwise every node is drawn with the matrix passed
	// to Draw/Walk and local transforms are ignored.
	ComposeTransforms bool
}

// Create an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Return the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Create a group node.
func (g *Graph) NewGroup(name string) NodeID {
	return g.add(Node{Name: name, Kind: Group})
}

// Create a drawable node for an uploaded mesh.
func (g *Graph) NewDrawable(name string, mesh gpu.Mesh) NodeID {
	return g.add(Node{Name: name, Kind: Drawable, Mesh: mesh})
}

func (g *Graph) add(n Node) NodeID {
	n.Local = mgl32.Ident4()
	g.nodes = append(g.nodes, n)
	return NodeID(len(g.nodes) - 1)
}

// Append child to the children of parent. No cycle detection is performed;
// the caller must link the nodes as a tree.
func (g *Graph) AddChild(parent, child NodeID) {
	g.nodes[parent].Children = append(g.nodes[parent].Children, child)
}

// Set the local transform of a node.
func (g *Graph) SetLocal(id NodeID, local mgl32.Mat4) {
	g.nodes[id].Local = local
}

// Return a pointer to a node. The node must not be modified.
func (g *Graph) Node(id NodeID) *Node {
	return &g.nodes[id]
}

// Lookup a node by name. If more than one node shares the name the one
// created first is returned.
func (g *Graph) Find(name string) (NodeID, error) {
	for index := range g.nodes {
		if g.nodes[index].Name == name {
			return NodeID(index), nil
		}
	}
	return 0, fmt.Errorf("scene: no node named %q", name)
}

// Visitor is invoked by Walk for each node with the matrix that applies to
// it.
type Visitor func(id NodeID, node *Node, mat mgl32.Mat4)

// Walk visits the subtree rooted at root depth-first in pre-order. Children
// are visited in the order they were added.
func (g *Graph) Walk(root NodeID, viewProj mgl32.Mat4, visit Visitor) {
	node := &g.nodes[root]
	mat := viewProj
	if g.ComposeTransforms {
		mat = viewProj.Mul4(node.Local)
	}

	visit(root, node, mat)
	for _, child := range node.Children {
		g.Walk(child, mat, visit)
	}
}

// Draw issues one indexed triangle draw for every drawable node in the
// subtree rooted at root and returns the number of draw calls. The node
// matrix is uploaded to uniformLocation before each draw.
func (g *Graph) Draw(api gpu.API, root NodeID, viewProj mgl32.Mat4, uniformLocation int32) int {
	drawCalls := 0
	g.Walk(root, viewProj, func(_ NodeID, node *Node, mat mgl32.Mat4) {
		mesh, ok := node.Drawable()
		if !ok {
			return
		}

		api.BindVertexArray(mesh.VAO)
		api.SetUniformMatrix4(uniformLocation, mat)
		api.DrawIndexedTriangles(mesh.Count)
		drawCalls++
	})
	return drawCalls
}
