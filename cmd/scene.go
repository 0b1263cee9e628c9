package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/achilleasa/gloom/asset/mesh"
	"github.com/achilleasa/gloom/asset/scene"
	"github.com/achilleasa/gloom/gpu"
	scenegraph "github.com/achilleasa/gloom/scene"
	"github.com/achilleasa/gloom/types"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display per-part statistics for one or more wavefront obj files.
func ShowMeshInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing mesh file argument")
	}

	attr, err := mesh.ParseAttributeKind(ctx.String("attribute"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"File", "Part", "Vertices", "Triangles", "BBox min", "BBox max", "Center"})

	var totalVertices, totalTriangles int
	for _, path := range ctx.Args() {
		parts, err := mesh.Load(path, attr)
		if err != nil {
			return err
		}

		for _, part := range parts {
			totalVertices += part.Set.VertexCount()
			totalTriangles += part.Set.TriangleCount()
			table.Append(partRow(path, part))
		}
	}
	table.SetFooter([]string{"", "TOTAL", fmt.Sprintf("%d", totalVertices), fmt.Sprintf("%d", totalTriangles), "", "", ""})

	table.Render()
	logger.Noticef("mesh information:\n%s", buf.String())
	return nil
}

// Display the node tree of a scene description.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	desc, err := scene.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}

	// Meshes are parsed but not uploaded.
	graph := scenegraph.NewGraph()
	var nextVAO gpu.VertexArray
	root, err := desc.Build(graph, func(set gpu.VertexBufferSet) (gpu.Mesh, error) {
		nextVAO++
		return gpu.Mesh{VAO: nextVAO, Count: int32(len(set.Indices))}, set.Validate()
	})
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sceneTable(graph, root))
	return nil
}

func sceneTable(graph *scenegraph.Graph, root scenegraph.NodeID) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Node", "Kind", "Triangles", "Children"})

	depth := make(map[scenegraph.NodeID]int)
	var drawables, triangles int
	graph.Walk(root, mgl32.Ident4(), func(id scenegraph.NodeID, node *scenegraph.Node, _ mgl32.Mat4) {
		for _, child := range node.Children {
			depth[child] = depth[id] + 1
		}

		tris := ""
		if m, ok := node.Drawable(); ok {
			drawables++
			triangles += int(m.Count) / 3
			tris = fmt.Sprintf("%d", m.Count/3)
		}
		name := node.Name
		if name == "" {
			name = fmt.Sprintf("#%d", id)
		}
		table.Append([]string{
			strings.Repeat("  ", depth[id]) + name,
			node.Kind.String(),
			tris,
			fmt.Sprintf("%d", len(node.Children)),
		})
	})
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d drawable(s)", drawables), fmt.Sprintf("%d", triangles), ""})

	table.Render()
	return buf.String()
}

func partRow(path string, part mesh.Part) []string {
	row := []string{
		path,
		part.Name,
		fmt.Sprintf("%d", part.Set.VertexCount()),
		fmt.Sprintf("%d", part.Set.TriangleCount()),
	}
	if part.BBox.IsEmpty() {
		return append(row, "-", "-", "-")
	}
	return append(row, fmtVec3(part.BBox[0]), fmtVec3(part.BBox[1]), fmtVec3(part.BBox.Center()))
}

func fmtVec3(v types.Vec3) string {
	return fmt.Sprintf("%.3f, %.3f, %.3f", v[0], v[1], v[2])
}
