package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/gloom/asset"
	"github.com/achilleasa/gloom/asset/mesh"
	"github.com/achilleasa/gloom/gpu"
	scenegraph "github.com/achilleasa/gloom/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const heliObj = `
o body
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o rotor
v 0 0 1
v 1 0 1
v 0 1 1
v 1 1 1
f 4 5 7 6
`

const heliScene = `
attribute: normals
compose_transforms: true
meshes:
  heli: models/heli.obj
root:
  name: world
  children:
    - name: heli
      mesh: heli
      translate: [0, 0, 2]
    - name: spare-rotor
      mesh: heli
      part: rotor
      rotate: [90, 0, 0]
      scale: [2]
`

type fakeUploader struct {
	uploads []gpu.VertexBufferSet
}

func (u *fakeUploader) upload(set gpu.VertexBufferSet) (gpu.Mesh, error) {
	u.uploads = append(u.uploads, set)
	return gpu.Mesh{VAO: gpu.VertexArray(len(u.uploads)), Count: int32(len(set.Indices))}, nil
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestReadAndBuild(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"scene.yaml":      heliScene,
		"models/heli.obj": heliObj,
	})

	d, err := ReadFile(filepath.Join(dir, "scene.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if d.AttributeKind() != mesh.Normals {
		t.Fatalf("expected normals attribute; got %s", d.AttributeKind())
	}

	up := &fakeUploader{}
	g := scenegraph.NewGraph()
	root, err := d.Build(g, up.upload)
	if err != nil {
		t.Fatal(err)
	}

	if !g.ComposeTransforms {
		t.Fatal("expected compose flag to be copied to the graph")
	}
	if len(up.uploads) != 2 {
		t.Fatalf("expected each part to be uploaded once; got %d uploads", len(up.uploads))
	}

	// world, heli group, body, rotor, spare-rotor
	if g.Len() != 5 {
		t.Fatalf("expected 5 nodes; got %d", g.Len())
	}
	if g.Node(root).Name != "world" || g.Node(root).Kind != scenegraph.Group {
		t.Fatalf("expected root group named world; got %+v", g.Node(root))
	}

	heli, err := g.Find("heli")
	if err != nil {
		t.Fatal(err)
	}
	if g.Node(heli).Kind != scenegraph.Group || len(g.Node(heli).Children) != 2 {
		t.Fatalf("expected multi-part mesh to become a group with 2 children; got %+v", g.Node(heli))
	}
	if !g.Node(heli).Local.ApproxEqual(mgl32.Translate3D(0, 0, 2)) {
		t.Fatalf("unexpected heli transform\n%v", g.Node(heli).Local)
	}

	spare, _ := g.Find("spare-rotor")
	rotor, _ := g.Find("rotor")
	spareMesh, ok := g.Node(spare).Drawable()
	if !ok {
		t.Fatal("expected part reference to become a drawable")
	}
	rotorMesh, _ := g.Node(rotor).Drawable()
	if spareMesh != rotorMesh {
		t.Fatalf("expected both rotor nodes to share one upload; got %v and %v", spareMesh, rotorMesh)
	}
	if rotorMesh.Count != 6 {
		t.Fatalf("expected rotor quad to have 6 indices; got %d", rotorMesh.Count)
	}
}

func TestBuiltinTriangles(t *testing.T) {
	payload := `
attribute: colors
meshes:
  demo: builtin:triangles
root:
  mesh: demo
`
	d, err := Read(asset.NewResourceFromStream("demo.yaml", strings.NewReader(payload)))
	if err != nil {
		t.Fatal(err)
	}

	up := &fakeUploader{}
	g := scenegraph.NewGraph()
	root, err := d.Build(g, up.upload)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := g.Node(root).Drawable()
	if !ok || m.Count != 9 {
		t.Fatalf("expected drawable root with 9 indices; got %v %v", m, ok)
	}
}

func TestUploadErrors(t *testing.T) {
	payload := `
meshes:
  demo: builtin:triangles
root:
  mesh: demo
`
	d, err := Read(asset.NewResourceFromStream("demo.yaml", strings.NewReader(payload)))
	if err != nil {
		t.Fatal(err)
	}

	errBoom := errors.New("boom")
	_, err = d.Build(scenegraph.NewGraph(), func(gpu.VertexBufferSet) (gpu.Mesh, error) {
		return gpu.Mesh{}, errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected upload error to be wrapped; got %v", err)
	}
}

func TestReadErrors(t *testing.T) {
	type spec struct {
		payload string
		expErr  string
	}
	specs := []spec{
		{"root: [", "could not parse"},
		{"attribute: uv", "unknown attribute kind"},
		{"root:\n  mesh: nope", `undefined mesh "nope"`},
		{"root:\n  part: body", "without a mesh"},
		{"root:\n  name: a\n  translate: [1, 2]", "translate expects 3"},
		{"root:\n  children:\n    - rotate: [1]", "rotate expects 3"},
		{"root:\n  scale: [1, 2]", "scale expects 1 or 3"},
	}

	for index, s := range specs {
		_, err := Read(asset.NewResourceFromStream("bad.yaml", strings.NewReader(s.payload)))
		if err == nil || !strings.Contains(err.Error(), s.expErr) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", index, s.expErr, err)
		}
	}
}

func TestMissingPart(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"scene.yaml": "meshes:\n  heli: heli.obj\nroot:\n  mesh: heli\n  part: tail\n",
		"heli.obj":   heliObj,
	})

	d, err := ReadFile(filepath.Join(dir, "scene.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	up := &fakeUploader{}
	if _, err = d.Build(scenegraph.NewGraph(), up.upload); err == nil || !strings.Contains(err.Error(), `no part named "tail"`) {
		t.Fatalf("expected missing part error; got %v", err)
	}
}

func TestNodeTransform(t *testing.T) {
	n := NodeDescription{
		Translate: []float32{1, 2, 3},
		Rotate:    []float32{90, 45, 30},
		Scale:     []float32{1, 2, 3},
	}
	exp := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(45))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(30))).
		Mul4(mgl32.Scale3D(1, 2, 3))
	if got := n.Transform(); !got.ApproxEqual(exp) {
		t.Fatalf("expected\n%v\ngot\n%v", exp, got)
	}

	if got := (&NodeDescription{}).Transform(); got != mgl32.Ident4() {
		t.Fatalf("expected identity for empty node; got\n%v", got)
	}
}

func TestRepeatedPartNamesUploadSeparately(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"scene.yaml": "meshes:\n  plane: plane.obj\nroot:\n  mesh: plane\n",
		"plane.obj": `
g wing
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
g wing
v 0 0 1
v 1 0 1
v 0 1 1
v 1 1 1
f 4 5 7 6
`,
	})

	d, err := ReadFile(filepath.Join(dir, "scene.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	up := &fakeUploader{}
	g := scenegraph.NewGraph()
	root, err := d.Build(g, up.upload)
	if err != nil {
		t.Fatal(err)
	}

	if len(up.uploads) != 2 {
		t.Fatalf("expected both parts to be uploaded; got %d uploads", len(up.uploads))
	}
	children := g.Node(root).Children
	if len(children) != 2 {
		t.Fatalf("expected 2 drawable children; got %d", len(children))
	}
	expCounts := []int32{3, 6}
	for index, child := range children {
		m, ok := g.Node(child).Drawable()
		if !ok || m.Count != expCounts[index] {
			t.Fatalf("[part %d] expected drawable with %d indices; got %v %v", index, expCounts[index], m, ok)
		}
	}
	first, _ := g.Node(children[0]).Drawable()
	second, _ := g.Node(children[1]).Drawable()
	if first.VAO == second.VAO {
		t.Fatalf("expected distinct vertex arrays; both got %d", first.VAO)
	}
}
