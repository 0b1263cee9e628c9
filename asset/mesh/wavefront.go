// Package mesh reads triangle meshes into GPU-ready vertex buffer sets.
package mesh

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/gloom/asset"
	"github.com/achilleasa/gloom/gpu"
	"github.com/achilleasa/gloom/log"
	"github.com/achilleasa/gloom/types"
)

// AttributeKind selects what gets uploaded to the secondary attribute slot.
type AttributeKind int

const (
	Normals AttributeKind = iota
	Colors
)

// Width returns the number of float components per vertex for this kind.
func (k AttributeKind) Width() int {
	if k == Colors {
		return 4
	}
	return 3
}

func (k AttributeKind) String() string {
	if k == Colors {
		return "colors"
	}
	return "normals"
}

// Parse an attribute kind name as accepted by the CLI and scene files.
func ParseAttributeKind(name string) (AttributeKind, error) {
	switch strings.ToLower(name) {
	case "", "normals", "normal":
		return Normals, nil
	case "colors", "colours", "color", "colour":
		return Colors, nil
	}
	return Normals, fmt.Errorf("mesh: unknown attribute kind %q", name)
}

// Part is one named object of a model file. Multi-part models such as a
// vehicle with separate rotor meshes yield one Part per object.
type Part struct {
	Name string
	Set  gpu.VertexBufferSet
	BBox types.BBox
}

type wavefrontMaterial struct {
	Kd    types.Vec3
	Alpha float32
}

var defaultMaterial = &wavefrontMaterial{Kd: types.Vec3{0.7, 0.7, 0.7}, Alpha: 1}

// Dedup key for face corners that reference an explicit normal.
type cornerKey struct {
	vertex int
	normal int
	mat    *wavefrontMaterial
}

type partBuilder struct {
	part    Part
	corners map[cornerKey]uint32
}

type wavefrontReader struct {
	logger log.Logger
	attr   AttributeKind

	parts       []*partBuilder
	materials   map[string]*wavefrontMaterial
	curMaterial *wavefrontMaterial

	vertexList []types.Vec3
	normalList []types.Vec3

	// Context lines for errors raised inside included files.
	errStack []string
}

// Load opens the model at path (a local file or http/https URL) and reads
// it with ReadWavefront.
func Load(path string, attr AttributeKind) ([]Part, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return ReadWavefront(res, attr)
}

// ReadWavefront parses a wavefront obj stream. Each "o" or "g" statement
// starts a new part; faces before the first statement go to a part named
// "default". Material libraries referenced via "mtllib" supply per-vertex
// colors (Kd and d) when attr is Colors. Missing normals are replaced by
// flat face normals.
func ReadWavefront(res *asset.Resource, attr AttributeKind) ([]Part, error) {
	r := &wavefrontReader{
		logger:      log.New("wavefront reader"),
		attr:        attr,
		materials:   make(map[string]*wavefrontMaterial),
		curMaterial: defaultMaterial,
	}

	r.logger.Infof(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}
	r.dropEmptyPart()

	parts := make([]Part, len(r.parts))
	for index, pb := range r.parts {
		parts[index] = pb.part
	}

	r.logger.Infof("parsed %d mesh part(s) in %d ms", len(parts), time.Since(start).Nanoseconds()/1e6)
	return parts, nil
}

func (r *wavefrontReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	errMsg := strings.Trim(
		fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
		"\n",
	)
	return fmt.Errorf("mesh: %s", errMsg)
}

func (r *wavefrontReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

func (r *wavefrontReader) popFrame() {
	r.errStack = r.errStack[1:]
}

func (r *wavefrontReader) newPart(name string) {
	r.dropEmptyPart()
	r.parts = append(r.parts, &partBuilder{
		part: Part{
			Name: name,
			Set:  gpu.VertexBufferSet{AttributeWidth: r.attr.Width()},
			BBox: types.EmptyBBox(),
		},
		corners: make(map[cornerKey]uint32),
	})
}

// Drop the last part if no faces were added to it.
func (r *wavefrontReader) dropEmptyPart() {
	last := len(r.parts) - 1
	if last >= 0 && len(r.parts[last].part.Set.Indices) == 0 {
		r.logger.Warningf(`dropping mesh part "%s" as it contains no polygons`, r.parts[last].part.Name)
		r.parts = r.parts[:last]
	}
}

func (r *wavefrontReader) parse(res *asset.Resource) error {
	lineNum := 0

	// Included files use 1-based indices relative to their own vertices.
	relVertexOffset := len(r.vertexList)
	relNormalOffset := len(r.normalList)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call", "mtllib":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))
			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}

			if lineTokens[0] == "call" {
				err = r.parse(incRes)
			} else {
				err = r.parseMaterials(incRes)
			}
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "usemtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}
			mat, exists := r.materials[lineTokens[1]]
			if !exists {
				return r.emitError(res.Path(), lineNum, `undefined material with name "%s"`, lineTokens[1])
			}
			r.curMaterial = mat
		case "v", "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			if lineTokens[0] == "v" {
				r.vertexList = append(r.vertexList, v)
			} else {
				r.normalList = append(r.normalList, v)
			}
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}
			r.newPart(lineTokens[1])
		case "f":
			if len(r.parts) == 0 {
				r.newPart("default")
			}
			if err := r.parseFace(lineTokens, relVertexOffset, relNormalOffset); err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, "%s", err.Error())
	}
	return nil
}

// Parse a face definition. Each argument has one of the forms v, v/vt,
// v//vn or v/vt/vn. Indices start from 1 and may be negative to reference
// elements from the end of the list. Polygons with more than 3 vertices are
// split into a triangle fan.
func (r *wavefrontReader) parseFace(lineTokens []string, relVertexOffset, relNormalOffset int) error {
	argCount := len(lineTokens) - 1
	if argCount < 3 {
		return fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, argCount)
	}

	vertexIndices := make([]int, argCount)
	normalIndices := make([]int, argCount)
	expIndices := 0
	hasNormals := false
	for arg := 0; arg < argCount; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if arg == 0 {
			expIndices = len(vTokens)
			hasNormals = expIndices > 2 && vTokens[2] != ""
		} else if len(vTokens) != expIndices {
			return fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		var err error
		vertexIndices[arg], err = selectFaceCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}

		if hasNormals {
			if len(vTokens) < 3 || vTokens[2] == "" {
				return fmt.Errorf("face argument %d does not include a normal index", arg)
			}
			normalIndices[arg], err = selectFaceCoordIndex(vTokens[2], len(r.normalList), relNormalOffset)
			if err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
		}
	}

	pb := r.parts[len(r.parts)-1]
	for tri := 1; tri+1 < argCount; tri++ {
		corners := [3]int{0, tri, tri + 1}

		if hasNormals {
			for _, c := range corners {
				pb.appendIndex(r.corner(pb, vertexIndices[c], normalIndices[c]))
			}
			continue
		}

		// Flat shading: corners with a generated normal are never shared.
		v0 := r.vertexList[vertexIndices[corners[0]]]
		v1 := r.vertexList[vertexIndices[corners[1]]]
		v2 := r.vertexList[vertexIndices[corners[2]]]
		faceNormal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		for _, c := range corners {
			pb.appendIndex(r.appendVertex(pb, r.vertexList[vertexIndices[c]], faceNormal))
		}
	}

	return nil
}

// Return the index of a corner with an explicit normal, reusing a vertex
// emitted earlier for the same position, normal and material.
func (r *wavefrontReader) corner(pb *partBuilder, vertexIndex, normalIndex int) uint32 {
	key := cornerKey{vertex: vertexIndex, normal: normalIndex, mat: r.curMaterial}
	if index, exists := pb.corners[key]; exists {
		return index
	}
	index := r.appendVertex(pb, r.vertexList[vertexIndex], r.normalList[normalIndex])
	pb.corners[key] = index
	return index
}

func (r *wavefrontReader) appendVertex(pb *partBuilder, pos, normal types.Vec3) uint32 {
	set := &pb.part.Set
	index := uint32(set.VertexCount())
	set.Positions = append(set.Positions, pos[0], pos[1], pos[2])

	switch r.attr {
	case Colors:
		kd := r.curMaterial.Kd
		set.Attributes = append(set.Attributes, kd[0], kd[1], kd[2], r.curMaterial.Alpha)
	default:
		set.Attributes = append(set.Attributes, normal[0], normal[1], normal[2])
	}

	pb.part.BBox = pb.part.BBox.Extend(pos)
	return index
}

func (pb *partBuilder) appendIndex(index uint32) {
	pb.part.Set.Indices = append(pb.part.Set.Indices, index)
}

// Parse a wavefront material library. Only the properties that map to
// vertex colors are kept.
func (r *wavefrontReader) parseMaterials(res *asset.Resource) error {
	lineNum := 0
	var curMaterial *wavefrontMaterial

	r.logger.Infof(`parsing material library "%s"`, res.Path())

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		if lineTokens[0] == "newmtl" {
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "newmtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}
			if _, exists := r.materials[lineTokens[1]]; exists {
				return r.emitError(res.Path(), lineNum, `material "%s" already defined`, lineTokens[1])
			}
			curMaterial = &wavefrontMaterial{Kd: defaultMaterial.Kd, Alpha: 1}
			r.materials[lineTokens[1]] = curMaterial
			continue
		}

		if curMaterial == nil {
			return r.emitError(res.Path(), lineNum, `got "%s" without a "newmtl"`, lineTokens[0])
		}

		var err error
		switch lineTokens[0] {
		case "Kd":
			curMaterial.Kd, err = parseVec3(lineTokens)
		case "d":
			curMaterial.Alpha, err = parseFloat32(lineTokens)
		case "Tr":
			var tr float32
			tr, err = parseFloat32(lineTokens)
			curMaterial.Alpha = 1 - tr
		}
		if err != nil {
			return r.emitError(res.Path(), lineNum, "%s", err.Error())
		}
	}

	return scanner.Err()
}

// Given an index for a face coord type calculate the proper offset into the
// coord list. Negative indices reference elements from the end of the list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

func parseFloat32(lineTokens []string) (float32, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	val, err := strconv.ParseFloat(lineTokens[1], 32)
	if err != nil {
		return 0, err
	}
	return float32(val), nil
}

func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
