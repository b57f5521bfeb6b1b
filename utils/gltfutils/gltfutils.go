package gltfutils

import (
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
)

func NewDocument() *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "w3x_skeleton_browser"
	return doc
}

func Vec3(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Quat converts to the glTF rotation layout (x, y, z, w).
func Quat(q mgl64.Quat) [4]float32 {
	return [4]float32{float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W)}
}

func AddSceneRoot(doc *gltf.Document, node uint32) {
	if len(doc.Scenes) == 0 {
		doc.Scenes = append(doc.Scenes, &gltf.Scene{Name: "Root Scene"})
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, node)
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

func ExportJSON(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = false
	return encoder.Encode(doc)
}
