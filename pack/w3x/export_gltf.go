package w3x

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/w3x_skeleton_browser/utils/gltfutils"
)

// GLTFProxyBackend turns pivots into glTF nodes.
type GLTFProxyBackend struct {
	Doc *gltf.Document

	pivots map[uint32]*Pivot
	linked map[uint32]bool
	nodes  []uint32
}

func NewGLTFProxyBackend(doc *gltf.Document) *GLTFProxyBackend {
	return &GLTFProxyBackend{
		Doc:    doc,
		pivots: make(map[uint32]*Pivot),
		linked: make(map[uint32]bool),
	}
}

func (gb *GLTFProxyBackend) CreateProxy(p *Pivot, shape ProxyShape) (ProxyHandle, error) {
	extras := map[string]interface{}{
		"proxy": shape.Kind.String(),
		"index": p.Index,
		"color": shape.Color,
	}
	if shape.Kind != ProxyHelper {
		extras["size"] = gltfutils.Vec3(shape.Size)
	}
	if shape.Kind == ProxyBone {
		extras["tail"] = gltfutils.Vec3(shape.Tail)
	}

	node := &gltf.Node{
		Name:        p.Name,
		Translation: gltfutils.Vec3(p.WorldPosition),
		Rotation:    gltfutils.Quat(p.WorldQuaternion),
		Scale:       [3]float32{1, 1, 1},
		Extras:      extras,
	}

	id := uint32(len(gb.Doc.Nodes))
	gb.Doc.Nodes = append(gb.Doc.Nodes, node)
	gb.pivots[id] = p
	gb.nodes = append(gb.nodes, id)
	return id, nil
}

func (gb *GLTFProxyBackend) LinkProxy(child, parent ProxyHandle) error {
	c, ok1 := child.(uint32)
	pr, ok2 := parent.(uint32)
	if !ok1 || !ok2 || int(c) >= len(gb.Doc.Nodes) || int(pr) >= len(gb.Doc.Nodes) {
		return errors.Errorf("Invalid gltf node handles %v -> %v", child, parent)
	}
	if gb.linked[c] {
		return errors.Errorf("Node %d already has a parent", c)
	}

	p := gb.pivots[c]
	node := gb.Doc.Nodes[c]
	node.Translation = gltfutils.Vec3(p.LocalTranslation)
	node.Rotation = gltfutils.Quat(p.LocalRotation)

	gb.Doc.Nodes[pr].Children = append(gb.Doc.Nodes[pr].Children, c)
	gb.linked[c] = true
	return nil
}

// Finish adds every unparented proxy to the default scene.
func (gb *GLTFProxyBackend) Finish() {
	for _, id := range gb.nodes {
		if !gb.linked[id] {
			gltfutils.AddSceneRoot(gb.Doc, id)
		}
	}
}

// ExportGLTF builds a glTF document with one node per pivot.
func ExportGLTF(h *Hierarchy, kind ProxyKind) (*gltf.Document, error) {
	doc := gltfutils.NewDocument()
	gb := NewGLTFProxyBackend(doc)
	if _, err := BuildProxies(h, gb, kind); err != nil {
		return nil, err
	}
	gb.Finish()
	return doc, nil
}
