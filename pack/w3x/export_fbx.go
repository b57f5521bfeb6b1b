package w3x

import (
	"bytes"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"
	"github.com/pkg/errors"

	"github.com/mogaika/w3x_skeleton_browser/utils"
	"github.com/mogaika/w3x_skeleton_browser/utils/fbxbuilder"
)

type fbxProxy struct {
	model *fbx.Node
	pivot *Pivot
}

// FbxProxyBackend turns pivots into FBX models, LimbNode for bones
// and Null for everything else.
type FbxProxyBackend struct {
	f       *fbxbuilder.FBXBuilder
	proxies map[int64]*fbxProxy
	linked  map[int64]bool
	order   []int64
}

func NewFbxProxyBackend(f *fbxbuilder.FBXBuilder) *FbxProxyBackend {
	return &FbxProxyBackend{
		f:       f,
		proxies: make(map[int64]*fbxProxy),
		linked:  make(map[int64]bool),
	}
}

func lclProperties(t mgl64.Vec3, q mgl64.Quat) []*fbx.Node {
	rotation := utils.RadiansToDegreeV3(utils.QuatToEuler(q))
	return []*fbx.Node{
		bfbx73.P("Lcl Translation", "Lcl Translation", "", "A+", t[0], t[1], t[2]),
		bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A+", rotation[0], rotation[1], rotation[2]),
		bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A+", float64(1), float64(1), float64(1)),
	}
}

func (fb *FbxProxyBackend) CreateProxy(p *Pivot, shape ProxyShape) (ProxyHandle, error) {
	typ := "Null"
	if shape.Kind == ProxyBone {
		typ = "LimbNode"
	}

	id := fb.f.GenerateId()
	props := bfbx73.Properties70().AddNodes(lclProperties(p.WorldPosition, p.WorldQuaternion)...)
	props.AddNodes(
		bfbx73.P("Color", "ColorRGB", "Color", "",
			float64(shape.Color[0])/255, float64(shape.Color[1])/255, float64(shape.Color[2])/255),
		bfbx73.P("W3XProxy", "KString", "", "U", shape.Kind.String()),
		bfbx73.P("W3XPivotIndex", "int", "Integer", "U", int32(p.Index)),
	)

	model := bfbx73.Model(id, p.Name+"\x00\x01Model", typ).AddNodes(
		bfbx73.Version(232),
		props,
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)

	attrProps := bfbx73.Properties70()
	if shape.Kind == ProxyBone {
		attrProps.AddNodes(bfbx73.P("Size", "double", "Number", "", shape.Size[0]*100))
	}
	nodeAttribute := bfbx73.NodeAttribute(fb.f.GenerateId(), p.Name+"\x00\x01NodeAttribute", typ).AddNodes(
		attrProps,
		bfbx73.TypeFlags(typ),
	)

	fb.f.AddConnections(bfbx73.C("OO", nodeAttribute.Properties[0].(int64), id))
	fb.f.AddObjects(model, nodeAttribute)

	fb.proxies[id] = &fbxProxy{model: model, pivot: p}
	fb.order = append(fb.order, id)
	return id, nil
}

func (fb *FbxProxyBackend) LinkProxy(child, parent ProxyHandle) error {
	c, ok1 := child.(int64)
	pr, ok2 := parent.(int64)
	if !ok1 || !ok2 || fb.proxies[c] == nil || fb.proxies[pr] == nil {
		return errors.Errorf("Invalid fbx model handles %v -> %v", child, parent)
	}
	if fb.linked[c] {
		return errors.Errorf("Model %d already has a parent", c)
	}

	proxy := fb.proxies[c]
	props := proxy.model.GetNode("Properties70")
	kept := make([]*fbx.Node, 0, len(props.Nodes))
	for _, n := range props.Nodes {
		switch n.Properties[0] {
		case "Lcl Translation", "Lcl Rotation", "Lcl Scaling":
		default:
			kept = append(kept, n)
		}
	}
	props.Nodes = append(lclProperties(proxy.pivot.LocalTranslation, proxy.pivot.LocalRotation), kept...)

	fb.f.AddConnections(bfbx73.C("OO", c, pr))
	fb.linked[c] = true
	return nil
}

// Finish connects every unparented model to the scene root.
func (fb *FbxProxyBackend) Finish() {
	for _, id := range fb.order {
		if !fb.linked[id] {
			fb.f.AddConnections(bfbx73.C("OO", id, int64(0)))
		}
	}
}

// ExportFbx builds an FBX scene with one model per pivot.
func ExportFbx(h *Hierarchy, name string, kind ProxyKind) (*fbxbuilder.FBXBuilder, error) {
	f := fbxbuilder.NewFBXBuilder(name)
	fb := NewFbxProxyBackend(f)
	if _, err := BuildProxies(h, fb, kind); err != nil {
		return nil, err
	}
	fb.Finish()
	return f, nil
}

// ExportFbxWithIni is ExportFbx plus the ini export as an extra zip entry.
func ExportFbxWithIni(h *Hierarchy, name string, kind ProxyKind) (*fbxbuilder.FBXBuilder, error) {
	f, err := ExportFbx(h, name, kind)
	if err != nil {
		return nil, err
	}
	var ini bytes.Buffer
	if err := WriteINI(&ini, h); err != nil {
		return nil, err
	}
	f.AddExportFile(IniPath(filepath.Base(name), ""), ini.Bytes())
	return f, nil
}
