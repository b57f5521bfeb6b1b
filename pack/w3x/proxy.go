package w3x

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/w3x_skeleton_browser/utils"
)

// ProxyKind selects the stand-in object created for every pivot.
type ProxyKind int

const (
	ProxyBox ProxyKind = iota
	ProxyBone
	ProxyHelper
)

func (k ProxyKind) String() string {
	switch k {
	case ProxyBone:
		return "bone"
	case ProxyHelper:
		return "helper"
	default:
		return "box"
	}
}

// ParseProxyKind falls back to a box for unknown names.
func ParseProxyKind(name string) ProxyKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bone":
		return ProxyBone
	case "helper":
		return ProxyHelper
	default:
		return ProxyBox
	}
}

var (
	colorGreen  = [3]uint8{0, 255, 0}
	colorBlue   = [3]uint8{0, 0, 255}
	colorYellow = [3]uint8{255, 255, 0}
	colorWhite  = [3]uint8{255, 255, 255}
)

const boneLength = 1.0

// ProxyShape describes how a proxy should look.
// Size is width/length/height for boxes and length/width/height for bones.
type ProxyShape struct {
	Kind  ProxyKind
	Size  mgl64.Vec3
	Color [3]uint8
	// bone end point in world space
	Tail mgl64.Vec3
}

func ShapeFor(p *Pivot, kind ProxyKind, rootName string) ProxyShape {
	switch kind {
	case ProxyBone:
		dir := utils.RotateVector(mgl64.Vec3{0, 1, 0}, p.WorldQuaternion)
		return ProxyShape{
			Kind:  ProxyBone,
			Size:  mgl64.Vec3{boneLength, 0.25, 0.5},
			Color: colorWhite,
			Tail:  p.WorldPosition.Add(dir.Mul(boneLength)),
		}
	case ProxyHelper:
		return ProxyShape{Kind: ProxyHelper, Color: colorYellow}
	default:
		color := colorGreen
		if p.Name == rootName {
			color = colorBlue
		}
		return ProxyShape{Kind: ProxyBox, Size: mgl64.Vec3{2, 1, 0.5}, Color: color}
	}
}

type ProxyHandle interface{}

// ProxyBackend creates stand-in objects for pivots in some target scene.
// Proxies are created at world transforms, linking a child switches it
// to its parent relative transform.
type ProxyBackend interface {
	CreateProxy(p *Pivot, shape ProxyShape) (ProxyHandle, error)
	LinkProxy(child, parent ProxyHandle) error
}

// BuildProxies creates one proxy per pivot and parents them like the pivots.
func BuildProxies(h *Hierarchy, backend ProxyBackend, kind ProxyKind) ([]ProxyHandle, error) {
	if !h.IsResolved() {
		return nil, errors.Errorf("Hierarchy %q is not resolved", h.Id)
	}

	handles := make([]ProxyHandle, len(h.Pivots))
	for i := range h.Pivots {
		p := &h.Pivots[i]
		handle, err := backend.CreateProxy(p, ShapeFor(p, kind, h.RootName))
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to create proxy for %q", p.Name)
		}
		handles[i] = handle
	}

	for i := 1; i < len(h.Pivots); i++ {
		p := &h.Pivots[i]
		if !p.HasParent(len(h.Pivots)) {
			continue
		}
		if err := backend.LinkProxy(handles[i], handles[p.ParentIndex]); err != nil {
			return nil, errors.Wrapf(err, "Failed to link %q to %q", p.Name, p.ParentName)
		}
	}
	return handles, nil
}
