package w3x

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/w3x_skeleton_browser/utils"
)

const DefaultRootName = "ROOTTRANSFORM"

const PARENT_NONE = -1

var ErrNoUsableHierarchy = errors.New("no usable W3DHierarchy")

type xmlVector struct {
	X string `xml:"X,attr"`
	Y string `xml:"Y,attr"`
	Z string `xml:"Z,attr"`
	W string `xml:"W,attr"`
}

type xmlPivot struct {
	Name        string     `xml:"Name,attr"`
	Parent      *string    `xml:"Parent,attr"`
	Translation *xmlVector `xml:"Translation"`
	Rotation    *xmlVector `xml:"Rotation"`
}

type xmlHierarchy struct {
	XMLName xml.Name   `xml:"W3DHierarchy"`
	Id      string     `xml:"id,attr"`
	Pivots  []xmlPivot `xml:"Pivot"`
}

// Pivot is one joint of the hierarchy.
// World* fields are only meaningful once the hierarchy is resolved.
type Pivot struct {
	Index       int
	SourceIndex int // position among all Pivot elements of the document
	Name        string
	ParentIndex int
	ParentName  string
	// Parent attribute as written in the document
	SourceParent int

	LocalTranslation mgl64.Vec3
	LocalRotation    mgl64.Quat

	WorldPosition   mgl64.Vec3
	WorldQuaternion mgl64.Quat
}

func (p *Pivot) HasParent(count int) bool {
	return p.ParentIndex >= 0 && p.ParentIndex < count
}

type Hierarchy struct {
	Id       string
	RootName string
	Pivots   []Pivot

	// number of Pivot elements in the source block, accepted or not
	SourceCount int
	resolved    bool
}

func (h *Hierarchy) Len() int { return len(h.Pivots) }

func (h *Hierarchy) IsResolved() bool { return h.resolved }

func (h *Hierarchy) Pivot(name string) *Pivot {
	for i := range h.Pivots {
		if h.Pivots[i].Name == name {
			return &h.Pivots[i]
		}
	}
	return nil
}

// Children lists pivots directly parented to index, in index order.
func (h *Hierarchy) Children(index int) []int {
	var result []int
	for i := range h.Pivots {
		if i != index && h.Pivots[i].ParentIndex == index {
			result = append(result, i)
		}
	}
	return result
}

// Roots lists pivot 0 and every pivot without a usable parent.
func (h *Hierarchy) Roots() []int {
	var result []int
	for i := range h.Pivots {
		if i == 0 || !h.Pivots[i].HasParent(len(h.Pivots)) {
			result = append(result, i)
		}
	}
	return result
}

func parseParent(attr *string) int {
	if attr == nil {
		return PARENT_NONE
	}
	v, err := strconv.Atoi(strings.TrimSpace(*attr))
	if err != nil {
		return PARENT_NONE
	}
	return v
}

func parseCoords(attrs ...string) ([]float64, error) {
	result := make([]float64, len(attrs))
	for i, a := range attrs {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func newPivot(xp *xmlPivot) (Pivot, error) {
	if xp.Translation == nil || xp.Rotation == nil {
		return Pivot{}, errors.New("missing Translation or Rotation")
	}

	t, err := parseCoords(xp.Translation.X, xp.Translation.Y, xp.Translation.Z)
	if err != nil {
		return Pivot{}, errors.Wrapf(err, "bad Translation")
	}
	r, err := parseCoords(xp.Rotation.X, xp.Rotation.Y, xp.Rotation.Z, xp.Rotation.W)
	if err != nil {
		return Pivot{}, errors.Wrapf(err, "bad Rotation")
	}

	return Pivot{
		Name:             xp.Name,
		ParentIndex:      parseParent(xp.Parent),
		SourceParent:     parseParent(xp.Parent),
		LocalTranslation: mgl64.Vec3{t[0], t[1], t[2]},
		LocalRotation:    utils.QuatFromXYZW(r[0], r[1], r[2], r[3]),
		WorldQuaternion:  mgl64.QuatIdent(),
	}, nil
}

// BuildHierarchy parses an extracted W3DHierarchy block into an indexed pivot list.
// Records lacking transforms are skipped and reported, they never fail the build.
// The root pivot is swapped to index 0 and Parent attributes, which count
// document positions, are remapped onto the final indices.
func BuildHierarchy(block string, rootName string, rep Reporter) (*Hierarchy, error) {
	if strings.TrimSpace(block) == "" {
		return nil, errors.Wrapf(ErrNoUsableHierarchy, "empty block")
	}
	if rootName == "" {
		rootName = DefaultRootName
	}

	var xh xmlHierarchy
	if err := xml.Unmarshal([]byte(block), &xh); err != nil {
		return nil, errors.Wrapf(ErrNoUsableHierarchy, "Failed to parse W3DHierarchy: %v", err)
	}

	h := &Hierarchy{
		Id:          xh.Id,
		RootName:    rootName,
		Pivots:      make([]Pivot, 0, len(xh.Pivots)),
		SourceCount: len(xh.Pivots),
	}

	for i := range xh.Pivots {
		p, err := newPivot(&xh.Pivots[i])
		if err != nil {
			reportf(rep, RecordIncomplete, xh.Pivots[i].Name, "skipping pivot %d: %v", i, err)
			continue
		}
		p.Index = len(h.Pivots)
		p.SourceIndex = i
		h.Pivots = append(h.Pivots, p)
	}

	if len(h.Pivots) == 0 {
		return nil, errors.Wrapf(ErrNoUsableHierarchy, "none of %d pivots are usable", len(xh.Pivots))
	}

	h.normalizeRoot(rep)
	h.remapParents()
	h.fillParentNames()

	return h, nil
}

func (h *Hierarchy) normalizeRoot(rep Reporter) {
	if h.Pivots[0].Name == h.RootName {
		return
	}
	for j := range h.Pivots {
		if h.Pivots[j].Name == h.RootName {
			h.Pivots[0], h.Pivots[j] = h.Pivots[j], h.Pivots[0]
			h.Pivots[0].Index = 0
			h.Pivots[j].Index = j
			return
		}
	}
	reportf(rep, RootMissing, h.Pivots[0].Name, "no %s pivot, using first pivot as root", h.RootName)
}

// remapParents points parents at final indices.
// A parent that was skipped leaves the pivot without one.
func (h *Hierarchy) remapParents() {
	final := make(map[int]int, len(h.Pivots))
	for i := range h.Pivots {
		final[h.Pivots[i].SourceIndex] = i
	}

	for i := range h.Pivots {
		p := &h.Pivots[i]
		if p.ParentIndex < 0 || p.ParentIndex >= h.SourceCount {
			continue
		}
		if idx, ok := final[p.ParentIndex]; ok {
			p.ParentIndex = idx
		} else {
			p.ParentIndex = PARENT_NONE
		}
	}
}

func (h *Hierarchy) fillParentNames() {
	for i := range h.Pivots {
		p := &h.Pivots[i]
		if p.HasParent(len(h.Pivots)) {
			p.ParentName = h.Pivots[p.ParentIndex].Name
		} else {
			p.ParentName = ""
		}
	}
}
