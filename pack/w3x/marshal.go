package w3x

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/w3x_skeleton_browser/utils"
)

type PivotMarshal struct {
	Index            int        `json:"index" yaml:"index"`
	Name             string     `json:"name" yaml:"name"`
	ParentIndex      int        `json:"parent_index" yaml:"parent_index"`
	ParentName       string     `json:"parent_name" yaml:"parent_name"`
	LocalTranslation [3]float64 `json:"local_translation" yaml:"local_translation,flow"`
	LocalRotation    [4]float64 `json:"local_rotation" yaml:"local_rotation,flow"`
	WorldPosition    [3]float64 `json:"world_position" yaml:"world_position,flow"`
	WorldQuaternion  [4]float64 `json:"world_quaternion" yaml:"world_quaternion,flow"`
}

type HierarchyMarshal struct {
	Id          string         `json:"id" yaml:"id"`
	RootName    string         `json:"root_name" yaml:"root_name"`
	SourceCount int            `json:"source_count" yaml:"source_count"`
	Pivots      []PivotMarshal `json:"pivots" yaml:"pivots"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func (h *Hierarchy) Marshal(diags []Diagnostic) *HierarchyMarshal {
	hm := &HierarchyMarshal{
		Id:          h.Id,
		RootName:    h.RootName,
		SourceCount: h.SourceCount,
		Pivots:      make([]PivotMarshal, len(h.Pivots)),
		Diagnostics: diags,
	}
	for i := range h.Pivots {
		p := &h.Pivots[i]
		hm.Pivots[i] = PivotMarshal{
			Index:            p.Index,
			Name:             p.Name,
			ParentIndex:      p.ParentIndex,
			ParentName:       p.ParentName,
			LocalTranslation: p.LocalTranslation,
			LocalRotation:    utils.QuatToXYZW(p.LocalRotation),
			WorldPosition:    p.WorldPosition,
			WorldQuaternion:  utils.QuatToXYZW(p.WorldQuaternion),
		}
	}
	return hm
}

func (h *Hierarchy) YAML() ([]byte, error) {
	data, err := yaml.Marshal(h.Marshal(nil))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to marshal hierarchy %q", h.Id)
	}
	return data, nil
}

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Dump is a debug representation of every pivot.
func (h *Hierarchy) Dump() string {
	return spewConfig.Sdump(h.Pivots)
}
