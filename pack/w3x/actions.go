package w3x

import (
	"bytes"
	"net/http"

	"github.com/pkg/errors"

	"github.com/mogaika/w3x_skeleton_browser/utils/gltfutils"
	"github.com/mogaika/w3x_skeleton_browser/webutils"
)

// HttpAction serves one export of a resolved hierarchy.
// name is the source file name, downloads are named after it.
func (h *Hierarchy) HttpAction(w http.ResponseWriter, r *http.Request, name string, action string, defaultKind ProxyKind) {
	kind := defaultKind
	if proxy := r.URL.Query().Get("proxy"); proxy != "" {
		kind = ParseProxyKind(proxy)
	}

	var buf bytes.Buffer
	var fileName string
	var err error

	switch action {
	case "ini":
		fileName = IniPath(name, "")
		err = WriteINI(&buf, h)
	case "yaml":
		fileName = name + ".yaml"
		var data []byte
		if data, err = h.YAML(); err == nil {
			buf.Write(data)
		}
	case "gltf", "gltfjson":
		doc, derr := ExportGLTF(h, kind)
		if derr != nil {
			err = derr
			break
		}
		if action == "gltf" {
			fileName = name + ".glb"
			err = gltfutils.ExportBinary(&buf, doc)
		} else {
			fileName = name + ".gltf"
			err = gltfutils.ExportJSON(&buf, doc)
		}
	case "fbx":
		fileName = name + ".fbx"
		f, ferr := ExportFbx(h, name, kind)
		if ferr != nil {
			err = ferr
			break
		}
		err = f.Write(&buf)
	case "fbxzip":
		fileName = name + ".zip"
		f, ferr := ExportFbxWithIni(h, name, kind)
		if ferr != nil {
			err = ferr
			break
		}
		err = f.WriteZip(&buf, name+".fbx")
	default:
		err = errors.Errorf("Unknown action %q", action)
	}

	if err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Action %q on %q failed", action, name))
		return
	}
	webutils.WriteFile(w, &buf, fileName)
}
