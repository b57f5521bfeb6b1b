package web

import (
	"io/ioutil"
	"log"
	"net/http"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/w3x_skeleton_browser/pack/w3x"
	"github.com/mogaika/w3x_skeleton_browser/status"
	"github.com/mogaika/w3x_skeleton_browser/webutils"
)

type packEntry struct {
	Name   string `json:"name"`
	Pivots int    `json:"pivots"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) filePath(file string) (string, error) {
	if file == "" || file != filepath.Base(file) || file == "." || file == ".." {
		return "", errors.Errorf("Invalid file name %q", file)
	}
	return filepath.Join(s.Dir, file), nil
}

func (s *Server) HandlerAjaxPack(w http.ResponseWriter, r *http.Request) {
	infos, err := ioutil.ReadDir(s.Dir)
	if err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Error getting directory %q info", s.Dir))
		return
	}

	entries := make([]packEntry, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		entry := packEntry{Name: fi.Name()}
		if block, err := w3x.ReadHierarchy(filepath.Join(s.Dir, fi.Name()), s.Encoding); err != nil {
			entry.Error = err.Error()
		} else if count, err := w3x.CountPivots(block); err != nil {
			entry.Error = err.Error()
		} else {
			entry.Pivots = count
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	webutils.WriteJson(w, entries)
}

func (s *Server) HandlerAjaxPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	path, err := s.filePath(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	var diags w3x.DiagnosticList
	h, err := w3x.ProcessFile(path, s.options(w3x.MultiReporter{&diags, status.Reporter{Hub: s.Hub, Job: file}}))
	if err != nil {
		log.Printf("[web] Error processing %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, h.Marshal(diags.Items()))
}

func (s *Server) HandlerDumpPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	path, err := s.filePath(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	h, err := w3x.ProcessFile(path, s.options(nil))
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	webutils.WriteResult(w, []byte(h.Dump()))
}

func (s *Server) HandlerActionPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	action := mux.Vars(r)["action"]
	path, err := s.filePath(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	h, err := w3x.ProcessFile(path, s.options(status.Reporter{Hub: s.Hub, Job: file}))
	if err != nil {
		log.Printf("[web] Error processing %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}
	h.HttpAction(w, r, file, action, w3x.ParseProxyKind(s.Settings.Proxy))
}

// HandlerUploadConvert converts a document posted in the "data" form field.
func (s *Server) HandlerUploadConvert(w http.ResponseWriter, r *http.Request) {
	action := mux.Vars(r)["action"]

	data, name, err := webutils.ReadUploadedFile(r, "data")
	if err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "File stream getting error"))
		return
	}
	if name == "" {
		name = "upload.w3x"
	}
	name = filepath.Base(name)

	job := uuid.New().String()
	s.Hub.Status("Converting "+name, status.INFO, 0, job)

	var diags w3x.DiagnosticList
	h, err := w3x.ProcessData(data, s.options(w3x.MultiReporter{&diags, status.Reporter{Hub: s.Hub, Job: job}}))
	if err != nil {
		s.Hub.Status("Failed "+name+": "+err.Error(), status.ERROR, 0, job)
		webutils.WriteError(w, errors.Wrapf(err, "Failed to convert %q", name))
		return
	}

	w.Header().Set("X-Job-Id", job)
	if action == "json" {
		webutils.WriteJson(w, h.Marshal(diags.Items()))
		return
	}
	h.HttpAction(w, r, name, action, w3x.ParseProxyKind(s.Settings.Proxy))
}
