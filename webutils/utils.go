package webutils

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// uploads bigger than this are refused
const MaxUploadSize = 64 << 20

func WriteFileHeaders(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
}

func WriteFile(w http.ResponseWriter, in io.Reader, name string) {
	WriteFileHeaders(w, name)
	io.Copy(w, in)
}

func WriteJson(w http.ResponseWriter, data interface{}) {
	res, err := json.Marshal(data)
	if err != nil {
		WriteError(w, err)
	} else {
		w.Header().Set("Content-Type", "application/json")
		WriteResult(w, res)
	}
}

// ReadUploadedFile returns the content of a multipart form file.
func ReadUploadedFile(r *http.Request, formFileKey string) ([]byte, string, error) {
	if strings.ToUpper(r.Method) != "POST" {
		return nil, "", errors.Errorf("Invalid http method %q", r.Method)
	}

	f, header, err := r.FormFile(formFileKey)
	if err != nil {
		return nil, "", errors.Wrapf(err, "Failed to get file")
	}
	defer f.Close()

	data, err := ioutil.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		return nil, "", errors.Wrapf(err, "Failed to read")
	}
	if len(data) > MaxUploadSize {
		return nil, "", errors.Errorf("Uploaded file %q is too big", header.Filename)
	}
	return data, header.Filename, nil
}

func WriteResult(w http.ResponseWriter, data []byte) {
	_, err := w.Write(data)
	if err != nil {
		log.Printf("Error when writing response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, err error) {
	type jError struct {
		Error string `json:"error"`
	}
	data, merr := json.Marshal(&jError{Error: err.Error()})
	if merr == nil {
		log.Printf("HERR: %v", string(data))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		WriteResult(w, data)
	} else {
		log.Printf("Error marshaling error '%v': %v", err, merr)
	}
}
