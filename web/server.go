package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/text/encoding"

	"github.com/mogaika/w3x_skeleton_browser/config"
	"github.com/mogaika/w3x_skeleton_browser/pack/w3x"
	"github.com/mogaika/w3x_skeleton_browser/status"
)

// Server browses a directory of w3x documents.
type Server struct {
	Dir      string
	Settings config.Settings
	Encoding encoding.Encoding
	Hub      *status.Hub
}

func NewServer(dir string, settings config.Settings) (*Server, error) {
	enc, err := config.FindEncoding(settings.Encoding)
	if err != nil {
		return nil, err
	}
	return &Server{
		Dir:      dir,
		Settings: settings,
		Encoding: enc,
		Hub:      status.NewHub(),
	}, nil
}

func (s *Server) options(rep w3x.Reporter) w3x.Options {
	return w3x.Options{
		Encoding: s.Encoding,
		Reporter: w3x.MultiReporter{w3x.LogReporter{Prefix: "[w3x] "}, rep},
		RootName: s.Settings.RootName,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/action/{file}/{action}", s.HandlerActionPackFile)
	r.HandleFunc("/json/pack/{file}", s.HandlerAjaxPackFile)
	r.HandleFunc("/json/pack", s.HandlerAjaxPack)
	r.HandleFunc("/dump/pack/{file}", s.HandlerDumpPackFile)
	r.HandleFunc("/upload/convert/{action}", s.HandlerUploadConvert).Methods("POST")
	r.HandleFunc("/ws/status", s.Hub.ServeWs)
	return r
}

func (s *Server) Start(addr string) error {
	var h http.Handler = s.Router()
	h = handlers.RecoveryHandler()(h)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v on %q", addr, s.Dir)

	return http.ListenAndServe(addr, h)
}
