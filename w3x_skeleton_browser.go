package main

import (
	"flag"
	"log"

	"github.com/mogaika/w3x_skeleton_browser/config"
	"github.com/mogaika/w3x_skeleton_browser/web"
)

func main() {
	var addr, dir, settingsPath, encodingName, proxy, rootName string
	flag.StringVar(&addr, "i", "", "Address of server (default from settings, :8000)")
	flag.StringVar(&dir, "dir", "", "Path to folder with w3x documents")
	flag.StringVar(&settingsPath, "config", "", "Path to yaml settings file")
	flag.StringVar(&encodingName, "encoding", "", "Text encoding of documents, UTF-8 if empty")
	flag.StringVar(&proxy, "proxy", "", "Proxy kind for exports: box, bone or helper")
	flag.StringVar(&rootName, "root", "", "Name of the root pivot")
	flag.Parse()

	settings := config.DefaultSettings()
	if settingsPath != "" {
		var err error
		if settings, err = config.LoadSettings(settingsPath); err != nil {
			log.Fatal(err)
		}
	}
	if addr != "" {
		settings.Listen = addr
	}
	if dir != "" {
		settings.Dir = dir
	}
	if encodingName != "" {
		settings.Encoding = encodingName
	}
	if proxy != "" {
		settings.Proxy = proxy
	}
	if rootName != "" {
		settings.RootName = rootName
	}

	if settings.Dir == "" {
		flag.PrintDefaults()
		return
	}

	s, err := web.NewServer(settings.Dir, settings)
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Start(settings.Listen); err != nil {
		log.Fatal(err)
	}
}
