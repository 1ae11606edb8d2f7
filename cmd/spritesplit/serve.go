package main

import (
	"net/http"
	"os"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-spritesplit/sheet"
	"badc0de.net/pkg/go-spritesplit/web"
)

func serve(addr string, s *sheet.Sheet) error {
	r := mux.NewRouter()
	web.NewHandler(s).RegisterRoutes(r)
	r.HandleFunc("/debug/requests", trace.Traces)

	glog.Infof("serving %s on %s", s.Inputs.Descriptor, addr)
	return http.ListenAndServe(addr, handlers.LoggingHandler(os.Stderr, handlers.CompressHandler(r)))
}
