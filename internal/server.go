package internal

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

//go:embed *.html
var site embed.FS

const pingInterval = 10 * time.Second

type Server struct {
	root     string
	manifest *ProjectV1
	port     int
	senders  map[int]chan interface{}
	nextID   int
	lock     sync.Mutex
}

func NewServer(root string, manifest *ProjectV1, port int) (*Server, error) {
	return &Server{
		root:     root,
		manifest: manifest,
		port:     port,
		senders:  map[int]chan interface{}{},
		lock:     sync.Mutex{},
	}, nil
}

type reloadEvent struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

type buildErrorEvent struct {
	Type string `json:"type"`
	Out  string `json:"out"`
	Err  string `json:"err"`
}

type pingEvent struct {
	Type string `json:"type"`
}

// PackListing is one generated pack and the files in it.
type PackListing struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

func (s *Server) Serve() error {
	go func() {
		for {
			s.broadcast(pingEvent{Type: "ping"})
			time.Sleep(pingInterval)
		}
	}()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 200 * time.Millisecond,
		Addr:              fmt.Sprintf(":%d", s.port),
	}
	return srv.ListenAndServe()
}

// Handler routes the dev server's endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/events", s.events)

	r.Get("/packs", func(w http.ResponseWriter, r *http.Request) {
		packs, err := s.Packs()
		if err != nil {
			fmt.Printf("error: %#v\n", err)
			w.WriteHeader(500)
			return
		}
		var packsResponse struct {
			Packs []*PackListing `json:"packs"`
		}
		packsResponse.Packs = packs
		w.Header().Add("Content-type", "application/json")
		w.Header().Add("Cache-control", "no-store")
		w.WriteHeader(200)
		if err := json.NewEncoder(w).Encode(packsResponse); err != nil {
			fmt.Printf("error: %#v\n", err)
		}
	})

	r.Get("/packs/{pack}/*", func(w http.ResponseWriter, r *http.Request) {
		target, ok := s.packFile(chi.URLParam(r, "pack"), chi.URLParam(r, "*"))
		if !ok {
			w.WriteHeader(404)
			return
		}
		// #nosec G304
		f, err := os.ReadFile(target)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				w.WriteHeader(404)
				return
			}
			fmt.Printf("error: %#v\n", err)
			w.WriteHeader(500)
			return
		}
		contentType := mime.TypeByExtension(filepath.Ext(target))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Add("Content-type", contentType)
		w.Header().Add("Cache-control", "no-store")
		if _, err := w.Write(f); err != nil {
			fmt.Printf("error: %#v\n", err)
		}
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		f, err := site.ReadFile("index.html")
		if err != nil {
			fmt.Printf("error: %#v\n", err)
			w.WriteHeader(500)
			return
		}
		t, err := template.New("index.html").Parse(string(f))
		if err != nil {
			fmt.Printf("error: %#v\n", err)
			w.WriteHeader(500)
			return
		}
		var data struct {
			Name string
		}
		data.Name = s.manifest.Name.String()
		w.Header().Add("Content-type", "text/html")
		w.Header().Add("Cache-control", "no-store")
		if err := t.Execute(w, data); err != nil {
			fmt.Printf("error: %#v\n", err)
		}
	})

	return r
}

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}

	s.lock.Lock()
	currentID := s.nextID
	s.nextID++
	c := make(chan interface{}, 10)
	s.senders[currentID] = c
	s.lock.Unlock()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	flusher.Flush()

	encoder := json.NewEncoder(w)
	defer func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.senders, currentID)
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-c:
			if _, err := w.Write([]byte("data: ")); err != nil {
				fmt.Printf("err: %#v\n", err)
				return
			}
			if err := encoder.Encode(ev); err != nil {
				fmt.Printf("err: %#v\n", err)
				return
			}
			if _, err := w.Write([]byte("\n")); err != nil {
				fmt.Printf("err: %#v\n", err)
				return
			}
			flusher.Flush()
		}
	}
}

// Packs lists the generated packs in the project's out directory.
func (s *Server) Packs() ([]*PackListing, error) {
	outDir := s.manifest.OutDir(s.root)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*PackListing{}, nil
		}
		return nil, err
	}

	files := map[string][]string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(filepath.Join(outDir, e.Name())), "**/*")
		if err != nil {
			return nil, err
		}
		packFiles := []string{}
		for _, m := range matches {
			info, err := os.Stat(filepath.Join(outDir, e.Name(), filepath.FromSlash(m)))
			if err != nil || info.IsDir() {
				continue
			}
			packFiles = append(packFiles, m)
		}
		slices.Sort(packFiles)
		files[e.Name()] = packFiles
	}

	names := maps.Keys(files)
	slices.Sort(names)
	packs := make([]*PackListing, 0, len(names))
	for _, n := range names {
		packs = append(packs, &PackListing{Name: n, Files: files[n]})
	}
	return packs, nil
}

// packFile resolves a file inside a generated pack, refusing paths that
// leave it.
func (s *Server) packFile(pack, rel string) (string, bool) {
	if pack == "" || strings.ContainsAny(pack, `/\`) || pack == "." || pack == ".." {
		return "", false
	}
	clean := path.Clean("/" + strings.ReplaceAll(rel, "\\", "/"))
	if clean == "/" {
		return "", false
	}
	return filepath.Join(s.manifest.OutDir(s.root), pack, filepath.FromSlash(clean[1:])), true
}

func (s *Server) broadcast(ev interface{}) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, sender := range s.senders {
		select {
		case sender <- ev:
		default:
		}
	}
}

func (s *Server) listeners() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.senders)
}

func (s *Server) Reload() {
	s.broadcast(&reloadEvent{
		Type:   "reload",
		Target: "packs",
	})
}

func (s *Server) BuildError(o, e string) {
	fmt.Printf("sending build error!\n")
	s.broadcast(&buildErrorEvent{
		Type: "buildError",
		Out:  o,
		Err:  e,
	})
}
