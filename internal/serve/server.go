// Package serve previews the generated site: it serves the output
// directory over HTTP and rebuilds the whole site when a post or template
// changes.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ssg/internal/build"
	"ssg/internal/logfields"
)

const debounceDelay = 200 * time.Millisecond

const (
	eventHello  = "hello"
	eventReload = "reload"
)

type Server struct {
	builder *build.Builder
	log     *slog.Logger

	clientsMu sync.Mutex
	clients   map[chan string]struct{}

	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

func New(b *build.Builder, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		builder: b,
		log:     log,
		clients: make(map[chan string]struct{}),
	}
}

func (s *Server) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// Handler serves the output directory plus the /dev/events reload stream.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/dev/events", s.handleEvents)
	mux.Handle("/", http.FileServer(http.Dir(s.builder.Cfg.Build.DistDir)))
	return mux
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}
	if err := s.startWatch(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	s.log.Info("serving", slog.String("addr", addr), logfields.Dir(s.builder.Cfg.Build.DistDir))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) rebuild(ctx context.Context) error {
	res, err := s.builder.Run(ctx)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	s.log.Info("rebuild complete", logfields.Count(len(res.Posts)), slog.Int("pages", len(res.Written)))
	s.notify(eventReload)
	return nil
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		bc := s.builder.Cfg.Build
		for _, dir := range []string{bc.PostsDir, bc.TemplateDir} {
			if _, statErr := os.Stat(dir); statErr != nil {
				s.log.Warn("not watching", logfields.Dir(dir), logfields.Error(statErr))
				continue
			}
			if e := w.Add(dir); e != nil {
				err = e
				return
			}
		}
		go s.watchLoop(ctx)
	})
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	s.log.Info("watching for file changes")
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.log.Debug("change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				debounce.Reset(debounceDelay)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error", logfields.Error(err))
		case <-debounce.C:
			// failed rebuilds leave the last good output in place
			if err := s.rebuild(ctx); err != nil {
				s.log.Error("rebuild failed", logfields.Error(err))
			}
		}
	}
}

// subscribe registers a reload listener. The buffer absorbs a burst of
// rebuilds while the client is slow to read.
func (s *Server) subscribe() chan string {
	ch := make(chan string, 8)
	s.clientsMu.Lock()
	s.clients[ch] = struct{}{}
	s.clientsMu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan string) {
	s.clientsMu.Lock()
	delete(s.clients, ch)
	s.clientsMu.Unlock()
}

// handleEvents streams build notifications to a browser as server-sent
// events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "event stream not supported", http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")

	events := s.subscribe()
	defer s.unsubscribe(events)
	s.log.Debug("reload client connected", slog.String("remote", r.RemoteAddr))

	send := func(event string) {
		fmt.Fprintf(w, "data: %s\n\n", event)
		fl.Flush()
	}
	send(eventHello)
	for {
		select {
		case <-r.Context().Done():
			s.log.Debug("reload client gone", slog.String("remote", r.RemoteAddr))
			return
		case ev := <-events:
			send(ev)
		}
	}
}

// notify fans event out to every connected client, dropping it for clients
// whose buffer is full.
func (s *Server) notify(event string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for ch := range s.clients {
		select {
		case ch <- event:
		default:
		}
	}
}
