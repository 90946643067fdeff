package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/lgzarturo/bootzen"
	"github.com/lgzarturo/bootzen/pkg/cache"
)

// Note is the example domain entity.
type Note struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// NotesHandler serves a tiny in-memory notes API with a Redis read cache.
type NotesHandler struct {
	mu    sync.RWMutex
	notes map[string]Note
	cache cache.Cache[Note]
	ttl   time.Duration
}

func NewNotesHandler(c cache.Cache[Note], ttl time.Duration) *NotesHandler {
	return &NotesHandler{
		notes: make(map[string]Note),
		cache: c,
		ttl:   ttl,
	}
}

func (h *NotesHandler) Routes(r *bootzen.Router) {
	r.Group(bootzen.GroupAttrs{Prefix: "/notes"}, func(r *bootzen.Router) {
		r.GET("", h.list)
		r.POST("", h.create)
		r.GET("/{id}", h.show)
		r.DELETE("/{id}", h.destroy)
	})
}

func (h *NotesHandler) list(c bootzen.Context) (any, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Note, 0, len(h.notes))
	for _, n := range h.notes {
		out = append(out, n)
	}
	return out, nil
}

func (h *NotesHandler) create(c bootzen.Context) error {
	id := c.Form("id")
	body := c.Form("body")
	if id == "" || body == "" {
		return bootzen.ErrUnprocessable("id and body are required")
	}

	h.mu.Lock()
	h.notes[id] = Note{ID: id, Body: body}
	h.mu.Unlock()

	return c.JSON(http.StatusCreated, h.notes[id])
}

func (h *NotesHandler) show(c bootzen.Context) error {
	id := c.Param("id")

	note, err := cache.Remember(c, h.cache, "note:"+id, func(ctx context.Context) (Note, time.Duration, error) {
		h.mu.RLock()
		defer h.mu.RUnlock()

		n, ok := h.notes[id]
		if !ok {
			return Note{}, 0, bootzen.ErrNotFound("note not found")
		}
		return n, h.ttl, nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

func (h *NotesHandler) destroy(c bootzen.Context) error {
	id := c.Param("id")

	h.mu.Lock()
	delete(h.notes, id)
	h.mu.Unlock()

	_ = h.cache.Forget(c, "note:"+id)
	return c.NoContent(http.StatusNoContent)
}
