package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"todosvc/pkg/db"
	"todosvc/types"
)

const (
	InvalidIdErrMsg      = "invalid todo id"
	InvalidBodyErrMsg    = "invalid request body"
	InvalidTitleErrMsg   = "invalid todo title"
	InvalidContentErrMsg = "invalid todo content"
)

type TodoStore interface {
	CreateTodo(ctx context.Context, newTodo types.NewTodo) (types.Todo, error)
	GetTodos(ctx context.Context) (types.Todos, error)
	GetTodo(ctx context.Context, id int) (types.Todo, error)
	UpdateTodo(ctx context.Context, id int, updateTodo types.UpdateTodo) (types.Todo, error)
	DeleteTodo(ctx context.Context, id int) error
}

type Server struct {
	store TodoStore
	http.Handler
}

func New(store TodoStore) *Server {
	srv := &Server{store: store}
	mux := http.NewServeMux()

	mux.Handle("POST /todos", http.HandlerFunc(srv.createHandler))
	mux.Handle("GET /todos", http.HandlerFunc(srv.listHandler))
	mux.Handle("GET /todos/{id}", http.HandlerFunc(srv.getHandler))
	mux.Handle("POST /todos/{id}", http.HandlerFunc(srv.updateHandler))
	mux.Handle("DELETE /todos/{id}", http.HandlerFunc(srv.deleteHandler))

	srv.Handler = mux
	return srv
}

func (s *Server) createHandler(w http.ResponseWriter, r *http.Request) {
	var newTodo types.NewTodo
	if err := json.NewDecoder(r.Body).Decode(&newTodo); err != nil {
		http.Error(w, InvalidBodyErrMsg, http.StatusBadRequest)
		return
	}
	if newTodo.Title == "" {
		http.Error(w, InvalidTitleErrMsg, http.StatusBadRequest)
		return
	}
	if newTodo.Content == "" {
		http.Error(w, InvalidContentErrMsg, http.StatusBadRequest)
		return
	}

	todo, err := s.store.CreateTodo(r.Context(), newTodo)
	if err != nil {
		writeStoreErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.GetTodos(r.Context())
	if err != nil {
		writeStoreErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) getHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		http.Error(w, InvalidIdErrMsg, http.StatusBadRequest)
		return
	}

	todo, err := s.store.GetTodo(r.Context(), id)
	if err != nil {
		writeStoreErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) updateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		http.Error(w, InvalidIdErrMsg, http.StatusBadRequest)
		return
	}

	var updateTodo types.UpdateTodo
	if err := json.NewDecoder(r.Body).Decode(&updateTodo); err != nil {
		http.Error(w, InvalidBodyErrMsg, http.StatusBadRequest)
		return
	}
	if updateTodo.Title == "" {
		http.Error(w, InvalidTitleErrMsg, http.StatusBadRequest)
		return
	}
	if updateTodo.Content == "" {
		http.Error(w, InvalidContentErrMsg, http.StatusBadRequest)
		return
	}

	todo, err := s.store.UpdateTodo(r.Context(), id, updateTodo)
	if err != nil {
		writeStoreErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		http.Error(w, InvalidIdErrMsg, http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteTodo(r.Context(), id); err != nil {
		writeStoreErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("problem encoding response: %v", err)
	}
}

func writeStoreErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.TodoNotExistErr):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, db.PoolBusyErr):
		log.Printf("store error: %v", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	default:
		log.Printf("store error: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
