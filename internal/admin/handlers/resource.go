package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/testnest/admin/internal/admin/cache"
	"github.com/testnest/admin/internal/admin/db"
	e "github.com/testnest/admin/internal/admin/errors"
	"github.com/testnest/admin/internal/admin/ids"
)

// resource serves the REST routes of one entity. K is the id kind, M the
// domain model, In the full input and P the partial update.
type resource[K any, M any, In any, P any] struct {
	entity  string
	path    string
	idParam string
	filters []filter
	cache   *cache.ResponseCache
	logger  *zap.Logger

	get    func(context.Context, ids.ID[K]) (*M, error)
	list   func(context.Context, db.ListSpec) ([]*M, error)
	count  func(context.Context, db.ListSpec) (int64, error)
	create func(context.Context, In) (*M, error)
	update func(context.Context, ids.ID[K], In) (*M, error)
	patch  func(context.Context, ids.ID[K], P) (*M, error)
	remove func(context.Context, ids.ID[K]) error

	idOf    func(*M) ids.ID[K]
	render  func(*M) any
	input   func(*http.Request) (In, error)
	patchOf func(current *M, patch []byte) (P, error)
}

// bodyAs decodes the request body as Req and converts it to an input.
func bodyAs[Req any, In any](convert func(Req) In) func(*http.Request) (In, error) {
	return func(r *http.Request) (In, error) {
		var req Req
		if err := decodeJSON(r, &req); err != nil {
			var zero In
			return zero, err
		}
		return convert(req), nil
	}
}

// patchAs applies an RFC 6902 patch to the document D seeded from the
// current values and converts the result to a partial update.
func patchAs[M any, D any, P any](seed func(*M) D, convert func(D) P) func(*M, []byte) (P, error) {
	return func(current *M, body []byte) (P, error) {
		var zero P
		ops, err := jsonpatch.DecodePatch(body)
		if err != nil {
			return zero, e.Validationf("InvalidPatchDocument", "Patch document is not valid: %v", err)
		}
		doc, err := json.Marshal(seed(current))
		if err != nil {
			return zero, fmt.Errorf("encode patch seed: %w", err)
		}
		patched, err := ops.Apply(doc)
		if err != nil {
			return zero, e.Validationf("InvalidPatchDocument", "Patch could not be applied: %v", err)
		}
		var d D
		if err := json.Unmarshal(patched, &d); err != nil {
			return zero, e.Validationf("InvalidPatchDocument", "Patched document is not valid: %v", err)
		}
		return convert(d), nil
	}
}

func (res *resource[K, M, In, P]) register(mux *runtime.ServeMux) error {
	item := res.path + "/{id}"
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodPost, res.path, res.handleCreate},
		{http.MethodGet, res.path, res.handleList},
		{http.MethodGet, item, res.handleGet},
		{http.MethodPut, item, res.handleUpdate},
		{http.MethodPatch, item, res.handlePatch},
		{http.MethodDelete, item, res.handleDelete},
	}
	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.pattern, route.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", route.method, route.pattern, err)
		}
	}
	return nil
}

func (res *resource[K, M, In, P]) handleCreate(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	in, err := res.input(r)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	created, err := res.create(r.Context(), in)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	w.Header().Set("Location", res.path+"/"+res.idOf(created).String())
	writeJSON(w, http.StatusCreated, res.render(created))
}

// handleList serves a page, or a single item when the entity id query
// parameter is present.
func (res *resource[K, M, In, P]) handleList(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	query := r.URL.Query()
	if raw := query.Get(res.idParam); raw != "" {
		res.single(w, r, raw)
		return
	}

	q, err := parseListQuery(query, res.filters)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	total, err := res.count(r.Context(), q.spec)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	items, err := res.list(r.Context(), q.spec)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	if total == 0 || len(items) == 0 {
		writeProblem(w, res.logger, e.NotFoundf("No %s records found.", strings.ReplaceAll(res.entity, "_", " ")))
		return
	}

	data := make([]any, 0, len(items))
	for _, item := range items {
		data = append(data, res.render(item))
	}
	writeJSON(w, http.StatusOK, newPage(r.URL.Path, q, total, data))
}

func (res *resource[K, M, In, P]) handleGet(w http.ResponseWriter, r *http.Request, params map[string]string) {
	res.single(w, r, params["id"])
}

// single serves one item, from the response cache when possible. Entries
// are evicted by the change events the services publish, which include the
// siblings demoted by a primary change.
func (res *resource[K, M, In, P]) single(w http.ResponseWriter, r *http.Request, raw string) {
	id, err := ids.Parse[K](raw)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	if body, ok := res.cache.Get(r.Context(), res.entity, id.String()); ok {
		writeRaw(w, http.StatusOK, body)
		return
	}

	item, err := res.get(r.Context(), id)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	body, err := json.Marshal(res.render(item))
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	res.cache.Set(r.Context(), res.entity, id.String(), body)
	writeRaw(w, http.StatusOK, body)
}

func (res *resource[K, M, In, P]) handleUpdate(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := ids.Parse[K](params["id"])
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	in, err := res.input(r)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	updated, err := res.update(r.Context(), id, in)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res.render(updated))
}

func (res *resource[K, M, In, P]) handlePatch(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := ids.Parse[K](params["id"])
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeProblem(w, res.logger, e.Validationf("InvalidRequestBody", "Request body could not be read."))
		return
	}
	current, err := res.get(r.Context(), id)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	patch, err := res.patchOf(current, body)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	patched, err := res.patch(r.Context(), id, patch)
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res.render(patched))
}

func (res *resource[K, M, In, P]) handleDelete(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := ids.Parse[K](params["id"])
	if err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	if err := res.remove(r.Context(), id); err != nil {
		writeProblem(w, res.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
