// Package dispatch executes named manifest operations against a file on
// disk. It is the seam between callers (CLI, JSON agents) and the graph:
// read, parse, mutate, and write back only when the whole operation
// succeeded.
package dispatch

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pbxedit-dev/pbxedit/internal/fileutil"
	"github.com/pbxedit-dev/pbxedit/internal/graph"
	"github.com/pbxedit-dev/pbxedit/internal/parser"
	"github.com/pbxedit-dev/pbxedit/internal/writer"
)

// Operation names understood by Handle.
const (
	OpAdd    = "add"
	OpRemove = "remove"
)

// Stable error codes carried in failure responses.
const (
	CodeStructureError = "structure_error"
	CodeNotFound       = "not_found"
	CodeUnsupportedOp  = "unsupported_operation"
	CodeIOError        = "io_error"
)

// Request names one operation against one manifest.
type Request struct {
	Op       string `json:"op"`
	Project  string `json:"project"`
	Path     string `json:"path"`
	Category string `json:"category,omitempty"`
}

// Response reports the outcome. On success ID carries the object ID the
// operation created or removed; on failure Code and Message describe it.
type Response struct {
	Status     string   `json:"status"`
	ID         string   `json:"id,omitempty"`
	Code       string   `json:"code,omitempty"`
	Message    string   `json:"message,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

// UnsupportedOperationError marks an operation name Handle does not know.
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %q", e.Op)
}

// Handler runs requests against manifests on disk.
type Handler struct {
	Logger *zap.Logger
}

// Handle runs one request. The manifest file is rewritten only when the
// mutation succeeded; every failure leaves it untouched.
func (h *Handler) Handle(req Request) Response {
	log := h.logger().With(
		zap.String("op", req.Op),
		zap.String("project", req.Project),
		zap.String("path", req.Path),
	)

	id, err := h.run(req)
	if err != nil {
		resp := failure(err)
		log.Warn("operation failed", zap.String("code", resp.Code), zap.Error(err))
		return resp
	}

	log.Debug("operation applied", zap.String("id", id))
	return Response{Status: "ok", ID: id}
}

func (h *Handler) run(req Request) (string, error) {
	switch req.Op {
	case OpAdd, OpRemove:
	default:
		return "", &UnsupportedOperationError{Op: req.Op}
	}

	data, err := os.ReadFile(req.Project)
	if err != nil {
		return "", fmt.Errorf("reading manifest: %w", err)
	}

	doc, err := parser.Parse(string(data))
	if err != nil {
		return "", err
	}
	proj, err := graph.Load(doc)
	if err != nil {
		return "", err
	}

	var id string
	switch req.Op {
	case OpAdd:
		if _, err := os.Stat(req.Path); err != nil {
			return "", fmt.Errorf("source file: %w", err)
		}
		kind := graph.KindUnknown
		if req.Category != "" {
			k, ok := graph.ParseKind(req.Category)
			if !ok {
				return "", &UnsupportedOperationError{Op: req.Op + ":" + req.Category}
			}
			kind = k
		}
		id, err = proj.AddFile(req.Path, kind)
	case OpRemove:
		id, err = proj.RemoveFile(req.Path)
	}
	if err != nil {
		return "", err
	}

	if _, err := fileutil.WriteIfChanged(req.Project, writer.Write(doc)); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return id, nil
}

func failure(err error) Response {
	var unsupported *UnsupportedOperationError
	if errors.As(err, &unsupported) {
		return Response{Status: "error", Code: CodeUnsupportedOp, Message: err.Error()}
	}
	var structure *parser.StructureError
	if errors.As(err, &structure) {
		return Response{Status: "error", Code: CodeStructureError, Message: err.Error()}
	}
	var notFound *graph.NotFoundError
	if errors.As(err, &notFound) {
		return Response{
			Status:     "error",
			Code:       CodeNotFound,
			Message:    err.Error(),
			Candidates: notFound.Candidates,
		}
	}
	return Response{Status: "error", Code: CodeIOError, Message: err.Error()}
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.NewNop()
}
