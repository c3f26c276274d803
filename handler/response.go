package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status int
	data   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	body, err := json.Marshal(j.data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(j.status)
	_, err = w.Write(body)
	return err
}

// JSON responds 200 with data encoded as JSON.
func JSON(data any) Response {
	return jsonResponse{status: http.StatusOK, data: data}
}

// JSONWithStatus responds with data encoded as JSON and the given status.
func JSONWithStatus(status int, data any) Response {
	return jsonResponse{status: status, data: data}
}

type textResponse struct {
	status int
	text   string
}

func (t textResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(t.status)
	_, err := w.Write([]byte(t.text))
	return err
}

// Text responds 200 with a plain text body.
func Text(s string) Response {
	return textResponse{status: http.StatusOK, text: s}
}

type emptyResponse struct{ status int }

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty responds 204 No Content.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// EmptyWithStatus responds with status and no body.
func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}

type failResponse struct{ err error }

func (f failResponse) Render(http.ResponseWriter, *http.Request) error { return f.err }

// Fail hands err to the error handler without writing anything.
func Fail(err error) Response {
	if err == nil {
		err = ErrInternal
	}
	return failResponse{err: err}
}
