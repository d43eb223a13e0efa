package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/diwise/api-repository/internal/pkg/application/rest"
	"github.com/rs/zerolog"
)

const ContentTypeHAL string = "application/hal+json"

type pageMetadata struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

type halPage[R any] struct {
	Embedded map[string][]R `json:"_embedded"`
	Page     pageMetadata   `json:"page"`
	Links    rest.Links     `json:"_links"`
}

func newHalPage[R any](name, self string, query url.Values, page rest.Page[R]) halPage[R] {
	link := func(number int) rest.Link {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(number))
		q.Set("size", strconv.Itoa(page.Size))
		return rest.Link{Href: self + "?" + q.Encode()}
	}

	links := rest.Links{"self": link(page.Number)}

	if page.TotalPages > 0 {
		links["first"] = link(0)
		links["last"] = link(page.TotalPages - 1)
	}
	if page.HasNext() {
		links["next"] = link(page.Number + 1)
	}
	if page.HasPrevious() {
		links["prev"] = link(page.Number - 1)
	}

	return halPage[R]{
		Embedded: map[string][]R{name: page.Content},
		Page: pageMetadata{
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
			Number:        page.Number,
		},
		Links: links,
	}
}

type errorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func writeHAL(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", ContentTypeHAL)
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}

// writeError maps repository errors to HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, rest.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, rest.ErrBadRequest):
		status = http.StatusBadRequest
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}

	b, _ := json.Marshal(errorBody{
		Status:  status,
		Error:   http.StatusText(status),
		Message: err.Error(),
		Path:    r.URL.Path,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func selfURL(baseURL string, r *http.Request) string {
	return strings.TrimSuffix(baseURL, "/") + r.URL.Path
}
