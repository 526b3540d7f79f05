package shell

import (
	"io/fs"
	"listo/shared/constant"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const indexFile = "index.html"

// Handler serves the browser shell. Paths the router does not know fall through to
// index.html so the shell can route on the client.
type Handler struct {
	files fs.FS
	index []byte
}

func New(files fs.FS) Handler {
	index, err := fs.ReadFile(files, indexFile)
	if err != nil {
		log.Error().Err(err).Msg("shell index.html is missing")
	}

	return Handler{
		files: files,
		index: index,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Handle("/resources/*", http.FileServer(http.FS(handler.files)))
	router.Get("/", handler.Index)
	router.NotFound(handler.Index)
}

func (handler *Handler) Index(writer http.ResponseWriter, _ *http.Request) {
	if handler.index == nil {
		http.Error(writer, http.StatusText(http.StatusNotFound), http.StatusNotFound)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, "text/html; charset=utf-8")
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(handler.index); err != nil {
		log.Error().Err(err).Msg("failed to write shell")
	}
}
