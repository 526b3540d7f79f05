package list

import (
	"listo/infras/otel"
	"listo/internal/domains/list/model/dto"
	"listo/internal/domains/list/service"
	"listo/shared/constant"
	"listo/shared/validator"
	"listo/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.List
	otel    otel.Otel
}

func New(service service.List, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/all", handler.GetAll)

	router.Route("/lists", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateList)
		routerGroup.Patch("/{slug}", handler.RenameList)
		routerGroup.Delete("/{slug}", handler.DeleteList)
	})
}

// GetAll returns every list with its items.
// @Summary Get all lists
// @Description Returns an object keyed by list slug. Each list carries its items, which is never null.
// @Tags List
// @Produce json
// @Success 200 {object} dto.AllResponse
// @Failure 500 {object} response.Error
// @Router /api/all [get]
func (handler *Handler) GetAll(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAll")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lists")

		response.WithError(writer, err)

		return
	}

	response.WithPayload(writer, http.StatusOK, res)
}

// CreateList creates a list from a raw text name.
// @Summary Create a list
// @Description The body is the list name as plain text. The response is the slug the list was stored under.
// @Tags List
// @Accept plain
// @Produce plain
// @Param request body string true "List name"
// @Success 200 {string} string "Slug of the new list"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/lists [post]
func (handler *Handler) CreateList(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateList")
	defer scope.End()

	name, err := validator.ReadText(request.Body)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateListRequest{Name: name}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate list name")

		response.WithError(writer, err)

		return
	}

	slug, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create list")

		response.WithError(writer, err)

		return
	}

	scope.SetList(slug)

	response.WithText(writer, http.StatusOK, slug)
}

// RenameList changes the name of a list. The slug stays the same.
// @Summary Rename a list
// @Tags List
// @Accept plain
// @Produce json
// @Param slug path string true "List slug"
// @Param request body string true "New list name"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/lists/{slug} [patch]
func (handler *Handler) RenameList(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RenameList")
	defer scope.End()

	slug := chi.URLParam(request, constant.RequestParamSlug)
	scope.SetList(slug)

	name, err := validator.ReadText(request.Body)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.RenameListRequest{Name: name}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("slug", slug).Msg("failed to validate list name")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Rename(ctx, slug, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slug", slug).Msg("failed to rename list")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "list renamed")
}

// DeleteList removes a list together with its items.
// @Summary Delete a list
// @Description Deletes the list and all of its items. Deleting an unknown list succeeds.
// @Tags List
// @Produce json
// @Param slug path string true "List slug"
// @Success 200 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /api/lists/{slug} [delete]
func (handler *Handler) DeleteList(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteList")
	defer scope.End()

	slug := chi.URLParam(request, constant.RequestParamSlug)
	scope.SetList(slug)

	if err := handler.service.Delete(ctx, slug); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slug", slug).Msg("failed to delete list")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "list deleted")
}
