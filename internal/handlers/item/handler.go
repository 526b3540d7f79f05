package item

import (
	"encoding/json"
	"listo/infras/otel"
	"listo/internal/domains/item/model/dto"
	"listo/internal/domains/item/service"
	"listo/shared/constant"
	"listo/shared/failure"
	"listo/shared/validator"
	"listo/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Item
	otel    otel.Otel
}

func New(service service.Item, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateItem)
		routerGroup.Patch("/{id}", handler.UpdateItem)
		routerGroup.Delete("/{id}", handler.DeleteItem)
	})
}

// CreateItem adds an item to a list.
// @Summary Create an item
// @Description Add an item to an existing list. The item starts out not completed.
// @Tags Item
// @Accept json
// @Produce plain
// @Param request body dto.CreateItemRequest true "Create Item Request"
// @Success 200 {string} string "ID of the new item"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/items [post]
func (handler *Handler) CreateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	req := dto.CreateItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create item")

		response.WithError(writer, err)

		return
	}

	scope.SetItem(id)

	response.WithText(writer, http.StatusOK, strconv.FormatInt(id, 10))
}

// UpdateItem patches the text, list or completion state of an item.
// @Summary Update an item
// @Description Apply a partial update. Only list, text and is_completed are accepted; other fields and values of the wrong type are ignored.
// @Tags Item
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body dto.UpdateItemRequest true "Update Item Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/items/{id} [patch]
func (handler *Handler) UpdateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	id, err := itemID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	scope.SetItem(id)

	var patch map[string]json.RawMessage

	if err := validator.Decode(request.Body, &patch); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Int64("id", id).Msg("failed to decode patch")

		response.WithError(writer, err)

		return
	}

	req := dto.UpdateItemRequest{}
	req.FromPatch(patch)

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update item")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "item updated")
}

// DeleteItem removes an item. Deleting an unknown item succeeds.
// @Summary Delete an item
// @Tags Item
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/items/{id} [delete]
func (handler *Handler) DeleteItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	id, err := itemID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	scope.SetItem(id)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete item")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "item deleted")
}

func itemID(request *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, constant.RequestParamID), 10, 64)
	if err != nil {
		return 0, failure.BadRequestFromString("invalid item id") // nolint:wrapcheck
	}

	return id, nil
}
