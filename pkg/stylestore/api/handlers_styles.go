package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

func (h *Handler) ListStyles(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.ListStyles()
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnsupported) {
			h.logger.Error(err, "failed to list styles")
		}
		WriteError(w, r, h.logger, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, StyleListResponse{Styles: names})
}

func (h *Handler) HeadStyle(w http.ResponseWriter, r *http.Request) {
	typeName := chi.URLParam(r, "typeName")

	ok, err := h.store.HasStyle(typeName)
	if err != nil {
		w.WriteHeader(httpStatus(err))
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetStyle(w http.ResponseWriter, r *http.Request) {
	typeName := chi.URLParam(r, "typeName")

	codec, err := h.responseCodec(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	st, err := h.store.GetStyle(typeName)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	data, err := codec.Encode(st)
	if err != nil {
		h.logger.Error(err, "failed to encode style", "typeName", typeName)
		WriteError(w, r, h.logger, err)
		return
	}

	WriteStyleResponse(w, h.logger, codec.ContentType(), data)
}

func (h *Handler) PutStyle(w http.ResponseWriter, r *http.Request) {
	typeName := chi.URLParam(r, "typeName")

	codec, err := h.requestCodec(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxStyleBodyBytes))
	if err != nil {
		WriteError(w, r, h.logger, fmt.Errorf("%w: failed to read request body: %w", apperrors.ErrInvalidRequest, err))
		return
	}

	st, err := codec.Decode(body)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.store.StoreStyle(typeName, st); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteStyle(w http.ResponseWriter, r *http.Request) {
	typeName := chi.URLParam(r, "typeName")

	if err := h.store.RemoveStyle(typeName); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
