package api

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
	"github.com/garunski/stylestore/pkg/stylestore/events"
	"github.com/garunski/stylestore/pkg/stylestore/location"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

var knownCodecs = []style.Codec{style.SLDCodec{}, style.YAMLCodec{}}

// responseCodec picks the format for a style response: the format query
// parameter wins, then an Accept header naming a known content type, then the
// handler default.
func (h *Handler) responseCodec(r *http.Request) (style.Codec, error) {
	if format := r.URL.Query().Get("format"); format != "" {
		return formatCodec(format)
	}
	for _, accepted := range strings.Split(r.Header.Get("Accept"), ",") {
		if codec := codecForMediaType(accepted); codec != nil {
			return codec, nil
		}
	}
	return h.codec, nil
}

// requestCodec picks the format of an uploaded style from the format query
// parameter or the Content-Type header.
func (h *Handler) requestCodec(r *http.Request) (style.Codec, error) {
	if format := r.URL.Query().Get("format"); format != "" {
		return formatCodec(format)
	}
	if codec := codecForMediaType(r.Header.Get("Content-Type")); codec != nil {
		return codec, nil
	}
	return h.codec, nil
}

func formatCodec(format string) (style.Codec, error) {
	codec, err := style.CodecByName(format)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid format parameter: %w", apperrors.ErrInvalidRequest, err)
	}
	return codec, nil
}

func codecForMediaType(value string) style.Codec {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	for _, codec := range knownCodecs {
		if mediaType == codec.ContentType() {
			return codec
		}
	}
	switch mediaType {
	case "application/xml", "text/xml":
		return style.SLDCodec{}
	case "application/x-yaml", "text/yaml":
		return style.YAMLCodec{}
	}
	return nil
}

func ParseQueryParams(r *http.Request) (events.EventFilters, error) {
	return ParseEventQueryParams(r.URL.Query())
}

func ParseEventQueryParams(queryParams map[string][]string) (events.EventFilters, error) {
	filters := events.EventFilters{}

	if typeName := getFirstQueryParam(queryParams, "typeName"); typeName != "" {
		if err := location.ValidateTypeName(typeName); err != nil {
			return filters, fmt.Errorf("%w: invalid typeName parameter: %w", apperrors.ErrInvalid, err)
		}
		filters.TypeName = typeName
	}

	if typeStr := getFirstQueryParam(queryParams, "type"); typeStr != "" {
		eventType := events.EventType(typeStr)
		if eventType != events.EventTypeStored && eventType != events.EventTypeRemoved &&
			eventType != events.EventTypeError && eventType != events.EventTypeInfo {
			return filters, fmt.Errorf("%w: invalid event type: %s (must be one of: stored, removed, error, info)", apperrors.ErrInvalid, typeStr)
		}
		filters.Type = eventType
	}

	if sinceStr := getFirstQueryParam(queryParams, "since"); sinceStr != "" {
		t, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return filters, fmt.Errorf("%w: invalid since parameter format (use RFC3339): %w", apperrors.ErrInvalid, err)
		}
		filters.Since = t
	}

	if untilStr := getFirstQueryParam(queryParams, "until"); untilStr != "" {
		t, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			return filters, fmt.Errorf("%w: invalid until parameter format (use RFC3339): %w", apperrors.ErrInvalid, err)
		}
		filters.Until = t
	}

	limit, err := parseLimit(getFirstQueryParam(queryParams, "limit"), defaultEventLimit)
	if err != nil {
		return filters, err
	}
	filters.Limit = limit

	if offsetStr := getFirstQueryParam(queryParams, "offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return filters, fmt.Errorf("%w: invalid offset parameter: must be a non-negative integer", apperrors.ErrInvalid)
		}
		filters.Offset = offset
	}

	return filters, nil
}

func parseLimit(limitStr string, def int) (int, error) {
	if limitStr == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: invalid limit parameter: must be a positive integer", apperrors.ErrInvalid)
	}
	if limit > maxEventLimit {
		return 0, fmt.Errorf("%w: limit cannot exceed %d", apperrors.ErrInvalid, maxEventLimit)
	}
	return limit, nil
}

func getFirstQueryParam(queryParams map[string][]string, key string) string {
	if values, ok := queryParams[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}
