package style

import (
	"fmt"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

// Codec converts between a Style and its serialized form.
type Codec interface {
	// Encode serializes s. Failures wrap apperrors.ErrEncode.
	Encode(s *Style) ([]byte, error)

	// Decode parses data. Failures wrap apperrors.ErrDecode.
	Decode(data []byte) (*Style, error)

	// Extension is the file extension, including the dot, used for sidecar files.
	Extension() string

	// ContentType is the media type used on the HTTP surface.
	ContentType() string
}

// CodecByName returns the codec registered under name ("sld" or "yaml").
func CodecByName(name string) (Codec, error) {
	switch name {
	case "sld", "xml", "":
		return SLDCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown codec %q (supported: sld, yaml)", apperrors.ErrInvalid, name)
	}
}
