package style

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

// YAMLCodec stores styles as YAML documents. Unknown fields are rejected on
// decode so typos surface as decode errors instead of silently vanishing.
type YAMLCodec struct{}

func (YAMLCodec) Encode(s *Style) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, apperrors.WrapEncode(err, "yaml encode")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, apperrors.WrapEncode(err, "yaml encode")
	}
	if err := enc.Close(); err != nil {
		return nil, apperrors.WrapEncode(err, "yaml encode")
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Decode(data []byte) (*Style, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Style
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: yaml decode: empty document", apperrors.ErrDecode)
		}
		return nil, apperrors.WrapDecode(err, "yaml decode")
	}
	if err := s.Validate(); err != nil {
		return nil, apperrors.WrapDecode(err, "yaml decode")
	}
	return &s, nil
}

func (YAMLCodec) Extension() string { return ".yaml" }

func (YAMLCodec) ContentType() string { return "application/yaml" }
