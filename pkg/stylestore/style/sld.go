package style

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

// SLDCodec reads and writes the XML sidecar form:
//
//	<Style name="default">
//	  <Title>Roads</Title>
//	  <FeatureTypeStyle featureType="roads">
//	    <Rule name="major">
//	      <MaxScaleDenominator>50000</MaxScaleDenominator>
//	      <Symbolizer kind="line" stroke="#333333" stroke-width="2"/>
//	    </Rule>
//	  </FeatureTypeStyle>
//	</Style>
type SLDCodec struct{}

type sldDocument struct {
	XMLName xml.Name `xml:"Style"`
	*Style
}

func (SLDCodec) Encode(s *Style) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, apperrors.WrapEncode(err, "sld encode")
	}
	if err := checkXMLText(s); err != nil {
		return nil, apperrors.WrapEncode(err, "sld encode")
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(sldDocument{Style: s}); err != nil {
		return nil, apperrors.WrapEncode(err, "sld encode")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (SLDCodec) Decode(data []byte) (*Style, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: sld decode: empty document", apperrors.ErrDecode)
	}

	doc := sldDocument{Style: &Style{}}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.WrapDecode(err, "sld decode")
	}
	if err := doc.Style.Validate(); err != nil {
		return nil, apperrors.WrapDecode(err, "sld decode")
	}
	return doc.Style, nil
}

// checkXMLText rejects text XML 1.0 cannot carry. encoding/xml would replace
// such runes with U+FFFD and the stored style would no longer match.
func checkXMLText(s *Style) error {
	var err error
	check := func(field, value string) {
		if err != nil {
			return
		}
		if !utf8.ValidString(value) {
			err = fmt.Errorf("%s is not valid UTF-8", field)
			return
		}
		for _, r := range value {
			if !isXMLChar(r) {
				err = fmt.Errorf("%s contains character %U not allowed in XML", field, r)
				return
			}
		}
	}

	check("name", s.Name)
	check("title", s.Title)
	check("abstract", s.Abstract)
	for i, fts := range s.FeatureTypeStyles {
		fp := fmt.Sprintf("featureTypeStyle[%d]", i)
		check(fp+".name", fts.Name)
		check(fp+".featureType", fts.FeatureType)
		for j, rule := range fts.Rules {
			rp := fmt.Sprintf("%s.rule[%d]", fp, j)
			check(rp+".name", rule.Name)
			check(rp+".title", rule.Title)
			check(rp+".filter", rule.Filter)
			for k, sym := range rule.Symbolizers {
				sp := fmt.Sprintf("%s.symbolizer[%d]", rp, k)
				check(sp+".stroke", sym.Stroke)
				check(sp+".fill", sym.Fill)
				check(sp+".label", sym.Label)
			}
		}
	}
	return err
}

// isXMLChar matches the Char production of XML 1.0.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

func (SLDCodec) Extension() string { return ".sld" }

func (SLDCodec) ContentType() string { return "application/vnd.ogc.sld+xml" }
