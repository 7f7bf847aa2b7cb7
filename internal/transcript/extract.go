package transcript

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/airenas/transcript-fetcher/internal/domain"
	"golang.org/x/net/html/charset"
)

const (
	bodyTag = "body"
	pTag    = "p"
)

var (
	utf8BOM  = []byte("\xef\xbb\xbf")
	entityRe = regexp.MustCompile(`<!ENTITY\s+([^\s%"']+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)
)

// Extract walks the XML document and collects the direct text of every root > body > p element.
// Each non-empty text is followed by a new line. The result is not trimmed.
// A document that is not well-formed XML returns domain.ErrBadDocument.
func Extract(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = map[string]string{}

	var res, text strings.Builder
	depth := 0
	seenRoot, inBody, inP := false, false, false
	flush := func() {
		inP = false
		if text.Len() > 0 {
			res.WriteString(text.String())
			res.WriteByte('\n')
		}
		text.Reset()
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrBadDocument, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 1:
				if seenRoot {
					return "", fmt.Errorf("%w: junk after document element (line %d)", domain.ErrBadDocument, line(dec))
				}
				seenRoot = true
			case depth == 2:
				inBody = isTag(t.Name, bodyTag)
			case depth == 3 && inBody && isTag(t.Name, pTag):
				inP = true
			case depth == 4 && inP:
				// text after the first child is not the direct text of p
				flush()
			}
		case xml.EndElement:
			if depth == 3 && inP {
				flush()
			}
			depth--
		case xml.Directive:
			if depth == 0 {
				addEntities(dec.Entity, t)
			}
		case xml.CharData:
			if inP && depth == 3 {
				text.Write(t)
			} else if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return "", fmt.Errorf("%w: text outside of document element (line %d)", domain.ErrBadDocument, line(dec))
			}
		}
	}
	if !seenRoot {
		return "", fmt.Errorf("%w: no element found", domain.ErrBadDocument)
	}
	return res.String(), nil
}

// addEntities registers internal general entities declared in a DOCTYPE
func addEntities(to map[string]string, d xml.Directive) {
	if !bytes.HasPrefix(d, []byte("DOCTYPE")) {
		return
	}
	for _, m := range entityRe.FindAllSubmatch(d, -1) {
		name := string(m[1])
		if _, ok := to[name]; ok {
			// first declaration wins
			continue
		}
		if m[2] != nil {
			to[name] = string(m[2])
		} else {
			to[name] = string(m[3])
		}
	}
}

func isTag(n xml.Name, local string) bool {
	return n.Space == "" && n.Local == local
}

func line(dec *xml.Decoder) int {
	l, _ := dec.InputPos()
	return l
}
