package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/desertthunder/vvsong/internal/lyrics"
	"github.com/desertthunder/vvsong/internal/shared"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
	relsNamespace    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

var slidePart = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// PPTX reads Office Open XML presentations.
//
// Each top-level shape with a text body yields one raw string: paragraphs are
// joined with "\n" and soft line breaks become "\v". Pictures, tables and
// grouped shapes carry no text.
type PPTX struct{}

// Extract implements [Extractor].
func (PPTX) Extract(ctx context.Context, path string) ([]lyrics.Slide, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCorruptSource, err)
	}
	defer zr.Close()

	return ReadPPTX(ctx, &zr.Reader)
}

// ReadPPTX reads the slides of an opened .pptx archive in presentation order.
func ReadPPTX(ctx context.Context, zr *zip.Reader) ([]lyrics.Slide, error) {
	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	if _, ok := parts[presentationPart]; !ok {
		return nil, fmt.Errorf("%w: missing %s", shared.ErrCorruptSource, presentationPart)
	}

	order, err := slideOrder(parts)
	if err != nil {
		return nil, err
	}

	slides := make([]lyrics.Slide, 0, len(order))
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, ok := parts[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing slide part %s", shared.ErrCorruptSource, name)
		}

		var doc slideXML
		if err := decodePart(f, &doc); err != nil {
			return nil, err
		}
		slides = append(slides, doc.texts())
	}

	return slides, nil
}

// slideOrder lists slide part names in presentation order. The slide list of
// presentation.xml wins; without one, slide parts are ordered by number.
func slideOrder(parts map[string]*zip.File) ([]string, error) {
	var pres presentationXML
	if err := decodePart(parts[presentationPart], &pres); err != nil {
		return nil, err
	}

	if len(pres.SlideIDs) > 0 {
		relsFile, ok := parts[presentationRels]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", shared.ErrCorruptSource, presentationRels)
		}
		var rels relationshipsXML
		if err := decodePart(relsFile, &rels); err != nil {
			return nil, err
		}

		targets := make(map[string]string, len(rels.Relationships))
		for _, rel := range rels.Relationships {
			targets[rel.ID] = resolveTarget(rel.Target)
		}

		order := make([]string, 0, len(pres.SlideIDs))
		for _, id := range pres.SlideIDs {
			target, ok := targets[id.RID]
			if !ok {
				return nil, fmt.Errorf("%w: unknown slide relationship %q", shared.ErrCorruptSource, id.RID)
			}
			order = append(order, target)
		}
		return order, nil
	}

	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	for name := range parts {
		m := slidePart.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found = append(found, numbered{name: name, n: n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	order := make([]string, len(found))
	for i, f := range found {
		order[i] = f.name
	}
	return order, nil
}

// resolveTarget turns a relationship target of presentation.xml into a part name.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("ppt", target)
}

func decodePart(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", shared.ErrCorruptSource, f.Name, err)
	}
	defer rc.Close()

	if err := xml.NewDecoder(io.LimitReader(rc, maxPartSize)).Decode(v); err != nil {
		return fmt.Errorf("%w: parse %s: %v", shared.ErrCorruptSource, f.Name, err)
	}
	return nil
}

// maxPartSize bounds the XML read from any single archive part.
const maxPartSize = 64 << 20

type presentationXML struct {
	SlideIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type slideXML struct {
	Shapes []shapeXML `xml:"cSld>spTree>sp"`
}

type shapeXML struct {
	TxBody *struct {
		Paragraphs []paragraphXML `xml:"p"`
	} `xml:"txBody"`
}

type paragraphXML struct {
	Items []struct {
		XMLName xml.Name
		Text    string `xml:"t"`
	} `xml:",any"`
}

func (s slideXML) texts() lyrics.Slide {
	slide := lyrics.Slide{}
	for _, shape := range s.Shapes {
		if shape.TxBody == nil {
			continue
		}
		paragraphs := make([]string, len(shape.TxBody.Paragraphs))
		for i, p := range shape.TxBody.Paragraphs {
			paragraphs[i] = p.text()
		}
		slide = append(slide, strings.Join(paragraphs, "\n"))
	}
	return slide
}

func (p paragraphXML) text() string {
	var b strings.Builder
	for _, item := range p.Items {
		switch item.XMLName.Local {
		case "r", "fld":
			b.WriteString(item.Text)
		case "br":
			b.WriteByte('\v')
		}
	}
	return b.String()
}
