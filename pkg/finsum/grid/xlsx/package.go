package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// packageReader reads parts of a saved workbook. excelize keeps no public view of drawing
// anchors, so they are read from the package XML.
type packageReader struct {
	r      *zip.Reader
	sheets map[string]string // sheet name -> part path
}

func readPackage(data []byte) (*packageReader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	p := &packageReader{r: zr, sheets: make(map[string]string)}

	workbookXML, err := readZipFile(zr, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return p, err
	}
	wbRelsXML, err := readZipFile(zr, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return p, err
	}
	p.sheets = parseWorkbookRels(wbRelsXML, parseWorkbookSheets(workbookXML))
	return p, nil
}

// anchors lists the drawings of a sheet.
func (p *packageReader) anchors(sheet string) ([]grid.Anchor, error) {
	sheetPath, ok := p.sheets[sheet]
	if !ok {
		return nil, nil
	}
	relsPath := strings.Replace(sheetPath, "worksheets/", "worksheets/_rels/", 1) + ".rels"
	relsXML, err := readZipFile(p.r, relsPath)
	if err != nil || relsXML == nil {
		return nil, err
	}
	target := findDrawingRelationship(relsXML)
	if target == "" {
		return nil, nil
	}
	drawingXML, err := readZipFile(p.r, resolveRelativePath(target, "xl/worksheets"))
	if err != nil || drawingXML == nil {
		return nil, err
	}
	return parseDrawingXML(drawingXML), nil
}

// parseDrawingXML parses drawing XML content and returns one anchor per drawing object.
func parseDrawingXML(data []byte) []grid.Anchor {
	var results []grid.Anchor

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
				if a, ok := parseAnchor(decoder); ok {
					results = append(results, a)
				}
			}
		}
	}

	return results
}

// drawingKinds maps DrawingML object elements to anchor kinds.
var drawingKinds = map[string]string{
	"pic":          "picture",
	"sp":           "shape",
	"cxnSp":        "connector",
	"grpSp":        "group",
	"graphicFrame": "chart",
}

// parseAnchor reads one anchor element up to its end tag.
func parseAnchor(decoder *xml.Decoder) (grid.Anchor, bool) {
	var a grid.Anchor
	placed := false
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				if col, row, ok := parseMarker(decoder); ok {
					a.Col, a.Row = col+1, row+1
					placed = true
				}
				depth--
			case "pos":
				x, _ := strconv.ParseInt(attr(t, "x"), 10, 64)
				y, _ := strconv.ParseInt(attr(t, "y"), 10, 64)
				a.Col = EMUToPixels(x)/defaultColumnPixels + 1
				a.Row = EMUToPixels(y)/defaultRowPixels + 1
				placed = true
			case "cNvPr":
				if a.Name == "" {
					a.Name = attr(t, "name")
				}
			default:
				if kind, ok := drawingKinds[t.Name.Local]; ok && a.Kind == "" {
					a.Kind = kind
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return a, placed && a.Kind != ""
}

// parseMarker reads the zero-based col and row of a from marker.
func parseMarker(decoder *xml.Decoder) (col, row int, ok bool) {
	var haveCol, haveRow bool
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "col":
				text, _ := readElementText(decoder)
				col, err = strconv.Atoi(strings.TrimSpace(text))
				haveCol = err == nil
			case "row":
				text, _ := readElementText(decoder)
				row, err = strconv.Atoi(strings.TrimSpace(text))
				haveRow = err == nil
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return col, row, haveCol && haveRow
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

// resolveRelativePath resolves a relationship target against the directory of its source part.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := baseDir
	for strings.HasPrefix(target, "../") {
		target = strings.TrimPrefix(target, "../")
		if idx := strings.LastIndex(dir, "/"); idx >= 0 {
			dir = dir[:idx]
		} else {
			dir = ""
		}
	}
	if dir == "" {
		return target
	}
	return dir + "/" + target
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name, rID := attr(se, "name"), attr(se, "id")
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string) // sheet name -> part path
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			rID, target := attr(se, "Id"), attr(se, "Target")
			if sheetName, ok := sheetsInfo[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
				result[sheetName] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result
}

// findDrawingRelationship returns the target of a sheet's DrawingML part. Legacy VML
// drawings hold notes and form controls, not drawing objects, and are skipped.
func findDrawingRelationship(data []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			relType := attr(se, "Type")
			if strings.HasSuffix(relType, "/drawing") {
				return attr(se, "Target")
			}
		}
	}

	return ""
}
