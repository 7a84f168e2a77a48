package geom

import (
	"fmt"
	"strconv"
	"unicode"
)

// ParseWKT decodes a Well-Known Text geometry literal into a Geometry,
// rounding coordinates to precision fractional digits (use a negative value
// to keep them exact). It accepts the tags the CQL2 grammar recognizes:
// POINT, LINESTRING, POLYGON, MULTIPOINT, MULTILINESTRING, MULTIPOLYGON,
// GEOMETRYCOLLECTION, and the non-standard BBOX.
func ParseWKT(s string, precision int) (Geometry, error) {
	p := &wktParser{src: []rune(s)}
	p.skipSpace()
	g, err := p.geometry(precision)
	if err != nil {
		return Geometry{}, err
	}
	p.skipSpace()
	if !p.atEnd() {
		return Geometry{}, fmt.Errorf("unexpected trailing input in WKT at offset %d", p.pos)
	}
	return g, nil
}

type wktParser struct {
	src []rune
	pos int
}

func (p *wktParser) atEnd() bool { return p.pos >= len(p.src) }

func (p *wktParser) skipSpace() {
	for !p.atEnd() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *wktParser) peekUpper(word string) bool {
	save := p.pos
	defer func() { p.pos = save }()
	for _, w := range word {
		if p.atEnd() || unicode.ToUpper(p.src[p.pos]) != w {
			return false
		}
		p.pos++
	}
	return true
}

func (p *wktParser) expectWord(word string) error {
	if !p.peekUpper(word) {
		return fmt.Errorf("expected %q at offset %d", word, p.pos)
	}
	p.pos += len([]rune(word))
	return nil
}

func (p *wktParser) expectByte(b rune) error {
	p.skipSpace()
	if p.atEnd() || p.src[p.pos] != b {
		return fmt.Errorf("expected %q at offset %d", string(b), p.pos)
	}
	p.pos++
	return nil
}

// optionalZ consumes a trailing " Z" tag marker, as in "POINT Z (...)".
func (p *wktParser) optionalZ() {
	save := p.pos
	p.skipSpace()
	if !p.atEnd() && unicode.ToUpper(p.src[p.pos]) == 'Z' {
		p.pos++
		return
	}
	p.pos = save
}

func (p *wktParser) geometry(precision int) (Geometry, error) {
	switch {
	case p.peekUpper("POINT"):
		return p.point(precision)
	case p.peekUpper("LINESTRING"):
		return p.lineString(precision)
	case p.peekUpper("MULTIPOINT"):
		return p.multiPoint(precision)
	case p.peekUpper("MULTILINESTRING"):
		return p.multiLineString(precision)
	case p.peekUpper("MULTIPOLYGON"):
		return p.multiPolygon(precision)
	case p.peekUpper("POLYGON"):
		return p.polygon(precision)
	case p.peekUpper("GEOMETRYCOLLECTION"):
		return p.geometryCollection(precision)
	case p.peekUpper("BBOX"):
		return p.bbox(precision)
	default:
		return Geometry{}, fmt.Errorf("not WKT: unrecognized tag at offset %d", p.pos)
	}
}

func (p *wktParser) point(precision int) (Geometry, error) {
	_ = p.expectWord("POINT")
	p.optionalZ()
	coord, err := p.coordParens()
	if err != nil {
		return Geometry{}, err
	}
	return NewPoint(coord, precision), nil
}

func (p *wktParser) lineString(precision int) (Geometry, error) {
	_ = p.expectWord("LINESTRING")
	p.optionalZ()
	coords, err := p.coordList(2)
	if err != nil {
		return Geometry{}, err
	}
	return NewLineString(coords, precision), nil
}

func (p *wktParser) polygon(precision int) (Geometry, error) {
	_ = p.expectWord("POLYGON")
	p.optionalZ()
	rings, err := p.ringList()
	if err != nil {
		return Geometry{}, err
	}
	return NewPolygon(rings, precision), nil
}

func (p *wktParser) multiPoint(precision int) (Geometry, error) {
	_ = p.expectWord("MULTIPOINT")
	p.optionalZ()
	p.skipSpace()
	if err := p.expectByte('('); err != nil {
		return Geometry{}, err
	}
	var coords [][]float64
	for {
		p.skipSpace()
		// a member may be written as "(x y)" or bare "x y".
		var coord []float64
		var err error
		if !p.atEnd() && p.src[p.pos] == '(' {
			coord, err = p.coordParens()
		} else {
			coord, err = p.coord()
		}
		if err != nil {
			return Geometry{}, err
		}
		coords = append(coords, coord)
		p.skipSpace()
		if !p.atEnd() && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expectByte(')'); err != nil {
		return Geometry{}, err
	}
	return NewMultiPoint(coords, precision), nil
}

func (p *wktParser) multiLineString(precision int) (Geometry, error) {
	_ = p.expectWord("MULTILINESTRING")
	p.optionalZ()
	p.skipSpace()
	if err := p.expectByte('('); err != nil {
		return Geometry{}, err
	}
	var lines [][][]float64
	for {
		coords, err := p.coordList(2)
		if err != nil {
			return Geometry{}, err
		}
		lines = append(lines, coords)
		p.skipSpace()
		if !p.atEnd() && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expectByte(')'); err != nil {
		return Geometry{}, err
	}
	return NewMultiLineString(lines, precision), nil
}

func (p *wktParser) multiPolygon(precision int) (Geometry, error) {
	_ = p.expectWord("MULTIPOLYGON")
	p.optionalZ()
	p.skipSpace()
	if err := p.expectByte('('); err != nil {
		return Geometry{}, err
	}
	var polys [][][][]float64
	for {
		rings, err := p.ringList()
		if err != nil {
			return Geometry{}, err
		}
		polys = append(polys, rings)
		p.skipSpace()
		if !p.atEnd() && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expectByte(')'); err != nil {
		return Geometry{}, err
	}
	return NewMultiPolygon(polys, precision), nil
}

func (p *wktParser) geometryCollection(precision int) (Geometry, error) {
	_ = p.expectWord("GEOMETRYCOLLECTION")
	p.optionalZ()
	p.skipSpace()
	if err := p.expectByte('('); err != nil {
		return Geometry{}, err
	}
	var items []Geometry
	for {
		p.skipSpace()
		g, err := p.geometry(precision)
		if err != nil {
			return Geometry{}, err
		}
		items = append(items, g)
		p.skipSpace()
		if !p.atEnd() && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expectByte(')'); err != nil {
		return Geometry{}, err
	}
	return NewGeometryCollection(items), nil
}

func (p *wktParser) bbox(precision int) (Geometry, error) {
	_ = p.expectWord("BBOX")
	p.skipSpace()
	if err := p.expectByte('('); err != nil {
		return Geometry{}, err
	}
	var nums []float64
	for {
		p.skipSpace()
		n, err := p.signedNum()
		if err != nil {
			return Geometry{}, err
		}
		nums = append(nums, n)
		p.skipSpace()
		if !p.atEnd() && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expectByte(')'); err != nil {
		return Geometry{}, err
	}
	return NewBBox(nums, precision)
}

// ringList parses "(ring [, ring ...])" where each ring is a closed
// coordinate list of at least 4 points; the first ring is the exterior, any
// following rings are holes.
func (p *wktParser) ringList() ([][][]float64, error) {
	p.skipSpace()
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	var rings [][][]float64
	for {
		ring, err := p.coordList(4)
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
		p.skipSpace()
		if !p.atEnd() && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}
	return rings, nil
}

func (p *wktParser) coordParens() ([]float64, error) {
	p.skipSpace()
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	c, err := p.coord()
	if err != nil {
		return nil, err
	}
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}
	return c, nil
}

// coord parses 2 or 3 whitespace-separated signed numbers.
func (p *wktParser) coord() ([]float64, error) {
	var nums []float64
	for len(nums) < 3 {
		p.skipHorizontalSpace()
		save := p.pos
		n, err := p.signedNum()
		if err != nil {
			p.pos = save
			break
		}
		nums = append(nums, n)
	}
	if len(nums) < 2 {
		return nil, fmt.Errorf("expected at least 2 coordinate numbers at offset %d", p.pos)
	}
	return nums, nil
}

func (p *wktParser) skipHorizontalSpace() {
	for !p.atEnd() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\f') {
		p.pos++
	}
}

// coordList parses "(p1, p2, ...)" with at least min points.
func (p *wktParser) coordList(min int) ([][]float64, error) {
	p.skipSpace()
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	var coords [][]float64
	for {
		p.skipSpace()
		c, err := p.coord()
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
		p.skipSpace()
		if !p.atEnd() && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if len(coords) < min {
		return nil, fmt.Errorf("expected at least %d points, got %d", min, len(coords))
	}
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}
	return coords, nil
}

func (p *wktParser) signedNum() (float64, error) {
	start := p.pos
	if !p.atEnd() && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
		p.pos++
	}
	digitsStart := p.pos
	for !p.atEnd() && unicode.IsDigit(p.src[p.pos]) {
		p.pos++
	}
	if !p.atEnd() && p.src[p.pos] == '.' {
		p.pos++
		for !p.atEnd() && unicode.IsDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	if !p.atEnd() && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		save := p.pos
		p.pos++
		if !p.atEnd() && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		expDigits := p.pos
		for !p.atEnd() && unicode.IsDigit(p.src[p.pos]) {
			p.pos++
		}
		if p.pos == expDigits {
			p.pos = save
		}
	}
	if p.pos == digitsStart {
		return 0, fmt.Errorf("expected a number at offset %d", start)
	}
	text := string(p.src[start:p.pos])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return v, nil
}
