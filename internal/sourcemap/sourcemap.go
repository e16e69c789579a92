// Package sourcemap builds version 3 source maps for emitted code.
package sourcemap

import (
	"encoding/json"
	"strings"
)

// SourceMap is the JSON document of a version 3 source map.
type SourceMap struct {
	Version  int      `json:"version"`
	File     string   `json:"file"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

// Generator accumulates mappings for a single generated file whose only
// source is the file it was compiled from. Every field of a segment is
// encoded relative to the previous segment, and the generated column is
// reset at each new line.
type Generator struct {
	file     string
	mappings strings.Builder

	genLine  int // 0-based
	genCol   int
	origLine int
	origCol  int
	segments int // segments on the current generated line
}

// NewGenerator returns a generator for file.
func NewGenerator(file string) *Generator {
	return &Generator{file: file}
}

// AddMapping records that generated position (genLine, genCol) comes from
// original position (origLine, origCol). All values are 0-based. Mappings
// must be added in generated order.
func (g *Generator) AddMapping(genLine, genCol, origLine, origCol int) {
	if genLine < g.genLine || (genLine == g.genLine && genCol < g.genCol && g.segments > 0) {
		return
	}

	for g.genLine < genLine {
		g.mappings.WriteByte(';')
		g.genLine++
		g.genCol = 0
		g.segments = 0
	}
	if g.segments > 0 {
		g.mappings.WriteByte(',')
	}

	writeVLQ(&g.mappings, genCol-g.genCol)
	writeVLQ(&g.mappings, 0) // source index, always the single source
	writeVLQ(&g.mappings, origLine-g.origLine)
	writeVLQ(&g.mappings, origCol-g.origCol)

	g.genCol = genCol
	g.origLine = origLine
	g.origCol = origCol
	g.segments++
}

// Mappings returns the encoded mappings string.
func (g *Generator) Mappings() string {
	return g.mappings.String()
}

// SourceMap returns the map built so far.
func (g *Generator) SourceMap() SourceMap {
	return SourceMap{
		Version:  3,
		File:     g.file,
		Sources:  []string{g.file},
		Names:    []string{},
		Mappings: g.mappings.String(),
	}
}

// String returns the map serialized as JSON.
func (g *Generator) String() string {
	data, err := json.Marshal(g.SourceMap())
	if err != nil {
		// Only strings and ints are marshalled.
		panic(err)
	}
	return string(data)
}

// Parse decodes a serialized source map.
func Parse(data []byte) (SourceMap, error) {
	var sm SourceMap
	err := json.Unmarshal(data, &sm)
	return sm, err
}
