// Package gml loads directed road networks from the GML subset produced for
// networkx-style tooling:
//
//	graph [
//	  directed 1
//	  node [ id 0 label "S" ]
//	  node [ id 1 label "T" ]
//	  edge [ source 0 target 1 a 1.0 b 0.0 ]
//	]
//
// Nodes are named by their label when present, otherwise by their decimal
// id. Edges carry the affine cost coefficients under the keys "a" and "b";
// both are required. Unknown keys — including nested blocks such as
// graphics attributes — are skipped, so files annotated by other tools
// still load.
//
// Errors:
//
//	ErrNotDirected - the file does not declare "directed 1".
//	ErrMalformed   - structural problems: missing graph block, unbalanced
//	                 brackets, missing ids or coefficients, duplicate or
//	                 unknown node references. Always wrapped with a line
//	                 number and detail.
package gml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/trafficlab/wardrop/roadnet"
)

var (
	// ErrNotDirected indicates the loaded graph is not declared directed.
	ErrNotDirected = errors.New("gml: graph is not directed")

	// ErrMalformed indicates a structural problem in the GML input.
	ErrMalformed = errors.New("gml: malformed input")
)

// Load reads and parses the GML file at path.
func Load(path string) (*roadnet.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gml: open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("gml: parse %s: %w", path, err)
	}

	return g, nil
}

// nodeRec and edgeRec are raw records gathered during the parse; the graph
// is assembled only after the whole file is read, so node declaration order
// relative to edges does not matter.
type nodeRec struct {
	id    int
	label string
	line  int
}

type edgeRec struct {
	source, target int
	a, b           float64
	hasA, hasB     bool
	line           int
}

// Parse reads a GML document from r and builds the road network.
func Parse(r io.Reader) (*roadnet.Graph, error) {
	p := &parser{lex: newLexer(r)}
	if err := p.run(); err != nil {
		return nil, err
	}

	return p.build()
}

type parser struct {
	lex *lexer

	directed bool
	sawGraph bool
	nodes    []nodeRec
	edges    []edgeRec
}

// run scans top-level keys until EOF, descending into the first graph block.
func (p *parser) run() error {
	for {
		tok, err := p.lex.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if tok.text == "graph" && !tok.quoted {
			if err = p.graphBlock(); err != nil {
				return err
			}
			p.sawGraph = true
			continue
		}
		// Creator, Version and friends: skip the value.
		if err = p.skipValue(tok.line); err != nil {
			return err
		}
	}

	if !p.sawGraph {
		return fmt.Errorf("%w: no graph block", ErrMalformed)
	}

	return nil
}

func (p *parser) graphBlock() error {
	open, err := p.lex.next()
	if err != nil || open.text != "[" {
		return malformed(open.line, "graph must be followed by [")
	}

	for {
		tok, err := p.lex.next()
		if err != nil {
			return malformed(p.lex.line, "unterminated graph block")
		}
		switch {
		case tok.text == "]" && !tok.quoted:
			return nil
		case tok.text == "directed" && !tok.quoted:
			v, err := p.scalar(tok.line)
			if err != nil {
				return err
			}
			p.directed = v.text == "1"
		case tok.text == "node" && !tok.quoted:
			if err := p.nodeBlock(); err != nil {
				return err
			}
		case tok.text == "edge" && !tok.quoted:
			if err := p.edgeBlock(); err != nil {
				return err
			}
		default:
			if err := p.skipValue(tok.line); err != nil {
				return err
			}
		}
	}
}

func (p *parser) nodeBlock() error {
	rec := nodeRec{id: -1, line: p.lex.line}
	err := p.block(func(key token) error {
		v, err := p.scalarOrSkip(key)
		if err != nil || v == nil {
			return err
		}
		switch key.text {
		case "id":
			id, err := strconv.Atoi(v.text)
			if err != nil {
				return malformed(v.line, "node id %q is not an integer", v.text)
			}
			rec.id = id
		case "label":
			rec.label = v.text
		}

		return nil
	})
	if err != nil {
		return err
	}
	if rec.id < 0 {
		return malformed(rec.line, "node without id")
	}
	p.nodes = append(p.nodes, rec)

	return nil
}

func (p *parser) edgeBlock() error {
	rec := edgeRec{source: -1, target: -1, line: p.lex.line}
	err := p.block(func(key token) error {
		v, err := p.scalarOrSkip(key)
		if err != nil || v == nil {
			return err
		}
		switch key.text {
		case "source", "target":
			id, err := strconv.Atoi(v.text)
			if err != nil {
				return malformed(v.line, "edge %s %q is not an integer", key.text, v.text)
			}
			if key.text == "source" {
				rec.source = id
			} else {
				rec.target = id
			}
		case "a", "b":
			coeff, err := strconv.ParseFloat(v.text, 64)
			if err != nil {
				return malformed(v.line, "edge coefficient %s %q is not a number", key.text, v.text)
			}
			if key.text == "a" {
				rec.a, rec.hasA = coeff, true
			} else {
				rec.b, rec.hasB = coeff, true
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	switch {
	case rec.source < 0 || rec.target < 0:
		return malformed(rec.line, "edge without source/target")
	case !rec.hasA || !rec.hasB:
		return malformed(rec.line, "edge %d→%d missing cost coefficients a/b", rec.source, rec.target)
	}
	p.edges = append(p.edges, rec)

	return nil
}

// block consumes "[ key value ... ]" invoking fn for each key token.
func (p *parser) block(fn func(key token) error) error {
	open, err := p.lex.next()
	if err != nil || open.text != "[" {
		return malformed(open.line, "expected [")
	}
	for {
		tok, err := p.lex.next()
		if err != nil {
			return malformed(p.lex.line, "unterminated block")
		}
		if tok.text == "]" && !tok.quoted {
			return nil
		}
		if err = fn(tok); err != nil {
			return err
		}
	}
}

// scalar reads one non-bracket token as the value of key at the given line.
func (p *parser) scalar(line int) (*token, error) {
	tok, err := p.lex.next()
	if err != nil || tok.text == "[" || tok.text == "]" {
		return nil, malformed(line, "expected a scalar value")
	}

	return &tok, nil
}

// scalarOrSkip reads key's value; nested blocks (graphics and the like) are
// skipped and reported as nil.
func (p *parser) scalarOrSkip(key token) (*token, error) {
	tok, err := p.lex.next()
	if err != nil {
		return nil, malformed(key.line, "key %q without value", key.text)
	}
	if tok.text == "[" && !tok.quoted {
		return nil, p.skipBlock(tok.line)
	}
	if tok.text == "]" {
		return nil, malformed(key.line, "key %q without value", key.text)
	}

	return &tok, nil
}

// skipValue discards the value following an unknown key, descending into a
// nested block when present.
func (p *parser) skipValue(line int) error {
	tok, err := p.lex.next()
	if err != nil {
		return malformed(line, "key without value")
	}
	if tok.text == "[" && !tok.quoted {
		return p.skipBlock(tok.line)
	}

	return nil
}

// skipBlock discards tokens until the bracket opened at line is balanced.
func (p *parser) skipBlock(line int) error {
	depth := 1
	for depth > 0 {
		tok, err := p.lex.next()
		if err != nil {
			return malformed(line, "unterminated block")
		}
		if tok.quoted {
			continue
		}
		switch tok.text {
		case "[":
			depth++
		case "]":
			depth--
		}
	}

	return nil
}

// build assembles the road network from the gathered records.
func (p *parser) build() (*roadnet.Graph, error) {
	if !p.directed {
		return nil, ErrNotDirected
	}

	// Loops are tolerated at load time; simple-path enumeration never uses
	// them, matching the permissive behavior of the reference loader.
	g := roadnet.New(roadnet.WithAllowLoops())

	names := make(map[int]string, len(p.nodes))
	for _, n := range p.nodes {
		if _, dup := names[n.id]; dup {
			return nil, malformed(n.line, "duplicate node id %d", n.id)
		}
		name := n.label
		if name == "" {
			name = strconv.Itoa(n.id)
		}
		if g.HasNode(name) {
			return nil, malformed(n.line, "duplicate node name %q", name)
		}
		names[n.id] = name
		if err := g.AddNode(name); err != nil {
			return nil, malformed(n.line, "node %d: %v", n.id, err)
		}
	}

	for _, e := range p.edges {
		from, ok := names[e.source]
		if !ok {
			return nil, malformed(e.line, "edge references unknown node id %d", e.source)
		}
		to, ok := names[e.target]
		if !ok {
			return nil, malformed(e.line, "edge references unknown node id %d", e.target)
		}
		if _, err := g.AddEdge(from, to, e.a, e.b); err != nil {
			return nil, malformed(e.line, "edge %s→%s: %v", from, to, err)
		}
	}

	return g, nil
}

func malformed(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, line, fmt.Sprintf(format, args...))
}
