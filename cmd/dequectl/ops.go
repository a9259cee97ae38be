package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	deque "github.com/lucasgdosr/blockdeque"
)

// arity is the number of integer arguments each operation takes.
var arity = map[string]int{
	"push_back":  1,
	"push_front": 1,
	"pop_back":   0,
	"pop_front":  0,
	"insert":     2,
	"erase":      1,
}

type op struct {
	name string
	args []int
}

func (o op) String() string {
	parts := []string{o.name}
	for _, a := range o.args {
		parts = append(parts, strconv.Itoa(a))
	}
	return strings.Join(parts, " ")
}

// parseOps turns a flat token list such as "push_back 1 pop_front" into
// operations.
func parseOps(tokens []string) ([]op, error) {
	var ops []op
	for i := 0; i < len(tokens); {
		name := tokens[i]
		n, ok := arity[name]
		if !ok {
			return nil, fmt.Errorf("unknown operation %q", name)
		}
		if i+1+n > len(tokens) {
			return nil, fmt.Errorf("%s needs %d argument(s)", name, n)
		}
		o := op{name: name}
		for _, tok := range tokens[i+1 : i+1+n] {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("%s: bad argument %q: %w", name, tok, err)
			}
			o.args = append(o.args, v)
		}
		ops = append(ops, o)
		i += 1 + n
	}
	return ops, nil
}

// readScript splits a script into tokens. Everything after '#' on a line is
// ignored.
func readScript(r io.Reader) ([]string, error) {
	var tokens []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		tokens = append(tokens, strings.Fields(line)...)
	}
	return tokens, sc.Err()
}

// apply runs o against d.
func apply(d *deque.Deque[int], o op) error {
	switch o.name {
	case "push_back":
		return d.PushBack(o.args[0])
	case "push_front":
		return d.PushFront(o.args[0])
	case "pop_back":
		if !d.PopBack() {
			return errors.New("pop_back on empty deque")
		}
	case "pop_front":
		if !d.PopFront() {
			return errors.New("pop_front on empty deque")
		}
	case "insert":
		return d.Insert(d.Begin().Add(o.args[0]), o.args[1])
	case "erase":
		return d.Erase(d.Begin().Add(o.args[0]))
	}
	return nil
}

type summary struct {
	Ops       int    `json:"ops"`
	Size      int    `json:"size"`
	Columns   int    `json:"columns"`
	Footprint string `json:"footprint"`
	Values    []int  `json:"values"`
}

func summarize(d *deque.Deque[int], ops int) summary {
	return summary{
		Ops:       ops,
		Size:      d.Len(),
		Columns:   d.Columns(),
		Footprint: humanize.Bytes(uint64(d.Footprint())),
		Values:    d.MakeSliceCopy(),
	}
}

func printSummary(w io.Writer, s summary) error {
	if jsonOut {
		return printJSON(w, s)
	}
	fmt.Fprintf(w, "size=%d columns=%d footprint=%s\n", s.Size, s.Columns, s.Footprint)
	fmt.Fprintln(w, s.Values)
	return nil
}
