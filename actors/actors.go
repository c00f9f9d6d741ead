// Package actors reads the actor-name table that labels in-game quotes with
// the character who speaks them.
package actors

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/classicadventures/mixcreator/util"
)

// DefaultFile is the table read when no other path is given.
const DefaultFile = "actornames.txt"

// QuotesPerActor is the id stride of in-game quotes: quote 230015 is line 15 of actor 23.
const QuotesPerActor = 10000

// Actor is one row of the table.
type Actor struct {
	ID        int
	ShortName string
	FullName  string
}

// Table holds actors in file order.
type Table struct {
	Actors []Actor
	byID   map[int]int
}

// Load reads the table at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open actor names: %w", util.ErrIO, err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads a tab-separated table whose first line is a header.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	t := &Table{byID: make(map[int]int)}
	header := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", util.ErrInputFormat, err)
		}
		if header {
			header = false
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 3 {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: want id, short name and full name", util.ErrInputFormat, line)
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: actor id %q", util.ErrInputFormat, line, rec[0])
		}
		a := Actor{ID: id, ShortName: strings.TrimSpace(rec[1]), FullName: strings.TrimSpace(rec[2])}
		if _, dup := t.byID[id]; !dup {
			t.byID[id] = len(t.Actors)
		}
		t.Actors = append(t.Actors, a)
	}
	return t, nil
}

// Len is the number of actors.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Actors)
}

func (t *Table) get(id int) (Actor, bool) {
	if t == nil {
		return Actor{}, false
	}
	i, ok := t.byID[id]
	if !ok {
		return Actor{}, false
	}
	return t.Actors[i], true
}

// ShortName returns the short name of actor id.
func (t *Table) ShortName(id int) (string, bool) {
	a, ok := t.get(id)
	return a.ShortName, ok
}

// FullName returns the full name of actor id.
func (t *Table) FullName(id int) (string, bool) {
	a, ok := t.get(id)
	return a.FullName, ok
}

// IDByShortName finds the id of the first actor with the given short name.
func (t *Table) IDByShortName(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	for _, a := range t.Actors {
		if a.ShortName == name {
			return a.ID, true
		}
	}
	return 0, false
}

// Speaker returns the actor who speaks an in-game quote.
func (t *Table) Speaker(quote uint32) (Actor, bool) {
	return t.get(int(quote / QuotesPerActor))
}
