package manager

import (
	"maps"
	"slices"
	"strings"

	"github.com/poiesic/cookbook/core"
)

// nameIndex maps case-folded names to record IDs.
type nameIndex map[string]core.ID

// lookup returns the ID holding name.
func (ix nameIndex) lookup(name string) (core.ID, bool) {
	id, ok := ix[core.NameKey(name)]
	return id, ok
}

// conflicts reports whether name is held by a record other than id.
func (ix nameIndex) conflicts(name string, id core.ID) bool {
	holder, ok := ix.lookup(name)
	return ok && holder != id
}

func (ix nameIndex) put(name string, id core.ID) {
	ix[core.NameKey(name)] = id
}

// drop removes name if it is held by id.
func (ix nameIndex) drop(name string, id core.ID) {
	key := core.NameKey(name)
	if ix[key] == id {
		delete(ix, key)
	}
}

// containing returns the IDs of names containing fragment, ascending.
func (ix nameIndex) containing(fragment string) []core.ID {
	key := core.NameKey(fragment)
	set := idSet{}
	for name, id := range ix {
		if strings.Contains(name, key) {
			set[id] = struct{}{}
		}
	}
	return set.sorted()
}

type idSet map[core.ID]struct{}

func (s idSet) sorted() []core.ID {
	return slices.Sorted(maps.Keys(s))
}

// tagIndex maps each tag to the IDs of the recipes carrying it.
type tagIndex map[string]idSet

func (ix tagIndex) add(id core.ID, tags []string) {
	for _, tag := range tags {
		ids, ok := ix[tag]
		if !ok {
			ids = idSet{}
			ix[tag] = ids
		}
		ids[id] = struct{}{}
	}
}

func (ix tagIndex) remove(id core.ID, tags []string) {
	for _, tag := range tags {
		ids, ok := ix[tag]
		if !ok {
			continue
		}
		delete(ids, id)
		if len(ids) == 0 {
			delete(ix, tag)
		}
	}
}

// intersection returns the IDs carrying every tag.
func (ix tagIndex) intersection(tags []string) idSet {
	result := idSet{}
	for i, tag := range tags {
		ids := ix[tag]
		if len(ids) == 0 {
			return idSet{}
		}
		if i == 0 {
			maps.Copy(result, ids)
			continue
		}
		for id := range result {
			if _, ok := ids[id]; !ok {
				delete(result, id)
			}
		}
	}
	return result
}

// union returns the IDs carrying at least one tag.
func (ix tagIndex) union(tags []string) idSet {
	result := idSet{}
	for _, tag := range tags {
		maps.Copy(result, ix[tag])
	}
	return result
}

// TagCount is a tag with the number of recipes carrying it.
type TagCount struct {
	Tag     string
	Recipes int
}

func (ix tagIndex) counts() []TagCount {
	out := make([]TagCount, 0, len(ix))
	for _, tag := range slices.Sorted(maps.Keys(ix)) {
		out = append(out, TagCount{Tag: tag, Recipes: len(ix[tag])})
	}
	return out
}
