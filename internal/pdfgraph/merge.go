package pdfgraph

import (
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// liveObjects lists the in-use objects of ctx in ascending object number order.
func liveObjects(ctx *model.Context) []ObjectID {
	ids := make([]ObjectID, 0, len(ctx.Table))
	for objNr, entry := range ctx.Table {
		if objNr == 0 || entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		gen := 0
		if entry.Generation != nil {
			gen = *entry.Generation
		}
		ids = append(ids, ObjectID{Number: objNr, Generation: gen})
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Number < ids[j].Number })
	return ids
}

// Merge appends the pages of every source to base, in argument order.
// Each source's objects are renumbered above base's highest object number
// and all references inside them are rewritten. Appended pages carry their
// inherited attributes and are re-parented to base's root Pages node.
func Merge(base *model.Context, sources ...*model.Context) error {
	rootRef, root, err := RootPages(base)
	if err != nil {
		return err
	}
	for i, src := range sources {
		if err := mergeOne(base, rootRef, root, src); err != nil {
			return fmt.Errorf("failed to merge document %d: %w", i+1, err)
		}
	}
	return nil
}

func mergeOne(base *model.Context, rootRef types.IndirectRef, root types.Dict, src *model.Context) error {
	pages, err := PageRefs(src)
	if err != nil {
		return err
	}

	ids := liveObjects(src)
	table := Offset(ids, MaxObjectNumber(base)+1)

	maxNr := 0
	for _, id := range ids {
		newID := table[id]
		gen := newID.Generation
		base.Table[newID.Number] = &model.XRefTableEntry{
			Generation: &gen,
			Object:     table.Rewrite(src.Table[id.Number].Object.Clone()),
		}
		maxNr = max(maxNr, newID.Number)
	}
	if base.Size != nil && *base.Size <= maxNr {
		*base.Size = maxNr + 1
	}

	kids, err := base.DereferenceArray(root["Kids"])
	if err != nil {
		return fmt.Errorf("failed to read root Kids: %w", err)
	}
	for _, ref := range pages {
		newRef, ok := table.Ref(ref)
		if !ok {
			return fmt.Errorf("page %s was not copied", IDOf(ref))
		}
		page, err := base.DereferenceDict(newRef)
		if err != nil || page == nil {
			return fmt.Errorf("failed to read copied page %s: %v", IDOf(newRef), err)
		}
		if err := foldInherited(base, page); err != nil {
			return err
		}
		page["Parent"] = rootRef
		kids = append(kids, newRef)
	}
	root["Kids"] = kids

	count := 0
	if c := root.IntEntry("Count"); c != nil {
		count = *c
	}
	root["Count"] = types.Integer(count + len(pages))
	base.PageCount += len(pages)
	return nil
}

// MergeFiles concatenates the PDFs at paths into out and returns the total page count.
func MergeFiles(paths []string, out string) (int, error) {
	if len(paths) == 0 {
		return 0, fmt.Errorf("no documents to merge")
	}
	base, err := Load(paths[0])
	if err != nil {
		return 0, err
	}
	for _, path := range paths[1:] {
		src, err := Load(path)
		if err != nil {
			return 0, err
		}
		if err := Merge(base, src); err != nil {
			return 0, fmt.Errorf("failed to merge %s: %w", path, err)
		}
	}
	if err := Save(base, out); err != nil {
		return 0, err
	}

	refs, err := PageRefs(base)
	if err != nil {
		return 0, err
	}
	return len(refs), nil
}
