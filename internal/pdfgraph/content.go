package pdfgraph

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Box is a rectangle in default user space units.
type Box struct {
	LLX, LLY, URX, URY float64
}

// A4 is the box assumed for pages that declare no usable MediaBox.
var A4 = Box{URX: 595, URY: 842}

func (b Box) Width() float64  { return b.URX - b.LLX }
func (b Box) Height() float64 { return b.URY - b.LLY }

// MediaBox returns the page's own or inherited MediaBox, falling back to A4.
func MediaBox(ctx *model.Context, page types.Dict) Box {
	obj, ok, err := Attribute(ctx, page, "MediaBox")
	if err != nil || !ok {
		return A4
	}
	arr, err := ctx.DereferenceArray(obj)
	if err != nil || len(arr) != 4 {
		return A4
	}

	var v [4]float64
	for i, o := range arr {
		o, err := ctx.Dereference(o)
		if err != nil {
			return A4
		}
		n, ok := number(o)
		if !ok {
			return A4
		}
		v[i] = n
	}
	b := Box{LLX: min(v[0], v[2]), LLY: min(v[1], v[3]), URX: max(v[0], v[2]), URY: max(v[1], v[3])}
	if b.Width() <= 0 || b.Height() <= 0 {
		return A4
	}
	return b
}

func number(o types.Object) (float64, bool) {
	switch v := o.(type) {
	case types.Integer:
		return float64(v), true
	case types.Float:
		return float64(v), true
	}
	return 0, false
}

// PageContent returns the decoded content of page. A Contents array is
// concatenated with newlines between the parts.
func PageContent(ctx *model.Context, page types.Dict) ([]byte, error) {
	obj, ok := page["Contents"]
	if !ok || obj == nil {
		return nil, nil
	}
	o, err := ctx.Dereference(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read page contents: %w", err)
	}

	switch v := o.(type) {
	case nil:
		return nil, nil
	case types.StreamDict:
		return decode(&v)
	case types.Array:
		var buf bytes.Buffer
		for i, part := range v {
			sd, _, err := ctx.DereferenceStreamDict(part)
			if err != nil {
				return nil, fmt.Errorf("failed to read content stream %d: %w", i, err)
			}
			if sd == nil {
				continue
			}
			content, err := decode(sd)
			if err != nil {
				return nil, err
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.Write(content)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unexpected page Contents of type %T", o)
	}
}

func decode(sd *types.StreamDict) ([]byte, error) {
	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("failed to decode content stream: %w", err)
	}
	return sd.Content, nil
}

// AddStream stores content as a new unfiltered stream object and returns its reference.
func AddStream(ctx *model.Context, content []byte) (types.IndirectRef, error) {
	length := int64(len(content))
	sd := types.StreamDict{
		Dict:         types.Dict{"Length": types.Integer(len(content))},
		StreamLength: &length,
		Raw:          content,
		Content:      content,
	}
	ref, err := ctx.IndRefForNewObject(sd)
	if err != nil {
		return types.IndirectRef{}, fmt.Errorf("failed to add stream: %w", err)
	}
	return *ref, nil
}

// ResolveDict dereferences o into a dictionary. A nil object yields an empty dictionary.
func ResolveDict(ctx *model.Context, o types.Object) (types.Dict, error) {
	if o == nil {
		return types.Dict{}, nil
	}
	d, err := ctx.DereferenceDict(o)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return types.Dict{}, nil
	}
	return d, nil
}

// CopyDict returns a shallow copy of d.
func CopyDict(d types.Dict) types.Dict {
	out := make(types.Dict, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
