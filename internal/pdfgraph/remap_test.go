package pdfgraph

import (
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func ref(nr int) types.IndirectRef {
	return *types.NewIndirectRef(nr, 0)
}

func TestOffset(t *testing.T) {
	table := Offset([]ObjectID{{Number: 1}, {Number: 2, Generation: 3}}, 10)

	if got := table[ObjectID{Number: 1}]; got != (ObjectID{Number: 11}) {
		t.Errorf("1 0 R mapped to %s, want 11 0 R", got)
	}
	if got := table[ObjectID{Number: 2, Generation: 3}]; got != (ObjectID{Number: 12, Generation: 3}) {
		t.Errorf("2 3 R mapped to %s, want 12 3 R", got)
	}
}

func TestRewrite(t *testing.T) {
	table := Offset([]ObjectID{{Number: 1}, {Number: 2}, {Number: 3}}, 100)

	t.Run("nested containers", func(t *testing.T) {
		d := types.Dict{
			"Parent": ref(1),
			"Kids":   types.Array{ref(2), types.Array{ref(3)}},
			"Resources": types.Dict{
				"Font": types.Dict{"F1": ref(3)},
			},
			"Count": types.Integer(2),
			"Name":  types.Name("Page"),
		}

		table.Rewrite(d)

		if got := IDOf(d["Parent"].(types.IndirectRef)); got.Number != 101 {
			t.Errorf("Parent = %s, want 101 0 R", got)
		}
		kids := d["Kids"].(types.Array)
		if got := IDOf(kids[0].(types.IndirectRef)); got.Number != 102 {
			t.Errorf("Kids[0] = %s, want 102 0 R", got)
		}
		if got := IDOf(kids[1].(types.Array)[0].(types.IndirectRef)); got.Number != 103 {
			t.Errorf("Kids[1][0] = %s, want 103 0 R", got)
		}
		font := d["Resources"].(types.Dict)["Font"].(types.Dict)
		if got := IDOf(font["F1"].(types.IndirectRef)); got.Number != 103 {
			t.Errorf("F1 = %s, want 103 0 R", got)
		}
		if d["Count"] != types.Integer(2) || d["Name"] != types.Name("Page") {
			t.Error("non-reference values changed")
		}
	})

	t.Run("stream dictionary", func(t *testing.T) {
		sd := types.StreamDict{Dict: types.Dict{"Resources": ref(2)}}

		table.Rewrite(sd)

		if got := IDOf(sd.Dict["Resources"].(types.IndirectRef)); got.Number != 102 {
			t.Errorf("Resources = %s, want 102 0 R", got)
		}
	})

	t.Run("unknown reference is kept", func(t *testing.T) {
		got := table.Rewrite(ref(42)).(types.IndirectRef)
		if IDOf(got).Number != 42 {
			t.Errorf("42 0 R rewritten to %s", IDOf(got))
		}
	})

	t.Run("generation is preserved", func(t *testing.T) {
		table := Offset([]ObjectID{{Number: 5, Generation: 2}}, 7)
		got := table.Rewrite(*types.NewIndirectRef(5, 2)).(types.IndirectRef)
		if id := IDOf(got); id != (ObjectID{Number: 12, Generation: 2}) {
			t.Errorf("5 2 R rewritten to %s, want 12 2 R", id)
		}
	})
}

func TestTextString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want types.Object
	}{
		{"plain", "Tab 1", types.StringLiteral("Tab 1")},
		{"delimiters", `Exhibit (A) \ B`, types.StringLiteral(`Exhibit \(A\) \\ B`)},
		{"non ascii", "é", types.HexLiteral("feff00e9")},
		{"control", "a\nb", types.HexLiteral("feff0061000a0062")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextString(tt.in); got != tt.want {
				t.Errorf("TextString(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
