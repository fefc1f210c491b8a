package validation

import (
	"reflect"
	"testing"

	"isoedit/diagram"
)

func TestFixModel_Policy(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *diagram.Model)
		check  func(t *testing.T, m *diagram.Model)
	}{
		{
			name:   "icon reference cleared",
			mutate: func(m *diagram.Model) { m.Items[0].Icon = "nope" },
			check: func(t *testing.T, m *diagram.Model) {
				if m.Items[0].Icon != "" {
					t.Errorf("icon = %q", m.Items[0].Icon)
				}
				if m.Items[1].Icon != "server" {
					t.Error("valid icon was touched")
				}
			},
		},
		{
			name: "color references cleared",
			mutate: func(m *diagram.Model) {
				m.Views[0].Rectangles[0].Color = "x"
				m.Views[0].Roads[0].Color = "x"
				m.Views[0].TextBoxes[0].Color = "x"
			},
			check: func(t *testing.T, m *diagram.Model) {
				v := m.Views[0]
				if v.Rectangles[0].Color != "" || v.Roads[0].Color != "" || v.TextBoxes[0].Color != "" {
					t.Errorf("colors not cleared: %+v", v)
				}
			},
		},
		{
			name: "stub model item synthesised",
			mutate: func(m *diagram.Model) {
				m.Views[0].Items = append(m.Views[0].Items, diagram.ViewItem{ID: "ghost"})
			},
			check: func(t *testing.T, m *diagram.Model) {
				_, item, err := m.ModelItemByID("ghost")
				if err != nil {
					t.Fatal(err)
				}
				if item.Name != "Item ghost" {
					t.Errorf("stub name = %q", item.Name)
				}
			},
		},
		{
			name: "invalid anchor removed and short connector pruned",
			mutate: func(m *diagram.Model) {
				m.Views[0].Connectors[0].Anchors[1].Ref = diagram.ItemRef("gone")
			},
			check: func(t *testing.T, m *diagram.Model) {
				if len(m.Views[0].Connectors) != 0 {
					t.Errorf("connector should be pruned: %+v", m.Views[0].Connectors)
				}
				// The road anchored to c2 loses that anchor and is pruned too.
				if len(m.Views[0].Roads) != 0 {
					t.Errorf("road should be pruned: %+v", m.Views[0].Roads)
				}
			},
		},
		{
			name: "anchor with two keys removed",
			mutate: func(m *diagram.Model) {
				c := &m.Views[0].Connectors[0]
				c.Anchors = append(c.Anchors, diagram.Anchor{ID: "c3", Ref: diagram.AnchorRef{Item: "a", Tile: tile(1, 1)}})
			},
			check: func(t *testing.T, m *diagram.Model) {
				if got := len(m.Views[0].Connectors[0].Anchors); got != 2 {
					t.Errorf("anchors = %d, want 2", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validModel()
			tt.mutate(m)
			before := m.Clone()

			fixed, applied := FixModel(m)
			if len(applied) == 0 {
				t.Fatal("expected at least one applied fix")
			}
			tt.check(t, fixed)
			if issues := ValidateModel(fixed); len(issues) != 0 {
				t.Errorf("fixed model still has issues: %v", issues)
			}
			if !modelsEqual(m, before) {
				t.Error("FixModel mutated its input")
			}
		})
	}
}

func TestFixModel_LeavesDuplicates(t *testing.T) {
	m := validModel()
	m.Views[0].TextBoxes = append(m.Views[0].TextBoxes, diagram.TextBox{ID: "rect"})
	fixed, applied := FixModel(m)
	if len(applied) != 0 {
		t.Errorf("duplicates must not be auto-fixed, applied %v", applied)
	}
	issues := ValidateModel(fixed)
	if len(issues) != 1 || issues[0].Type != DuplicateID {
		t.Errorf("expected the duplicate to remain, got %v", issues)
	}
}

func TestFixModel_CleanModelUnchanged(t *testing.T) {
	m := validModel()
	fixed, applied := FixModel(m)
	if len(applied) != 0 {
		t.Errorf("unexpected fixes %v", applied)
	}
	if !modelsEqual(m, fixed) {
		t.Error("clean model changed")
	}
	if fixed == m {
		t.Error("FixModel must return a copy")
	}
}

func modelsEqual(a, b *diagram.Model) bool {
	return reflect.DeepEqual(a, b)
}
