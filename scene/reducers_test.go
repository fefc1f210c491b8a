package scene

import (
	"errors"
	"reflect"
	"testing"

	"isoedit/diagram"
	"isoedit/geometry"
	"isoedit/importer"
	"isoedit/validation"
)

const viewID = diagram.DefaultViewID

func at(x, y int) geometry.Coords {
	return geometry.Coords{X: x, Y: y}
}

// fixture has item "a" at (2,2), item "b" at (6,2) and connector "c" from
// item "a" to tile (5,5).
func fixture(t *testing.T) State {
	t.Helper()
	m := diagram.NewModel("fixture")
	m.Items = []diagram.ModelItem{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	m.Views[0].Items = []diagram.ViewItem{{ID: "a", Tile: at(2, 2)}, {ID: "b", Tile: at(6, 2)}}
	m.Views[0].Connectors = []diagram.Connector{{
		ID: "c",
		Anchors: []diagram.Anchor{
			{ID: "c1", Ref: diagram.ItemRef("a")},
			{ID: "c2", Ref: diagram.TileRef(at(5, 5))},
		},
	}}
	s, err := NewState(m, viewID)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// loadedFixture is fixture decoded from JSON that spells out every empty
// collection.
func loadedFixture(t *testing.T) State {
	t.Helper()
	m, err := importer.Load([]byte(`{
	  "title": "fixture",
	  "items": [{"id": "a", "name": "A"}, {"id": "b", "name": "B"}],
	  "icons": [],
	  "colors": [],
	  "views": [{
	    "id": "view1",
	    "name": "Untitled view",
	    "items": [{"id": "a", "tile": {"x": 2, "y": 2}}, {"id": "b", "tile": {"x": 6, "y": 2}}],
	    "rectangles": [],
	    "volumes": [],
	    "roads": [],
	    "textBoxes": [],
	    "connectors": [{"id": "c", "anchors": [
	      {"id": "c1", "ref": {"item": "a"}},
	      {"id": "c2", "ref": {"tile": {"x": 5, "y": 5}}}
	    ]}]
	  }]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewState(m, viewID)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustView(t *testing.T, s State) *diagram.View {
	t.Helper()
	v, err := s.View(viewID)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestNewStateComputesPaths(t *testing.T) {
	s := fixture(t)
	path := s.Scene.Connectors["c"].Path
	if path.Len() != geometry.TileDistance(at(2, 2), at(5, 5))+1 {
		t.Errorf("unexpected path %v", path.Tiles)
	}
	if path.Tiles[0] != at(2, 2) || path.Tiles[path.Len()-1] != at(5, 5) {
		t.Errorf("path endpoints wrong: %v", path.Tiles)
	}
}

func TestUpdateViewItemCascadesConnectorPath(t *testing.T) {
	s := fixture(t)
	before := s.Scene.Connectors["c"].Path.Rectangle

	tile := at(3, 2)
	next, err := UpdateViewItem(s, viewID, "a", ViewItemPatch{Tile: &tile})
	if err != nil {
		t.Fatal(err)
	}

	after := next.Scene.Connectors["c"].Path.Rectangle
	want := geometry.BoundingBox([]geometry.Coords{at(3, 2), at(5, 5)}, geometry.Coords{X: 1, Y: 1})
	if after != want {
		t.Errorf("rectangle = %v, want %v", after, want)
	}
	if after == before {
		t.Error("rectangle did not change")
	}
	if next.Scene.Connectors["c"].Path.Tiles[0] != tile {
		t.Errorf("path does not start at the moved item: %v", next.Scene.Connectors["c"].Path.Tiles)
	}
	// The input state is untouched.
	if s.Scene.Connectors["c"].Path.Rectangle != before || mustView(t, s).Items[0].Tile != at(2, 2) {
		t.Error("input state was mutated")
	}
}

func TestUpdateRejectedLeavesStateUnchanged(t *testing.T) {
	s := fixture(t)
	snapshot := s.Clone()

	next, err := UpdateConnector(s, viewID, "c", ConnectorPatch{
		Anchors: []diagram.Anchor{
			{ID: "c1", Ref: diagram.ItemRef("a")},
			{ID: "c2", Ref: diagram.ItemRef("ghost")},
		},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].Type != validation.InvalidAnchorToViewItemRef {
		t.Errorf("unexpected issues %v", verr.Issues)
	}
	if !reflect.DeepEqual(next, snapshot) || !reflect.DeepEqual(s, snapshot) {
		t.Error("rejected update changed state")
	}
}

func TestUpdateViewItemRejectsUnknownColor(t *testing.T) {
	s := fixture(t)
	color := "nope"
	_, err := UpdateViewItem(s, viewID, "a", ViewItemPatch{Color: &color})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Issues[0].Type != validation.InvalidViewItemColorRef {
		t.Fatalf("expected color rejection, got %v", err)
	}
}

func TestUpdateMissingEntityIsNotFound(t *testing.T) {
	s := fixture(t)
	_, err := UpdateRectangle(s, viewID, "missing", RectanglePatch{})
	var nf *diagram.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "Rectangle" {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestCreateDeleteInverse(t *testing.T) {
	iso := false
	tests := []struct {
		name   string
		create func(State) (State, error)
		delete func(State) (State, error)
	}{
		{
			name: "view item",
			create: func(s State) (State, error) {
				s, err := CreateModelItem(s, diagram.ModelItem{ID: "n", Name: "N"})
				if err != nil {
					return s, err
				}
				s, err = CreateViewItem(s, viewID, diagram.ViewItem{ID: "n", Tile: at(9, 9)})
				return s, err
			},
			delete: func(s State) (State, error) {
				s, err := DeleteViewItem(s, viewID, "n")
				if err != nil {
					return s, err
				}
				return DeleteModelItem(s, "n")
			},
		},
		{
			name: "rectangle",
			create: func(s State) (State, error) {
				return CreateRectangle(s, viewID, diagram.Rectangle{ID: "r", From: at(0, 0), To: at(3, 3), Isometric: &iso})
			},
			delete: func(s State) (State, error) { return DeleteRectangle(s, viewID, "r") },
		},
		{
			name: "volume",
			create: func(s State) (State, error) {
				return CreateVolume(s, viewID, diagram.Volume{Rectangle: diagram.Rectangle{ID: "v", To: at(1, 1)}, Height: 2})
			},
			delete: func(s State) (State, error) { return DeleteVolume(s, viewID, "v") },
		},
		{
			name: "connector",
			create: func(s State) (State, error) {
				return CreateConnector(s, viewID, diagram.Connector{ID: "c9", Anchors: []diagram.Anchor{
					{ID: "x1", Ref: diagram.ItemRef("b")},
					{ID: "x2", Ref: diagram.AnchorIDRef("c2")},
				}})
			},
			delete: func(s State) (State, error) { return DeleteConnector(s, viewID, "c9") },
		},
		{
			name: "road",
			create: func(s State) (State, error) {
				return CreateRoad(s, viewID, diagram.Connector{ID: "r9", Anchors: []diagram.Anchor{
					{ID: "y1", Ref: diagram.TileRef(at(0, 0))},
					{ID: "y2", Ref: diagram.TileRef(at(0, 4))},
				}})
			},
			delete: func(s State) (State, error) { return DeleteRoad(s, viewID, "r9") },
		},
		{
			name: "text box",
			create: func(s State) (State, error) {
				return CreateTextBox(s, viewID, diagram.TextBox{ID: "t", Tile: at(1, 0), Content: "hello"})
			},
			delete: func(s State) (State, error) { return DeleteTextBox(s, viewID, "t") },
		},
	}

	fixtures := []struct {
		name  string
		state func(*testing.T) State
	}{
		{"built", fixture},
		{"loaded", loadedFixture},
	}

	for _, f := range fixtures {
		for _, tt := range tests {
			t.Run(f.name+"/"+tt.name, func(t *testing.T) {
				s := f.state(t)
				created, err := tt.create(s)
				if err != nil {
					t.Fatalf("create: %v", err)
				}
				if reflect.DeepEqual(created.Model, s.Model) {
					t.Fatal("create did not change the model")
				}
				deleted, err := tt.delete(created)
				if err != nil {
					t.Fatalf("delete: %v", err)
				}
				if !reflect.DeepEqual(deleted.Model, s.Model) {
					t.Errorf("delete(create(E)) != state\n got %+v\nwant %+v", deleted.Model.Views[0], s.Model.Views[0])
				}
				if !reflect.DeepEqual(deleted.Scene, s.Scene) {
					t.Errorf("scene differs after delete: %+v", deleted.Scene)
				}
			})
		}
	}
}

func TestCreateInsertsAtFront(t *testing.T) {
	s := fixture(t)
	s, err := CreateRectangle(s, viewID, diagram.Rectangle{ID: "r1"})
	if err != nil {
		t.Fatal(err)
	}
	s, err = CreateRectangle(s, viewID, diagram.Rectangle{ID: "r2"})
	if err != nil {
		t.Fatal(err)
	}
	rects := mustView(t, s).Rectangles
	if rects[0].ID != "r2" || rects[1].ID != "r1" {
		t.Errorf("order = %v", rects)
	}
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	s := fixture(t)
	_, err := CreateRectangle(s, viewID, diagram.Rectangle{ID: "c"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Issues[0].Type != validation.DuplicateID {
		t.Errorf("expected duplicate rejection, got %v", err)
	}
}

func TestCreateViewItemSynthesisesModelItem(t *testing.T) {
	s := fixture(t)
	next, err := CreateViewItem(s, viewID, diagram.ViewItem{ID: "pasted", Tile: at(7, 7)})
	if err != nil {
		t.Fatal(err)
	}
	_, item, err := next.Model.ModelItemByID("pasted")
	if err != nil {
		t.Fatal(err)
	}
	if item.Name != "Item pasted" {
		t.Errorf("stub name = %q", item.Name)
	}
	if mustView(t, next).Items[0].ID != "pasted" {
		t.Error("view item not at front")
	}
}

func TestDeleteViewItemPrunesSoleConnector(t *testing.T) {
	s := fixture(t)
	next, err := DeleteViewItem(s, viewID, "a")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(mustView(t, next).Connectors); n != 0 {
		t.Errorf("connector should be removed, %d left", n)
	}
	if len(next.Scene.Connectors) != 0 {
		t.Errorf("scene still caches %v", next.Scene.Connectors)
	}
	if _, _, err := next.Model.ModelItemByID("a"); err != nil {
		t.Error("model item should be kept")
	}
}

func TestDeleteViewItemKeepsConnectorWithEnoughAnchors(t *testing.T) {
	s := fixture(t)
	s, err := UpdateConnector(s, viewID, "c", ConnectorPatch{Anchors: []diagram.Anchor{
		{ID: "c1", Ref: diagram.ItemRef("a")},
		{ID: "c3", Ref: diagram.ItemRef("b")},
		{ID: "c2", Ref: diagram.TileRef(at(5, 5))},
	}})
	if err != nil {
		t.Fatal(err)
	}

	next, err := DeleteViewItem(s, viewID, "a")
	if err != nil {
		t.Fatal(err)
	}
	view := mustView(t, next)
	if len(view.Connectors) != 1 || len(view.Connectors[0].Anchors) != 2 {
		t.Fatalf("expected connector with 2 anchors, got %+v", view.Connectors)
	}
	path := next.Scene.Connectors["c"].Path
	if path.Tiles[0] != at(6, 2) || path.Tiles[path.Len()-1] != at(5, 5) {
		t.Errorf("path not recomputed: %v", path.Tiles)
	}
}

func TestDeleteConnectorCascadesThroughAnchorRefs(t *testing.T) {
	s := fixture(t)
	s, err := CreateRoad(s, viewID, diagram.Connector{ID: "road", Anchors: []diagram.Anchor{
		{ID: "r1", Ref: diagram.AnchorIDRef("c2")},
		{ID: "r2", Ref: diagram.TileRef(at(9, 9))},
	}})
	if err != nil {
		t.Fatal(err)
	}
	next, err := DeleteConnector(s, viewID, "c")
	if err != nil {
		t.Fatal(err)
	}
	view := mustView(t, next)
	if len(view.Roads) != 0 || len(next.Scene.Roads) != 0 {
		t.Errorf("road anchored to the deleted connector should be pruned: %+v", view.Roads)
	}
}

func TestSyncConnectorRemovesInvalid(t *testing.T) {
	s := fixture(t)
	// Break the reference directly, as a wholesale model edit would.
	broken := s.Clone()
	mustView(t, broken).Connectors[0].Anchors[0].Ref = diagram.ItemRef("ghost")

	next, err := SyncConnector(broken, viewID, "c")
	if err != nil {
		t.Fatal(err)
	}
	if len(mustView(t, next).Connectors) != 0 || len(next.Scene.Connectors) != 0 {
		t.Error("invalid connector survived sync")
	}

	valid, err := SyncConnector(s, viewID, "c")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(valid.Scene, s.Scene) {
		t.Error("sync of a valid connector changed its path")
	}
}

func TestRebuildPrunesInvalidLinks(t *testing.T) {
	m := fixture(t).Model.Clone()
	m.Views[0].Roads = []diagram.Connector{{ID: "short", Anchors: []diagram.Anchor{{ID: "s1", Ref: diagram.TileRef(at(0, 0))}}}}
	s, err := Rebuild(State{Model: m}, viewID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mustView(t, s).Roads) != 0 {
		t.Error("short road kept")
	}
	if len(m.Views[0].Roads) != 1 {
		t.Error("Rebuild mutated its input model")
	}
	if _, err := Rebuild(State{Model: m}, "nope"); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestDeleteModelItemRemovesPlacements(t *testing.T) {
	s := fixture(t)
	next, err := DeleteModelItem(s, "a")
	if err != nil {
		t.Fatal(err)
	}
	view := mustView(t, next)
	if _, _, err := view.ItemByID("a"); err == nil {
		t.Error("view item kept")
	}
	if len(view.Connectors) != 0 {
		t.Error("connector anchored to the item kept")
	}
}

func TestUpdateModelItemRejectsUnknownIcon(t *testing.T) {
	s := fixture(t)
	icon := "nope"
	if _, err := UpdateModelItem(s, "a", ModelItemPatch{Icon: &icon}); err == nil {
		t.Error("expected rejection")
	}
	name := "Renamed"
	next, err := UpdateModelItem(s, "a", ModelItemPatch{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if _, item, _ := next.Model.ModelItemByID("a"); item.Name != "Renamed" {
		t.Errorf("name = %q", item.Name)
	}
}

func TestViews(t *testing.T) {
	s := fixture(t)
	if _, err := DeleteView(s, viewID); !errors.Is(err, ErrLastView) {
		t.Errorf("expected ErrLastView, got %v", err)
	}
	s, err := CreateView(s, diagram.View{ID: "second", Name: "Second"})
	if err != nil {
		t.Fatal(err)
	}
	name := "Renamed"
	s, err = UpdateView(s, "second", ViewPatch{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if _, v, _ := s.Model.ViewByID("second"); v.Name != "Renamed" {
		t.Errorf("view name = %q", v.Name)
	}
	s, err = DeleteView(s, viewID)
	if err != nil {
		t.Fatal(err)
	}
	if s.Scene.ViewID != "second" {
		t.Errorf("scene should follow the remaining view, got %q", s.Scene.ViewID)
	}
}

func TestUpdateTextBoxResizes(t *testing.T) {
	s := fixture(t)
	s, err := CreateTextBox(s, viewID, diagram.TextBox{ID: "t", Content: "a"})
	if err != nil {
		t.Fatal(err)
	}
	small := s.Scene.TextBoxes["t"].Size
	long := "a considerably longer label"
	s, err = UpdateTextBox(s, viewID, "t", TextBoxPatch{Content: &long})
	if err != nil {
		t.Fatal(err)
	}
	if large := s.Scene.TextBoxes["t"].Size; large.Width <= small.Width || large.Height != 1 {
		t.Errorf("size %v did not grow from %v", large, small)
	}
}

func TestCreateIcon(t *testing.T) {
	s := fixture(t)
	icon := diagram.Icon{ID: "photo", Name: "Photo", URL: "data:image/png;base64,AA=="}
	next, err := CreateIcon(s, icon)
	if err != nil {
		t.Fatal(err)
	}
	if !next.Model.HasIcon("photo") || s.Model.HasIcon("photo") {
		t.Error("icon should be added to the new state only")
	}
	if _, err := CreateIcon(next, icon); err == nil {
		t.Error("expected duplicate icon to be rejected")
	}
}
