package graphview

import (
	"testing"
	"time"

	"github.com/kindred-app/graphview/pkg/graph"
	"github.com/kindred-app/graphview/pkg/scene"
)

func newTestView(t *testing.T, snap *graph.Snapshot, opts *Options) (*View, *scene.MemoryScene) {
	t.Helper()
	sc := scene.NewMemoryScene()
	v := New(snap, sc, 1000, 800, opts)
	return v, sc
}

func TestView_CreatesRetainedDrawables(t *testing.T) {
	snap := makeSnapshot(4,
		graph.Edge{From: "n0", To: "n1"},
		graph.Edge{From: "n2", To: "missing"}, // no drawable for this one
	)
	v, sc := newTestView(t, snap, nil)
	defer v.Dispose()

	if len(sc.Nodes()) != 4 {
		t.Fatalf("expected 4 node drawables, got %d", len(sc.Nodes()))
	}
	if len(sc.Edges()) != 1 {
		t.Fatalf("expected 1 edge drawable (dangling edge dropped), got %d", len(sc.Edges()))
	}
	if sc.Nodes()[0].Label != "Node 0" {
		t.Errorf("label not carried to drawable: %q", sc.Nodes()[0].Label)
	}
}

func TestView_StepUpdatesTransformsAndStrokes(t *testing.T) {
	v, sc := newTestView(t, makeSnapshot(3, graph.Edge{From: "n0", To: "n1"}), nil)
	defer v.Dispose()

	edge := sc.Edges()[0]
	before := edge.Strokes
	v.Step()
	v.Step()
	if edge.Strokes != before+2 {
		t.Fatalf("edge must be re-stroked every tick: %d strokes after 2 steps (was %d)", edge.Strokes, before)
	}

	// Node drawables track the simulated positions exactly.
	for i, n := range v.Engine().Nodes() {
		d := sc.Nodes()[i]
		if d.X != n.X || d.Y != n.Y {
			t.Errorf("drawable %s at (%v,%v), simulation at (%v,%v)", d.ID, d.X, d.Y, n.X, n.Y)
		}
	}
	// Edge endpoints match the two nodes.
	a, b := v.Engine().Nodes()[0], v.Engine().Nodes()[1]
	if edge.X1 != a.X || edge.Y1 != a.Y || edge.X2 != b.X || edge.Y2 != b.Y {
		t.Error("edge geometry does not match endpoint positions")
	}
}

func TestView_EdgeColorResolution(t *testing.T) {
	snap := makeSnapshot(3,
		graph.Edge{From: "n0", To: "n1", Category: "family"},
		graph.Edge{From: "n1", To: "n2", Category: "unmapped"},
		graph.Edge{From: "n0", To: "n2"},
	)
	v, sc := newTestView(t, snap, &Options{
		Palette:     map[string]scene.Color{"family": "#e05661"},
		DefaultEdge: "#39424e",
	})
	defer v.Dispose()

	edges := sc.Edges()
	if edges[0].Color != "#e05661" {
		t.Errorf("mapped category: got %q", edges[0].Color)
	}
	if edges[1].Color != "#39424e" {
		t.Errorf("unmapped category should fall back: got %q", edges[1].Color)
	}
	if edges[2].Color != "#39424e" {
		t.Errorf("absent category should fall back: got %q", edges[2].Color)
	}
}

func TestView_HoverTogglesEmphasis(t *testing.T) {
	v, sc := newTestView(t, makeSnapshot(2), nil)
	defer v.Dispose()

	v.PointerOver("n0")
	if !sc.Nodes()[0].Emphasis {
		t.Fatal("hover did not set emphasis")
	}
	v.PointerOver("n1")
	if sc.Nodes()[0].Emphasis || !sc.Nodes()[1].Emphasis {
		t.Fatal("emphasis did not follow hover target")
	}
	v.PointerOut("n1")
	if sc.Nodes()[1].Emphasis {
		t.Fatal("emphasis not cleared on pointer-out")
	}
}

func TestView_GrabAffordance(t *testing.T) {
	v, sc := newTestView(t, makeSnapshot(2), nil)
	defer v.Dispose()

	v.PointerDown("n0", 100, 100)
	if !sc.Nodes()[0].Grabbing {
		t.Fatal("grabbing affordance not set on pointer-down")
	}
	v.PointerUp(100, 100)
	if sc.Nodes()[0].Grabbing {
		t.Fatal("grabbing affordance not restored on pointer-up")
	}
}

func TestView_NavigationEvent(t *testing.T) {
	var got []string
	snap := makeSnapshot(2)
	v, _ := newTestView(t, snap, &Options{
		OnNavigate: func(id string) { got = append(got, id) },
	})
	defer v.Dispose()

	v.PointerDown("n1", 50, 50)
	v.PointerUp(51, 51)
	if len(got) != 1 || got[0] != "n1" {
		t.Fatalf("expected one navigation for n1, got %v", got)
	}
	if v.Navigations.Get() != "n1" {
		t.Errorf("Navigations state = %q, want n1", v.Navigations.Get())
	}
}

func TestView_EmptySnapshot(t *testing.T) {
	v, sc := newTestView(t, &graph.Snapshot{}, nil)
	if len(sc.Nodes()) != 0 || len(sc.Edges()) != 0 {
		t.Fatal("empty snapshot created drawables")
	}
	v.Step() // no-op, must not panic
	v.Dispose()
}

func TestView_DisposeIsIdempotent(t *testing.T) {
	v, sc := newTestView(t, makeSnapshot(3, graph.Edge{From: "n0", To: "n1"}), nil)
	v.Run(time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	v.Dispose()
	v.Dispose() // second teardown must be a no-op

	if !sc.Disposed() {
		t.Error("scene not disposed")
	}
	for _, n := range sc.Nodes() {
		if !n.Disposed {
			t.Errorf("node drawable %s not disposed", n.ID)
		}
	}
	for i, e := range sc.Edges() {
		if !e.Disposed {
			t.Errorf("edge drawable %d not disposed", i)
		}
	}

	// No zombie frame callback: stroke count must be stable. Let any
	// frame already past the disposed check finish first.
	time.Sleep(5 * time.Millisecond)
	strokes := sc.Edges()[0].Strokes
	time.Sleep(20 * time.Millisecond)
	if sc.Edges()[0].Strokes != strokes {
		t.Fatal("frame callback still running after dispose")
	}

	v.Step() // disposed view ignores further steps
	if sc.Edges()[0].Strokes != strokes {
		t.Fatal("Step ran on a disposed view")
	}
}

func TestView_RunAfterDisposeIsNoop(t *testing.T) {
	v, sc := newTestView(t, makeSnapshot(2, graph.Edge{From: "n0", To: "n1"}), nil)
	v.Dispose()
	v.Run(time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	if sc.Edges()[0].Strokes != 1 {
		t.Fatalf("disposed view animated: %d strokes", sc.Edges()[0].Strokes)
	}
}
