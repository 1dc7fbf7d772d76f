package orbit

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestProjectNoTilt(t *testing.T) {
	p := NewProjector(0, 0, 100, 50)

	pr := p.Project(30, -10, 0)
	if math.Abs(pr.X-130) > eps || math.Abs(pr.Y-40) > eps {
		t.Errorf("Project(30,-10,0) = (%v, %v), want (130, 40)", pr.X, pr.Y)
	}
	if math.Abs(pr.Depth) > eps {
		t.Errorf("in-plane point with no tilt has depth %v, want 0", pr.Depth)
	}
}

func TestProjectDepthSign(t *testing.T) {
	// A quarter-turn Y tilt rotates +x fully into -z (behind the plane).
	p := NewProjector(math.Pi/2, 0, 0, 0)

	tests := []struct {
		name      string
		x         float64
		wantDepth float64
	}{
		{"positive x goes behind", 5, -5},
		{"negative x comes forward", -5, 5},
		{"origin stays on the plane", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := p.Project(tt.x, 0, 0)
			if math.Abs(pr.Depth-tt.wantDepth) > eps {
				t.Errorf("Project(%v,0,0).Depth = %v, want %v", tt.x, pr.Depth, tt.wantDepth)
			}
		})
	}
}

func TestProjectEllipseAspect(t *testing.T) {
	// With no tilt the aspect compression shows directly on screen:
	// the minor axis is major times aspect.
	p := NewProjector(0, 0, 0, 0)

	top := p.ProjectEllipse(160, 0.4, math.Pi/2)
	if math.Abs(top.Y-64) > eps {
		t.Errorf("minor vertex Y = %v, want 64", top.Y)
	}
	side := p.ProjectEllipse(160, 0.4, 0)
	if math.Abs(side.X-160) > eps {
		t.Errorf("major vertex X = %v, want 160", side.X)
	}
}

func TestProjectZRotation(t *testing.T) {
	// A quarter-turn Z rotation maps +x onto +y on screen.
	p := NewProjector(0, math.Pi/2, 0, 0)
	pr := p.Project(7, 0, 0)
	if math.Abs(pr.X) > eps || math.Abs(pr.Y-7) > eps {
		t.Errorf("Project(7,0,0) = (%v, %v), want (0, 7)", pr.X, pr.Y)
	}
	// The near-side discriminant is taken before the Z rotation.
	if math.Abs(pr.XTilt-7) > eps {
		t.Errorf("XTilt = %v, want 7", pr.XTilt)
	}
}

func TestNearSideBias(t *testing.T) {
	tests := []struct {
		name  string
		xTilt float64
		scale float64
		want  float64
	}{
		{"fully near", 1, 1, 1},
		{"fully far", -1, 1, 0},
		{"midpoint", 0, 1, 0.5},
		{"clamped above", 5, 1, 1},
		{"clamped below", -5, 1, 0},
		{"degenerate scale", 3, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearSideBias(tt.xTilt, tt.scale); math.Abs(got-tt.want) > eps {
				t.Errorf("NearSideBias(%v, %v) = %v, want %v", tt.xTilt, tt.scale, got, tt.want)
			}
		})
	}
}

func TestDepthSetSplit(t *testing.T) {
	var d DepthSet
	d.Add(Projected{Depth: -1}, 0.5, 0)
	d.Add(Projected{Depth: 0}, 0.5, 0) // On-plane points count as behind
	d.Add(Projected{Depth: 1}, 0.5, 0)

	if len(d.Back) != 2 || len(d.Front) != 1 {
		t.Fatalf("split = %d back / %d front, want 2 / 1", len(d.Back), len(d.Front))
	}

	d.Reset()
	if len(d.Back) != 0 || len(d.Front) != 0 {
		t.Errorf("Reset left %d back / %d front points", len(d.Back), len(d.Front))
	}
	if cap(d.Back) == 0 {
		t.Error("Reset dropped backing capacity")
	}
}

func TestBodyAdvanceWraps(t *testing.T) {
	b := Body{Angle: 6.0, AngularSpeed: 0.01, SpinSpeed: -0.02}
	for i := 0; i < 200; i++ {
		b.Advance(16.7)
		if b.Angle < 0 || b.Angle >= 2*math.Pi {
			t.Fatalf("angle %v escaped [0, 2pi) after %d steps", b.Angle, i+1)
		}
		if b.Spin < 0 || b.Spin >= 2*math.Pi {
			t.Fatalf("spin %v escaped [0, 2pi) after %d steps", b.Spin, i+1)
		}
	}
}

func TestBodyPlanePosition(t *testing.T) {
	b := Body{Radius: 10, Angle: math.Pi / 2}
	x, y := b.PlanePosition()
	if math.Abs(x) > eps || math.Abs(y-10) > eps {
		t.Errorf("PlanePosition = (%v, %v), want (0, 10)", x, y)
	}
}
