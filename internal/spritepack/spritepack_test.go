package spritepack_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pets/internal/graph"
	"github.com/vovakirdan/tui-pets/internal/registry"
	"github.com/vovakirdan/tui-pets/internal/spritepack"
)

// getTestdataPath returns path to testdata.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata")
}

func TestBuiltinShimejiBuilds(t *testing.T) {
	p, ok := spritepack.Builtin("shimeji")
	if !ok {
		t.Fatal("Builtin(shimeji) not found")
	}
	g, err := p.Graph()
	if err != nil {
		t.Fatalf("Graph() failed: %v", err)
	}

	for _, name := range []string{"Idle", "Walk", "Fall", "Land", "GrabWall", "ClimbWall", "Pinched", "Thrown"} {
		if _, ok := g.BehaviorByName(name); !ok {
			t.Errorf("behavior %q missing", name)
		}
	}
	if g.Behavior(g.Neutral()).Name != "Idle" {
		t.Errorf("neutral = %s, expected Idle", g.Behavior(g.Neutral()).Name)
	}
	if g.Pinch().Empty() {
		t.Error("pinch images missing")
	}
	if _, ok := g.FlagByName("window_below"); !ok {
		t.Error("declared flag window_below not interned")
	}
}

func TestBuiltinRegistered(t *testing.T) {
	if !registry.Exists("shimeji") {
		t.Fatal("shimeji not registered")
	}
	found := false
	for _, info := range registry.List() {
		if info.ID == "shimeji" && info.Title == "Shimeji" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %+v, expected shimeji entry", registry.List())
	}
	if _, err := registry.Create("shimeji"); err != nil {
		t.Errorf("Create(shimeji) failed: %v", err)
	}
	if _, err := registry.Create("nope"); err == nil {
		t.Error("Create(nope) should fail")
	}
}

func TestPoseDefaults(t *testing.T) {
	p, err := spritepack.NewLoader(getTestdataPath()).LoadFile(filepath.Join(getTestdataPath(), "minimal.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	g, err := p.Graph()
	if err != nil {
		t.Fatalf("Graph() failed: %v", err)
	}
	stand, _ := g.ActionByName("Stand")
	pose := g.Action(stand).Poses[0]
	if pose.Anchor.X != 64 || pose.Anchor.Y != 128 {
		t.Errorf("Anchor = %v, expected (64, 128)", pose.Anchor)
	}
	if pose.Velocity.X != 0 || pose.Velocity.Y != 0 {
		t.Errorf("Velocity = %v, expected zero", pose.Velocity)
	}
	if pose.Duration != 1 {
		t.Errorf("Duration = %d, expected 1", pose.Duration)
	}
	if p.Title != "minimal" {
		t.Errorf("Title = %q, expected the ID as fallback", p.Title)
	}
}

func TestExplicitPoseFields(t *testing.T) {
	p, err := spritepack.NewLoader(getTestdataPath()).LoadByID("alpha")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	g, _ := p.Graph()
	stand, _ := g.ActionByName("Stand")
	pose := g.Action(stand).Poses[0]
	if pose.Anchor.X != 32 || pose.Velocity.X != -1 || pose.Duration != 3 || pose.Border != graph.BorderFloor {
		t.Errorf("pose = %+v", pose)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	packs, invalid, err := spritepack.NewLoader(getTestdataPath()).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	ids := make([]string, len(packs))
	for i, p := range packs {
		ids[i] = p.ID
	}
	if strings.Join(ids, ",") != "alpha,minimal" {
		t.Errorf("ids = %v, expected [alpha minimal]", ids)
	}
	if len(invalid) != 2 {
		t.Errorf("invalid = %d files, expected 2", len(invalid))
	}
}

func TestLoaderMissingDirectory(t *testing.T) {
	packs, _, err := spritepack.NewLoader(filepath.Join(t.TempDir(), "none")).LoadAll()
	if err != nil || len(packs) != 0 {
		t.Errorf("LoadAll(missing) = %d packs, %v; expected none and no error", len(packs), err)
	}
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		file string
		code string
	}{
		{"dangling.yaml", graph.CodeDanglingBehavior},
		{"bad_schema.yaml", graph.CodeSchema},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := spritepack.NewLoader(getTestdataPath()).LoadFile(filepath.Join(getTestdataPath(), tt.file))
			var cerr *graph.ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("LoadFile() error = %v, expected *graph.ConfigError", err)
			}
			if cerr.Code != tt.code {
				t.Errorf("Code = %s, expected %s", cerr.Code, tt.code)
			}
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	doc := []byte("id: x\ncolour: red\nactions: [{name: A, kind: stay, poses: [{image: a.png}]}]\nbehaviors: [{name: Idle, action: A}]\n")
	_, err := spritepack.Parse(doc)
	var cerr *graph.ConfigError
	if !errors.As(err, &cerr) || cerr.Code != graph.CodeSchema {
		t.Errorf("Parse() error = %v, expected SCHEMA", err)
	}
	if _, err := spritepack.Parse(nil); err == nil {
		t.Error("Parse(empty) should fail")
	}
}
