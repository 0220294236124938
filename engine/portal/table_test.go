package portal

import (
	"errors"
	"testing"
)

func TestTable_LinkIsMutual(t *testing.T) {
	tbl := NewTable()
	a := tbl.Create(WithName("a"))
	b := tbl.Create(WithName("b"))

	if a.Handle() == NoHandle || a.Handle() == b.Handle() {
		t.Fatalf("handles not unique: %d %d", a.Handle(), b.Handle())
	}
	if err := tbl.Link(a.Handle(), b.Handle()); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if a.ExitHandle() != b.Handle() || b.ExitHandle() != a.Handle() {
		t.Errorf("link not mutual: a.exit=%d b.exit=%d", a.ExitHandle(), b.ExitHandle())
	}
	if exit, ok := tbl.Exit(a.Handle()); !ok || exit.Name() != "b" {
		t.Errorf("Exit(a) = %v, %v", exit, ok)
	}
	if tbl.Generation(a.Handle()) != 1 || tbl.Generation(b.Handle()) != 1 {
		t.Errorf("generations after link: %d %d", tbl.Generation(a.Handle()), tbl.Generation(b.Handle()))
	}
}

func TestTable_LinkErrors(t *testing.T) {
	tbl := NewTable()
	a := tbl.Create().Handle()
	b := tbl.Create().Handle()
	c := tbl.Create().Handle()
	if err := tbl.Link(a, b); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		x, y Handle
		want error
	}{
		{"self", c, c, ErrSelfLink},
		{"unknown", c, 99, ErrUnknownPortal},
		{"unknown first", 0, c, ErrUnknownPortal},
		{"already linked", a, c, ErrAlreadyLinked},
		{"already linked partner", c, b, ErrAlreadyLinked},
		{"relink same pair", a, b, ErrAlreadyLinked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tbl.Link(tt.x, tt.y); !errors.Is(err, tt.want) {
				t.Errorf("Link(%d, %d) = %v, want %v", tt.x, tt.y, err, tt.want)
			}
		})
	}
	if tbl.Generation(a) != 1 {
		t.Errorf("failed links changed generation to %d", tbl.Generation(a))
	}
}

func TestTable_UnlinkAndRelink(t *testing.T) {
	tbl := NewTable()
	a := tbl.Create().Handle()
	b := tbl.Create().Handle()
	c := tbl.Create().Handle()
	_ = tbl.Link(a, b)

	if err := tbl.Unlink(b); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if _, ok := tbl.Exit(a); ok {
		t.Error("a still has an exit after unlinking b")
	}
	if tbl.Generation(a) != 2 || tbl.Generation(b) != 2 {
		t.Errorf("generations after unlink: %d %d", tbl.Generation(a), tbl.Generation(b))
	}
	if err := tbl.Unlink(b); err != nil {
		t.Errorf("second Unlink = %v, want nil", err)
	}
	if tbl.Generation(b) != 2 {
		t.Errorf("no-op unlink bumped generation to %d", tbl.Generation(b))
	}

	if err := tbl.Link(a, c); err != nil {
		t.Fatalf("relink: %v", err)
	}
	if exit, _ := tbl.Exit(c); exit.Handle() != a {
		t.Errorf("Exit(c) = %d, want %d", exit.Handle(), a)
	}
	if err := tbl.Unlink(77); !errors.Is(err, ErrUnknownPortal) {
		t.Errorf("Unlink(unknown) = %v", err)
	}
}

func TestTable_RemoveUnlinksPartner(t *testing.T) {
	tbl := NewTable()
	a := tbl.Create().Handle()
	b := tbl.Create().Handle()
	_ = tbl.Link(a, b)

	if err := tbl.Remove(a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := tbl.Get(a); ok {
		t.Error("removed portal still present")
	}
	pb, _ := tbl.Get(b)
	if pb.ExitHandle() != NoHandle {
		t.Errorf("partner still links to %d", pb.ExitHandle())
	}
	if tbl.Len() != 1 || len(tbl.Handles()) != 1 || tbl.Handles()[0] != b {
		t.Errorf("Len = %d Handles = %v", tbl.Len(), tbl.Handles())
	}
	if err := tbl.Remove(a); !errors.Is(err, ErrUnknownPortal) {
		t.Errorf("second Remove = %v", err)
	}
	if tbl.Generation(a) != 0 {
		t.Errorf("Generation(removed) = %d, want 0", tbl.Generation(a))
	}
}
