package listview

import (
	"fmt"
	"reflect"
	"testing"
)

type row struct {
	Name  string
	Email string
}

func sampleRows(n int) []row {
	rows := make([]row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, row{
			Name:  fmt.Sprintf("user-%02d", i),
			Email: fmt.Sprintf("user-%02d@example.com", i),
		})
	}
	return rows
}

func newTable(rows []row, pageSize int) *Table[row] {
	t := NewTable(pageSize, MatchFields(
		func(r row) string { return r.Name },
		func(r row) string { return r.Email },
	))
	t.SetRows(rows)
	return t
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		n, pageSize, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 5, 5},
	}
	for _, tc := range cases {
		table := newTable(sampleRows(tc.n), tc.pageSize)
		if got := table.PageCount(); got != tc.want {
			t.Errorf("PageCount with n=%d p=%d = %d, want %d", tc.n, tc.pageSize, got, tc.want)
		}
	}
}

func TestNavigationBoundaries(t *testing.T) {
	table := newTable(sampleRows(25), 10)

	if table.HasPrevious() {
		t.Error("page 1 must not offer a previous control")
	}
	table.Previous() // no-op before page 1
	if table.PageIndex() != 1 {
		t.Fatalf("Previous on page 1 moved to %d", table.PageIndex())
	}

	table.Next()
	table.Next()
	if table.PageIndex() != 3 || table.HasNext() {
		t.Fatalf("expected to sit on last page 3 with no next, got page %d", table.PageIndex())
	}
	table.Next() // no-op past the last page
	if table.PageIndex() != 3 {
		t.Fatalf("Next on last page moved to %d", table.PageIndex())
	}

	table.GoTo(99)
	if table.PageIndex() != 3 {
		t.Errorf("GoTo out of range moved to %d", table.PageIndex())
	}
	table.GoTo(0)
	if table.PageIndex() != 3 {
		t.Errorf("GoTo 0 moved to %d", table.PageIndex())
	}
}

func TestPageWindow(t *testing.T) {
	table := newTable(sampleRows(12), 5)
	table.GoTo(3)

	window := table.Page()
	if len(window) != 2 {
		t.Fatalf("last page should hold the 2 leftover rows, got %d", len(window))
	}
	if window[0].Name != "user-11" {
		t.Errorf("last page starts at %q, want user-11", window[0].Name)
	}
}

func TestSearchResetsPage(t *testing.T) {
	table := newTable(sampleRows(30), 10)
	table.GoTo(3)

	table.SetQuery("USER-1") // case-insensitive
	if table.PageIndex() != 1 {
		t.Fatalf("search left the page at %d, want 1", table.PageIndex())
	}
	// user-10 through user-19
	if table.Total() != 10 {
		t.Errorf("search matched %d rows, want 10", table.Total())
	}

	table.SetQuery("")
	if table.Total() != 30 {
		t.Errorf("clearing the query left %d rows, want 30", table.Total())
	}
}

func TestSetRowsClampsPage(t *testing.T) {
	table := newTable(sampleRows(30), 10)
	table.GoTo(3)

	table.SetRows(sampleRows(5))
	if table.PageIndex() != 1 {
		t.Errorf("shrinking the collection left the view on page %d", table.PageIndex())
	}
}

func TestDraftCancelLeavesCollectionUntouched(t *testing.T) {
	rows := sampleRows(3)
	want := append([]row(nil), rows...)

	var draft Draft[row]
	draft.Open(rows[1])
	draft.Value.Name = "edited"
	draft.Cancel()

	if !reflect.DeepEqual(rows, want) {
		t.Fatal("canceling a draft mutated the backing collection")
	}
	if draft.IsOpen() {
		t.Error("draft should be closed after cancel")
	}
}

func TestValueEditorAbsoluteIndex(t *testing.T) {
	values := []string{"a", "b", "c", "d", "e", "f", "g"}
	editor := NewValueEditor(values)

	editor.Next() // page 2
	if got := editor.AbsoluteIndex(0); got != 5 {
		t.Fatalf("page 2 visible row 0 maps to %d, want 5", got)
	}

	if !editor.UpdateAt(0, "F") {
		t.Fatal("UpdateAt rejected a valid visible index")
	}
	if editor.Values()[5] != "F" {
		t.Errorf("edit landed on %q at index 5, want F", editor.Values()[5])
	}
	if editor.Values()[0] != "a" {
		t.Errorf("edit corrupted index 0: %q", editor.Values()[0])
	}

	if editor.AbsoluteIndex(2) != -1 {
		t.Error("visible index past the page's entries should map to -1")
	}
}

func TestValueEditorRemovePullsPageBack(t *testing.T) {
	editor := NewValueEditor([]string{"a", "b", "c", "d", "e", "f"})
	editor.Next() // page 2 shows only "f"

	if !editor.RemoveAt(0) {
		t.Fatal("RemoveAt rejected a valid visible index")
	}
	if editor.PageIndex() != 1 {
		t.Errorf("removing the last entry of the last page left page %d", editor.PageIndex())
	}
	if got := editor.Values(); len(got) != 5 || got[4] != "e" {
		t.Errorf("unexpected values after removal: %v", got)
	}
}

func TestValueEditorDoesNotAliasInput(t *testing.T) {
	values := []string{"a", "b"}
	editor := NewValueEditor(values)
	editor.UpdateAt(0, "z")

	if values[0] != "a" {
		t.Error("editor mutated the caller's slice")
	}
}
