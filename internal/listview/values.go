package listview

// ValueEditor pages through a tag's value list inside the Add/Edit Tag
// modal, independently of the outer table. Mutations arrive as visible
// row indices and must be translated to absolute positions first.
type ValueEditor struct {
	values   []string
	page     int
	pageSize int
}

// ValuePageSize is the fixed size of the value sub-table.
const ValuePageSize = 5

func NewValueEditor(values []string) *ValueEditor {
	copied := make([]string, len(values))
	copy(copied, values)
	return &ValueEditor{values: copied, page: 1, pageSize: ValuePageSize}
}

// AbsoluteIndex maps a visible row index on the current page to its
// position in the full value list. Returns -1 when the visible index
// does not correspond to a real entry.
func (e *ValueEditor) AbsoluteIndex(visible int) int {
	if visible < 0 || visible >= e.pageSize {
		return -1
	}
	abs := (e.page-1)*e.pageSize + visible
	if abs >= len(e.values) {
		return -1
	}
	return abs
}

func (e *ValueEditor) Add(value string) {
	e.values = append(e.values, value)
}

// UpdateAt edits the entry shown at the given visible index.
func (e *ValueEditor) UpdateAt(visible int, value string) bool {
	abs := e.AbsoluteIndex(visible)
	if abs < 0 {
		return false
	}
	e.values[abs] = value
	return true
}

// RemoveAt deletes the entry shown at the given visible index,
// preserving order and pulling the page back if the last entry of the
// last page disappeared.
func (e *ValueEditor) RemoveAt(visible int) bool {
	abs := e.AbsoluteIndex(visible)
	if abs < 0 {
		return false
	}
	e.values = append(e.values[:abs], e.values[abs+1:]...)
	if e.page > e.PageCount() {
		e.page = e.PageCount()
	}
	return true
}

func (e *ValueEditor) Page() []string {
	start := (e.page - 1) * e.pageSize
	if start >= len(e.values) {
		return nil
	}
	end := start + e.pageSize
	if end > len(e.values) {
		end = len(e.values)
	}
	return e.values[start:end]
}

func (e *ValueEditor) PageIndex() int { return e.page }

func (e *ValueEditor) PageCount() int {
	count := (len(e.values) + e.pageSize - 1) / e.pageSize
	if count < 1 {
		count = 1
	}
	return count
}

func (e *ValueEditor) Next() {
	if e.page < e.PageCount() {
		e.page++
	}
}

func (e *ValueEditor) Previous() {
	if e.page > 1 {
		e.page--
	}
}

// Values returns the full ordered list for the save payload.
func (e *ValueEditor) Values() []string {
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}
