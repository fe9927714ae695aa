package listview

// Draft is the edit buffer behind an Add/Edit modal. Opening copies the
// target's mutable fields into Value; the backing collection is never
// touched until a provider mutation succeeds.
type Draft[T any] struct {
	Value T
	open  bool
}

// Open stages a copy of v for editing.
func (d *Draft[T]) Open(v T) {
	d.Value = v
	d.open = true
}

// Cancel discards the staged value.
func (d *Draft[T]) Cancel() {
	var zero T
	d.Value = zero
	d.open = false
}

// Close resets the draft after a successful save.
func (d *Draft[T]) Close() {
	d.Cancel()
}

func (d *Draft[T]) IsOpen() bool {
	return d.open
}
