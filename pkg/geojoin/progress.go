package geojoin

// Progress receives byte or row increments and a completion signal from
// the join engine. Implementations decide what unit inc's argument
// means (bytes, per Join's contract) and how (or whether) to render it;
// the engine itself holds a Progress polymorphically and never inspects
// the concrete type.
type Progress interface {
	Inc(n uint64)
	Finish()
}

// NopProgress discards all progress events. It is the default when no
// reporter is supplied, and the implementation used in "quiet" mode.
type NopProgress struct{}

// Inc implements Progress.
func (NopProgress) Inc(uint64) {}

// Finish implements Progress.
func (NopProgress) Finish() {}
