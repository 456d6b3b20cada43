// Package adapter holds the items backing a list or grid view.
//
// An Adapter is mutated only from the Update loop. Views observe it through
// change notifications and redraw on the next View call.
package adapter

import (
	"github.com/llehouerou/crates/internal/library"
)

// Cache is the optional build-ahead capability of an adapter. Build runs
// synchronously before the view is notified of new data.
type Cache interface {
	Build(items []library.Item, extra bool)
	// Thumbnail returns the built entry of item.
	Thumbnail(item library.Item) (string, bool)
	SetDiskPaused(paused bool)
	// Flush writes entries built while the disk tier was paused.
	Flush() error
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithCache declares the adapter cache-capable.
func WithCache(c Cache) Option {
	return func(a *Adapter) { a.cache = c }
}

// WithOffset reserves n leading non-data rows, such as a header.
func WithOffset(n int) Option {
	return func(a *Adapter) { a.offset = max(n, 0) }
}

// Adapter is the ordered item sequence shown by a view.
type Adapter struct {
	items          []library.Item
	offset         int
	loadExtraData  bool
	pauseDiskCache bool
	version        uint64
	observers      []func()
	cache          Cache
}

// New creates an empty adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Cache returns the build-ahead cache when the adapter declared one.
func (a *Adapter) Cache() (Cache, bool) {
	return a.cache, a.cache != nil
}

// SetDataList replaces the items without notifying observers.
func (a *Adapter) SetDataList(items []library.Item) {
	a.items = append([]library.Item(nil), items...)
}

// Add appends item.
func (a *Adapter) Add(item library.Item) {
	a.items = append(a.items, item)
}

// Unload drops all items.
func (a *Adapter) Unload() {
	a.items = nil
}

// Remove drops the first item denoting the same entry as item. Returns false
// when no such item is present.
func (a *Adapter) Remove(item library.Item) bool {
	for i, it := range a.items {
		if library.SameItem(it, item) {
			a.items = append(a.items[:i:i], a.items[i+1:]...)
			return true
		}
	}
	return false
}

// Item returns the item at data index i.
func (a *Adapter) Item(i int) (library.Item, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// ItemAtRow maps a view row to its item, skipping the leading offset rows.
func (a *Adapter) ItemAtRow(row int) (library.Item, bool) {
	return a.Item(row - a.offset)
}

// Offset returns the number of leading non-data rows.
func (a *Adapter) Offset() int {
	return a.offset
}

// Count returns the number of data items.
func (a *Adapter) Count() int {
	return len(a.items)
}

// Rows returns the number of view rows, offset rows included.
func (a *Adapter) Rows() int {
	return a.offset + len(a.items)
}

// Items returns the items in presentation order. The slice must not be
// modified.
func (a *Adapter) Items() []library.Item {
	return a.items
}

// LoadExtraData reports whether views should show detailed cells.
func (a *Adapter) LoadExtraData() bool {
	return a.loadExtraData
}

// SetLoadExtraData toggles detailed cells.
func (a *Adapter) SetLoadExtraData(v bool) {
	a.loadExtraData = v
}

// DiskCachePaused reports whether the disk cache is paused.
func (a *Adapter) DiskCachePaused() bool {
	return a.pauseDiskCache
}

// SetPauseDiskCache pauses or resumes the disk tier of the cache.
func (a *Adapter) SetPauseDiskCache(paused bool) {
	a.pauseDiskCache = paused
	if a.cache != nil {
		a.cache.SetDiskPaused(paused)
	}
}

// BuildCache runs the build-ahead step. It is a no-op without a cache.
func (a *Adapter) BuildCache() {
	if a.cache != nil {
		a.cache.Build(a.items, a.loadExtraData)
	}
}

// Thumbnail returns the cached rendering of item, if any.
func (a *Adapter) Thumbnail(item library.Item) (string, bool) {
	if a.cache == nil {
		return "", false
	}
	return a.cache.Thumbnail(item)
}

// Flush persists pending cache entries.
func (a *Adapter) Flush() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Flush()
}

// Version increases on every NotifyChanged.
func (a *Adapter) Version() uint64 {
	return a.version
}

// Observe registers fn to run on every change notification.
func (a *Adapter) Observe(fn func()) {
	a.observers = append(a.observers, fn)
}

// NotifyChanged tells observers the data set changed.
func (a *Adapter) NotifyChanged() {
	a.version++
	for _, fn := range a.observers {
		fn()
	}
}
