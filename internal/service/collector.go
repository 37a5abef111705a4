// internal/service/collector.go
package service

import (
    "sync"

    "github.com/avaliamed/surveypulse-backend/internal/model"
)

// Collector accumulates the partial answer payloads each section emits while
// the respondent moves through the flow. Sections emit on every input change,
// not only on step exit, so merges are frequent and must never lose keys set
// by other sections.
//
// Keys from the primary section are stored as-is; every other section gets
// its keys prefixed with "<section>." so two sections can never collide.
// Within one key, last write wins. Backward navigation does not clear
// anything. One collector serves exactly one respondent session and nothing
// here touches storage.
type Collector struct {
    mu   sync.Mutex
    data map[string]any
}

func NewCollector() *Collector {
    return &Collector{data: map[string]any{}}
}

// Merge folds a section's partial payload into the composite.
func (c *Collector) Merge(section model.SectionID, partial map[string]any) {
    c.mu.Lock()
    defer c.mu.Unlock()
    for k, v := range partial {
        c.data[compositeKey(section, k)] = v
    }
}

// Composite returns a copy of the accumulated answers. The copy keeps later
// merges from racing a submission read.
func (c *Collector) Composite() map[string]any {
    c.mu.Lock()
    defer c.mu.Unlock()
    out := make(map[string]any, len(c.data))
    for k, v := range c.data {
        out[k] = v
    }
    return out
}

func compositeKey(section model.SectionID, key string) string {
    if section == model.SectionPrimaryQuestion {
        return key
    }
    return string(section) + "." + key
}

// CompositeKey is the exported form used when reading a composite back out.
func CompositeKey(section model.SectionID, key string) string {
    return compositeKey(section, key)
}
