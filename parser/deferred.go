package parser

import (
	"fmt"

	"github.com/erraggy/oasload/internal/pathutil"
	"github.com/erraggy/oasload/oaserrors"
)

// deferredConversion is a conversion postponed until every component of the
// document exists.
type deferredConversion struct {
	// pointer is the location captured at scheduling time.
	pointer string
	value   any
	schema  *Schema
	target  conversionTarget
}

// DeferredStats counts the deferred conversions of a parse.
type DeferredStats struct {
	// Scheduled is the number of conversions postponed during the first pass.
	Scheduled int `json:"scheduled" yaml:"scheduled"`
	// Applied is the number replayed against a resolved schema.
	Applied int `json:"applied" yaml:"applied"`
	// Skipped is the number left at their interim value because the
	// guiding reference never resolved.
	Skipped int `json:"skipped" yaml:"skipped"`
	// Failed is the number of applied conversions that reported a mismatch.
	Failed int `json:"failed" yaml:"failed"`
}

// deferredQueue holds the pending conversions of one parse, in scheduling order.
type deferredQueue struct {
	records []deferredConversion
	stats   DeferredStats
}

// take removes and returns every pending record.
func (q *deferredQueue) take() []deferredConversion {
	records := q.records
	q.records = nil
	return records
}

// schedule queues a conversion of value under schema for replay, writing the
// result to target. Reports false, scheduling nothing, when the context has
// no queue.
func (c *parseContext) schedule(value any, schema *Schema, target conversionTarget) bool {
	if c.deferred == nil {
		return false
	}
	c.deferred.records = append(c.deferred.records, deferredConversion{
		pointer: c.pointer(),
		value:   value,
		schema:  schema,
		target:  target,
	})
	c.deferred.stats.Scheduled++
	return true
}

// replay runs every pending conversion in scheduling order against resolve.
// The queue is emptied first, so a second replay does nothing.
func (c *parseContext) replay(resolve SchemaResolver) {
	if c.deferred == nil {
		return
	}
	records := c.deferred.take()
	if len(records) == 0 {
		return
	}
	c.logger.Debug("replaying deferred conversions", "count", len(records))
	for _, r := range records {
		c.replayOne(r, resolve)
	}
	c.logger.Debug("deferred conversions replayed",
		"applied", c.deferred.stats.Applied,
		"skipped", c.deferred.stats.Skipped,
		"failed", c.deferred.stats.Failed)
}

func (c *parseContext) replayOne(r deferredConversion, resolve SchemaResolver) {
	if r.schema.Ref != "" {
		if _, ok := resolveSchemaChain(r.schema, resolve); !ok {
			c.deferred.stats.Skipped++
			if c.strictRefs {
				err := &oaserrors.ReferenceError{Ref: r.schema.Ref, Message: "guiding schema not found"}
				c.addDiagnosticAt(r.pointer, SeverityWarning, err.Error(), err)
			}
			return
		}
	}

	saved := c.path.Snapshot()
	defer c.path.Restore(saved)
	c.path.Reset()
	for _, token := range pathutil.Split(r.pointer) {
		c.path.Push(token)
	}

	v, err := Convert(r.value, r.schema, resolve)
	r.target.assign(v)
	c.deferred.stats.Applied++
	if err != nil {
		c.deferred.stats.Failed++
		c.conversionFailed(err)
	}
}

// resolveSchemaChain follows s through $ref placeholders to a concrete schema.
func resolveSchemaChain(s *Schema, resolve SchemaResolver) (*Schema, bool) {
	for hops := 0; s != nil && s.Ref != ""; hops++ {
		if resolve == nil || hops >= maxRefHops {
			return nil, false
		}
		next, ok := resolve(s.Ref)
		if !ok {
			return nil, false
		}
		s = next
	}
	return s, s != nil
}

func (s DeferredStats) String() string {
	return fmt.Sprintf("%d scheduled, %d applied, %d skipped, %d failed", s.Scheduled, s.Applied, s.Skipped, s.Failed)
}
