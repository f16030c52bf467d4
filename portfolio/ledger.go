package portfolio

import (
	"fmt"
)

// Ledger mutation. Events are never partially mutated: edits replace the
// whole record by id, deletes remove by id. Ids are never reused.

var ErrNoSuchSecurity = fmt.Errorf("security does not exist in portfolio")
var ErrNoSuchEvent = fmt.Errorf("no event with that id")

// AddSecurity creates an empty ledger for the symbol. Adding an existing
// symbol is a no-op.
func (p *Portfolio) AddSecurity(symbol string) string {
	sym := NormalizeSymbol(symbol)
	if _, ok := p.Holdings[sym]; !ok {
		p.Holdings[sym] = []*TransactionEvent{}
	}
	return sym
}

func (p *Portfolio) RemoveSecurity(symbol string) {
	delete(p.Holdings, NormalizeSymbol(symbol))
}

// AppendEvent assigns the event an id and a sequence hint recording its
// insertion position among same-date entries, normalizes its amount, and
// appends it. The security must already exist.
func (p *Portfolio) AppendEvent(symbol string, ev *TransactionEvent) error {
	sym := NormalizeSymbol(symbol)
	events, ok := p.Holdings[sym]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchSecurity, sym)
	}
	ev.Id = NewEventId()
	ev.SequenceHint = len(events)
	ev.Normalize()
	p.Holdings[sym] = append(events, ev)
	return nil
}

// ReplaceEvent swaps the event with the same id, preserving the original id
// and sequence hint so same-date ordering is stable across edits.
func (p *Portfolio) ReplaceEvent(symbol string, ev *TransactionEvent) error {
	sym := NormalizeSymbol(symbol)
	events, ok := p.Holdings[sym]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchSecurity, sym)
	}
	for i, existing := range events {
		if existing.Id == ev.Id {
			ev.SequenceHint = existing.SequenceHint
			ev.Normalize()
			events[i] = ev
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoSuchEvent, ev.Id)
}

func (p *Portfolio) RemoveEvent(symbol string, id string) error {
	sym := NormalizeSymbol(symbol)
	events, ok := p.Holdings[sym]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchSecurity, sym)
	}
	for i, existing := range events {
		if existing.Id == id {
			p.Holdings[sym] = append(events[:i], events[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoSuchEvent, id)
}
