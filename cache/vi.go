package cache

// viEngine runs the two-state Valid/Invalid protocol. Any remote notification
// that matches a valid line invalidates it.
type viEngine struct {
	engineBase
}

func (e *viEngine) protocol() Protocol {
	return ProtocolVI
}

func (e *viEngine) access(index int, tag uint64, action Action) Outcome {
	way, hit := e.lookup(index, tag)
	out := Outcome{Way: way}

	if action.IsLocal() {
		if hit {
			out.Hit = true
			if action == Store {
				e.markDirty(index, way)
			}
		} else {
			out.Writeback = e.fill(index, way, tag, Valid, action == Store)
		}

		e.policy.Touch(index, way)

		return out
	}

	// A matching remote notification evicts the line, so it is reported as
	// a miss.
	if hit {
		out.Writeback = e.store.Line(index, way).Dirty
		e.invalidate(index, way)
	}

	return out
}
