package cache

// noneEngine runs without coherence. Remote notifications are counted as
// misses and never touch the lines.
type noneEngine struct {
	engineBase
}

func (e *noneEngine) protocol() Protocol {
	return ProtocolNone
}

func (e *noneEngine) access(index int, tag uint64, action Action) Outcome {
	way, hit := e.lookup(index, tag)
	out := Outcome{Way: way}

	if !action.IsLocal() {
		return out
	}

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
