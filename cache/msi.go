package cache

// msiEngine runs the three-state Modified/Shared/Invalid protocol. Dirty
// mirrors the Modified state.
type msiEngine struct {
	engineBase
}

func (e *msiEngine) protocol() Protocol {
	return ProtocolMSI
}

func (e *msiEngine) access(index int, tag uint64, action Action) Outcome {
	way, hit := e.lookup(index, tag)
	out := Outcome{Way: way}

	switch action {
	case Load, Store:
		if hit {
			e.localHit(index, way, action, &out)
		} else {
			out.Writeback = e.fill(index, way, tag, fillState(action), action == Store)
		}

		e.policy.Touch(index, way)
	case LoadMiss:
		if !hit {
			return out
		}

		out.Hit = true
		line := e.store.Line(index, way)
		if line.State == Modified {
			out.Writeback = true
			line.State = Shared
			line.Dirty = false
			e.store.update(index, way, line)
		}
	case StoreMiss:
		if !hit {
			return out
		}

		out.Hit = true
		out.Writeback = e.store.Line(index, way).State == Modified
		e.invalidate(index, way)
	}

	return out
}

func (e *msiEngine) localHit(index, way int, action Action, out *Outcome) {
	line := e.store.Line(index, way)

	if action == Store && line.State == Shared {
		// The store needs exclusive ownership before it can complete.
		out.UpgradeMiss = true
		line.State = Modified
		line.Dirty = true
		e.store.update(index, way, line)

		return
	}

	out.Hit = true
}

func fillState(action Action) State {
	if action == Store {
		return Modified
	}

	return Shared
}
