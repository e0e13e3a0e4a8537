package chunker

// mergeUndersized joins adjacent fragments when both are below the minimum
// chunk size and their combined length, plus the blank-line joiner, still
// fits the budget. Runs after restoration, so lengths are true byte lengths.
func mergeUndersized(fragments []string, minSize, budget int) []string {
	if len(fragments) < 2 {
		return fragments
	}
	out := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if len(prev) < minSize && len(fragment) < minSize &&
				len(prev)+len(fragment)+sectionJoinOverhead <= budget {
				out[len(out)-1] = prev + "\n\n" + fragment
				continue
			}
		}
		out = append(out, fragment)
	}
	return out
}

// enforceBudget re-validates every restored fragment against the budget.
// Any oversized fragment that is not a single protected block is routed
// back through a plain splitter rather than silently truncated.
func (e *Engine) enforceBudget(fragments []string, prot *protector, lang Language) []string {
	budget := e.cfg.ChunkSizeBytes
	out := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if len(fragment) <= budget {
			out = append(out, fragment)
			continue
		}
		if _, ok := prot.atomicFor(fragment, budget); ok {
			out = append(out, fragment)
			continue
		}
		e.log.Info("fragment over budget after restore, re-splitting", "bytes", len(fragment), "budget", budget)
		out = append(out, plainSplitter(budget, e.cfg.OverlapBytes, lang).split(fragment)...)
	}
	return out
}
