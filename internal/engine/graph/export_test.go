package graph

// KeySet builds the excluded set of a traversal.
func KeySet(keys ...string) keySet {
	s := make(keySet, len(keys))
	for _, k := range keys {
		s.add(k)
	}
	return s
}
