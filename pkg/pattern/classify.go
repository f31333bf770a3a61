package pattern

// Classify returns a node of the narrowest category whose predicate holds for
// every item of data. The node is Unknown with an empty pattern when nothing
// matches.
func Classify(data ...string) Node {
	for _, cat := range classifyOrder {
		if satisfies(cat, data) {
			return New(cat, data...)
		}
	}
	return Node{category: Unknown, data: append([]string(nil), data...)}
}
