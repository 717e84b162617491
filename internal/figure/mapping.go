package figure

// assignDiscrete maps each ordered value to an attribute: explicit map entries
// first, the remaining values cycle through the sequence in order.
func assignDiscrete(values []string, explicit map[string]string, sequence []string) map[string]string {
	out := make(map[string]string, len(values))
	next := 0
	for _, v := range values {
		if attr, ok := explicit[v]; ok {
			out[v] = attr
			continue
		}
		if len(sequence) == 0 {
			continue
		}
		out[v] = sequence[next%len(sequence)]
		next++
	}
	return out
}
