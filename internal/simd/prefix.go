package simd

// PrefixCandidateScan walks codes once and, for every code present in
// candidates, appends the row index to buckets[code]. buckets must
// already contain an entry (possibly nil) for every candidate code;
// codes not in candidates are ignored. This backs the "SIMD" prefix
// path (spec §4.4.2): a broadcast-compare against every candidate
// only pays off for very small candidate sets, so it uses this
// hash-set-membership scan instead. The baseline prefix path does not
// call it; it resolves each row's value through the dictionary.
func PrefixCandidateScan(codes []uint32, buckets map[uint32][]int) {
	for i, c := range codes {
		if _, ok := buckets[c]; ok {
			buckets[c] = append(buckets[c], i)
		}
	}
}
