// Package dictcol provides a concurrent dictionary encoder and query
// layer for line-oriented text: intern each line to a dense uint32
// code, store the codes as a single column, and answer exact and
// prefix lookups against the column without re-touching the original
// strings.
//
// A typical session encodes a file, runs some queries, then persists
// the result:
//
//	c, err := dictcol.New(dictcol.WithThreads(runtime.NumCPU()))
//	if err != nil {
//		// handle err
//	}
//	if err := c.Encode("input.txt"); err != nil {
//		// handle err
//	}
//	rows, err := c.FindExact("some-value")
//	if err := c.Save("input.dcol"); err != nil {
//		// handle err
//	}
package dictcol
