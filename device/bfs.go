package device

// computeShortestPaths builds the dist/next tables by running a BFS from
// every physical qubit over the symmetric closure of adj, in the same
// queue-driven traversal shape as the teacher library's graph.BFS
// (enqueue-on-first-visit, FIFO queue, a depth map and a parent map) —
// adapted here to dense int-indexed qubits instead of string vertex IDs,
// and run once per source at construction time rather than on demand, per
// spec §9 ("predecessor table vs re-BFS").
//
// Neighbours are visited in ascending physical-index order, so among paths
// of equal length the first one discovered — and therefore dist/next — is
// deterministic for a fixed adjacency representation (spec §4.1).
func (d *Device) computeShortestPaths() {
	n := d.n
	d.dist = make([][]int, n)
	d.next = make([][]int, n)
	for i := range d.dist {
		d.dist[i] = make([]int, n)
		d.next[i] = make([]int, n)
		for j := range d.dist[i] {
			d.dist[i][j] = -1
			d.next[i][j] = -1
		}
		d.dist[i][i] = 0
	}

	sym := d.symmetricClosure()

	for s := 0; s < n; s++ {
		parent := make([]int, n)
		visited := make([]bool, n)
		for i := range parent {
			parent[i] = -1
		}
		visited[s] = true

		queue := make([]int, 0, n)
		queue = append(queue, s)

		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for v := 0; v < n; v++ {
				if !sym[u][v] || visited[v] {
					continue
				}
				visited[v] = true
				parent[v] = u
				d.dist[s][v] = d.dist[s][u] + 1
				queue = append(queue, v)
			}
		}

		// Convert the BFS parent tree rooted at s into a next-hop table:
		// next[s][v] is the first step out of s on the path to v, found
		// by walking the parent chain backward from v until we reach a
		// node whose parent is s.
		for v := 0; v < n; v++ {
			if v == s || !visited[v] {
				continue
			}
			cur := v
			for parent[cur] != s {
				cur = parent[cur]
			}
			d.next[s][v] = cur
		}
	}
}

// symmetricClosure returns the undirected adjacency used for path-finding:
// an edge between i and j exists whenever either direction is coupled.
func (d *Device) symmetricClosure() [][]bool {
	n := d.n
	sym := make([][]bool, n)
	for i := range sym {
		sym[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if d.adj[i][j] || d.adj[j][i] {
				sym[i][j] = true
				sym[j][i] = true
			}
		}
	}
	return sym
}
