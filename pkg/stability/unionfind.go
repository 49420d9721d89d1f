package stability

// activeObjectParts is the union-find structure the global pass threads
// through the layer stack to track which islands belong to the same
// rigid object part. Every island starts as its own part (Insert);
// Merge joins two parts when a layer connects them; Access and
// GetFlatID both apply path compression as they walk the mapping so
// repeated lookups stay cheap.
type activeObjectParts struct {
	nextPartIdx int
	parts       map[int]*ObjectPart
	idMapping   map[int]int
}

func newActiveObjectParts() *activeObjectParts {
	return &activeObjectParts{
		parts:     make(map[int]*ObjectPart),
		idMapping: make(map[int]int),
	}
}

// GetFlatID resolves id to its current representative, compressing every
// link visited along the way so the next lookup for any of them is O(1).
func (a *activeObjectParts) GetFlatID(id int) int {
	index := a.idMapping[id]
	for index != a.idMapping[index] {
		index = a.idMapping[index]
	}
	i := id
	for index != a.idMapping[i] {
		next := a.idMapping[i]
		a.idMapping[i] = index
		i = next
	}
	return index
}

// Access returns the part currently representing id.
func (a *activeObjectParts) Access(id int) *ObjectPart {
	return a.parts[a.GetFlatID(id)]
}

// Insert creates a new one-island part and returns its id.
func (a *activeObjectParts) Insert(isl *Island) int {
	id := a.nextPartIdx
	a.parts[id] = newObjectPartFromIsland(isl)
	a.idMapping[id] = id
	a.nextPartIdx++
	return id
}

// Merge folds the part at from into the part at to, leaving to's flat id
// as the surviving representative for both.
func (a *activeObjectParts) Merge(from, to int) {
	toFlat := a.GetFlatID(to)
	fromFlat := a.GetFlatID(from)
	if toFlat == fromFlat {
		return
	}
	a.parts[toFlat].Add(a.parts[fromFlat])
	delete(a.parts, fromFlat)
	a.idMapping[fromFlat] = toFlat
}
