package grid

// Subgrid is the private state of one halo-engine worker: the interior rows
// of its band plus two ghost rows. Local row 0 mirrors the last interior row
// of the upstream neighbor and local row band+1 mirrors the first interior
// row of the downstream neighbor; only rows 1..band are computed by the
// owner. Because the ghosts pad both edges, interior neighbor lookups never
// wrap through a ghost row, so the plain Grid lookup applies unchanged.
type Subgrid struct {
	*Grid
	band Band
}

// NewSubgrid builds the subgrid for one row band, copying the interior rows
// and the two adjacent global rows (toroidally wrapped) out of src.
func NewSubgrid(src *Grid, band Band) *Subgrid {
	local, _ := newZero(band.Len()+2, src.Width())
	for j := -1; j <= band.Len(); j++ {
		local.SetRow(j+1, src.Row(Mod(band.Lo+j, src.Height())))
	}
	return &Subgrid{Grid: local, band: band}
}

// Band returns the global row band this subgrid covers.
func (s *Subgrid) Band() Band { return s.band }

// InteriorRows returns the number of rows owned by this worker.
func (s *Subgrid) InteriorRows() int { return s.band.Len() }

// FirstInteriorRow returns a copy of local row 1, the row an upstream
// neighbor needs as its bottom ghost.
func (s *Subgrid) FirstInteriorRow() []int { return s.Row(1) }

// LastInteriorRow returns a copy of local row band, the row a downstream
// neighbor needs as its top ghost.
func (s *Subgrid) LastInteriorRow() []int { return s.Row(s.band.Len()) }

// SetGhosts overwrites the two ghost rows of the current buffer.
func (s *Subgrid) SetGhosts(top, bottom []int) {
	s.SetRow(0, top)
	s.SetRow(s.band.Len()+1, bottom)
}

// InteriorSnapshot appends the interior rows, in order, to dst and returns
// the extended slice. Assembling every subgrid's interior in band order
// reconstructs the global grid.
func (s *Subgrid) InteriorSnapshot(dst []int) []int {
	for r := 1; r <= s.band.Len(); r++ {
		dst = append(dst, s.Row(r)...)
	}
	return dst
}
