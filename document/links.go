package document

// Link is the target of a clickable area: an external URL or an internal
// link id returned by AddLink. The zero value is no link.
type Link struct {
	URL string
	ID  int
}

// URL returns an external link.
func URL(u string) Link { return Link{URL: u} }

// Internal returns a link to an id created with AddLink.
func Internal(id int) Link { return Link{ID: id} }

// IsZero reports whether l points nowhere.
func (l Link) IsZero() bool { return l.URL == "" && l.ID <= 0 }

type linkDest struct {
	page int
	y    float64
}

type pageLink struct {
	x, y, w, h float64
	link       Link
}

// AddLink creates an internal link destination and returns its id. The
// destination is set with SetLink.
func (d *Document) AddLink() int {
	d.links = append(d.links, linkDest{})
	return len(d.links)
}

// SetLink points link id at position y of page. A negative y selects the
// cursor and a page below 1 the current page.
func (d *Document) SetLink(id int, y float64, page int) {
	if id < 1 || id > len(d.links) {
		return
	}
	if y < 0 {
		y = d.y
	}
	if page < 1 {
		page = len(d.pages)
	}
	d.links[id-1] = linkDest{page: page, y: y}
}

// Link adds a clickable area on the current page.
func (d *Document) Link(x, y, w, h float64, link Link) {
	if link.IsZero() || d.state != stateOpen {
		return
	}
	p := d.pages[len(d.pages)-1]
	p.links = append(p.links, pageLink{x: x * d.k, y: d.hPt - y*d.k, w: w * d.k, h: h * d.k, link: link})
}

// PageLinkCount returns the number of clickable areas on page n.
func (d *Document) PageLinkCount(n int) int {
	if n < 1 || n > len(d.pages) {
		return 0
	}
	return len(d.pages[n-1].links)
}
