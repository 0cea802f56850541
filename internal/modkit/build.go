package modkit

import (
	"devsolutions/internal/modkit/httpkit"
	str "devsolutions/internal/platform/strings"
)

// Built is the identity a module mounts with
type Built struct {
	Name   string
	Prefix string
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Mount registers own under the normalized prefix
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	httpkit.MountUnder(r, str.MustPrefix(b.Prefix), nil, own)
}
