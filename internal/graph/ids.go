package graph

import (
	"github.com/alfredjeanlab/maintgraph/internal/idgen"
	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// NodeID derives the id of the node wrapping rec: "<type>:<natural id>" when
// one of the naturalID fields carries a scalar value (first match in order
// wins), otherwise "<type>:" plus a random suffix. Random ids are not
// reproducible across builds; callers must not cache them.
func NodeID(t model.EntityType, rec model.Record, naturalID []string) (id string, synthetic bool) {
	prefix := string(t) + ":"
	if natural := rec.String(naturalID); natural != "" {
		return prefix + natural, false
	}
	return idgen.Synthetic(prefix), true
}

// RefID is the id a reference value points at, whether or not a record of
// that type exists.
func RefID(t model.EntityType, ref string) string {
	return string(t) + ":" + ref
}
