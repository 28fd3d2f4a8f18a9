package graph

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// newObjectID mints a fresh 24-hex-digit object identifier, distinct from
// every id already present in the objects table.
func (p *Project) newObjectID() string {
	for {
		u := uuid.New()
		id := strings.ToUpper(hex.EncodeToString(u[:12]))
		if p.objects.Get(id) == nil {
			return id
		}
	}
}
